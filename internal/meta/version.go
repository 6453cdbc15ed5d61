package meta

import (
	"fmt"
	"runtime"
)

// Info describes how a minicoap binary was built.
//
// Most of it is set at build time through the linker, e.g.
//
//	go build -ldflags "-X github.com/luma/minicoap/internal/meta.Version=v0.3.0"
type Info struct {
	Version   string
	Build     string
	Branch    string
	BuildTime string
	Platform  string
	GoVersion string
	GoTag     string
}

// These will be filled in using the linker -X flag
var (
	// Version as an arbitrary string
	Version = "dev"

	// Build is the Git sha from when we are building
	Build string

	// Branch is the Git branch that we are building from
	Branch string

	// BuildTimeUTC is the build time in UTC (year/month/day hour:min:sec)
	BuildTimeUTC string

	// GoTag is the set of build tags the binary was built with
	GoTag string

	platform = fmt.Sprintf("%s %s", runtime.GOOS, runtime.GOARCH)
)

// GetInfo returns an Info struct populated with the build information.
func GetInfo() Info {
	return Info{
		GoVersion: runtime.Version(),
		Version:   Version,
		Build:     Build,
		Branch:    Branch,
		BuildTime: BuildTimeUTC,
		GoTag:     GoTag,
		Platform:  platform,
	}
}

func (i Info) String() string {
	s := fmt.Sprintf("minicoap %s (%s, %s)", i.Version, i.GoVersion, i.Platform)
	if i.Build != "" {
		s += fmt.Sprintf(" build %s", i.Build)
	}

	if i.Branch != "" {
		s += fmt.Sprintf(" on %s", i.Branch)
	}

	if i.BuildTime != "" {
		s += fmt.Sprintf(" at %s", i.BuildTime)
	}

	return s
}
