package env

import (
	"fmt"

	zap "go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// MakeLogger builds a production logger at level, encoded as json or
// console. Logs go to stderr so they never mix with command output.
func MakeLogger(level, encoding string) (*zap.Logger, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	switch encoding {
	case "", "json":
		encoding = "json"
	case "console":
	default:
		return nil, fmt.Errorf("log encoding %q is not json or console", encoding)
	}

	logConfig := zap.NewProductionConfig()
	logConfig.Level = zap.NewAtomicLevelAt(l)
	logConfig.Encoding = encoding
	logConfig.OutputPaths = []string{"stderr"}

	return logConfig.Build()
}
