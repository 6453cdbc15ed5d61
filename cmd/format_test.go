package cmd

import (
	"bytes"
	"go/format"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("source tree", func() {
	It("is gofmt clean", func() {
		var unformatted []string

		err := filepath.Walk("..", func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				if path != ".." && (strings.HasPrefix(info.Name(), "_") || strings.HasPrefix(info.Name(), ".")) {
					return filepath.SkipDir
				}

				return nil
			}

			if filepath.Ext(path) != ".go" {
				return nil
			}

			src, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			formatted, err := format.Source(src)
			if err != nil {
				return err
			}

			if !bytes.Equal(src, formatted) {
				unformatted = append(unformatted, path)
			}

			return nil
		})

		Expect(err).To(Succeed())
		Expect(unformatted).To(BeEmpty())
	})
})
