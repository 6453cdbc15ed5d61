package gen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/luma/minicoap/internal/meta"
)

var (
	manDir string
)

var ManPagesCmd = &cobra.Command{
	Use:   "man",
	Short: "Generate man pages for minicoap",
	Long: `Write a section 1 man page for minicoap and for each of its
commands. Pages go to the --dir directory, man/ by default, which is
created if needed.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		header := &doc.GenManHeader{
			Section: "1",
			Manual:  "minicoap Manual",
			Source:  fmt.Sprintf("minicoap %s", meta.Version),
		}

		if err := os.MkdirAll(manDir, 0750); err != nil {
			return err
		}

		cmd.Root().DisableAutoGenTag = true

		if err := doc.GenManTree(cmd.Root(), header, manDir); err != nil {
			return fmt.Errorf("writing man pages to %s: %w", manDir, err)
		}

		fmt.Fprintln(out, "Wrote man pages to", filepath.Clean(manDir))

		return nil
	},
}

func init() {
	flags := ManPagesCmd.PersistentFlags()

	flags.StringVar(&manDir, "dir", "man/", "the directory to write the man pages.")

	// For bash-completion
	if err := flags.SetAnnotation("dir", cobra.BashCompSubdirsInDir, []string{}); err != nil {
		panic(err)
	}
}
