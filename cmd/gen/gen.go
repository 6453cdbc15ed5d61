package gen

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate documentation for minicoap",
	Long:  `Generate documentation for minicoap`,
}

func init() {
	RootCmd.AddCommand(ManPagesCmd)
}
