package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time via -ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print LifeHub version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("LifeHub %s (%s)\n", version, commit)
		},
	}
}
