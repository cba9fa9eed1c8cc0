package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates new command instance
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Args:  cobra.NoArgs,
		Short: "Print the version number of check-rrsig-expiry",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "check-rrsig-expiry")
			fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "Build time: %s\n", buildTime)
		},
	}
}
