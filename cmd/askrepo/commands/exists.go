package commands

import (
	"github.com/spf13/cobra"

	"github.com/askrepo/askrepo/cmd/askrepo/handlers"
)

// Exists returns the command that checks for a sandbox by tag.
func Exists(opts *handlers.GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exists <tag>",
		Short: "Check whether a sandbox with the given tag exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Exists(cmd.Context(), opts, cmd.OutOrStdout(), args[0])
		},
	}
}
