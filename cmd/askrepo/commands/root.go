// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/askrepo/askrepo/cmd/askrepo/handlers"
)

// Root returns the root command for the askrepo CLI.
func Root() *cobra.Command {
	opts := &handlers.GlobalOptions{}

	cmd := &cobra.Command{
		Use:           "askrepo",
		Short:         "Provision a TSBX sandbox for every repository question",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase log verbosity (repeatable)")
	cmd.PersistentFlags().BoolVar(&opts.JSON, "json", false, "Output in JSON format")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "", "Load environment from this file instead of .env")

	cmd.AddCommand(Exists(opts))
	cmd.AddCommand(Create(opts))
	cmd.AddCommand(Ensure(opts))
	cmd.AddCommand(Version())

	return cmd
}
