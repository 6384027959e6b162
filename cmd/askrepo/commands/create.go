package commands

import (
	"github.com/spf13/cobra"

	"github.com/askrepo/askrepo/cmd/askrepo/handlers"
)

// Create returns the command that submits a single sandbox.
//
// Optional flags override the template; flags that are not given are not
// sent at all.
func Create(opts *handlers.GlobalOptions) *cobra.Command {
	var (
		create         handlers.CreateOptions
		description    string
		instructions   string
		setup          string
		startupTask    string
		idleTimeout    int32
		inferenceModel string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a sandbox without checking for an existing one",
		Long: `Submit one sandbox to the provisioning service.

This does not check whether a sandbox with the same tags exists. Use
"askrepo ensure" for idempotent provisioning.

Examples:
  # Create a sandbox for a mention
  askrepo create --metadata '{"mention_id":"12345"}' --tag mention-12345

  # Start from a template and override the idle timeout
  askrepo create --metadata '{}' --template sandbox.yaml --idle-timeout 600`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("description") {
				create.Description = &description
			}
			if flags.Changed("instructions") {
				create.Instructions = &instructions
			}
			if flags.Changed("setup") {
				create.Setup = &setup
			}
			if flags.Changed("startup-task") {
				create.StartupTask = &startupTask
			}
			if flags.Changed("idle-timeout") {
				create.IdleTimeout = &idleTimeout
			}
			if flags.Changed("inference-model") {
				create.InferenceModel = &inferenceModel
			}
			return handlers.Create(cmd.Context(), opts, cmd.OutOrStdout(), &create)
		},
	}

	cmd.Flags().StringVar(&create.Metadata, "metadata", "", "Sandbox metadata as JSON (required)")
	cmd.Flags().StringArrayVar(&create.Tags, "tag", nil, "Tag to attach (repeatable)")
	cmd.Flags().StringArrayVar(&create.Env, "env", nil, "Environment variable KEY=VALUE (repeatable)")
	cmd.Flags().StringVarP(&create.Template, "template", "t", "", "Path to a YAML sandbox template")
	cmd.Flags().StringVar(&description, "description", "", "Sandbox description")
	cmd.Flags().StringVar(&instructions, "instructions", "", "Instructions for the agent")
	cmd.Flags().StringVar(&setup, "setup", "", "Setup script reference")
	cmd.Flags().StringVar(&startupTask, "startup-task", "", "Task to run when the sandbox starts")
	cmd.Flags().Int32Var(&idleTimeout, "idle-timeout", 0, "Idle timeout in seconds")
	cmd.Flags().StringVar(&inferenceModel, "inference-model", "", "Inference model identifier")

	_ = cmd.MarkFlagRequired("metadata")

	return cmd
}
