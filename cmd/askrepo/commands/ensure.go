package commands

import (
	"github.com/spf13/cobra"

	"github.com/askrepo/askrepo/cmd/askrepo/handlers"
)

// Ensure returns the command that provisions sandboxes for mentions.
func Ensure(opts *handlers.GlobalOptions) *cobra.Command {
	var ensure handlers.EnsureOptions

	cmd := &cobra.Command{
		Use:   "ensure [mention-id...]",
		Short: "Provision a sandbox per mention unless one exists",
		Long: `Provision one sandbox per mention, tagged mention-<id>.

A mention that already has a sandbox is skipped. Transient failures are
retried with exponential backoff (see TSBX_RETRY_* variables). All mentions
are attempted; the command fails if any of them could not be provisioned.

Examples:
  # Provision for a single mention
  askrepo ensure 12345 --author octocat --text "how do I build this?"

  # Provision a batch of mention events with a template
  askrepo ensure --events mentions.json --template sandbox.yaml --concurrency 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ensure.MentionIDs = args
			return handlers.Ensure(cmd.Context(), opts, cmd.OutOrStdout(), &ensure)
		},
	}

	cmd.Flags().StringVarP(&ensure.EventsFile, "events", "e", "", "Path to a JSON array of mention events")
	cmd.Flags().StringVar(&ensure.Text, "text", "", "Mention text for ids given as arguments")
	cmd.Flags().StringVar(&ensure.Author, "author", "", "Author username for ids given as arguments")
	cmd.Flags().StringVarP(&ensure.Template, "template", "t", "", "Path to a YAML sandbox template")
	cmd.Flags().IntVarP(&ensure.Concurrency, "concurrency", "c", 4, "Maximum mentions provisioned in parallel")
	cmd.Flags().StringVar(&ensure.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file when done")

	return cmd
}
