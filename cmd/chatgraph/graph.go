package main

import (
	"errors"

	"github.com/aretw0/chatgraph/internal/cli"
	"github.com/aretw0/chatgraph/internal/presentation/graph"
	"github.com/aretw0/chatgraph/pkg/domain"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the conversation graph",
	Long: `Prints the graph as a Mermaid flowchart (default), as JSON, or re-encoded
in the definition format. With --session the session's current node is
highlighted in the Mermaid output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		if len(args) > 0 {
			cfg.Definition = args[0]
		}
		format, _ := cmd.Flags().GetString("format")
		sessionID, _ := cmd.Flags().GetString("session")

		var overlay *graph.GraphOverlay
		if sessionID != "" {
			app, err := cli.NewApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer app.Close()

			snap, err := app.Manager.Load(cmd.Context(), sessionID)
			if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
				return err
			}
			if snap != nil {
				current := snap.NodeID
				overlay = &graph.GraphOverlay{CurrentNode: &current}
			}
		}
		return cli.ExportGraph(cmd.OutOrStdout(), cfg, format, overlay)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("format", "f", cli.FormatMermaid, "Output format: mermaid, json or definition")
	graphCmd.Flags().StringP("session", "s", "", "Highlight the current node of this session")
}
