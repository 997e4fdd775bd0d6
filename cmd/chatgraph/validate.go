package main

import (
	"fmt"

	"github.com/aretw0/chatgraph/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the graph for consistency",
	Long: `Builds the graph and loads the avatar exactly as chat and serve do, then
reports unreachable nodes, sinks, silent nodes and overlapping keywords.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup(cmd)
		if err != nil {
			return err
		}
		if len(args) > 0 {
			cfg.Definition = args[0]
		}
		strict, _ := cmd.Flags().GetBool("strict")

		if err := cli.Validate(cmd.OutOrStdout(), cfg, strict); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Graph is valid!")
		return nil
	},
	Args: cobra.MaximumNArgs(1),
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("strict", false, "Treat warnings as errors")
}
