package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/chatgraph"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of chatgraph",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "chatgraph version %s\n", strings.TrimSpace(chatgraph.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
