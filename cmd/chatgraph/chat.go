package main

import (
	"github.com/aretw0/chatgraph/internal/cli"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the graph in the terminal",
	Long: `Starts an interactive conversation on stdin/stdout.
Type /reset to go back to the root, /where to see the current node and /quit to leave.
With --session the conversation is stored and can be resumed later.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		sessionID, _ := cmd.Flags().GetString("session")
		fresh, _ := cmd.Flags().GetBool("fresh")
		headless, _ := cmd.Flags().GetBool("headless")
		jsonMode, _ := cmd.Flags().GetBool("json")
		if cmd.Flags().Changed("greet") {
			app.Config.Responses.Greet, _ = cmd.Flags().GetBool("greet")
		}

		return cli.RunChat(cmd.Context(), app, cli.ChatOptions{
			SessionID: sessionID,
			Fresh:     fresh,
			Headless:  headless,
			JSON:      jsonMode,
			Input:     cmd.InOrStdin(),
			Output:    cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringP("session", "s", "", "Session ID to create or resume (default: random)")
	chatCmd.Flags().Bool("fresh", false, "Forget the stored session before starting")
	chatCmd.Flags().Bool("headless", false, "Run in headless mode (no banner, prompts or rendering)")
	chatCmd.Flags().Bool("json", false, "Read and write JSON Lines (implies --headless)")
	chatCmd.Flags().Bool("greet", false, "Open new sessions with the root's answer")

	// chat is the default command.
	rootCmd.RunE = chatCmd.RunE
	rootCmd.Flags().AddFlagSet(chatCmd.Flags())
}
