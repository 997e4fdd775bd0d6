package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/chatgraph/internal/cli"
	"github.com/aretw0/chatgraph/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chatgraph",
	Short: "chatgraph is a keyword-driven conversational graph engine",
	Long: `chatgraph answers user messages by walking a graph of canned answers.
Edges carry keywords; the agent follows the edge whose keywords best match
the message (exactly, or within a small edit distance) and replies with an
answer of the node it lands on.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Config file (default ./"+config.DefaultFile+" when present)")
	flags.StringP("definition", "d", "", "Graph definition file")
	flags.String("avatar", "", "Avatar image file")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: text or json")
	flags.String("store", "", "Session store: memory, file, redis or sqlite")
	flags.String("store-path", "", "Directory of the file store")
	flags.String("store-dsn", "", "SQLite database path")
	flags.String("redis-addr", "", "Redis address for the redis store")
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	overrides := map[string]*string{
		"definition": &cfg.Definition,
		"avatar":     &cfg.Avatar,
		"log-level":  &cfg.Log.Level,
		"log-format": &cfg.Log.Format,
		"store":      &cfg.Store.Driver,
		"store-path": &cfg.Store.Path,
		"store-dsn":  &cfg.Store.DSN,
		"redis-addr": &cfg.Store.Redis.Addr,
	}
	for name, dst := range overrides {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// setup loads the config and builds the logger.
func setup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := cli.NewLogger(cfg.Log)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

// newApp wires the runtime for commands that hold conversations.
func newApp(cmd *cobra.Command) (*cli.App, error) {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return nil, err
	}
	return cli.NewApp(cmd.Context(), cfg, logger)
}
