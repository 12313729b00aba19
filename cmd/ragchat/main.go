// ragchat - Terminal client for the RAG assistant backend.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tangde15/RAG-FastAPI-LangChain-Assistant/client"
)

var (
	serverFlag  string
	configFlag  string
	plainFlag   bool
	verboseFlag bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ragchat",
	Short: "Terminal client for the RAG assistant",
	Long: `ragchat - Terminal client for the RAG assistant backend.

Streams answers token by token, shows retrieval tool activity inline,
and manages stored conversations and knowledge-base documents.

Environment:
  RAGCHAT_SERVER  Backend base URL (overrides the config file)`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverFlag, "server", "s", "",
		"Backend base URL (default: from config, then http://localhost:8000)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"Config file (default: ~/.ragchat.yaml)")
	rootCmd.PersistentFlags().BoolVar(&plainFlag, "plain", false,
		"Plain output: no markdown rendering, no colors")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"Log protocol diagnostics to stderr")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(healthCmd)
}

// getClient resolves config (file, then env, then flags) and builds the
// backend client.
func getClient() (*client.Client, *Config, error) {
	cfg, err := LoadConfig(configFlag)
	if err != nil {
		return nil, nil, err
	}
	if serverFlag != "" {
		cfg.ServerURL = serverFlag
	}
	if err := client.ValidateBaseURL(cfg.ServerURL); err != nil {
		return nil, nil, err
	}

	opts := []client.Option{}
	if cfg.RecordDir != "" {
		opts = append(opts, client.WithRecordingDir(cfg.RecordDir))
	}
	if verboseFlag {
		opts = append(opts, client.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))))
	}
	return client.New(cfg.ServerURL, opts...), cfg, nil
}
