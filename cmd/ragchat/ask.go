package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askSessionFlag string

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question and exit",
	Long: `Ask one question, stream the answer, and exit.

The assigned session id is printed at the end so the conversation can be
continued with --session or 'chat --session'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askSessionFlag, "session", "", "Continue an existing session id")
}

func runAsk(cmd *cobra.Command, args []string) error {
	c, cfg, err := getClient()
	if err != nil {
		return err
	}
	r := newRenderer(cfg.GlamourStyle, plainFlag)

	question := strings.Join(args, " ")
	id, err := runExchange(context.Background(), c, r, question, askSessionFlag)
	if err != nil {
		return err
	}
	if id != "" {
		fmt.Println(r.Dim("Session: " + id))
	}
	return nil
}
