package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tangde15/RAG-FastAPI-LangChain-Assistant/client"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse stored conversations",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored conversations, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := getClient()
		if err != nil {
			return err
		}
		exchanges, err := c.Conversations(context.Background())
		if err != nil {
			return err
		}
		summaries := client.Summaries(exchanges)
		if len(summaries) == 0 {
			fmt.Println("No stored conversations.")
			return nil
		}
		r := newRenderer("", plainFlag)
		fmt.Print(r.HistoryTable(summaries))
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Replay one stored conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cfg, err := getClient()
		if err != nil {
			return err
		}
		exchanges, err := c.SessionExchanges(context.Background(), args[0])
		if err != nil {
			return err
		}
		if len(exchanges) == 0 {
			fmt.Println("No exchanges stored for this session.")
			return nil
		}
		r := newRenderer(cfg.GlamourStyle, plainFlag)
		fmt.Print(r.Transcript(client.ToTranscript(exchanges)))
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete one stored conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := getClient()
		if err != nil {
			return err
		}
		n, err := c.DeleteSession(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d exchange(s).\n", n)
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
}
