package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/ergochat/readline"
	"github.com/spf13/cobra"

	"github.com/tangde15/RAG-FastAPI-LangChain-Assistant/client"
)

var sessionFlag string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive chat session",
	Long: `Start an interactive chat session with the assistant.

Answers stream in as they are generated; retrieval tool activity is shown
inline where it happened. Commands:

  /new    start a fresh conversation
  /id     print the current session id
  /quit   exit (also Ctrl+D)`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&sessionFlag, "session", "", "Resume an existing session id")
}

func runChat(cmd *cobra.Command, args []string) error {
	c, cfg, err := getClient()
	if err != nil {
		return err
	}
	r := newRenderer(cfg.GlamourStyle, plainFlag)

	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt: "> ",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println(r.Dim("Connected to " + c.BaseURL() + ". Ctrl+D to exit."))

	sessionID := sessionFlag
	for {
		line, err := rl.ReadLine()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return err
			}
			return nil
		}

		question := strings.TrimSpace(line)
		switch question {
		case "":
			continue
		case "/quit":
			return nil
		case "/new":
			sessionID = ""
			fmt.Println(r.Dim("Started a new conversation."))
			continue
		case "/id":
			if sessionID == "" {
				fmt.Println(r.Dim("No session yet; ask something first."))
			} else {
				fmt.Println(sessionID)
			}
			continue
		}

		id, err := runExchange(ctx, c, r, question, sessionID)
		if err != nil {
			if errors.Is(err, client.ErrSendActive) {
				continue
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		if id != "" {
			sessionID = id
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// runExchange streams one question/answer exchange to stdout and returns
// the session id to continue with. On a transport error the partial answer
// already printed stays on screen; the error is returned for reporting.
func runExchange(ctx context.Context, c *client.Client, r *renderer, question, sessionID string) (string, error) {
	handlers := client.Handlers{
		OnChunk: func(delta string) {
			fmt.Print(delta)
		},
		OnToolStart: func(name string) {
			fmt.Println()
			fmt.Println(r.ToolStart(name))
		},
		OnToolResult: func(payload, name string) {
			fmt.Println(r.ToolCard(name, payload))
		},
	}

	res, err := c.Ask(ctx, question, sessionID, handlers)
	if res == nil {
		return "", err
	}
	fmt.Println()
	if res.Final != nil {
		fmt.Print(r.FinalSummary(*res.Final))
	}
	fmt.Println()
	return res.SessionID, err
}
