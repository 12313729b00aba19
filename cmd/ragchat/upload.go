package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Add documents to the knowledge base",
	Long: `Upload one or more documents to the knowledge base.

Supported formats: pdf, docx, pptx, txt, md. Files over 20 MB are
rejected locally before any bytes are sent.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func runUpload(cmd *cobra.Command, args []string) error {
	c, _, err := getClient()
	if err != nil {
		return err
	}

	var firstErr error
	for _, path := range args {
		res, err := c.UploadFile(context.Background(), path)
		if err != nil {
			fmt.Printf("%s: %v\n", path, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		fmt.Printf("%s: %d chunk(s) indexed (%.2f MB)\n", path, res.ChunksCount, res.FileSizeMB)
	}
	return firstErr
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend availability",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := getClient()
		if err != nil {
			return err
		}
		if err := c.Health(context.Background()); err != nil {
			return err
		}
		fmt.Println("Backend is healthy:", c.BaseURL())
		return nil
	},
}
