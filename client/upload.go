package client

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// maxUploadBytes mirrors the backend's 20 MB cap so oversized files fail
// fast instead of round-tripping.
const maxUploadBytes = 20 << 20

// supportedUploadExts are the file types the backend's parser accepts.
var supportedUploadExts = map[string]bool{
	".pdf":  true,
	".docx": true,
	".pptx": true,
	".txt":  true,
	".md":   true,
}

// UploadResult describes an accepted knowledge-base upload.
type UploadResult struct {
	Message     string   `json:"message"`
	FilePath    string   `json:"file_path"`
	IDs         []string `json:"ids"`
	FileSizeMB  float64  `json:"file_size_mb"`
	ChunksCount int      `json:"chunks_count"`
}

// UploadFile sends a document to the knowledge base as a multipart upload.
// The extension gate and size cap match the backend's own checks; file
// contents are never inspected here.
func (c *Client) UploadFile(ctx context.Context, path string) (*UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedUploadExts[ext] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() > maxUploadBytes {
		return nil, fmt.Errorf("%w: %.2f MB", ErrFileTooLarge, float64(info.Size())/(1<<20))
	}

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)
	go func() {
		part, err := form.CreateFormFile("file", filepath.Base(path))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, f); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(form.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/api/knowledge/upload"), pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp)
	}

	var out struct {
		Success bool `json:"success"`
		UploadResult
	}
	if err := decodeJSON(resp.Body, &out); err != nil {
		return nil, err
	}
	return &out.UploadResult, nil
}
