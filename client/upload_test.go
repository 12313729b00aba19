package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestUploadFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/knowledge/upload", r.URL.Path)
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "notes.md", header.Filename)
		body, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "# notes\n", string(body))
		fmt.Fprint(w, `{"success":true,"message":"stored","file_path":"uploads/notes.md","ids":["c1","c2"],"file_size_mb":0.01,"chunks_count":2}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.UploadFile(context.Background(), writeTempFile(t, "notes.md", "# notes\n"))
	require.NoError(t, err)
	assert.Equal(t, "stored", res.Message)
	assert.Equal(t, []string{"c1", "c2"}, res.IDs)
	assert.Equal(t, 2, res.ChunksCount)
}

func TestUploadFile_UnsupportedExtension(t *testing.T) {
	c := New("http://unused")
	_, err := c.UploadFile(context.Background(), writeTempFile(t, "image.png", "data"))
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestUploadFile_TooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.txt")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(maxUploadBytes+1))
	require.NoError(t, f.Close())

	c := New("http://unused")
	_, err = c.UploadFile(context.Background(), path)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestUploadFile_ServerRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		http.Error(w, `{"detail":"parser failed"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.UploadFile(context.Background(), writeTempFile(t, "doc.txt", "text"))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "parser failed", apiErr.Detail)
}
