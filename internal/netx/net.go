// Package netx holds small HTTP helpers shared by the CLI.
package netx

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
)

// DefaultContentType is sent when the file extension is not recognised.
const DefaultContentType = "application/octet-stream"

// ContentTypeFor guesses the MIME type of a file from its extension.
func ContentTypeFor(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return DefaultContentType
}

// UploadToPresignedURL PUTs body to an object-storage presigned URL.
// Any 2xx answer counts as success.
func UploadToPresignedURL(ctx context.Context, client *http.Client, url, contentType string, body io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}
