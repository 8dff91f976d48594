package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Uploader stores a blob with the external file store and returns its URL.
// The core keeps only the returned reference, never blob bytes.
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, blob io.Reader) (string, error)
}

// blobStoreClient posts blobs to the hosted file store's upload endpoint.
type blobStoreClient struct {
	baseURL string
	client  *http.Client
}

// NewBlobStoreClient creates an uploader over the hosted file store.
func NewBlobStoreClient(baseURL string) Uploader {
	return &blobStoreClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

func (c *blobStoreClient) Upload(ctx context.Context, filename, contentType string, blob io.Reader) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"?name="+url.QueryEscape(filename), blob)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %q: %w", filename, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("upload %q: status %d", filename, resp.StatusCode)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("upload %q: decode: %w", filename, err)
	}
	if out.URL == "" {
		return "", fmt.Errorf("upload %q: empty url in response", filename)
	}
	return out.URL, nil
}
