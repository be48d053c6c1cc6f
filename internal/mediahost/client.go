// Package mediahost is the HTTP client for the external media-hosting
// service. It is constructed once at startup and injected into the services
// that need it; nothing here touches global state.
package mediahost

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/learnhub/learnhub-backend/internal/config"
)

// Client talks to the media host's upload/delete API.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	log     zerolog.Logger
}

// New creates a media host client from configuration.
func New(cfg *config.Config, log zerolog.Logger) *Client {
	return &Client{
		baseURL: cfg.MediaHostURL,
		apiKey:  cfg.MediaHostAPIKey,
		httpc:   &http.Client{Timeout: 5 * time.Minute},
		log:     log.With().Str("component", "mediahost").Logger(),
	}
}

type uploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// UploadVideo streams the file at path to the media host as a video resource
// under publicID and returns the durable URL of the stored object. With
// overwrite set, an existing object under the same publicID is replaced.
func (c *Client) UploadVideo(ctx context.Context, path, publicID string, overwrite bool) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open staged file: %w", err)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		var werr error
		defer func() { pw.CloseWithError(werr) }()

		if werr = mw.WriteField("public_id", publicID); werr != nil {
			return
		}
		if werr = mw.WriteField("resource_type", "video"); werr != nil {
			return
		}
		if werr = mw.WriteField("overwrite", strconv.FormatBool(overwrite)); werr != nil {
			return
		}
		part, perr := mw.CreateFormFile("file", publicID)
		if perr != nil {
			werr = perr
			return
		}
		if _, werr = io.Copy(part, f); werr != nil {
			return
		}
		werr = mw.Close()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/videos", pr)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload video: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("upload video: media host returned %d: %s", resp.StatusCode, body)
	}

	var result uploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if result.URL == "" {
		return "", fmt.Errorf("upload video: media host returned no url")
	}

	c.log.Debug().Str("public_id", publicID).Str("url", result.URL).Msg("Video uploaded")
	return result.URL, nil
}

// DeleteVideo removes the object stored under publicID. Deleting an object
// that no longer exists is not an error.
func (c *Client) DeleteVideo(ctx context.Context, publicID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.baseURL+"/v1/videos/"+url.PathEscape(publicID), nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusNotFound:
		return nil
	default:
		return fmt.Errorf("delete video: media host returned %d", resp.StatusCode)
	}
}
