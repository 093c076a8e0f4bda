package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Per-call deadlines. Polling and reporting carry small JSON bodies; the
// screenshot upload can be a few megabytes.
const (
	pollTimeout      = 12 * time.Second
	reportTimeout    = 8 * time.Second
	heartbeatTimeout = 6 * time.Second
	uploadTimeout    = 20 * time.Second
)

// PendingCommand is one queued command as delivered by the backend.
type PendingCommand struct {
	ID        uint   `json:"id"`
	Command   string `json:"command"`
	Args      string `json:"args"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

type pollResponse struct {
	Commands []PendingCommand `json:"commands"`
}

// Client talks to the labfleet backend over HTTP/JSON. It is safe for
// concurrent use by the polling and heartbeat loops.
type Client struct {
	baseURL  string
	clientID string
	token    string
	httpc    *http.Client
}

func New(baseURL, clientID, token string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		clientID: clientID,
		token:    token,
		httpc:    &http.Client{},
	}
}

func (c *Client) ClientID() string { return c.clientID }

// FetchPending returns the agent's pending command queue, oldest first.
func (c *Client) FetchPending(ctx context.Context) ([]PendingCommand, error) {
	ctx, cancel := context.WithTimeout(ctx, pollTimeout)
	defer cancel()
	req, err := c.newRequest(ctx, http.MethodGet, "/poll-commands/"+url.PathEscape(c.clientID), "", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("poll: %w", err)
	}
	defer drain(resp)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("poll: server returned %d", resp.StatusCode)
	}
	var out pollResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("poll: decode: %w", err)
	}
	return out.Commands, nil
}

// ReportResult posts a command outcome back to the backend.
func (c *Client) ReportResult(ctx context.Context, id uint, status, result string) error {
	ctx, cancel := context.WithTimeout(ctx, reportTimeout)
	defer cancel()
	body, err := json.Marshal(map[string]any{"id": id, "status": status, "result": result})
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/poll-commands/"+url.PathEscape(c.clientID), "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	defer drain(resp)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("report: server returned %d", resp.StatusCode)
	}
	return nil
}

// Heartbeat posts a liveness ping.
func (c *Client) Heartbeat(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, heartbeatTimeout)
	defer cancel()
	req, err := c.newRequest(ctx, http.MethodPost, "/heartbeatz/"+url.PathEscape(c.clientID), "", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("heartbeat: %w", err)
	}
	defer drain(resp)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("heartbeat: server returned %d", resp.StatusCode)
	}
	return nil
}

// UploadScreenshot sends a PNG blob as a multipart form. The backend keeps
// one artifact per client, so repeat uploads overwrite.
func (c *Client) UploadScreenshot(ctx context.Context, png []byte) error {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("screenshot", "screenshot.png")
	if err != nil {
		return err
	}
	if _, err := part.Write(png); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload/"+url.PathEscape(c.clientID), mw.FormDataContentType(), &buf)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	defer drain(resp)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upload failed status=%d", resp.StatusCode)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "labfleet-agent/"+c.clientID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
