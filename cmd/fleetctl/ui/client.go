package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"labfleet/backend/app/dto"
)

// APIClient is the operator-side view of the backend: list clients, inspect a
// queue, enqueue commands. Shares the wire types with the backend package.
type APIClient struct {
	BaseURL string
	Token   string
	httpc   *http.Client
}

func NewAPIClient(baseURL, token string) *APIClient {
	return &APIClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *APIClient) ListClients() (*dto.ClientListResponse, error) {
	var out dto.ClientListResponse
	if err := c.getJSON("/clients", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) Queue(clientID string) ([]dto.QueueEntry, error) {
	var out []dto.QueueEntry
	if err := c.getJSON("/commands?client_id="+clientID, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) Enqueue(clientID, command, args string) (uint, error) {
	body, err := json.Marshal(dto.EnqueueRequest{ClientID: clientID, Command: command, Args: args})
	if err != nil {
		return 0, err
	}
	req, err := c.newRequest(http.MethodPost, "/enqueue-command", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("server returned %d", resp.StatusCode)
	}
	var out dto.EnqueueResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *APIClient) getJSON(path string, v any) error {
	req, err := c.newRequest(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func (c *APIClient) newRequest(method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return req, nil
}
