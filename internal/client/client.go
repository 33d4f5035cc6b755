package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"shui/internal/domain"
)

// Client habla con la API de mensajes. Cualquier respuesta que no sea 2xx es un error.
type Client struct {
	baseURL string
	client  *http.Client
}

// New construye un cliente apuntando a baseURL. Si httpClient es nil se usa http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
	}
}

// APIError describe una respuesta no exitosa de la API.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Message)
}

func (c *Client) GetMessages(ctx context.Context) ([]domain.Message, error) {
	var out []domain.Message
	err := c.do(ctx, "get messages", http.MethodGet, "/messages", nil, &out)
	return out, err
}

func (c *Client) CreateMessage(ctx context.Context, username, text string) (domain.Message, error) {
	var out domain.Message
	body := map[string]string{"username": username, "text": text}
	err := c.do(ctx, "create message", http.MethodPost, "/messages", body, &out)
	return out, err
}

func (c *Client) UpdateMessage(ctx context.Context, id, text string) (domain.Message, error) {
	var out domain.Message
	body := map[string]string{"text": text}
	err := c.do(ctx, "update message", http.MethodPut, "/messages/"+url.PathEscape(id), body, &out)
	return out, err
}

func (c *Client) GetMessagesByUser(ctx context.Context, username string) ([]domain.Message, error) {
	var out []domain.Message
	err := c.do(ctx, "get messages by user", http.MethodGet, "/messages/"+url.PathEscape(username), nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, op, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(data, &apiErr)
		return &APIError{Op: op, StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
