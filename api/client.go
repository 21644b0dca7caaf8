package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/DrizzleTime/foxelbot/chat/model"
)

// TokenProvider supplies the bearer token for every request. Injected so the
// client never reaches into ambient global state for credentials.
type TokenProvider interface {
	Token() (string, error)
}

// StaticToken is a TokenProvider backed by a fixed string.
type StaticToken string

func (t StaticToken) Token() (string, error) {
	return string(t), nil
}

// ErrNoToken is returned before any request is issued when no network
// identity is configured.
var ErrNoToken = fmt.Errorf("no api token configured")

type Config struct {
	BaseURL string
	Tokens  TokenProvider

	// optional, defaults to a client without a global timeout so streams
	// can run as long as the server keeps them open
	HTTPClient *http.Client
}

type Client struct {
	baseURL string
	tokens  TokenProvider
	http    *http.Client
}

func New(c Config) (*Client, error) {
	if c.BaseURL == "" {
		return nil, fmt.Errorf("server base url is required")
	}
	if c.Tokens == nil {
		return nil, fmt.Errorf("token provider is required")
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		baseURL: strings.TrimRight(c.BaseURL, "/"),
		tokens:  c.Tokens,
		http:    httpClient,
	}, nil
}

// ChatRequest is one turn of the agent protocol.
type ChatRequest struct {
	Messages            []model.Message `json:"messages"`
	AutoExecute         bool            `json:"auto_execute,omitempty"`
	ApprovedToolCallIds []string        `json:"approved_tool_call_ids,omitempty"`
	RejectedToolCallIds []string        `json:"rejected_tool_call_ids,omitempty"`
	Context             *RequestContext `json:"context,omitempty"`
}

type RequestContext struct {
	CurrentPath string `json:"current_path,omitempty"`
}

// ChatResponse is the single-shot, non-streaming reply shape.
type ChatResponse struct {
	Messages         []model.Message         `json:"messages"`
	PendingToolCalls []model.PendingToolCall `json:"pending_tool_calls"`
}

// OpenStream issues one streaming chat request and returns the raw
// event-stream body. The caller owns closing it.
func (c *Client) OpenStream(ctx context.Context, req *ChatRequest) (io.ReadCloser, error) {
	resp, err := c.post(ctx, "/api/ai/chat/stream", req, true)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Chat is the non-streaming fallback of the same protocol.
func (c *Client) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	resp, err := c.post(ctx, "/api/ai/chat", req, false)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode chat response: %w", err)
	}

	return &out, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, streaming bool) (*http.Response, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token: %w", err)
	}
	if token == "" {
		return nil, ErrNoToken
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)
	// correlates client requests with server-side logs
	httpReq.Header.Set("X-Request-Id", uuid.NewString())
	if streaming {
		httpReq.Header.Set("Accept", "text/event-stream")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer resp.Body.Close()
		return nil, readError(resp)
	}

	return resp, nil
}

// Error is a non-success response from the server.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Detail)
}

const maxErrorBodySize = 64 * 1024

// readError extracts the most specific message available: the structured
// detail field, else the raw body text, else the status line.
func readError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))

	var structured struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &structured); err == nil && len(structured.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(structured.Detail, &detail); err == nil {
			apiErr.Detail = detail
		} else {
			apiErr.Detail = string(structured.Detail)
		}
		return apiErr
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		apiErr.Detail = text
		return apiErr
	}

	apiErr.Detail = resp.Status
	return apiErr
}
