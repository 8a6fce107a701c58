package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/freshkart/freshkart-backend/pkg/kvstore"
)

const snippetLimit = 200

// TokenSource yields the stored auth token; empty string means logged out.
type TokenSource interface {
	Token() (string, error)
}

// TokenFunc adapts a function to the TokenSource interface.
type TokenFunc func() (string, error)

func (f TokenFunc) Token() (string, error) { return f() }

// StoredToken reads the auth token from the key/value store. A missing key
// means logged out, not an error.
func StoredToken(kv *kvstore.Store) TokenSource {
	return TokenFunc(func() (string, error) {
		token, err := kv.GetString(kvstore.KeyAuthToken)
		if errors.Is(err, kvstore.ErrNotFound) {
			return "", nil
		}
		return token, err
	})
}

// Client is the thin HTTP gateway the app core talks through. No retries:
// callers decide what a failure means for their flow.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// NewClient builds a gateway rooted at baseURL. tokens may be nil for
// anonymous-only usage.
func NewClient(baseURL string, tokens TokenSource) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("base url is required")
	}
	return &Client{
		baseURL: trimmed,
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}, nil
}

// Request performs a single API call and returns the decoded data envelope.
// requiresAuth with no stored token fails fast without touching the network.
func (c *Client) Request(ctx context.Context, endpoint, method string, body any, requiresAuth bool) (json.RawMessage, error) {
	token := ""
	if c.tokens != nil {
		stored, err := c.tokens.Token()
		if err != nil {
			return nil, &APIError{Kind: KindUnauthorized, Message: "reading stored token", cause: err}
		}
		token = stored
	}
	if requiresAuth && token == "" {
		return nil, &APIError{Kind: KindUnauthorized, Message: "authentication required"}
	}

	var reader io.Reader
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		if body != nil {
			payload, err := json.Marshal(body)
			if err != nil {
				return nil, &APIError{Kind: KindNetwork, Message: "encoding request body", cause: err}
			}
			reader = bytes.NewReader(payload)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Message: "building request", cause: err}
	}
	req.Header.Set("Accept", "application/json")
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Message: "request failed", cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Status: resp.StatusCode, Message: "reading response", cause: err}
	}

	if !isJSONResponse(resp.Header.Get("Content-Type")) {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil, &APIError{
				Kind:    KindUnexpectedResponseFormat,
				Status:  resp.StatusCode,
				Message: "expected JSON response",
				Snippet: snippet(raw),
			}
		}
		return nil, &APIError{
			Kind:    KindServer,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("server error: %d", resp.StatusCode),
			Snippet: snippet(raw),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := serverMessage(raw)
		if message == "" {
			message = fmt.Sprintf("server error: %d", resp.StatusCode)
		}
		return nil, &APIError{Kind: KindServer, Status: resp.StatusCode, Message: message}
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &APIError{Kind: KindMalformedResponse, Status: resp.StatusCode, Message: "malformed JSON response", cause: err}
	}
	if len(envelope.Data) == 0 {
		// Tolerate bare payloads from older builds without the envelope.
		return json.RawMessage(raw), nil
	}
	return envelope.Data, nil
}

func isJSONResponse(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func snippet(raw []byte) string {
	if len(raw) > snippetLimit {
		raw = raw[:snippetLimit]
	}
	return string(raw)
}

func serverMessage(raw []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return ""
	}
	if envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return envelope.Message
}
