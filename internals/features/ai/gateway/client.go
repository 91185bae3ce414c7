// file: internals/features/ai/gateway/client.go
//
// Gateway to the chat-completions provider. Every public entry point
// degrades to a deterministic fallback instead of surfacing transport
// errors to callers; ErrExternalService stays inside this package and the
// analytics fallback path.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	"schoolhub_backend/internals/configs"
)

var ErrExternalService = errors.New("ai gateway: external service failure")

type Config struct {
	APIURL     string
	APIKey     string
	Model      string
	TimeoutSec int
}

func ConfigFromEnv() Config {
	return Config{
		APIURL:     configs.AIAPIURL,
		APIKey:     configs.AIAPIKey,
		Model:      configs.AIModel,
		TimeoutSec: configs.AITimeoutSec,
	}
}

type Client struct {
	cfg  Config
	http *resty.Client
}

func NewClient(cfg Config) *Client {
	if cfg.TimeoutSec <= 0 {
		cfg.TimeoutSec = 30
	}
	rc := resty.New().
		SetTimeout(time.Duration(cfg.TimeoutSec) * time.Second).
		SetRetryCount(1).
		SetHeader("Content-Type", "application/json")
	return &Client{cfg: cfg, http: rc}
}

func NewClientFromEnv() *Client { return NewClient(ConfigFromEnv()) }

// Configured reports whether an API key is present. Unconfigured clients
// always serve fallbacks.
func (c *Client) Configured() bool { return c.cfg.APIKey != "" }

func (c *Client) Model() string { return c.cfg.Model }

/* ==============================
   Chat completions wire types
============================== */

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete runs one chat-completions round trip and returns the completion
// text.
func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("%w: API key not configured", ErrExternalService)
	}

	var out chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.cfg.APIKey).
		SetBody(chatRequest{
			Model: c.cfg.Model,
			Messages: []chatMessage{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: userPrompt},
			},
			Temperature: 0.3,
			MaxTokens:   3000,
		}).
		SetResult(&out).
		Post(c.cfg.APIURL)
	if err != nil {
		log.Printf("[AI] request failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		log.Printf("[AI] provider returned %d", resp.StatusCode())
		return "", fmt.Errorf("%w: provider status %d", ErrExternalService, resp.StatusCode())
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", ErrExternalService)
	}
	return out.Choices[0].Message.Content, nil
}
