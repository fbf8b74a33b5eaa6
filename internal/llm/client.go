/**
* Name:        client.go
* Description: OpenAI chat-completions client
* Workflow:    map messages to SDK params, one attempt (no retries), return first choice
 */
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
)

var (
	ErrMissingAPIKey     = errors.New("OPENAI_API_KEY is not configured")
	ErrMalformedResponse = errors.New("malformed completion response")
)

// Message is one chat turn. Role is "system", "user" or "assistant".
type Message struct {
	Role    string
	Content string
}

// Client wraps the official SDK. It makes exactly one attempt per call.
type Client struct {
	sdk   openai.Client
	model string
}

type clientConfig struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

type Option func(*clientConfig)

func WithBaseURL(baseURL string) Option {
	return func(c *clientConfig) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

func WithModel(model string) Option {
	return func(c *clientConfig) {
		if model != "" {
			c.model = model
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) { c.httpClient = hc }
}

// NewClient fails with ErrMissingAPIKey so a missing key stops the process
// at startup instead of on the first request.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	cfg := clientConfig{baseURL: DefaultBaseURL, model: DefaultModel}
	for _, opt := range opts {
		opt(&cfg)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(strings.TrimRight(cfg.baseURL, "/") + "/"),
		option.WithMaxRetries(0),
	}
	if cfg.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(cfg.httpClient))
	}

	return &Client{sdk: openai.NewClient(reqOpts...), model: cfg.model}, nil
}

func (c *Client) Model() string {
	return c.model
}

// Complete sends messages and returns the first choice's content verbatim.
// Non-2xx answers come back as *openai.Error.
func (c *Client) Complete(ctx context.Context, messages []Message, temperature float64, maxTokens int) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)),
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(int64(maxTokens)),
	}
	for _, m := range messages {
		switch m.Role {
		case "system":
			params.Messages = append(params.Messages, openai.SystemMessage(m.Content))
		case "assistant":
			params.Messages = append(params.Messages, openai.AssistantMessage(m.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(m.Content))
		}
	}

	completion, err := c.sdk.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if completion == nil || len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrMalformedResponse)
	}
	return completion.Choices[0].Message.Content, nil
}
