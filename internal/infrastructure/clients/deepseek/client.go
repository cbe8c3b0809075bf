// Package deepseek calls an OpenAI-compatible chat-completions endpoint to write reports.
package deepseek

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"negocio/internal/domain/reports"
)

const DefaultURL = "https://api.deepseek.com/v1/chat/completions"

// Config for the chat-completions client.
type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// Client implements reports.TextGenerator.
type Client struct {
	httpClient *resty.Client
	url        string
}

var _ reports.TextGenerator = (*Client)(nil)

func NewClient(cfg Config) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	httpClient := resty.New().
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	return &Client{httpClient: httpClient, url: cfg.URL}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// Generate sends prompt as a single user message and returns the first choice.
func (c *Client) Generate(ctx context.Context, prompt string, params reports.Params) (string, error) {
	reqBody := completionRequest{
		Model:       params.Model,
		Messages:    []message{{Role: "user", Content: prompt}},
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
	}

	var respBody completionResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(c.url)
	if err != nil {
		return "", fmt.Errorf("chat completion call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("chat completion error %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	if len(respBody.Choices) == 0 {
		return "", fmt.Errorf("empty response from model")
	}
	return respBody.Choices[0].Message.Content, nil
}
