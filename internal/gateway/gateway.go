// Package gateway sends a conversation to the hosted model and returns its reply text.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog/log"

	"claudechat-backend/internal/models"
)

// ErrRequestFailed is the only error a caller ever sees.
// Network, authentication and malformed-response failures all collapse into it.
var ErrRequestFailed = errors.New("request failed")

const (
	DefaultModel     = "claude-2.1"
	DefaultMaxTokens = 1000
)

// ResponseGateway turns an ordered history into reply text.
type ResponseGateway interface {
	Send(ctx context.Context, history []models.Message) (string, error)
}

// KeySource returns the API credential. It is called once per request.
type KeySource func() string

// Config configures an AnthropicGateway.
type Config struct {
	Model     string
	MaxTokens int64
	// BaseURL overrides the API endpoint. Empty means the SDK default.
	BaseURL    string
	HTTPClient *http.Client
}

// AnthropicGateway issues one blocking Messages API call per Send. It never retries.
type AnthropicGateway struct {
	cfg    Config
	apiKey KeySource
}

// Compile-time check to ensure AnthropicGateway implements ResponseGateway
var _ ResponseGateway = (*AnthropicGateway)(nil)

// NewAnthropicGateway creates a gateway. Zero-valued config fields take the defaults.
func NewAnthropicGateway(cfg Config, apiKey KeySource) *AnthropicGateway {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	return &AnthropicGateway{cfg: cfg, apiKey: apiKey}
}

// Send sends the full history and concatenates every text fragment of the reply in order.
// Any failure is logged and reported as ErrRequestFailed.
func (g *AnthropicGateway) Send(ctx context.Context, history []models.Message) (string, error) {
	text, err := g.send(ctx, history)
	if err != nil {
		log.Error().Err(err).Str("component", "gateway").Str("model", g.cfg.Model).Int("history_len", len(history)).Msg("model request failed")
		return "", ErrRequestFailed
	}
	return text, nil
}

func (g *AnthropicGateway) send(ctx context.Context, history []models.Message) (string, error) {
	if len(history) == 0 {
		return "", errors.New("history is empty")
	}

	client := anthropic.NewClient(g.requestOptions()...)

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.cfg.Model),
		MaxTokens: g.cfg.MaxTokens,
		Messages:  toMessageParams(history),
	})
	if err != nil {
		return "", fmt.Errorf("messages api call: %w", err)
	}

	var sb strings.Builder
	textBlocks := 0
	for _, block := range resp.Content {
		if block.Type != "text" {
			continue
		}
		textBlocks++
		sb.WriteString(block.Text)
	}
	if textBlocks == 0 {
		return "", fmt.Errorf("response %s has no text content (%d blocks)", resp.ID, len(resp.Content))
	}
	return sb.String(), nil
}

func (g *AnthropicGateway) requestOptions() []option.RequestOption {
	key := ""
	if g.apiKey != nil {
		key = g.apiKey()
	}
	opts := []option.RequestOption{
		option.WithAPIKey(key),
		option.WithMaxRetries(0),
	}
	if g.cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(g.cfg.BaseURL))
	}
	if g.cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(g.cfg.HTTPClient))
	}
	return opts
}

func toMessageParams(history []models.Message) []anthropic.MessageParam {
	params := make([]anthropic.MessageParam, 0, len(history))
	for _, m := range history {
		block := anthropic.NewTextBlock(m.Text)
		if m.Role() == "user" {
			params = append(params, anthropic.NewUserMessage(block))
		} else {
			params = append(params, anthropic.NewAssistantMessage(block))
		}
	}
	return params
}
