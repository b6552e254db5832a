package gateway

import (
	"context"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/m-mizutani/goerr/v2"
)

const DefaultAnthropicModel = string(anthropic.ModelClaudeSonnet4_20250514)

// AnthropicMessager is the slice of the Anthropic client the gateway uses.
type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type AnthropicGateway struct {
	messages    AnthropicMessager
	model       string
	temperature float64
}

func NewAnthropicGateway(apiKey, model string, temperature float64) (*AnthropicGateway, error) {
	if apiKey == "" {
		return nil, goerr.New("Anthropic API key is required")
	}
	if model == "" {
		model = DefaultAnthropicModel
	}
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicGateway{messages: &c.Messages, model: model, temperature: temperature}, nil
}

func (a *AnthropicGateway) Complete(ctx context.Context, req Request) (string, error) {
	prompt := req.Prompt
	if req.JSON {
		prompt += "\n\nReturn only the JSON object, with no markdown or commentary."
	}

	resp, err := a.messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(a.model),
		MaxTokens:   4096,
		System:      []anthropic.TextBlockParam{{Text: req.System}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
		Temperature: anthropic.Float(a.temperature),
	})
	if err != nil {
		return "", inferenceError(ErrInference, err, "anthropic message failed",
			goerr.V("provider", "anthropic"), goerr.V("model", a.model))
	}

	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", inferenceError(ErrEmptyResponse, nil, "no text blocks in response", goerr.V("model", a.model))
	}
	return text, nil
}
