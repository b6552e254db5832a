package gateway

import (
	"context"
	"errors"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	openai "github.com/sashabaranov/go-openai"
)

const DefaultOpenAIModel = openai.GPT3Dot5Turbo

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIGateway makes single-turn chat completion calls.
type OpenAIGateway struct {
	chat        chatCompleter
	model       string
	temperature float32
}

// NewOpenAIGateway creates a chat gateway. baseURL is optional.
func NewOpenAIGateway(apiKey, model, baseURL string, temperature float32) (*OpenAIGateway, error) {
	if apiKey == "" {
		return nil, goerr.New("OpenAI API key is required")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIGateway{
		chat:        newOpenAIClient(apiKey, baseURL),
		model:       model,
		temperature: temperature,
	}, nil
}

func newOpenAIClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

func (g *OpenAIGateway) Complete(ctx context.Context, req Request) (string, error) {
	chatReq := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: g.temperature,
	}
	if req.JSON {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := g.chat.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", inferenceError(ErrInference, err, "chat completion failed", openAIErrorValues(g.model, err)...)
	}
	if len(resp.Choices) == 0 {
		return "", inferenceError(ErrEmptyResponse, nil, "no choices in response", goerr.V("model", g.model))
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func openAIErrorValues(model string, err error) []goerr.Option {
	opts := []goerr.Option{goerr.V("provider", "openai"), goerr.V("model", model)}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		opts = append(opts, goerr.V("status", apiErr.HTTPStatusCode))
	}
	return opts
}
