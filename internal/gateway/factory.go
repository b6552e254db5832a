package gateway

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
)

type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderGemini    Provider = "gemini"
	ProviderAnthropic Provider = "anthropic"
)

// Options selects and configures the single-turn provider.
type Options struct {
	Provider     Provider
	Model        string
	Temperature  float64
	OpenAIKey    string
	OpenAIURL    string
	GeminiKey    string
	AnthropicKey string
}

// New creates the single-turn gateway for opts.Provider. The Gemini gateway
// holds a client that callers should close (it implements io.Closer).
func New(ctx context.Context, opts Options) (Gateway, error) {
	var (
		gw  Gateway
		err error
	)
	switch opts.Provider {
	case ProviderOpenAI, "":
		gw, err = NewOpenAIGateway(opts.OpenAIKey, opts.Model, opts.OpenAIURL, float32(opts.Temperature))
	case ProviderGemini:
		gw, err = NewGeminiClient(ctx, opts.GeminiKey, opts.Model, float32(opts.Temperature))
	case ProviderAnthropic:
		gw, err = NewAnthropicGateway(opts.AnthropicKey, opts.Model, opts.Temperature)
	default:
		return nil, goerr.New("unknown LLM provider", goerr.V("provider", string(opts.Provider)))
	}
	if err != nil {
		return nil, err
	}
	return gw, nil
}
