// Package gateway wraps every call to the hosted language model.
// Nothing else in the module talks to a model provider.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/BerylCAtieno/career-risk-agent/internal/logging"
)

// Request is a single system + user prompt exchange.
type Request struct {
	System string
	Prompt string
	// JSON asks the provider for a JSON object response when it supports it.
	JSON bool
}

// Gateway sends one request to a model and returns the reply text.
type Gateway interface {
	Complete(ctx context.Context, req Request) (string, error)
}

var (
	// ErrInference is wrapped by every model-call failure.
	ErrInference         = errors.New("inference failed")
	ErrMalformedResponse = fmt.Errorf("%w: malformed model response", ErrInference)
	ErrEmptyResponse     = fmt.Errorf("%w: empty model response", ErrInference)
	ErrRunTerminated     = fmt.Errorf("%w: assistant run terminated", ErrInference)
	ErrTimeout           = fmt.Errorf("%w: assistant run timed out", ErrInference)
)

func inferenceError(kind, cause error, msg string, opts ...goerr.Option) error {
	if cause != nil {
		kind = fmt.Errorf("%w: %w", kind, cause)
	}
	return goerr.Wrap(kind, msg, opts...)
}

// CompleteJSON sends req in JSON mode and decodes the reply into out.
func CompleteJSON(ctx context.Context, gw Gateway, req Request, out any) error {
	req.JSON = true
	text, err := gw.Complete(ctx, req)
	if err != nil {
		return err
	}

	clean := CleanJSONBlock(text)
	if clean == "" {
		return inferenceError(ErrEmptyResponse, nil, "model returned no JSON")
	}
	if err := json.Unmarshal([]byte(clean), out); err != nil {
		return inferenceError(ErrMalformedResponse, err, "failed to parse model JSON",
			goerr.V("response_chars", len(clean)))
	}
	return nil
}

// CleanJSONBlock removes markdown code fences models wrap around JSON.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	// drop a language tag such as "json" on the fence line
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(text[:idx])
		if len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// Logged decorates gw with start/success/failure logging.
func Logged(gw Gateway, name string) Gateway {
	return &loggedGateway{next: gw, name: name}
}

type loggedGateway struct {
	next Gateway
	name string
}

func (l *loggedGateway) Complete(ctx context.Context, req Request) (string, error) {
	logger := logging.From(ctx).With(slog.String("gateway", l.name))
	start := time.Now()
	logger.Debug("model call start", "json", req.JSON, "prompt_chars", len(req.Prompt))

	text, err := l.next.Complete(ctx, req)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		logger.Warn("model call failed", "elapsed_ms", elapsed, "error", err.Error())
		return "", err
	}
	logger.Info("model call success", "elapsed_ms", elapsed, "response_chars", len(text))
	return text, nil
}
