package gateway

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/BerylCAtieno/career-risk-agent/internal/logging"
)

const (
	DefaultPollInterval    = time.Second
	DefaultPollMaxAttempts = 60
	DefaultPollTimeout     = 90 * time.Second
)

type assistantAPI interface {
	CreateThread(ctx context.Context, request openai.ThreadRequest) (openai.Thread, error)
	CreateMessage(ctx context.Context, threadID string, request openai.MessageRequest) (openai.Message, error)
	CreateRun(ctx context.Context, threadID string, request openai.RunRequest) (openai.Run, error)
	RetrieveRun(ctx context.Context, threadID string, runID string) (openai.Run, error)
	ListMessage(ctx context.Context, threadID string, limit *int, order *string, after *string, before *string, runID *string) (openai.MessagesList, error)
}

// PollOptions bounds how long an assistant run may be waited on.
type PollOptions struct {
	Interval    time.Duration
	MaxAttempts int
	Timeout     time.Duration
}

func (o PollOptions) withDefaults() PollOptions {
	if o.Interval <= 0 {
		o.Interval = DefaultPollInterval
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultPollMaxAttempts
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultPollTimeout
	}
	return o
}

// AssistantGateway runs a prompt through an OpenAI assistant: it creates a
// thread, posts the prompt, starts a run and polls it to a terminal state.
type AssistantGateway struct {
	api         assistantAPI
	assistantID string
	poll        PollOptions
}

func NewAssistantGateway(apiKey, baseURL, assistantID string, poll PollOptions) (*AssistantGateway, error) {
	if apiKey == "" {
		return nil, goerr.New("OpenAI API key is required")
	}
	if assistantID == "" {
		return nil, goerr.New("assistant ID is required")
	}
	return &AssistantGateway{
		api:         newOpenAIClient(apiKey, baseURL),
		assistantID: assistantID,
		poll:        poll.withDefaults(),
	}, nil
}

func (a *AssistantGateway) Complete(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.poll.Timeout)
	defer cancel()

	prompt := req.Prompt
	if req.JSON {
		prompt += "\n\nRespond with a single JSON object only."
	}

	thread, err := a.api.CreateThread(ctx, openai.ThreadRequest{})
	if err != nil {
		return "", inferenceError(ErrInference, err, "failed to create thread", goerr.V("provider", "openai-assistant"))
	}
	if _, err := a.api.CreateMessage(ctx, thread.ID, openai.MessageRequest{Role: "user", Content: prompt}); err != nil {
		return "", inferenceError(ErrInference, err, "failed to post message", goerr.V("thread_id", thread.ID))
	}

	run, err := a.api.CreateRun(ctx, thread.ID, openai.RunRequest{
		AssistantID:  a.assistantID,
		Instructions: req.System,
	})
	if err != nil {
		return "", inferenceError(ErrInference, err, "failed to start run", goerr.V("thread_id", thread.ID))
	}

	run, err = a.waitForRun(ctx, thread.ID, run)
	if err != nil {
		return "", err
	}
	return a.lastReply(ctx, thread.ID, run.ID)
}

func (a *AssistantGateway) waitForRun(ctx context.Context, threadID string, run openai.Run) (openai.Run, error) {
	ticker := time.NewTicker(a.poll.Interval)
	defer ticker.Stop()

	logger := logging.From(ctx)
	for attempt := 0; ; attempt++ {
		switch run.Status {
		case openai.RunStatusCompleted:
			return run, nil
		case openai.RunStatusFailed, openai.RunStatusCancelled, openai.RunStatusExpired:
			return run, inferenceError(ErrRunTerminated, nil, "run ended without completing",
				goerr.V("thread_id", threadID), goerr.V("run_id", run.ID), goerr.V("status", string(run.Status)))
		}

		if attempt >= a.poll.MaxAttempts {
			return run, inferenceError(ErrTimeout, nil, "run did not finish within poll budget",
				goerr.V("run_id", run.ID), goerr.V("attempts", attempt), goerr.V("status", string(run.Status)))
		}

		select {
		case <-ctx.Done():
			return run, a.contextError(ctx, run)
		case <-ticker.C:
		}

		next, err := a.api.RetrieveRun(ctx, threadID, run.ID)
		if err != nil {
			if ctx.Err() != nil {
				return run, a.contextError(ctx, run)
			}
			return run, inferenceError(ErrInference, err, "failed to retrieve run", goerr.V("run_id", run.ID))
		}
		run = next
		logger.Debug("assistant run polled", "run_id", run.ID, "status", string(run.Status), "attempt", attempt+1)
	}
}

func (a *AssistantGateway) contextError(ctx context.Context, run openai.Run) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return inferenceError(ErrTimeout, nil, "run exceeded poll timeout",
			goerr.V("run_id", run.ID), goerr.V("timeout", a.poll.Timeout.String()))
	}
	return inferenceError(ErrInference, ctx.Err(), "run polling canceled", goerr.V("run_id", run.ID))
}

func (a *AssistantGateway) lastReply(ctx context.Context, threadID, runID string) (string, error) {
	limit := 1
	order := "desc"
	list, err := a.api.ListMessage(ctx, threadID, &limit, &order, nil, nil, &runID)
	if err != nil {
		return "", inferenceError(ErrInference, err, "failed to list messages", goerr.V("thread_id", threadID))
	}
	if len(list.Messages) == 0 {
		return "", inferenceError(ErrEmptyResponse, nil, "run produced no messages", goerr.V("run_id", runID))
	}

	for _, content := range list.Messages[0].Content {
		if content.Type == "text" && content.Text != nil {
			return strings.TrimSpace(content.Text.Value), nil
		}
	}
	return "", inferenceError(ErrMalformedResponse, nil, "expected text response from assistant", goerr.V("run_id", runID))
}
