package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAssistant replays statuses for successive RetrieveRun calls. Once the
// script runs out the last status repeats.
type fakeAssistant struct {
	statuses  []openai.RunStatus
	reply     string
	polls     int
	createErr error
	gotRun    openai.RunRequest
	gotMsg    openai.MessageRequest
	gotRunID  string
}

func (f *fakeAssistant) CreateThread(context.Context, openai.ThreadRequest) (openai.Thread, error) {
	if f.createErr != nil {
		return openai.Thread{}, f.createErr
	}
	return openai.Thread{ID: "thread_1"}, nil
}

func (f *fakeAssistant) CreateMessage(_ context.Context, _ string, req openai.MessageRequest) (openai.Message, error) {
	f.gotMsg = req
	return openai.Message{ID: "msg_1"}, nil
}

func (f *fakeAssistant) CreateRun(_ context.Context, _ string, req openai.RunRequest) (openai.Run, error) {
	f.gotRun = req
	return openai.Run{ID: "run_1", Status: openai.RunStatusQueued}, nil
}

func (f *fakeAssistant) RetrieveRun(context.Context, string, string) (openai.Run, error) {
	status := f.statuses[len(f.statuses)-1]
	if f.polls < len(f.statuses) {
		status = f.statuses[f.polls]
	}
	f.polls++
	return openai.Run{ID: "run_1", Status: status}, nil
}

func (f *fakeAssistant) ListMessage(_ context.Context, _ string, _ *int, _ *string, _ *string, _ *string, runID *string) (openai.MessagesList, error) {
	if runID != nil {
		f.gotRunID = *runID
	}
	return openai.MessagesList{Messages: []openai.Message{{
		Content: []openai.MessageContent{{Type: "text", Text: &openai.MessageText{Value: f.reply}}},
	}}}, nil
}

func newTestAssistant(api assistantAPI, poll PollOptions) *AssistantGateway {
	return &AssistantGateway{api: api, assistantID: "asst_1", poll: poll.withDefaults()}
}

func TestAssistantGateway_Completed(t *testing.T) {
	api := &fakeAssistant{
		statuses: []openai.RunStatus{openai.RunStatusInProgress, openai.RunStatusInProgress, openai.RunStatusCompleted},
		reply:    ` {"analysis":"ok"} `,
	}
	gw := newTestAssistant(api, PollOptions{Interval: time.Millisecond, MaxAttempts: 10, Timeout: time.Second})

	text, err := gw.Complete(context.Background(), Request{System: "be concise", Prompt: "hello"})
	require.NoError(t, err)
	assert.Equal(t, `{"analysis":"ok"}`, text)
	assert.Equal(t, 3, api.polls)
	assert.Equal(t, "asst_1", api.gotRun.AssistantID)
	assert.Equal(t, "be concise", api.gotRun.Instructions)
	assert.Equal(t, "user", api.gotMsg.Role)
	assert.Equal(t, "run_1", api.gotRunID)
}

func TestAssistantGateway_TerminalFailure(t *testing.T) {
	for _, status := range []openai.RunStatus{openai.RunStatusFailed, openai.RunStatusCancelled, openai.RunStatusExpired} {
		t.Run(string(status), func(t *testing.T) {
			api := &fakeAssistant{statuses: []openai.RunStatus{openai.RunStatusInProgress, status}}
			gw := newTestAssistant(api, PollOptions{Interval: time.Millisecond, MaxAttempts: 10, Timeout: time.Second})

			_, err := gw.Complete(context.Background(), Request{Prompt: "hello"})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrRunTerminated)
			assert.NotErrorIs(t, err, ErrTimeout)
		})
	}
}

func TestAssistantGateway_MaxAttempts(t *testing.T) {
	api := &fakeAssistant{statuses: []openai.RunStatus{openai.RunStatusInProgress}}
	gw := newTestAssistant(api, PollOptions{Interval: time.Millisecond, MaxAttempts: 5, Timeout: time.Minute})

	_, err := gw.Complete(context.Background(), Request{Prompt: "hello"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, 5, api.polls)
}

func TestAssistantGateway_Deadline(t *testing.T) {
	api := &fakeAssistant{statuses: []openai.RunStatus{openai.RunStatusInProgress}}
	gw := newTestAssistant(api, PollOptions{Interval: 5 * time.Millisecond, MaxAttempts: 1000, Timeout: 30 * time.Millisecond})

	_, err := gw.Complete(context.Background(), Request{Prompt: "hello"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestAssistantGateway_Canceled(t *testing.T) {
	api := &fakeAssistant{statuses: []openai.RunStatus{openai.RunStatusInProgress}}
	gw := newTestAssistant(api, PollOptions{Interval: time.Hour, MaxAttempts: 10, Timeout: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	_, err := gw.Complete(ctx, Request{Prompt: "hello"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInference)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestAssistantGateway_CreateThreadError(t *testing.T) {
	cause := errors.New("unauthorized")
	gw := newTestAssistant(&fakeAssistant{createErr: cause}, PollOptions{})

	_, err := gw.Complete(context.Background(), Request{Prompt: "hello"})
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrInference)
}

func TestNewAssistantGateway_Validation(t *testing.T) {
	_, err := NewAssistantGateway("", "", "asst", PollOptions{})
	assert.Error(t, err)
	_, err = NewAssistantGateway("key", "", "", PollOptions{})
	assert.Error(t, err)

	gw, err := NewAssistantGateway("key", "", "asst", PollOptions{})
	require.NoError(t, err)
	assert.Equal(t, DefaultPollInterval, gw.poll.Interval)
	assert.Equal(t, DefaultPollMaxAttempts, gw.poll.MaxAttempts)
	assert.Equal(t, DefaultPollTimeout, gw.poll.Timeout)
}
