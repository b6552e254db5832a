package gateway

import (
	"context"
	"errors"
	"strings"
	"testing"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessager struct {
	msg *anthropic.Message
	err error
	got anthropic.MessageNewParams
}

func (f *fakeMessager) New(_ context.Context, params anthropic.MessageNewParams, _ ...option.RequestOption) (*anthropic.Message, error) {
	f.got = params
	return f.msg, f.err
}

func textBlocks(blocks ...anthropic.ContentBlockUnion) *anthropic.Message {
	return &anthropic.Message{Content: blocks}
}

func userText(t *testing.T, params anthropic.MessageNewParams) string {
	t.Helper()
	require.Len(t, params.Messages, 1)
	require.Len(t, params.Messages[0].Content, 1)
	require.NotNil(t, params.Messages[0].Content[0].OfText)
	return params.Messages[0].Content[0].OfText.Text
}

func TestAnthropicGateway_JoinsTextBlocks(t *testing.T) {
	m := &fakeMessager{msg: textBlocks(
		anthropic.ContentBlockUnion{Type: "text", Text: "  Automation is "},
		anthropic.ContentBlockUnion{Type: "thinking", Text: "ignored"},
		anthropic.ContentBlockUnion{Type: "text", Text: "reshaping audit work. "},
	)}
	gw := &AnthropicGateway{messages: m, model: "claude-test", temperature: 0.7}

	text, err := gw.Complete(context.Background(), Request{System: "sys", Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "Automation is reshaping audit work.", text)

	require.Len(t, m.got.System, 1)
	assert.Equal(t, "sys", m.got.System[0].Text)
	assert.Equal(t, anthropic.Model("claude-test"), m.got.Model)
	assert.Equal(t, "p", userText(t, m.got))
}

func TestAnthropicGateway_JSONMode(t *testing.T) {
	m := &fakeMessager{msg: textBlocks(anthropic.ContentBlockUnion{Type: "text", Text: `{"a":1}`})}
	gw := &AnthropicGateway{messages: m, model: "claude-test"}

	text, err := gw.Complete(context.Background(), Request{System: "sys", Prompt: "p", JSON: true})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, text)

	prompt := userText(t, m.got)
	assert.True(t, strings.HasPrefix(prompt, "p\n\n"))
	assert.Contains(t, prompt, "Return only the JSON object")
}

func TestAnthropicGateway_Errors(t *testing.T) {
	m := &fakeMessager{err: errors.New("boom")}
	gw := &AnthropicGateway{messages: m, model: "claude-test"}

	_, err := gw.Complete(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrInference)
	assert.NotErrorIs(t, err, ErrEmptyResponse)

	for name, msg := range map[string]*anthropic.Message{
		"no blocks":       {},
		"whitespace text": textBlocks(anthropic.ContentBlockUnion{Type: "text", Text: "  \n"}),
		"no text blocks":  textBlocks(anthropic.ContentBlockUnion{Type: "tool_use"}),
	} {
		t.Run(name, func(t *testing.T) {
			m.err, m.msg = nil, msg
			_, err := gw.Complete(context.Background(), Request{})
			assert.ErrorIs(t, err, ErrEmptyResponse)
		})
	}
}

func TestNewAnthropicGateway(t *testing.T) {
	_, err := NewAnthropicGateway("", "", 0.7)
	assert.Error(t, err)

	gw, err := NewAnthropicGateway("sk-ant-test", "", 0.7)
	require.NoError(t, err)
	assert.Equal(t, DefaultAnthropicModel, gw.model)
}
