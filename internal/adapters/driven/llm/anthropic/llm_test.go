package anthropic

import (
	"context"
	"errors"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
)

type fakeMessenger struct {
	resp   *anthropic.Message
	err    error
	params anthropic.MessageNewParams
}

func (f *fakeMessenger) New(_ context.Context, body anthropic.MessageNewParams,
	_ ...option.RequestOption) (*anthropic.Message, error) {
	f.params = body
	return f.resp, f.err
}

func TestNewLLMService(t *testing.T) {
	_, err := NewLLMService(Config{})
	assert.Error(t, err)

	s, err := NewLLMService(Config{APIKey: "sk-ant"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, s.ModelName())
	assert.NoError(t, s.Close())
}

func TestGenerate(t *testing.T) {
	fake := &fakeMessenger{resp: &anthropic.Message{
		Content: []anthropic.ContentBlockUnion{
			{Type: "text", Text: "Strong Go "},
			{Type: "thinking"},
			{Type: "text", Text: "background."},
		},
	}}
	s := &LLMService{messages: fake, model: "claude-test"}

	out, err := s.Generate(context.Background(), "explain", driven.GenerateOptions{
		StopWords: []string{"END"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Strong Go background.", out)
	assert.Equal(t, int64(DefaultMaxTokens), fake.params.MaxTokens)
	assert.Equal(t, []string{"END"}, fake.params.StopSequences)
	assert.Equal(t, anthropic.Model("claude-test"), fake.params.Model)
}

func TestGenerate_Errors(t *testing.T) {
	s := &LLMService{messages: &fakeMessenger{err: errors.New("overloaded")}, model: "m"}
	_, err := s.Generate(context.Background(), "p", driven.GenerateOptions{MaxTokens: 10})
	assert.ErrorContains(t, err, "overloaded")

	s = &LLMService{messages: &fakeMessenger{}, model: "m"}
	_, err = s.Generate(context.Background(), "p", driven.GenerateOptions{})
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	s := &LLMService{ping: func(context.Context) error { return nil }}
	assert.NoError(t, s.Ping(context.Background()))

	s.ping = func(context.Context) error { return errors.New("401") }
	assert.Error(t, s.Ping(context.Background()))
}
