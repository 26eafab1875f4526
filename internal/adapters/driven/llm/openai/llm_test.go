package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
)

type fakeCompleter struct {
	resp   *openai.ChatCompletion
	err    error
	params openai.ChatCompletionNewParams
}

func (f *fakeCompleter) New(_ context.Context, body openai.ChatCompletionNewParams,
	_ ...option.RequestOption) (*openai.ChatCompletion, error) {
	f.params = body
	return f.resp, f.err
}

func completion(text string) *openai.ChatCompletion {
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{Content: text},
		}},
	}
}

func TestNewLLMService(t *testing.T) {
	_, err := NewLLMService(LLMConfig{})
	assert.Error(t, err)

	s, err := NewLLMService(LLMConfig{APIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, DefaultLLMModel, s.ModelName())
	assert.NoError(t, s.Close())
}

func TestGenerate(t *testing.T) {
	fake := &fakeCompleter{resp: completion("  A solid candidate. ")}
	s := &LLMService{completions: fake, model: "gpt-4o-mini"}

	out, err := s.Generate(context.Background(), "explain", driven.GenerateOptions{MaxTokens: 200, Temperature: 0.3})
	require.NoError(t, err)
	assert.Equal(t, "A solid candidate.", out)
	assert.Equal(t, "gpt-4o-mini", string(fake.params.Model))
	assert.Len(t, fake.params.Messages, 1)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name string
		fake *fakeCompleter
	}{
		{"api error", &fakeCompleter{err: errors.New("401")}},
		{"no choices", &fakeCompleter{resp: &openai.ChatCompletion{}}},
		{"nil response", &fakeCompleter{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &LLMService{completions: tt.fake, model: "m"}
			_, err := s.Generate(context.Background(), "p", driven.GenerateOptions{})
			assert.Error(t, err)
		})
	}
}

func TestPing(t *testing.T) {
	s := &LLMService{ping: func(context.Context) error { return nil }}
	assert.NoError(t, s.Ping(context.Background()))

	s.ping = func(context.Context) error { return errors.New("bad key") }
	assert.ErrorContains(t, s.Ping(context.Background()), "bad key")
}
