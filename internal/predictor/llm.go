package predictor

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// LLM abstracts the chat-completion dependency so the predictor can run
// with a deterministic fallback when no key is configured.
type LLM interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// OpenAILLM backs the predictor with the OpenAI chat API.
type OpenAILLM struct {
	client *openai.Client
	model  string
}

func NewOpenAILLM(apiKey, model string) *OpenAILLM {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAILLM{client: openai.NewClient(apiKey), model: model}
}

func (o *OpenAILLM) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("llm: empty completion")
	}
	return resp.Choices[0].Message.Content, nil
}
