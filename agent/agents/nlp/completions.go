package nlp

import (
	"context"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go"
	contractx "github.com/tanpawarit/catalog-chatbot/agent/contract"
)

// completionsSummarizer calls the chat completions endpoint directly through
// the OpenAI SDK, bypassing the eino graph.
type completionsSummarizer struct {
	client       *openaisdk.Client
	model        string
	temperature  float64
	systemPrompt string
}

func newCompletionsSummarizer(client *openaisdk.Client, model string, temperature float32, systemPrompt string) (*completionsSummarizer, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: openai client is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("%w: summarizer model is required", contractx.ErrValidation)
	}
	return &completionsSummarizer{
		client:       client,
		model:        strings.TrimSpace(model),
		temperature:  float64(temperature),
		systemPrompt: systemPrompt,
	}, nil
}

func (s *completionsSummarizer) Summarize(ctx context.Context, req contractx.SummaryRequest) (string, error) {
	if err := validateSummaryRequest(req); err != nil {
		return "", err
	}

	params := openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(s.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(s.systemPrompt),
			openaisdk.UserMessage(fmt.Sprintf("Summarize in %d to %d words:\n%s", req.MinLength, req.MaxLength, req.Text)),
		},
		MaxTokens:   openaisdk.Int(int64(maxTokens(req))),
		Temperature: openaisdk.Float(s.temperature),
	}
	if req.Deterministic {
		params.Temperature = openaisdk.Float(0)
		params.Seed = openaisdk.Int(0)
	}

	resp, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: chat completion: %v", contractx.ErrModelInvoke, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: chat completion returned no choices", contractx.ErrModelInvoke)
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", fmt.Errorf("%w: summarizer returned empty content", contractx.ErrModelInvoke)
	}
	return summary, nil
}
