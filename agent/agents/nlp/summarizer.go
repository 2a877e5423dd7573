package nlp

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	contractx "github.com/tanpawarit/catalog-chatbot/agent/contract"
)

type summarizerImpl struct {
	runner compose.Runnable[map[string]any, string]
}

func newSummarizer(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*summarizerImpl, error) {
	runner, err := compileSummarizerGraph(ctx, chatModel, systemPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: compile summarizer graph: %v", contractx.ErrModelInvoke, err)
	}
	return &summarizerImpl{runner: runner}, nil
}

func (s *summarizerImpl) Summarize(ctx context.Context, req contractx.SummaryRequest) (string, error) {
	if err := validateSummaryRequest(req); err != nil {
		return "", err
	}

	modelOpts := []einomodel.Option{einomodel.WithMaxTokens(maxTokens(req))}
	if req.Deterministic {
		modelOpts = append(modelOpts, einomodel.WithTemperature(0))
	}

	out, err := s.runner.Invoke(ctx, map[string]any{
		"input":      req.Text,
		"min_length": req.MinLength,
		"max_length": req.MaxLength,
	}, compose.WithChatModelOption(modelOpts...))
	if err != nil {
		return "", fmt.Errorf("%w: summarizer invoke: %v", contractx.ErrModelInvoke, err)
	}

	summary := strings.TrimSpace(out)
	if summary == "" {
		return "", fmt.Errorf("%w: summarizer returned empty content", contractx.ErrModelInvoke)
	}
	return summary, nil
}

func validateSummaryRequest(req contractx.SummaryRequest) error {
	if strings.TrimSpace(req.Text) == "" {
		return fmt.Errorf("%w: summary text is required", contractx.ErrValidation)
	}
	if req.MinLength < 0 || req.MaxLength <= 0 || req.MinLength > req.MaxLength {
		return fmt.Errorf("%w: invalid summary bounds min=%d max=%d", contractx.ErrValidation, req.MinLength, req.MaxLength)
	}
	return nil
}

// maxTokens converts the word bound into a token budget.
func maxTokens(req contractx.SummaryRequest) int {
	return req.MaxLength * 2
}
