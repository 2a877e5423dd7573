package nlp

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	contractx "github.com/tanpawarit/catalog-chatbot/agent/contract"
)

type recognizerImpl struct {
	runner compose.Runnable[map[string]any, recognizerLLMOutput]
}

type recognizerLLMOutput struct {
	Entities []recognizedEntity `json:"entities"`
}

type recognizedEntity struct {
	Word   string `json:"word"`
	Entity string `json:"entity"`
}

func newRecognizer(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*recognizerImpl, error) {
	runner, err := compileRecognizerGraph(ctx, chatModel, systemPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: compile recognizer graph: %v", contractx.ErrModelInvoke, err)
	}
	return &recognizerImpl{runner: runner}, nil
}

// Recognize tags the organizations, brands and products named in text.
// Entities with labels outside the three known tags are dropped.
func (r *recognizerImpl) Recognize(ctx context.Context, text string) ([]contractx.Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", contractx.ErrValidation)
	}

	out, err := r.runner.Invoke(ctx, map[string]any{
		"input": text,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: recognizer invoke: %v", contractx.ErrModelInvoke, err)
	}

	entities := make([]contractx.Entity, 0, len(out.Entities))
	for _, e := range out.Entities {
		word := strings.TrimSpace(e.Word)
		label := normalizeLabel(e.Entity)
		if word == "" || label == "" {
			continue
		}
		entities = append(entities, contractx.Entity{Word: word, Label: label})
	}
	return entities, nil
}

func normalizeLabel(raw string) string {
	label := strings.ToUpper(strings.TrimSpace(raw))
	switch label {
	case contractx.LabelOrganization, "ORG":
		return contractx.LabelOrganization
	case contractx.LabelMiscellaneous, "MISC":
		return contractx.LabelMiscellaneous
	case contractx.LabelProduct, "PRODUCT":
		return contractx.LabelProduct
	default:
		return ""
	}
}
