package nlp

import (
	"context"
	"fmt"

	cachex "github.com/tanpawarit/catalog-chatbot/agent/cache"
	contractx "github.com/tanpawarit/catalog-chatbot/agent/contract"
	llmx "github.com/tanpawarit/catalog-chatbot/agent/llm"
	promptx "github.com/tanpawarit/catalog-chatbot/agent/prompt"
	openrouterx "github.com/tanpawarit/catalog-chatbot/pkg/openrouter"
)

type registryImpl struct {
	recognizer contractx.EntityRecognizer
	summarizer contractx.Summarizer
}

func (r *registryImpl) Recognizer() contractx.EntityRecognizer {
	return r.recognizer
}

func (r *registryImpl) Summarizer() contractx.Summarizer {
	return r.summarizer
}

// RegistryOption customizes NewRegistry.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	summaryCache cachex.SummaryCache
}

// WithSummaryCache serves repeated summaries from c.
func WithSummaryCache(c cachex.SummaryCache) RegistryOption {
	return func(o *registryOptions) {
		o.summaryCache = c
	}
}

func NewRegistry(ctx context.Context, cfg llmx.Config, opts ...RegistryOption) (contractx.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o registryOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	prompts := promptx.LoadPromptSet()

	recognizerModelCfg := cfg.OpenRouterFor(llmx.CollaboratorRecognizer)
	recognizerModel, err := recognizerModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create recognizer model: %v", contractx.ErrModelInvoke, err)
	}
	recognizer, err := newRecognizer(ctx, recognizerModel, prompts.Recognizer)
	if err != nil {
		return nil, err
	}

	summarizerModelCfg := cfg.OpenRouterFor(llmx.CollaboratorSummarizer)
	var summarizer contractx.Summarizer
	switch cfg.Backend() {
	case llmx.SummarizerBackendCompletions:
		summarizer, err = newCompletionsSummarizer(
			openrouterx.NewClient(summarizerModelCfg),
			summarizerModelCfg.Model,
			summarizerModelCfg.Temperature,
			prompts.Summarizer,
		)
	default:
		summarizerModel, modelErr := summarizerModelCfg.New(ctx)
		if modelErr != nil {
			return nil, fmt.Errorf("%w: create summarizer model: %v", contractx.ErrModelInvoke, modelErr)
		}
		summarizer, err = newSummarizer(ctx, summarizerModel, prompts.Summarizer)
	}
	if err != nil {
		return nil, err
	}

	return &registryImpl{
		recognizer: recognizer,
		summarizer: cachex.NewCachedSummarizer(summarizer, o.summaryCache),
	}, nil
}
