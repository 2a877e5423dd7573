package llm

import (
	"errors"
	"testing"

	contractx "github.com/tanpawarit/catalog-chatbot/agent/contract"
)

func TestOpenRouterForOverrides(t *testing.T) {
	t.Parallel()

	cfg := Config{
		APIKey:                "key",
		Model:                 "base-model",
		Temperature:           0.5,
		MaxCompletionToken:    256,
		RecognizerModel:       "ner-model",
		RecognizerTemperature: 0,
		SummarizerTemperature: -1,
	}

	rec := cfg.OpenRouterFor(CollaboratorRecognizer)
	if rec.Model != "ner-model" || rec.Temperature != 0 {
		t.Fatalf("recognizer config = %+v", rec)
	}

	sum := cfg.OpenRouterFor(CollaboratorSummarizer)
	if sum.Model != "base-model" || sum.Temperature != 0.5 {
		t.Fatalf("summarizer config = %+v", sum)
	}
	if sum.MaxCompletionToken == nil || *sum.MaxCompletionToken != 256 {
		t.Fatalf("MaxCompletionToken = %v", sum.MaxCompletionToken)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	if err := (Config{APIKey: "k", Model: "m"}).Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := (Config{APIKey: "k", Model: "m", SummarizerBackend: " Completions "}).Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := (Config{Model: "m"}).Validate(); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("Validate() error = %v, want ErrValidation", err)
	}
	if err := (Config{APIKey: "k", Model: "m", SummarizerBackend: "bart"}).Validate(); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("Validate() error = %v, want ErrValidation", err)
	}
}
