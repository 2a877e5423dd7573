package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/catalog-chatbot/agent/contract"
	openrouterx "github.com/tanpawarit/catalog-chatbot/pkg/openrouter"
)

// Collaborator identifies which model-backed capability a chat model serves.
type Collaborator string

const (
	CollaboratorRecognizer Collaborator = "recognizer"
	CollaboratorSummarizer Collaborator = "summarizer"
)

const (
	SummarizerBackendGraph       = "graph"
	SummarizerBackendCompletions = "completions"
)

type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"512"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	RecognizerModel       string  `envconfig:"RECOGNIZER_MODEL" split_words:"true"`
	SummarizerModel       string  `envconfig:"SUMMARIZER_MODEL" split_words:"true"`
	RecognizerTemperature float32 `envconfig:"RECOGNIZER_TEMPERATURE" split_words:"true" default:"-1"`
	SummarizerTemperature float32 `envconfig:"SUMMARIZER_TEMPERATURE" split_words:"true" default:"-1"`
	SummarizerBackend     string  `envconfig:"SUMMARIZER_BACKEND" split_words:"true" default:"graph"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: openrouter api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	switch c.Backend() {
	case SummarizerBackendGraph, SummarizerBackendCompletions:
	default:
		return fmt.Errorf("%w: unknown summarizer backend %q", contractx.ErrValidation, c.SummarizerBackend)
	}
	return nil
}

// Backend returns the normalized summarizer backend, defaulting to the graph.
func (c Config) Backend() string {
	v := strings.ToLower(strings.TrimSpace(c.SummarizerBackend))
	if v == "" {
		return SummarizerBackendGraph
	}
	return v
}

func (c Config) OpenRouterFor(collaborator Collaborator) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	switch collaborator {
	case CollaboratorRecognizer:
		if v := strings.TrimSpace(c.RecognizerModel); v != "" {
			modelName = v
		}
		if c.RecognizerTemperature >= 0 {
			temp = c.RecognizerTemperature
		}
	case CollaboratorSummarizer:
		if v := strings.TrimSpace(c.SummarizerModel); v != "" {
			modelName = v
		}
		if c.SummarizerTemperature >= 0 {
			temp = c.SummarizerTemperature
		}
	}

	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
