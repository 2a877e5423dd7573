package openrouter

import "testing"

func TestChatModelConfig(t *testing.T) {
	t.Parallel()

	maxTokens := 128
	cfg := Config{
		BaseURL:            "https://openrouter.example/api/v1/",
		APIKey:             " key ",
		Model:              "openai/gpt-4o-mini",
		MaxCompletionToken: &maxTokens,
		Temperature:        0.2,
	}

	conf := cfg.chatModelConfig()
	if conf.BaseURL != "https://openrouter.example/api/v1" {
		t.Fatalf("BaseURL = %q", conf.BaseURL)
	}
	if conf.APIKey != "key" {
		t.Fatalf("APIKey = %q", conf.APIKey)
	}
	if conf.MaxTokens == nil || *conf.MaxTokens != 128 {
		t.Fatalf("MaxTokens = %v", conf.MaxTokens)
	}
	if conf.Temperature == nil || *conf.Temperature != 0.2 {
		t.Fatalf("Temperature = %v", conf.Temperature)
	}
	if conf.ExtraFields != nil {
		t.Fatalf("unexpected extra fields: %#v", conf.ExtraFields)
	}
}

func TestChatModelConfigExcludesReasoning(t *testing.T) {
	t.Parallel()

	cfg := Config{APIKey: "key", Model: "x-ai/grok-4.1-fast"}
	conf := cfg.chatModelConfig()

	if conf.BaseURL != DefaultBaseURL {
		t.Fatalf("BaseURL = %q, want default", conf.BaseURL)
	}
	if _, ok := conf.ExtraFields["reasoning"]; !ok {
		t.Fatalf("expected reasoning override, got %#v", conf.ExtraFields)
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if NewClient(Config{APIKey: "  "}) != nil {
		t.Fatal("expected nil client without api key")
	}
	if NewClient(Config{APIKey: "key"}) == nil {
		t.Fatal("expected client")
	}
}
