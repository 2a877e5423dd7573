package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/recognizer.txt
	recognizerRaw string

	//go:embed template/summarizer.txt
	summarizerRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Recognizer string
	Summarizer string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Recognizer: strings.TrimSpace(recognizerRaw),
		Summarizer: strings.TrimSpace(summarizerRaw),
	}
}
