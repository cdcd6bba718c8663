// Package llm adapts hosted language models to the extraction capabilities:
// extraction.Generator for text prompts and extraction.TextDetector for
// reading receipt images.
package llm

import (
	"fmt"
	"strings"

	"controle-financeiro/internal/extraction"
)

const transcribePrompt = `Transcribe all the text printed on this Brazilian receipt exactly as it appears.
Keep the original line order, numbers, dates and punctuation. Do not translate, summarize or comment.
If no text is readable, answer with an empty message.`

// refusalOpenings are how vision models begin an answer that declines to
// transcribe. They only count at the start of the answer.
var refusalOpenings = []string{
	"i cannot",
	"i can't",
	"i am unable",
	"i'm unable",
	"unable to read",
	"please provide",
	"não consigo",
	"não é possível",
	"não posso",
	"не могу",
	"предоставьте",
}

// apologies may precede a refusal opening.
var apologies = []string{
	"i'm sorry",
	"i am sorry",
	"sorry",
	"desculpe",
	"lamento",
	"infelizmente",
	"извините",
	"к сожалению",
}

// transcription cleans a vision answer, mapping refusals and blank answers to
// extraction.ErrOCREmpty.
func transcription(provider, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", extraction.ErrOCREmpty
	}
	if isRefusal(text) {
		return "", fmt.Errorf("%w: %s declined to transcribe", extraction.ErrOCREmpty, provider)
	}
	return text, nil
}

func isRefusal(text string) bool {
	lower := strings.ToLower(text)
	for _, a := range apologies {
		if strings.HasPrefix(lower, a) {
			lower = strings.TrimLeft(lower[len(a):], " ,.!:")
			break
		}
	}
	for _, opening := range refusalOpenings {
		if strings.HasPrefix(lower, opening) {
			return true
		}
	}
	return false
}
