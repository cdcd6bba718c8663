package extraction

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var errModelDown = errors.New("model unavailable")

// scriptedGenerator answers prompts by matching a marker in the prompt.
type scriptedGenerator struct {
	mu      sync.Mutex
	answers map[string]string
	err     error
	prompts []string
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	for marker, answer := range g.answers {
		if strings.Contains(prompt, marker) {
			return answer, nil
		}
	}
	return "I cannot help with that", nil
}

func (g *scriptedGenerator) calls(marker string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, p := range g.prompts {
		if strings.Contains(p, marker) {
			n++
		}
	}
	return n
}

// prompt markers
const (
	classifyPrompt   = "Classify the type of establishment"
	categorizePrompt = "You categorize items"
	tablePrompt      = "Extract ONLY the product table"
	summaryPrompt    = "Describe the purchase"
)

type fakeDetector struct {
	text string
	err  error
}

func (d fakeDetector) DetectText(context.Context, []byte, string) (string, error) {
	return d.text, d.err
}

type fakeWeb struct {
	receipt *WebReceipt
	err     error
}

func (w fakeWeb) Fetch(context.Context, string) (*WebReceipt, error) {
	return w.receipt, w.err
}

type recordingObserver struct {
	mu        sync.Mutex
	fallbacks []string
	outcomes  []string
}

func (r *recordingObserver) Fallback(stage string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallbacks = append(r.fallbacks, stage)
}

func (r *recordingObserver) Outcome(source, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, source+":"+outcome)
}
