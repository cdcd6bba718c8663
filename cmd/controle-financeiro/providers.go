package main

import (
	"context"
	"fmt"

	"controle-financeiro/internal/extraction"
	"controle-financeiro/internal/llm"
	"controle-financeiro/pkg/config"

	"go.uber.org/zap"
)

// provider is a model client that can both generate text and read images.
type provider interface {
	extraction.Generator
	extraction.TextDetector
}

// providers builds each configured model client once, so the same client
// serves generation and OCR when both use one provider.
type providers struct {
	cfg     *config.Config
	logger  *zap.Logger
	built   map[string]provider
	closers []func() error
}

func newProviders(cfg *config.Config, logger *zap.Logger) *providers {
	return &providers{cfg: cfg, logger: logger, built: make(map[string]provider)}
}

// get returns the named provider, or nil when it is "none" or cannot be
// built. A missing provider degrades the pipeline instead of stopping start-up.
func (p *providers) get(ctx context.Context, name string) provider {
	if name == "" || name == config.ProviderNone {
		return nil
	}
	if prov, ok := p.built[name]; ok {
		return prov
	}

	prov, err := p.build(ctx, name)
	if err != nil {
		p.logger.Warn("Model provider unavailable, running without it",
			zap.String("provider", name),
			zap.Error(err),
		)
		prov = nil
	}
	p.built[name] = prov
	return prov
}

func (p *providers) build(ctx context.Context, name string) (provider, error) {
	switch name {
	case config.ProviderGigaChat:
		g, err := llm.NewGigaChat(ctx, p.cfg.GigaChat, p.logger)
		if err != nil {
			return nil, err
		}
		p.closers = append(p.closers, g.Close)
		return g, nil
	case config.ProviderGemini:
		g, err := llm.NewGemini(ctx, p.cfg.Gemini, p.logger)
		if err != nil {
			return nil, err
		}
		return g, nil
	case config.ProviderOpenAI:
		o, err := llm.NewOpenAI(p.cfg.OpenAI, p.logger)
		if err != nil {
			return nil, err
		}
		return o, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}
}

func (p *providers) Close() {
	for _, closeFn := range p.closers {
		if err := closeFn(); err != nil {
			p.logger.Warn("Failed to close model client", zap.Error(err))
		}
	}
}
