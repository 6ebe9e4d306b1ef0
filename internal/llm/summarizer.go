package llm

import (
	"context"
	"fmt"

	"github.com/clauseguard/clauseguard/internal/model"
)

// Summarizer wraps an optional advisory provider. A nil provider is a
// valid, permanently disabled summarizer.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer from configuration. An empty provider
// name yields a disabled summarizer, not an error.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Summarizer{
		provider: provider,
		config:   config,
	}, nil
}

// IsEnabled reports whether an advisory provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// ProviderName returns the configured provider name, empty when disabled.
func (s *Summarizer) ProviderName() string {
	if !s.IsEnabled() {
		return ""
	}
	return s.provider.Name()
}

// GenerateAdvisory produces a plain-language advisory for a finished
// review. It never mutates the result it explains; callers attach the
// advisory after aggregation.
func (s *Summarizer) GenerateAdvisory(ctx context.Context, result model.DocumentResult) (*model.Advisory, error) {
	if !s.IsEnabled() {
		return nil, nil
	}

	if !s.provider.IsAvailable(ctx) {
		return nil, fmt.Errorf("advisory provider %s is not available", s.provider.Name())
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Result:    result,
		Citations: CollectCitations(result),
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	return &model.Advisory{
		Provider: s.provider.Name(),
		Model:    resp.Model,
		Text:     resp.Summary,
	}, nil
}
