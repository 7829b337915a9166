// Package review turns a filtered diff into a posted-ready review comment.
package review

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dshills/reviewbot/internal/config"
	"github.com/dshills/reviewbot/internal/providers"
	"github.com/dshills/reviewbot/internal/redact"
)

// truncationNotice is appended whenever the diff is cut to fit the model
// context window.
const truncationNotice = "\n\n... (diff truncated; remaining content omitted)"

// Truncate limits diff to at most limit characters. At or below the limit
// it returns the input unchanged; above it, the output is exactly the limit
// plus the fixed notice.
func Truncate(diff string, limit int) string {
	if limit <= 0 || len(diff) <= limit {
		return diff
	}
	return diff[:limit] + truncationNotice
}

// Engine sends diffs to the completion service with the fixed prompt.
type Engine struct {
	provider     providers.Reviewer
	maxDiffChars int
	maxTokens    int
	temperature  float64
	log          *slog.Logger
}

// NewEngine creates an Engine bound to one provider and one run's limits.
func NewEngine(provider providers.Reviewer, cfg config.Config, log *slog.Logger) *Engine {
	return &Engine{
		provider:     provider,
		maxDiffChars: cfg.MaxDiffChars,
		maxTokens:    cfg.MaxTokens,
		temperature:  cfg.Temperature,
		log:          log,
	}
}

// Run redacts and (if needed) truncates the diff, then requests a single
// review completion. Truncation is logged, never surfaced as an error.
func (e *Engine) Run(ctx context.Context, diff string) (string, error) {
	clean := redact.Secrets(diff)

	if e.maxDiffChars > 0 && len(clean) > e.maxDiffChars {
		e.log.Warn("diff exceeds context budget, truncating",
			"chars", len(clean), "limit", e.maxDiffChars)
	}
	clean = Truncate(clean, e.maxDiffChars)

	resp, err := e.provider.Review(ctx, providers.ReviewRequest{
		SystemPrompt: SystemPrompt(),
		UserPrompt:   BuildUserPrompt(clean),
		MaxTokens:    e.maxTokens,
		Temperature:  e.temperature,
	})
	if err != nil {
		return "", err
	}

	e.log.Info("review generated", "provider", e.provider.Name(), "tokens", resp.TokensUsed)
	return resp.Content, nil
}

// FormatComment wraps the review text with the fixed header and the
// model attribution footer for posting.
func FormatComment(text, model string) string {
	return fmt.Sprintf("## 🤖 Automated Code Review\n\n%s\n\n---\n*This review was generated automatically by %s via Groq*", text, model)
}
