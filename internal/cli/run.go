package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dshills/reviewbot/internal/config"
	"github.com/dshills/reviewbot/internal/filter"
	"github.com/dshills/reviewbot/internal/ghcli"
	"github.com/dshills/reviewbot/internal/logger"
	"github.com/dshills/reviewbot/internal/providers"
	"github.com/dshills/reviewbot/internal/resolve"
	"github.com/dshills/reviewbot/internal/review"
)

// pipeline sequences one review run. The stage functions are fields so
// tests can exercise the sequencing without subprocesses or network.
type pipeline struct {
	out     io.Writer
	model   string
	resolve func() (string, error)
	fetch   func(ctx context.Context, number string) (string, error)
	review  func(ctx context.Context, diff string) (string, error)
	publish func(ctx context.Context, number, body string) error
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, os.Stdout)

	// Fail fast on a missing credential: nothing should leave the machine
	// if the review request can never be made.
	provider, err := providers.NewGroq(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitError
		return nil
	}

	gh := ghcli.New(cfg.Repo, log)
	engine := review.NewEngine(provider, cfg, log)

	p := &pipeline{
		out:   os.Stdout,
		model: cfg.Model,
		resolve: func() (string, error) {
			return resolve.PRNumber(cfg.EventPath, cfg.Ref)
		},
		fetch:   gh.PRDiff,
		review:  engine.Run,
		publish: gh.Comment,
	}

	if err := p.execute(cmd.Context()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitError
	}
	return nil
}

func (p *pipeline) execute(ctx context.Context) error {
	step := color.New(color.FgCyan)
	notice := color.New(color.FgYellow)
	done := color.New(color.FgGreen)

	step.Fprintln(p.out, "Resolving pull request...")
	number, err := p.resolve()
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "  PR #%s\n", number)

	step.Fprintln(p.out, "Fetching diff...")
	diff, err := p.fetch(ctx, number)
	if err != nil {
		return err
	}
	if strings.TrimSpace(diff) == "" {
		notice.Fprintln(p.out, "Diff is empty — nothing to review.")
		return nil
	}

	step.Fprintln(p.out, "Filtering to source files...")
	filtered := filter.Filter(diff)
	if strings.TrimSpace(filtered) == "" {
		notice.Fprintln(p.out, "No reviewable source files in diff — nothing to review.")
		return nil
	}
	fmt.Fprintf(p.out, "  %d characters after filtering\n", len(filtered))

	step.Fprintln(p.out, "Requesting review...")
	text, err := p.review(ctx, filtered)
	if err != nil {
		return err
	}

	step.Fprintln(p.out, "Posting comment...")
	if err := p.publish(ctx, number, review.FormatComment(text, p.model)); err != nil {
		return err
	}

	done.Fprintf(p.out, "Review posted on PR #%s.\n", number)
	return nil
}
