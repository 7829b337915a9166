// Package ghcli drives the GitHub CLI and git to fetch pull request diffs
// and post review comments.
//
// Both tools are treated as black boxes honoring their documented exit code
// conventions; authentication is whatever gh itself is configured with.
package ghcli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/dshills/reviewbot/internal/errs"
)

// fallbackSignatures are the stderr markers gh emits when a PR diff is too
// large for the API diff endpoint. Matching is by substring; gh exposes no
// structured status for this failure.
var fallbackSignatures = []string{"too_large", "406"}

// Client fetches diffs and posts comments for one repository.
type Client struct {
	repo string // "owner/name", empty means gh's ambient default
	log  *slog.Logger
}

// New creates a Client. repo may be empty when running inside a checkout gh
// can infer the repository from.
func New(repo string, log *slog.Logger) *Client {
	return &Client{repo: repo, log: log}
}

// PRDiff returns the unified diff for a pull request. It tries gh's diff
// endpoint first and falls back to a direct git diff between the remote
// base and head branches when the API refuses oversized diffs.
func (c *Client) PRDiff(ctx context.Context, number string) (string, error) {
	args := c.withRepo("pr", "diff", number)
	c.log.Info("fetching pull request diff", "cmd", "gh "+strings.Join(args, " "))

	out, stderr, err := run(ctx, "gh", args...)
	if err == nil {
		return out, nil
	}

	for _, sig := range fallbackSignatures {
		if strings.Contains(stderr, sig) {
			c.log.Warn("diff too large for the API, diffing branches directly", "signature", sig)
			return c.branchDiff(ctx, number)
		}
	}

	return "", &errs.RetrievalError{Op: "gh pr diff", Stderr: strings.TrimSpace(stderr), Err: err}
}

// prMeta is the slice of `gh pr view --json` output we need.
type prMeta struct {
	BaseRefName string `json:"baseRefName"`
	HeadRefName string `json:"headRefName"`
}

func (c *Client) branchDiff(ctx context.Context, number string) (string, error) {
	args := c.withRepo("pr", "view", number, "--json", "baseRefName,headRefName")
	c.log.Info("querying pull request branches", "cmd", "gh "+strings.Join(args, " "))

	out, stderr, err := run(ctx, "gh", args...)
	if err != nil {
		return "", &errs.RetrievalError{Op: "gh pr view", Stderr: strings.TrimSpace(stderr), Err: err}
	}

	var meta prMeta
	if err := json.Unmarshal([]byte(out), &meta); err != nil {
		return "", &errs.RetrievalError{Op: "gh pr view", Err: fmt.Errorf("parsing branch names: %w", err)}
	}

	diffRange := fmt.Sprintf("origin/%s...origin/%s", meta.BaseRefName, meta.HeadRefName)
	c.log.Info("diffing remote branches", "cmd", "git diff "+diffRange)

	out, stderr, err = run(ctx, "git", "diff", diffRange)
	if err != nil {
		return "", &errs.RetrievalError{Op: "git diff", Stderr: strings.TrimSpace(stderr), Err: err}
	}
	return out, nil
}

// Comment posts body as a PR comment. Non-zero exit is fatal and unretried.
func (c *Client) Comment(ctx context.Context, number, body string) error {
	args := c.withRepo("pr", "comment", number, "--body", body)
	c.log.Info("posting review comment", "pr", number)

	if _, stderr, err := run(ctx, "gh", args...); err != nil {
		return &errs.PublishError{Stderr: strings.TrimSpace(stderr), Err: err}
	}
	return nil
}

func (c *Client) withRepo(args ...string) []string {
	if c.repo != "" {
		return append(args, "--repo", c.repo)
	}
	return args
}

// run executes a command capturing stdout and stderr separately. Replaced
// in tests.
var run = func(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
