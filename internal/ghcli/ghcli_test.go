package ghcli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/reviewbot/internal/errs"
)

type call struct {
	name string
	args []string
}

// stubRun swaps the command runner for the duration of a test and records
// every invocation.
func stubRun(t *testing.T, fn func(name string, args []string) (string, string, error)) *[]call {
	t.Helper()
	var calls []call
	orig := run
	run = func(_ context.Context, name string, args ...string) (string, string, error) {
		calls = append(calls, call{name: name, args: args})
		return fn(name, args)
	}
	t.Cleanup(func() { run = orig })
	return &calls
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPRDiff_PrimaryPath(t *testing.T) {
	calls := stubRun(t, func(name string, args []string) (string, string, error) {
		return "diff --git a/a.go b/a.go\n", "", nil
	})

	c := New("", testLogger())
	diff, err := c.PRDiff(context.Background(), "12")
	require.NoError(t, err)
	assert.Equal(t, "diff --git a/a.go b/a.go\n", diff)

	require.Len(t, *calls, 1)
	assert.Equal(t, "gh", (*calls)[0].name)
	assert.Equal(t, []string{"pr", "diff", "12"}, (*calls)[0].args)
}

func TestPRDiff_RepoFlagAppended(t *testing.T) {
	calls := stubRun(t, func(name string, args []string) (string, string, error) {
		return "", "", nil
	})

	c := New("octo/widgets", testLogger())
	_, err := c.PRDiff(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, []string{"pr", "diff", "3", "--repo", "octo/widgets"}, (*calls)[0].args)
}

func TestPRDiff_FallbackOnTooLarge(t *testing.T) {
	calls := stubRun(t, func(name string, args []string) (string, string, error) {
		switch {
		case name == "gh" && args[1] == "diff":
			return "", "pull request diff is too_large to display", errors.New("exit status 1")
		case name == "gh" && args[1] == "view":
			return `{"baseRefName":"main","headRefName":"feature-x"}`, "", nil
		case name == "git":
			return "diff --git a/big.go b/big.go\n", "", nil
		}
		return "", "", errors.New("unexpected command")
	})

	c := New("", testLogger())
	diff, err := c.PRDiff(context.Background(), "9")
	require.NoError(t, err)
	assert.Equal(t, "diff --git a/big.go b/big.go\n", diff)

	require.Len(t, *calls, 3)
	assert.Equal(t, []string{"pr", "view", "9", "--json", "baseRefName,headRefName"}, (*calls)[1].args)
	assert.Equal(t, []string{"diff", "origin/main...origin/feature-x"}, (*calls)[2].args)
}

func TestPRDiff_FallbackOn406(t *testing.T) {
	stubRun(t, func(name string, args []string) (string, string, error) {
		switch {
		case name == "gh" && args[1] == "diff":
			return "", "HTTP 406: Not Acceptable", errors.New("exit status 1")
		case name == "gh" && args[1] == "view":
			return `{"baseRefName":"main","headRefName":"huge"}`, "", nil
		}
		return "fallback diff\n", "", nil
	})

	c := New("", testLogger())
	diff, err := c.PRDiff(context.Background(), "4")
	require.NoError(t, err)
	assert.Equal(t, "fallback diff\n", diff)
}

func TestPRDiff_OtherFailureIsFatal(t *testing.T) {
	calls := stubRun(t, func(name string, args []string) (string, string, error) {
		return "", "HTTP 404: Not Found", errors.New("exit status 1")
	})

	c := New("", testLogger())
	_, err := c.PRDiff(context.Background(), "2")
	require.Error(t, err)

	var re *errs.RetrievalError
	require.ErrorAs(t, err, &re)
	assert.Contains(t, re.Stderr, "404")
	assert.Len(t, *calls, 1, "no fallback for non-size failures")
}

func TestPRDiff_FallbackMetadataFailureIsFatal(t *testing.T) {
	stubRun(t, func(name string, args []string) (string, string, error) {
		if name == "gh" && args[1] == "diff" {
			return "", "too_large", errors.New("exit status 1")
		}
		return "", "gh: could not resolve PR", errors.New("exit status 1")
	})

	c := New("", testLogger())
	_, err := c.PRDiff(context.Background(), "2")

	var re *errs.RetrievalError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "gh pr view", re.Op)
}

func TestPRDiff_FallbackGitFailureIsFatal(t *testing.T) {
	stubRun(t, func(name string, args []string) (string, string, error) {
		switch {
		case name == "gh" && args[1] == "diff":
			return "", "too_large", errors.New("exit status 1")
		case name == "gh" && args[1] == "view":
			return `{"baseRefName":"main","headRefName":"x"}`, "", nil
		}
		return "", "fatal: bad revision", errors.New("exit status 128")
	})

	c := New("", testLogger())
	_, err := c.PRDiff(context.Background(), "2")

	var re *errs.RetrievalError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "git diff", re.Op)
}

func TestComment(t *testing.T) {
	calls := stubRun(t, func(name string, args []string) (string, string, error) {
		return "", "", nil
	})

	c := New("octo/widgets", testLogger())
	require.NoError(t, c.Comment(context.Background(), "12", "looks good"))

	require.Len(t, *calls, 1)
	assert.Equal(t, "gh", (*calls)[0].name)
	assert.Equal(t, []string{"pr", "comment", "12", "--body", "looks good", "--repo", "octo/widgets"}, (*calls)[0].args)
}

func TestComment_FailureIsPublishError(t *testing.T) {
	stubRun(t, func(name string, args []string) (string, string, error) {
		return "", "gh: authentication required", errors.New("exit status 1")
	})

	c := New("", testLogger())
	err := c.Comment(context.Background(), "12", "body")

	var pe *errs.PublishError
	require.ErrorAs(t, err, &pe)
	assert.True(t, strings.Contains(pe.Stderr, "authentication"))
}
