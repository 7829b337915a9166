// Package resolve determines which pull request a CI run is reviewing.
package resolve

import (
	"encoding/json"
	"os"
	"regexp"
	"strconv"

	"github.com/dshills/reviewbot/internal/errs"
)

// pullRefRe matches Actions ref strings like "refs/pull/123/merge".
var pullRefRe = regexp.MustCompile(`/pull/(\d+)(?:/|$)`)

// event is the slice of the Actions event payload we care about.
type event struct {
	Number      int `json:"number"`
	PullRequest *struct {
		Number int `json:"number"`
	} `json:"pull_request"`
}

// PRNumber resolves the pull request number, preferring the event payload
// file over the ref string. Absence of both is fatal: without identifying
// context there is nothing to retry against.
func PRNumber(eventPath, ref string) (string, error) {
	if n, ok := fromEventFile(eventPath); ok {
		return n, nil
	}
	if m := pullRefRe.FindStringSubmatch(ref); m != nil {
		return m[1], nil
	}
	return "", &errs.ResolutionError{Reason: "no pull_request event payload and ref has no /pull/<n>/ segment"}
}

func fromEventFile(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	var ev event
	if err := json.Unmarshal(data, &ev); err != nil {
		return "", false
	}
	if ev.PullRequest != nil && ev.PullRequest.Number > 0 {
		return strconv.Itoa(ev.PullRequest.Number), true
	}
	if ev.Number > 0 {
		return strconv.Itoa(ev.Number), true
	}
	return "", false
}
