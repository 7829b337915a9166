// Package providers contains the completion-service client used to
// generate reviews.
package providers

import "context"

// ReviewRequest contains the data sent to the completion service.
type ReviewRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
}

// ReviewResponse contains the raw response from the completion service.
type ReviewResponse struct {
	Content    string
	TokensUsed int
}

// Reviewer is the completion-service abstraction.
type Reviewer interface {
	Review(ctx context.Context, req ReviewRequest) (ReviewResponse, error)
	Name() string
}
