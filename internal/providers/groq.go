package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dshills/reviewbot/internal/config"
	"github.com/dshills/reviewbot/internal/errs"
)

// Groq implements Reviewer against Groq's OpenAI-compatible chat
// completions endpoint. One request per run, no retries: the run is
// terminal either way and CI re-runs are the retry mechanism.
type Groq struct {
	apiKey      string
	model       string
	baseURL     string
	maxTokens   int
	temperature float64
	client      *http.Client
}

// NewGroq creates a Groq client. The credential is validated here so a
// misconfigured job fails before any diff leaves the machine.
func NewGroq(cfg config.Config) (*Groq, error) {
	if cfg.APIKey == "" {
		return nil, &errs.ConfigurationError{Variable: "GROQ_API_KEY"}
	}
	return &Groq{
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		baseURL:     cfg.BaseURL,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: 120 * time.Second},
	}, nil
}

func (g *Groq) Name() string { return "groq" }

// Model returns the configured model identifier.
func (g *Groq) Model() string { return g.model }

func (g *Groq) Review(ctx context.Context, req ReviewRequest) (ReviewResponse, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = g.maxTokens
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = g.temperature
	}

	body := groqRequest{
		Model: g.model,
		Messages: []groqMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return ReviewResponse{}, &errs.ReviewServiceError{Reason: "marshaling request", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", g.baseURL, bytes.NewReader(payload))
	if err != nil {
		return ReviewResponse{}, &errs.ReviewServiceError{Reason: "creating request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	httpResp, err := g.client.Do(httpReq)
	if err != nil {
		return ReviewResponse{}, &errs.ReviewServiceError{Reason: "sending request", Err: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return ReviewResponse{}, &errs.ReviewServiceError{Reason: "reading response", Err: err}
	}

	if httpResp.StatusCode != 200 {
		return ReviewResponse{}, &errs.ReviewServiceError{
			Reason: fmt.Sprintf("API error (status %d): %s", httpResp.StatusCode, string(respBody)),
		}
	}

	var result groqResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return ReviewResponse{}, &errs.ReviewServiceError{Reason: "parsing response", Err: err}
	}
	if len(result.Choices) == 0 {
		return ReviewResponse{}, &errs.ReviewServiceError{Reason: "no choices in response"}
	}
	if result.Choices[0].Message.Content == "" {
		return ReviewResponse{}, &errs.ReviewServiceError{Reason: "empty text content in response"}
	}

	return ReviewResponse{
		Content:    result.Choices[0].Message.Content,
		TokensUsed: result.Usage.TotalTokens,
	}, nil
}

type groqRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqResponse struct {
	Choices []groqChoice `json:"choices"`
	Usage   groqUsage    `json:"usage"`
}

type groqChoice struct {
	Message groqMessage `json:"message"`
}

type groqUsage struct {
	TotalTokens int `json:"total_tokens"`
}
