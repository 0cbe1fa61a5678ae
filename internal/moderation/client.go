// Package moderation screens user generated text with a hosted toxicity
// classifier before it reaches the database.
package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mindhaven/internal/models"
	"mindhaven/internal/observability"
)

// toxicThreshold is the score above which the toxic label counts as toxic.
// A score of exactly 0.5 is not toxic.
const toxicThreshold = 0.5

// Result is the outcome of a single toxicity check. Confidence is the score
// of the toxic label; the other labels are kept for diagnostics only.
type Result struct {
	IsToxic    bool               `json:"isToxic"`
	Confidence float64            `json:"confidence"`
	Scores     map[string]float64 `json:"scores,omitempty"`
}

// Client classifies a piece of text.
type Client interface {
	CheckToxicity(ctx context.Context, text string) (Result, error)
}

// HuggingFaceClient calls a hosted text-classification model. The response
// shape is the standard inference API nesting: one array of label/score
// pairs per input.
type HuggingFaceClient struct {
	apiKey string
	url    string
	http   *http.Client
	logger *observability.UpstreamLogger
}

// NewHuggingFaceClient builds a client for the given inference endpoint.
func NewHuggingFaceClient(apiKey, url string) *HuggingFaceClient {
	return &HuggingFaceClient{
		apiKey: apiKey,
		url:    url,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: observability.NewUpstreamLogger("huggingface"),
	}
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// CheckToxicity classifies text. Only the toxic label decides the verdict;
// a missing toxic label means a confidence of zero.
func (c *HuggingFaceClient) CheckToxicity(ctx context.Context, text string) (Result, error) {
	payload, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return Result{}, models.NewInternalError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return Result{}, models.NewInternalError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		observability.UpstreamFetchErrors.WithLabelValues("huggingface").Inc()
		c.logger.LogError(ctx, "classify", err)
		return Result{}, models.NewUpstreamFetchError("huggingface", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		observability.UpstreamFetchErrors.WithLabelValues("huggingface").Inc()
		return Result{}, models.NewUpstreamFetchError("huggingface", err)
	}

	if resp.StatusCode != http.StatusOK {
		observability.UpstreamFetchErrors.WithLabelValues("huggingface").Inc()
		err := fmt.Errorf("status %d: %s", resp.StatusCode, body)
		c.logger.LogError(ctx, "classify", err)
		return Result{}, models.NewUpstreamFetchError("huggingface", err)
	}

	var parsed [][]labelScore
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Result{}, models.NewParseError("decode classification response", err)
	}
	if len(parsed) == 0 {
		return Result{}, models.NewParseError("classification response contained no predictions", nil)
	}

	result := Result{Scores: make(map[string]float64, len(parsed[0]))}
	for _, ls := range parsed[0] {
		result.Scores[ls.Label] = ls.Score
		if strings.EqualFold(ls.Label, "toxic") {
			result.Confidence = ls.Score
		}
	}
	result.IsToxic = result.Confidence > toxicThreshold
	return result, nil
}
