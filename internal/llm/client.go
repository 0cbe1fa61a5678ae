// Package llm provides a typed client for the Gemini generative language API.
package llm

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

// Message is a single conversation turn handed to the model.
type Message struct {
	Role    string
	Content string
}

// Client generates a completion for a conversation history.
type Client interface {
	Complete(ctx context.Context, history []Message) (string, error)
}

// systemPrompt frames every companion conversation. Tone and boundaries
// matter more than capability here.
const systemPrompt = `You are a compassionate mental health companion for a peer-support community.
Listen actively, validate feelings, and respond with warmth in two to four sentences.
Suggest simple grounding or coping techniques when they fit naturally.
You are not a therapist and you never diagnose, prescribe, or give medical advice.
If the user appears to be in crisis, gently encourage them to contact a professional or a local crisis line.`

// GeminiClient calls the generateContent endpoint of the generative
// language API.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
	logger  *observability.UpstreamLogger
}

// NewGeminiClient builds a client for the given model. baseURL must not
// include the model path.
func NewGeminiClient(apiKey, model, baseURL string) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: observability.NewUpstreamLogger("gemini"),
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type generateContentRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// mapRole translates internal roles to the wire roles the API accepts.
// The API has no "assistant" role; model turns are sent as "model".
func mapRole(role string) string {
	if role == models.RoleAssistant {
		return "model"
	}
	return "user"
}

// Complete sends the conversation history and returns the model's reply text.
func (c *GeminiClient) Complete(ctx context.Context, history []Message) (string, error) {
	start := time.Now()
	defer func() {
		observability.CompletionLatency.Observe(time.Since(start).Seconds())
	}()

	contents := make([]geminiContent, 0, len(history))
	for _, m := range history {
		contents = append(contents, geminiContent{
			Role:  mapRole(m.Role),
			Parts: []geminiPart{{Text: m.Content}},
		})
	}

	reqBody := generateContentRequest{
		Contents: contents,
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: systemPrompt}},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", models.NewInternalError(fmt.Errorf("marshal completion request: %w", err))
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.LogCall(ctx, "generateContent", map[string]interface{}{
		"model": c.model,
		"turns": len(history),
	})

	resp, err := c.http.Do(req)
	if err != nil {
		observability.UpstreamFetchErrors.WithLabelValues("gemini").Inc()
		c.logger.LogError(ctx, "generateContent", err)
		return "", models.NewUpstreamFetchError("gemini", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		observability.UpstreamFetchErrors.WithLabelValues("gemini").Inc()
		return "", models.NewUpstreamFetchError("gemini", err)
	}

	if resp.StatusCode != http.StatusOK {
		observability.UpstreamFetchErrors.WithLabelValues("gemini").Inc()
		err := fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(body), 200))
		c.logger.LogError(ctx, "generateContent", err)
		return "", models.NewUpstreamFetchError("gemini", err)
	}

	var parsed generateContentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", models.NewParseError("decode completion response", err)
	}
	if parsed.Error != nil {
		observability.UpstreamFetchErrors.WithLabelValues("gemini").Inc()
		return "", models.NewUpstreamFetchError("gemini", fmt.Errorf("%s: %s", parsed.Error.Status, parsed.Error.Message))
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", models.NewUpstreamFetchError("gemini", fmt.Errorf("empty candidate list"))
	}

	var sb strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	reply := strings.TrimSpace(sb.String())
	if reply == "" {
		return "", models.NewUpstreamFetchError("gemini", fmt.Errorf("candidate contained no text"))
	}
	return reply, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
