package moderation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mindhaven/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifierServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var req inferenceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Inputs)

		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestCheckToxicity_ToxicAboveThreshold(t *testing.T) {
	srv := classifierServer(t, `[[{"label":"toxic","score":0.97},{"label":"insult","score":0.12}]]`, http.StatusOK)
	defer srv.Close()

	client := NewHuggingFaceClient("hf-key", srv.URL)
	result, err := client.CheckToxicity(context.Background(), "some hateful text")

	require.NoError(t, err)
	assert.True(t, result.IsToxic)
	assert.InDelta(t, 0.97, result.Confidence, 1e-9)
	assert.InDelta(t, 0.97, result.Scores["toxic"], 1e-9)
}

func TestCheckToxicity_CleanBelowThreshold(t *testing.T) {
	srv := classifierServer(t, `[[{"label":"toxic","score":0.02},{"label":"insult","score":0.01}]]`, http.StatusOK)
	defer srv.Close()

	client := NewHuggingFaceClient("hf-key", srv.URL)
	result, err := client.CheckToxicity(context.Background(), "having a rough week")

	require.NoError(t, err)
	assert.False(t, result.IsToxic)
}

func TestCheckToxicity_ExactThresholdIsNotToxic(t *testing.T) {
	srv := classifierServer(t, `[[{"label":"toxic","score":0.5}]]`, http.StatusOK)
	defer srv.Close()

	client := NewHuggingFaceClient("hf-key", srv.URL)
	result, err := client.CheckToxicity(context.Background(), "borderline")

	require.NoError(t, err)
	assert.False(t, result.IsToxic)
}

func TestCheckToxicity_OnlyToxicLabelDecides(t *testing.T) {
	// Other labels may score high; the verdict follows the toxic label alone.
	srv := classifierServer(t, `[[{"label":"insult","score":0.9},{"label":"toxic","score":0.2}]]`, http.StatusOK)
	defer srv.Close()

	client := NewHuggingFaceClient("hf-key", srv.URL)
	result, err := client.CheckToxicity(context.Background(), "text")

	require.NoError(t, err)
	assert.False(t, result.IsToxic)
	assert.InDelta(t, 0.2, result.Confidence, 1e-9)
}

func TestCheckToxicity_UppercaseToxicLabel(t *testing.T) {
	srv := classifierServer(t, `[[{"label":"TOXIC","score":0.93}]]`, http.StatusOK)
	defer srv.Close()

	client := NewHuggingFaceClient("hf-key", srv.URL)
	result, err := client.CheckToxicity(context.Background(), "text")

	require.NoError(t, err)
	assert.True(t, result.IsToxic)
	assert.InDelta(t, 0.93, result.Confidence, 1e-9)
}

func TestCheckToxicity_MissingToxicLabel(t *testing.T) {
	srv := classifierServer(t, `[[{"label":"threat","score":0.81}]]`, http.StatusOK)
	defer srv.Close()

	client := NewHuggingFaceClient("hf-key", srv.URL)
	result, err := client.CheckToxicity(context.Background(), "text")

	require.NoError(t, err)
	assert.False(t, result.IsToxic)
	assert.Zero(t, result.Confidence)
}

func TestCheckToxicity_UpstreamError(t *testing.T) {
	srv := classifierServer(t, `{"error":"model loading"}`, http.StatusServiceUnavailable)
	defer srv.Close()

	client := NewHuggingFaceClient("hf-key", srv.URL)
	_, err := client.CheckToxicity(context.Background(), "text")

	require.Error(t, err)
	assert.True(t, models.IsCode(err, "UPSTREAM_FETCH"))
}

func TestCheckToxicity_MalformedResponse(t *testing.T) {
	srv := classifierServer(t, `{"unexpected":"shape"}`, http.StatusOK)
	defer srv.Close()

	client := NewHuggingFaceClient("hf-key", srv.URL)
	_, err := client.CheckToxicity(context.Background(), "text")

	require.Error(t, err)
	assert.True(t, models.IsCode(err, "PARSE_ERROR"))
}

type stubClassifier struct {
	result Result
	err    error
}

func (s *stubClassifier) CheckToxicity(_ context.Context, _ string) (Result, error) {
	return s.result, s.err
}

func TestGate_BlocksToxicContent(t *testing.T) {
	gate := NewGate(&stubClassifier{result: Result{IsToxic: true}})
	assert.False(t, gate.Allow(context.Background(), "post", "hateful text"))
}

func TestGate_AllowsCleanContent(t *testing.T) {
	gate := NewGate(&stubClassifier{result: Result{IsToxic: false}})
	assert.True(t, gate.Allow(context.Background(), "post", "kind words"))
}

func TestGate_FailsOpenOnClassifierError(t *testing.T) {
	gate := NewGate(&stubClassifier{err: errors.New("connection refused")})
	assert.True(t, gate.Allow(context.Background(), "comment", "anything"))
}

func TestGate_AllowsEmptyText(t *testing.T) {
	gate := NewGate(&stubClassifier{err: errors.New("should not be called")})
	assert.True(t, gate.Allow(context.Background(), "post", ""))
}

func TestGate_FailsOpenOnServerError(t *testing.T) {
	srv := classifierServer(t, `internal error`, http.StatusInternalServerError)
	defer srv.Close()

	gate := NewGate(NewHuggingFaceClient("hf-key", srv.URL))
	assert.True(t, gate.Allow(context.Background(), "post", "anything"))
}
