package llm

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/satriahrh/voxverify/domain"
	"github.com/satriahrh/voxverify/domain/entities"
)

const verdictResponse = `{
  "candidates": [
    {
      "content": {
        "role": "model",
        "parts": [{"text": "{\"classification\":\"HUMAN\",\"confidence\":0.92,\"language\":\"English\",\"explanation\":\"natural jitter detected\"}"}]
      },
      "finishReason": "STOP"
    }
  ]
}`

func newTestServer(t *testing.T, status int, body string, hits *int32, lastBody *string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		raw, _ := io.ReadAll(r.Body)
		*lastBody = string(raw)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewGeminiClassifier_Defaults(t *testing.T) {
	logger := zaptest.NewLogger(t)

	classifier, err := NewGeminiClassifier(GeminiConfig{}, logger)
	if err != nil {
		t.Fatalf("Failed to create classifier: %v", err)
	}

	if classifier.model != defaultModel {
		t.Errorf("Expected default model '%s', got '%s'", defaultModel, classifier.model)
	}
	if classifier.thinkingBudget != defaultThinkingBudget {
		t.Errorf("Expected default thinking budget %d, got %d", defaultThinkingBudget, classifier.thinkingBudget)
	}
	if classifier.Name() != defaultModel {
		t.Errorf("Name should report the model, got %s", classifier.Name())
	}
}

func TestNewGeminiClassifier_InvalidBudget(t *testing.T) {
	_, err := NewGeminiClassifier(GeminiConfig{ThinkingBudget: -5}, zaptest.NewLogger(t))
	if err == nil {
		t.Error("Expected error for negative thinking budget")
	}
}

func TestGeminiClassifier_Classify(t *testing.T) {
	var hits int32
	var lastBody string
	server := newTestServer(t, http.StatusOK, verdictResponse, &hits, &lastBody)

	classifier, err := NewGeminiClassifier(GeminiConfig{BaseURL: server.URL}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create classifier: %v", err)
	}

	audio := entities.EncodePayload([]byte("ID3\x03\x00fake mp3 frames"))
	text, err := classifier.Classify(context.Background(), "test-api-key", audio)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("Expected exactly one outbound call, got %d", hits)
	}

	result, err := entities.ParseDetectionResult(text)
	if err != nil {
		t.Fatalf("Reply did not parse: %v (%s)", err, text)
	}
	if result.Classification != entities.ClassificationHuman {
		t.Errorf("Expected HUMAN, got %s", result.Classification)
	}

	for _, want := range []string{`"mimeType":"audio/mp3"`, `"thinkingBudget":32768`, `"responseMimeType":"application/json"`, string(audio), "Rhythmic Jitter"} {
		if !strings.Contains(lastBody, want) {
			t.Errorf("Request body should contain %s", want)
		}
	}
}

func TestGeminiClassifier_Classify_InvalidBase64(t *testing.T) {
	var hits int32
	var lastBody string
	server := newTestServer(t, http.StatusOK, verdictResponse, &hits, &lastBody)

	classifier, _ := NewGeminiClassifier(GeminiConfig{BaseURL: server.URL}, zaptest.NewLogger(t))

	_, err := classifier.Classify(context.Background(), "test-api-key", "%%% not base64 %%%")
	if domain.KindOf(err) != domain.KindInvalidAudioData {
		t.Errorf("Expected %s, got %v", domain.KindInvalidAudioData, err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Errorf("Undecodable audio should not reach the model, got %d calls", hits)
	}
}

func TestGeminiClassifier_Classify_UpstreamError(t *testing.T) {
	var hits int32
	var lastBody string
	server := newTestServer(t, http.StatusTooManyRequests,
		`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`, &hits, &lastBody)

	classifier, _ := NewGeminiClassifier(GeminiConfig{BaseURL: server.URL}, zaptest.NewLogger(t))

	_, err := classifier.Classify(context.Background(), "test-api-key", entities.EncodePayload([]byte("ID3")))
	if err == nil {
		t.Fatal("Expected error for upstream failure")
	}
	var ae *domain.AnalysisError
	if errors.As(err, &ae) {
		t.Errorf("Transport failures should be left for the caller to classify, got %v", ae)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("Expected a single attempt without retries, got %d", hits)
	}
}

func TestMockGeminiClassifier(t *testing.T) {
	classifier := NewMockGeminiClassifier()

	text, err := classifier.Classify(context.Background(), "", entities.EncodePayload([]byte("short")))
	if err != nil {
		t.Fatalf("Mock classify failed: %v", err)
	}
	if _, err := entities.ParseDetectionResult(text); err != nil {
		t.Errorf("Mock reply should be a valid verdict: %v", err)
	}
}
