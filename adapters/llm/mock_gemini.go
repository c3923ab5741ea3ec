package llm

import (
	"context"

	"github.com/satriahrh/voxverify/domain"
	"github.com/satriahrh/voxverify/domain/entities"
	"github.com/satriahrh/voxverify/domain/repositories"
)

// MockGeminiClassifier is a placeholder classifier for local runs without API access
type MockGeminiClassifier struct{}

// NewMockGeminiClassifier creates a new mock classifier
func NewMockGeminiClassifier() repositories.VoiceClassifier {
	return &MockGeminiClassifier{}
}

// Name implements repositories.VoiceClassifier
func (m *MockGeminiClassifier) Name() string {
	return "mock"
}

// Classify implements repositories.VoiceClassifier
func (m *MockGeminiClassifier) Classify(ctx context.Context, apiKey string, audio entities.EncodedPayload) (string, error) {
	data, err := audio.Decode()
	if err != nil {
		return "", domain.NewError(domain.KindInvalidAudioData, "Audio data is not valid base64", err)
	}

	// Mock verdict based on sample size
	switch {
	case len(data) > 100000:
		return `{"classification":"HUMAN","confidence":0.81,"language":"English","explanation":"Irregular breathing and natural timing jitter."}`, nil
	default:
		return `{"classification":"AI_GENERATED","confidence":0.67,"language":"English","explanation":"Sample too short for organic cues; spectral envelope unusually smooth."}`, nil
	}
}
