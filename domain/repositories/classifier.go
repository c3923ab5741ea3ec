package repositories

import (
	"context"

	"github.com/satriahrh/voxverify/domain/entities"
)

// VoiceClassifier abstracts the external model that judges a voice sample
type VoiceClassifier interface {
	// Classify sends one sample to the model and returns its raw reply text.
	// apiKey is the credential read for this call only.
	Classify(ctx context.Context, apiKey string, audio entities.EncodedPayload) (string, error)
	// Name identifies the backing model in logs
	Name() string
}
