package domain

import (
	"strings"

	"github.com/satriahrh/voxverify/domain/entities"
)

// Body field names that may carry the audio, in lookup order
const (
	FieldAudioBase64Format = "Audio Base64 Format"
	FieldAudioBase64       = "audioBase64"
	FieldAudio             = "audio"
	FieldFile              = "file"
)

// AcceptedAudioFields lists the body keys checked for audio, first match wins
var AcceptedAudioFields = []string{FieldAudioBase64Format, FieldAudioBase64, FieldAudio, FieldFile}

// AnalyzeRequest represents an incoming analysis request body
type AnalyzeRequest struct {
	AudioBase64Format string `json:"Audio Base64 Format" form:"Audio Base64 Format"`
	AudioBase64       string `json:"audioBase64" form:"audioBase64"`
	Audio             string `json:"audio" form:"audio"`
	File              string `json:"file" form:"file"`
}

// Payload returns the first non-blank audio field and the key it came from
func (r *AnalyzeRequest) Payload() (entities.EncodedPayload, string, bool) {
	candidates := []string{r.AudioBase64Format, r.AudioBase64, r.Audio, r.File}
	for i, v := range candidates {
		if v = strings.TrimSpace(v); v != "" {
			return entities.EncodedPayload(v), AcceptedAudioFields[i], true
		}
	}
	return "", "", false
}

// HealthMessage is returned by the health endpoint
type HealthMessage struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp int64  `json:"timestamp"`
}
