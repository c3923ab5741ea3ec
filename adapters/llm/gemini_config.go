package llm

import (
	"google.golang.org/genai"

	"github.com/satriahrh/voxverify/domain/entities"
)

const (
	defaultModel          = "gemini-3-pro-preview"
	defaultThinkingBudget = int32(32768)
	audioMIMEType         = "audio/mp3"
)

const forensicPrompt = "Perform a deep-level forensic analysis. Is this AI_GENERATED or HUMAN? Be extremely critical of high-quality clones."

const forensicSystemInstruction = `You are a specialized Audio Forensic AI. Your task is to detect "AI_GENERATED" voices (clones, TTS, Deepfakes) versus "HUMAN" voices.

FORENSIC SCAN PROTOCOL:
1. Reason internally about the following:
   - Spectral Envelope: AI often has unnaturally smooth frequency transitions.
   - Rhythmic Jitter: Real humans have microscopic timing irregularities. AI is often too "on the grid."
   - Breathing: AI breathing sounds are often additive/looped. Human breathing interacts with the vocal tract organically.
   - Phonation: Look for "neural vocoder buzz" or a lack of saliva/mouth-click artifacts.

2. Classification Rules:
   - If you detect any "too-perfect" cadence or spectral smoothness, classify as "AI_GENERATED".
   - Only classify as "HUMAN" if there are undeniable organic imperfections and a natural acoustic interaction.

3. Supported Languages: Tamil, English, Hindi, Malayalam, Telugu.`

// verdictSchema is the structured output the model must produce
func verdictSchema() *genai.Schema {
	classifications := make([]string, len(entities.Classifications))
	for i, c := range entities.Classifications {
		classifications[i] = string(c)
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"classification": {
				Type:        genai.TypeString,
				Description: "Must be AI_GENERATED or HUMAN",
				Enum:        classifications,
			},
			"confidence": {Type: genai.TypeNumber},
			"language":   {Type: genai.TypeString},
			"explanation": {
				Type:        genai.TypeString,
				Description: "Detailed forensic reasoning based on acoustic micro-artifacts.",
			},
		},
		Required: []string{"classification", "confidence", "language", "explanation"},
	}
}
