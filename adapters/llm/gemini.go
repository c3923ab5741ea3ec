package llm

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/satriahrh/voxverify/domain"
	"github.com/satriahrh/voxverify/domain/entities"
	"github.com/satriahrh/voxverify/domain/repositories"
)

// GeminiConfig holds configuration for the Gemini classifier
// Optional fields with defaults:
// - Model: model identifier (default: "gemini-3-pro-preview")
// - ThinkingBudget: thinking token budget, -1 lets the model decide (default: 32768)
// - BaseURL: API endpoint override, empty uses the SDK default
// - HTTPClient: transport override, nil uses the SDK default
type GeminiConfig struct {
	Model          string
	ThinkingBudget int32
	BaseURL        string
	HTTPClient     *http.Client
}

// GeminiClassifier implements VoiceClassifier using Google's Gemini API
type GeminiClassifier struct {
	model          string
	thinkingBudget int32
	baseURL        string
	httpClient     *http.Client
	logger         *zap.Logger
}

var _ repositories.VoiceClassifier = (*GeminiClassifier)(nil)

// ValidateGeminiConfig validates the GeminiConfig
func ValidateGeminiConfig(config GeminiConfig) error {
	if config.ThinkingBudget < -1 {
		return fmt.Errorf("thinking budget must be -1 or positive, got %d", config.ThinkingBudget)
	}
	return nil
}

// NewGeminiClassifier creates a new Gemini classifier. No client is created
// here: the credential is re-read for every call.
func NewGeminiClassifier(config GeminiConfig, logger *zap.Logger) (*GeminiClassifier, error) {
	if err := ValidateGeminiConfig(config); err != nil {
		return nil, err
	}

	model := config.Model
	if model == "" {
		model = defaultModel
		logger.Info("Using default model", zap.String("model", model))
	}

	thinkingBudget := config.ThinkingBudget
	if thinkingBudget == 0 {
		thinkingBudget = defaultThinkingBudget
		logger.Info("Using default thinking budget", zap.Int32("thinkingBudget", thinkingBudget))
	}

	return &GeminiClassifier{
		model:          model,
		thinkingBudget: thinkingBudget,
		baseURL:        config.BaseURL,
		httpClient:     config.HTTPClient,
		logger:         logger,
	}, nil
}

// Name implements repositories.VoiceClassifier
func (g *GeminiClassifier) Name() string {
	return g.model
}

// Classify implements repositories.VoiceClassifier
func (g *GeminiClassifier) Classify(ctx context.Context, apiKey string, audio entities.EncodedPayload) (string, error) {
	data, err := audio.Decode()
	if err != nil {
		return "", domain.NewError(domain.KindInvalidAudioData, "Audio data is not valid base64", err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  g.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: g.baseURL},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, audioMIMEType),
			genai.NewPartFromText(forensicPrompt),
		}, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(forensicSystemInstruction, genai.RoleUser),
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr(g.thinkingBudget),
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   verdictSchema(),
	}

	g.logger.Debug("Sending sample to Gemini",
		zap.String("model", g.model),
		zap.Int("audioBytes", len(data)))

	response, err := client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := response.Text()
	if text == "" {
		g.logger.Warn("Empty response from Gemini", zap.String("model", g.model))
	}

	return text, nil
}
