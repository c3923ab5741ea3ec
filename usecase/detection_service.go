package usecase

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/satriahrh/voxverify/domain"
	"github.com/satriahrh/voxverify/domain/entities"
	"github.com/satriahrh/voxverify/domain/repositories"
)

// CredentialSource returns the model credential for one call
type CredentialSource func() string

// EnvCredential reads the named environment variable on every call
func EnvCredential(name string) CredentialSource {
	return func() string {
		return strings.TrimSpace(os.Getenv(name))
	}
}

// DetectionService bridges an analysis request to the voice classifier
type DetectionService struct {
	classifier repositories.VoiceClassifier
	credential CredentialSource
	now        func() time.Time
	logger     *zap.Logger
}

// NewDetectionService creates a new detection service
func NewDetectionService(
	classifier repositories.VoiceClassifier,
	credential CredentialSource,
	logger *zap.Logger,
) *DetectionService {
	return &DetectionService{
		classifier: classifier,
		credential: credential,
		now:        time.Now,
		logger:     logger,
	}
}

// WithClock replaces the clock used to stamp results
func (s *DetectionService) WithClock(now func() time.Time) *DetectionService {
	s.now = now
	return s
}

// Analyze runs one request through validation, the classifier call and
// result parsing. Every returned error is an *domain.AnalysisError.
func (s *DetectionService) Analyze(ctx context.Context, req *domain.AnalyzeRequest) (*entities.DetectionResult, error) {
	logger := s.logger.With(zap.String("classifier", s.classifier.Name()))
	logger.Debug("Analysis request", zap.String("stage", string(domain.StageReceived)))

	payload, field, ok := req.Payload()
	if !ok {
		logger.Warn("Request carries no audio data", zap.String("stage", string(domain.StageRejected)))
		return nil, domain.ErrMissingAudioData()
	}

	apiKey := s.credential()
	if apiKey == "" {
		logger.Error("Model credential is not configured", zap.String("stage", string(domain.StageRejected)))
		return nil, domain.ErrServerMisconfigured()
	}
	logger.Debug("Request validated", zap.String("stage", string(domain.StageValidated)))

	logger.Info("Dispatching sample",
		zap.String("stage", string(domain.StageDispatched)),
		zap.String("field", field),
		zap.Int("payloadBytes", len(payload)))

	// Client disconnects do not abort a dispatched call
	started := s.now()
	text, err := s.classifier.Classify(context.WithoutCancel(ctx), apiKey, payload)
	if err != nil {
		logger.Error("Classifier call failed",
			zap.String("stage", string(domain.StageFailed)),
			zap.Duration("elapsed", s.now().Sub(started)),
			zap.Error(err))

		var ae *domain.AnalysisError
		if errors.As(err, &ae) {
			return nil, ae
		}
		return nil, domain.NewError(domain.KindUpstreamAnalysis, "Internal Analysis Error", err)
	}

	result, err := entities.ParseDetectionResult(text)
	if err != nil {
		logger.Error("Classifier reply rejected",
			zap.String("stage", string(domain.StageFailed)),
			zap.Int("replyBytes", len(text)),
			zap.Error(err))
		return nil, domain.NewError(domain.KindMalformedUpstreamResult, "Malformed analysis result", err)
	}

	logger.Debug("Reply parsed", zap.String("stage", string(domain.StageParsed)))

	result.Timestamp = s.now().UnixMilli()

	logger.Info("Analysis complete",
		zap.String("stage", string(domain.StageResponded)),
		zap.String("classification", string(result.Classification)),
		zap.Float64("confidence", result.Confidence),
		zap.String("language", result.Language),
		zap.Duration("elapsed", s.now().Sub(started)))

	return result, nil
}
