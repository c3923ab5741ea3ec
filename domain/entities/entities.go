package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Classification is the verdict returned for a voice sample
type Classification string

const (
	ClassificationAIGenerated Classification = "AI_GENERATED"
	ClassificationHuman       Classification = "HUMAN"
)

// Classifications lists every valid verdict
var Classifications = []Classification{ClassificationAIGenerated, ClassificationHuman}

// SupportedLanguage is one of the spoken languages the detector is tuned for
type SupportedLanguage string

const (
	LanguageEnglish   SupportedLanguage = "English"
	LanguageTamil     SupportedLanguage = "Tamil"
	LanguageHindi     SupportedLanguage = "Hindi"
	LanguageMalayalam SupportedLanguage = "Malayalam"
	LanguageTelugu    SupportedLanguage = "Telugu"
)

// SupportedLanguages is the closed set of language labels
var SupportedLanguages = []SupportedLanguage{
	LanguageEnglish,
	LanguageTamil,
	LanguageHindi,
	LanguageMalayalam,
	LanguageTelugu,
}

var (
	ErrMalformedResult       = errors.New("malformed detection result")
	ErrUnknownClassification = errors.New("unknown classification")
	ErrUnsupportedLanguage   = errors.New("unsupported language")
)

// DetectionResult is the structured verdict sent back to clients
type DetectionResult struct {
	Classification Classification `json:"classification"`
	Confidence     float64        `json:"confidence"`
	Language       string         `json:"language"`
	Explanation    string         `json:"explanation"`
	Timestamp      int64          `json:"timestamp"` // ms since epoch, set by the bridge
}

// IsAI reports whether the sample was judged synthetic
func (r *DetectionResult) IsAI() bool {
	return r.Classification == ClassificationAIGenerated
}

// modelVerdict mirrors the response schema given to the model. Pointers let
// us tell a missing field from a zero value.
type modelVerdict struct {
	Classification *string  `json:"classification"`
	Confidence     *float64 `json:"confidence"`
	Language       *string  `json:"language"`
	Explanation    *string  `json:"explanation"`
}

// ParseDetectionResult decodes the model's JSON reply and validates it
// against the closed classification and language sets. The returned result
// has no timestamp.
func ParseDetectionResult(text string) (*DetectionResult, error) {
	var v modelVerdict
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}

	var missing []string
	if v.Classification == nil {
		missing = append(missing, "classification")
	}
	if v.Confidence == nil {
		missing = append(missing, "confidence")
	}
	if v.Language == nil {
		missing = append(missing, "language")
	}
	if v.Explanation == nil {
		missing = append(missing, "explanation")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing fields %s", ErrMalformedResult, strings.Join(missing, ", "))
	}

	classification, err := ParseClassification(*v.Classification)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResult, err)
	}

	language, err := ParseLanguage(*v.Language)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResult, err)
	}

	return &DetectionResult{
		Classification: classification,
		Confidence:     *v.Confidence,
		Language:       string(language),
		Explanation:    *v.Explanation,
	}, nil
}

// ParseClassification matches s case-insensitively against the known verdicts
func ParseClassification(s string) (Classification, error) {
	s = strings.TrimSpace(s)
	for _, c := range Classifications {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownClassification, s)
}

// ParseLanguage matches s case-insensitively against SupportedLanguages
func ParseLanguage(s string) (SupportedLanguage, error) {
	s = strings.TrimSpace(s)
	for _, l := range SupportedLanguages {
		if strings.EqualFold(s, string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
}
