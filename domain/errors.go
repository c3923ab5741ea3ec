package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies failures of the analysis pipeline
type ErrorKind string

const (
	KindInvalidFileType         ErrorKind = "invalid_file_type"
	KindInvalidRequest          ErrorKind = "invalid_request"
	KindMissingAudioData        ErrorKind = "missing_audio_data"
	KindInvalidAudioData        ErrorKind = "invalid_audio_data"
	KindServerMisconfigured     ErrorKind = "server_misconfigured"
	KindUpstreamAnalysis        ErrorKind = "upstream_analysis_error"
	KindMalformedUpstreamResult ErrorKind = "malformed_upstream_result"
)

// AnalysisError is a failure with a user-facing message and an optional cause
type AnalysisError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// Details returns the underlying cause as text, or "" when there is none
func (e *AnalysisError) Details() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// NewError creates an AnalysisError
func NewError(kind ErrorKind, message string, err error) *AnalysisError {
	return &AnalysisError{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the first AnalysisError in err's chain.
// Unclassified errors count as upstream failures.
func KindOf(err error) ErrorKind {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUpstreamAnalysis
}

var (
	missingAudioMessage = fmt.Sprintf("Missing audio data. Use '%s' key (accepted keys: %s).",
		FieldAudioBase64Format, quoteAll(AcceptedAudioFields))
)

// ErrMissingAudioData builds the rejection for a body without any audio field
func ErrMissingAudioData() *AnalysisError {
	return NewError(KindMissingAudioData, missingAudioMessage, nil)
}

// ErrServerMisconfigured builds the rejection for a missing model credential
func ErrServerMisconfigured() *AnalysisError {
	return NewError(KindServerMisconfigured, "Server API Key missing", nil)
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return strings.Join(quoted, ", ")
}
