package entities

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Accepted sample MIME types
const (
	MIMETypeMPEG = "audio/mpeg"
	MIMETypeMP3  = "audio/mp3"
)

var ErrInvalidFileType = errors.New("please upload an MP3 file")

// UploadedSample is a voice recording picked by the user
type UploadedSample struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Size returns the sample length in bytes
func (s *UploadedSample) Size() int {
	return len(s.Data)
}

// Validate rejects anything that is not declared as MP3
func (s *UploadedSample) Validate() error {
	if s.MIMEType != MIMETypeMPEG && s.MIMEType != MIMETypeMP3 {
		return fmt.Errorf("%w: got %q", ErrInvalidFileType, s.MIMEType)
	}
	return nil
}

// EncodedPayload is the base64 form of a sample, without any data-URL header
type EncodedPayload string

// EncodePayload base64-encodes raw sample bytes
func EncodePayload(data []byte) EncodedPayload {
	return EncodedPayload(base64.StdEncoding.EncodeToString(data))
}

// StripDataURLPrefix drops everything up to and including the first comma
// when s looks like a data URL. Other strings are returned unchanged.
func StripDataURLPrefix(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Decode returns the raw audio bytes. Padded and unpadded standard base64 are
// accepted, as is a leading data-URL header.
func (p EncodedPayload) Decode() ([]byte, error) {
	s := strings.TrimSpace(StripDataURLPrefix(string(p)))
	if s == "" {
		return nil, errors.New("empty payload")
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}
	if raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "=")); rawErr == nil {
		return raw, nil
	}
	return nil, fmt.Errorf("failed to decode base64 audio: %w", err)
}
