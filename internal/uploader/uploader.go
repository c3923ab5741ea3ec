// Package uploader is the client side of VoxVerify: it picks an MP3 sample,
// encodes it, hands it to the analysis bridge and keeps the state a UI
// renders (selection, payload, verdict, a single error slot, busy and copied
// flags).
package uploader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/satriahrh/voxverify/domain/entities"
)

const defaultAckDuration = 2 * time.Second

var (
	ErrNoSample = errors.New("please select an audio file first")
	ErrBusy     = errors.New("an analysis is already running")
)

// Analyzer submits an encoded sample for classification
type Analyzer interface {
	Analyze(ctx context.Context, payload entities.EncodedPayload) (*entities.DetectionResult, error)
}

// Clipboard receives copied payloads
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Option configures an Uploader
type Option func(*Uploader)

// WithClipboard replaces the system clipboard
func WithClipboard(c Clipboard) Option {
	return func(u *Uploader) { u.clipboard = c }
}

// WithAckDuration sets how long Copied stays true after a copy
func WithAckDuration(d time.Duration) Option {
	return func(u *Uploader) { u.ackDuration = d }
}

// State is a snapshot of what the UI shows
type State struct {
	Sample  *entities.UploadedSample
	Payload entities.EncodedPayload
	Result  *entities.DetectionResult
	Err     error
	Busy    bool
	Copied  bool
}

// Uploader holds the selection and verdict for one user
type Uploader struct {
	analyzer    Analyzer
	clipboard   Clipboard
	ackDuration time.Duration
	logger      *zap.Logger

	mu         sync.Mutex
	sample     *entities.UploadedSample
	payload    entities.EncodedPayload
	result     *entities.DetectionResult
	err        error
	busy       bool
	copied     bool
	copyTimer  *time.Timer
	copySeq    int
	encoding   chan struct{}
	generation int
}

// NewUploader creates a new uploader
func NewUploader(analyzer Analyzer, logger *zap.Logger, opts ...Option) *Uploader {
	u := &Uploader{
		analyzer:    analyzer,
		clipboard:   systemClipboard{},
		ackDuration: defaultAckDuration,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// LoadSample reads a file and sniffs its MIME type from content
func LoadSample(path string) (entities.UploadedSample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entities.UploadedSample{}, fmt.Errorf("failed to read sample: %w", err)
	}
	return entities.UploadedSample{
		Name:     filepath.Base(path),
		MIMEType: mimetype.Detect(data).String(),
		Data:     data,
	}, nil
}

// Encode reads r fully and returns its base64 form with no data-URL header
func Encode(r io.Reader) (entities.EncodedPayload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read sample: %w", err)
	}
	return entities.EncodePayload(data), nil
}

// SelectFile accepts an MP3 sample and starts encoding it in the background.
// Other types only set the error slot; the previous selection and verdict
// are left as they were.
func (u *Uploader) SelectFile(sample entities.UploadedSample) bool {
	if err := sample.Validate(); err != nil {
		u.mu.Lock()
		u.err = err
		u.mu.Unlock()
		return false
	}

	u.mu.Lock()
	u.sample = &sample
	u.payload = ""
	u.result = nil
	u.err = nil
	u.resetCopiedLocked()
	u.generation++
	generation := u.generation
	done := make(chan struct{})
	u.encoding = done
	u.mu.Unlock()

	go func() {
		defer close(done)

		payload, err := Encode(bytes.NewReader(sample.Data))

		u.mu.Lock()
		defer u.mu.Unlock()
		if generation != u.generation {
			return
		}
		if err != nil {
			u.logger.Error("Failed to encode sample",
				zap.String("name", sample.Name),
				zap.Error(err))
			u.err = fmt.Errorf("could not read the selected file: %w", err)
			return
		}
		u.payload = payload
	}()

	return true
}

// WaitEncoded blocks until the current selection has been encoded
func (u *Uploader) WaitEncoded(ctx context.Context) error {
	u.mu.Lock()
	done := u.encoding
	u.mu.Unlock()

	if done == nil {
		return ErrNoSample
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Analyze submits the encoded selection. Without a selection and payload it
// fails locally and never touches the network.
func (u *Uploader) Analyze(ctx context.Context) (*entities.DetectionResult, error) {
	u.mu.Lock()
	if u.sample == nil || u.payload == "" {
		u.err = ErrNoSample
		u.mu.Unlock()
		return nil, ErrNoSample
	}
	if u.busy {
		u.mu.Unlock()
		return nil, ErrBusy
	}
	payload := u.payload
	generation := u.generation
	u.busy = true
	u.err = nil
	u.result = nil
	u.mu.Unlock()

	defer func() {
		u.mu.Lock()
		u.busy = false
		u.mu.Unlock()
	}()

	result, err := u.analyzer.Analyze(ctx, payload)

	u.mu.Lock()
	defer u.mu.Unlock()
	if generation != u.generation {
		// A newer selection owns the result slot
		u.logger.Debug("Dropping verdict for a replaced sample", zap.Error(err))
		return result, err
	}
	if err != nil {
		u.logger.Warn("Analysis failed", zap.Error(err))
		u.err = err
		return nil, err
	}
	u.result = result
	return result, nil
}

// CopyEncodedPayload puts the payload on the clipboard and raises the
// copied flag for the acknowledgement window. It does nothing without a
// payload.
func (u *Uploader) CopyEncodedPayload() (bool, error) {
	u.mu.Lock()
	payload := u.payload
	u.mu.Unlock()

	if payload == "" {
		return false, nil
	}

	if err := u.clipboard.WriteAll(string(payload)); err != nil {
		err = fmt.Errorf("failed to copy payload: %w", err)
		u.mu.Lock()
		u.err = err
		u.mu.Unlock()
		return false, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	u.resetCopiedLocked()
	u.copied = true
	seq := u.copySeq
	u.copyTimer = time.AfterFunc(u.ackDuration, func() {
		u.mu.Lock()
		defer u.mu.Unlock()
		if seq == u.copySeq {
			u.copied = false
		}
	})
	return true, nil
}

// State returns a snapshot of the current state
func (u *Uploader) State() State {
	u.mu.Lock()
	defer u.mu.Unlock()
	return State{
		Sample:  u.sample,
		Payload: u.payload,
		Result:  u.result,
		Err:     u.err,
		Busy:    u.busy,
		Copied:  u.copied,
	}
}

func (u *Uploader) resetCopiedLocked() {
	u.copySeq++
	if u.copyTimer != nil {
		u.copyTimer.Stop()
		u.copyTimer = nil
	}
	u.copied = false
}
