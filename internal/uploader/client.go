package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/satriahrh/voxverify/domain"
	"github.com/satriahrh/voxverify/domain/entities"
)

// BridgeError is an error reply from the analysis bridge
type BridgeError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *BridgeError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Details)
	}
	return e.Message
}

// BridgeClient posts encoded samples to the analysis bridge
type BridgeClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewBridgeClient creates a client for the bridge at baseURL
func NewBridgeClient(baseURL string, httpClient *http.Client) *BridgeClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &BridgeClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Analyze sends one payload and decodes the verdict
func (b *BridgeClient) Analyze(ctx context.Context, payload entities.EncodedPayload) (*entities.DetectionResult, error) {
	body, err := json.Marshal(map[string]string{domain.FieldAudioBase64: string(payload)})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach analysis bridge: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error   string `json:"error"`
			Details string `json:"details"`
		}
		if err := json.Unmarshal(raw, &e); err != nil || e.Error == "" {
			e.Error = fmt.Sprintf("analysis bridge returned %s", resp.Status)
		}
		return nil, &BridgeError{StatusCode: resp.StatusCode, Message: e.Error, Details: e.Details}
	}

	var result entities.DetectionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	return &result, nil
}
