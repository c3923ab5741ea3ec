package uploader

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/satriahrh/voxverify/domain/entities"
)

// Render writes a verdict card. sample may be nil.
func Render(w io.Writer, result *entities.DetectionResult, sample *entities.UploadedSample, now time.Time) error {
	verdict := "Authentic Human"
	if result.IsAI() {
		verdict = "Synthetic Detected"
	}

	analyzed := humanize.RelTime(time.UnixMilli(result.Timestamp), now, "ago", "from now")

	lines := []string{
		verdict,
		fmt.Sprintf("  Classification: %s", result.Classification),
		fmt.Sprintf("  Confidence:     %d%%", ConfidencePercent(result.Confidence)),
		fmt.Sprintf("  Language:       %s", result.Language),
		fmt.Sprintf("  Explanation:    %s", result.Explanation),
		fmt.Sprintf("  Analyzed:       %s", analyzed),
	}
	if sample != nil {
		lines = append(lines, fmt.Sprintf("  Sample:         %s (%s)", sample.Name, humanize.Bytes(uint64(sample.Size()))))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// ConfidencePercent rounds a 0..1 confidence to a whole percentage
func ConfidencePercent(confidence float64) int {
	return int(math.Round(confidence * 100))
}
