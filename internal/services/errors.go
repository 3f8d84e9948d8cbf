package services

import (
	"errors"
	"fmt"
	"strings"

	"speechtag/internal/queue"
)

var (
	// ErrDecode marks corrupt or unsupported audio input. Fatal for the
	// file, never for the batch.
	ErrDecode = errors.New("decode error")
	// ErrDegenerateAudio marks silent or sub-minimum-length recordings.
	// Non-fatal; the pipeline still produces a record.
	ErrDegenerateAudio = errors.New("degenerate audio")
	// ErrTranscription marks a failed or unavailable transcription call.
	// Non-fatal; linguistic tags degrade instead.
	ErrTranscription = errors.New("transcription unavailable")
	// ErrConfiguration marks invalid settings. Fatal at startup.
	ErrConfiguration = errors.New("configuration error")
	// ErrValidation marks outputs that need human attention.
	ErrValidation = errors.New("validation error")
	// ErrTransient marks retryable failures (I/O, database).
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later status classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureStatus maps a pipeline error to the queue status the workflow
// manager should persist after the item fails. Decode failures are final
// for the file; validation problems land in review; everything else is a
// retryable failure.
func FailureStatus(err error) queue.Status {
	switch {
	case errors.Is(err, ErrValidation):
		return queue.StatusReview
	default:
		return queue.StatusFailed
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
