package errors

import (
	"math"
	"unicode"

	"github.com/google/uuid"
)

const (
	// MaxLabelLength is the longest tag label accepted by ValidateLabel.
	MaxLabelLength = 256

	// MaxDimension is the largest rectangle width or height accepted by
	// ValidateSize. Areas and coordinate sums stay far from int overflow.
	MaxDimension = 1 << 20
)

// ValidateSize checks that both rectangle dimensions are in
// [1, MaxDimension].
func ValidateSize(width, height int) error {
	if width <= 0 {
		return New(ErrCodeInvalidArgument, "rectangle width must be positive, got %d", width)
	}
	if height <= 0 {
		return New(ErrCodeInvalidArgument, "rectangle height must be positive, got %d", height)
	}
	if width > MaxDimension || height > MaxDimension {
		return New(ErrCodeInvalidArgument, "rectangle %dx%d exceeds the %d limit", width, height, MaxDimension)
	}
	return nil
}

// ValidateStep checks that a spiral step is a finite, strictly positive number.
// name is used in the message ("angle step", "radius step").
func ValidateStep(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(ErrCodeInvalidArgument, "%s must be positive, got %v", name, v)
	}
	return nil
}

// ValidateLabel validates a tag label for display and storage.
// Empty labels are allowed; tags are not required to carry text.
func ValidateLabel(label string) error {
	if len(label) > MaxLabelLength {
		return New(ErrCodeInvalidInput, "label too long (max %d characters)", MaxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "label contains invalid control characters")
		}
	}
	return nil
}

// ValidateSessionID checks that id is a canonical UUID string.
func ValidateSessionID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "session id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid session id %q", id)
	}
	return nil
}
