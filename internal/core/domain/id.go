package domain

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// AssetID is the opaque unique identifier of an asset. IDs are immutable
// once assigned and are only created through NewAssetID or ParseAssetID.
type AssetID string

// maxIDLength bounds ids coming from external import pipelines.
const maxIDLength = 128

// NewAssetID generates a fresh random asset id.
func NewAssetID() AssetID {
	return AssetID(uuid.NewString())
}

// ParseAssetID validates an externally supplied id. It rejects empty,
// overlong, and non-printable ids so that ids are safe to use as map keys
// and in file names.
func ParseAssetID(s string) (AssetID, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty asset id", ErrInvalidArgument)
	}
	if trimmed != s {
		return "", fmt.Errorf("%w: asset id has surrounding whitespace: %q", ErrInvalidArgument, s)
	}
	if len(s) > maxIDLength {
		return "", fmt.Errorf("%w: asset id too long (%d chars, max %d)", ErrInvalidArgument, len(s), maxIDLength)
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return "", fmt.Errorf("%w: asset id contains whitespace or control characters: %q", ErrInvalidArgument, s)
		}
	}
	return AssetID(s), nil
}

// IsZero reports whether the id is unset.
func (id AssetID) IsZero() bool {
	return id == ""
}

// String returns the id as a plain string.
func (id AssetID) String() string {
	return string(id)
}
