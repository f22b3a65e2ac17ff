package aep

import (
	"errors"
	"fmt"

	"github.com/samcharles93/aepdown/pkg/rifx"
)

var (
	ErrUnknownVersion     = errors.New("aep: unknown version signature")
	ErrUnsupportedVersion = errors.New("aep: unsupported version")
	ErrInvalidTarget      = errors.New("aep: target is not older than source")

	// Container errors surface unchanged from the chunk locator.
	ErrInvalidContainer = rifx.ErrInvalidContainer
	ErrChunkNotFound    = rifx.ErrChunkNotFound
	ErrTruncatedChunk   = rifx.ErrTruncatedChunk
)

// UnknownSignatureError carries the signature bytes that matched no table entry.
type UnknownSignatureError struct {
	Signature Signature
}

func (e *UnknownSignatureError) Error() string {
	return fmt.Sprintf("%v [%s]", ErrUnknownVersion, e.Signature)
}

func (e *UnknownSignatureError) Unwrap() error {
	return ErrUnknownVersion
}

// UnsupportedVersionError names a requested version that has no table entry.
type UnsupportedVersionError struct {
	Version string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("%v %q", ErrUnsupportedVersion, e.Version)
}

func (e *UnsupportedVersionError) Unwrap() error {
	return ErrUnsupportedVersion
}

// InvalidTargetError reports a target that is the same as or newer than the source.
type InvalidTargetError struct {
	Source Version
	Target Version
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("%v: cannot convert %s to %s", ErrInvalidTarget, e.Source, e.Target)
}

func (e *InvalidTargetError) Unwrap() error {
	return ErrInvalidTarget
}

// ErrorKind maps an engine error to a stable code for logs, reports and API
// responses. It returns "" for errors outside the engine's error set.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidContainer):
		return "invalid_container"
	case errors.Is(err, ErrChunkNotFound):
		return "chunk_not_found"
	case errors.Is(err, ErrTruncatedChunk):
		return "truncated_chunk"
	case errors.Is(err, ErrUnknownVersion):
		return "unknown_version"
	case errors.Is(err, ErrUnsupportedVersion):
		return "unsupported_version"
	case errors.Is(err, ErrInvalidTarget):
		return "invalid_target"
	default:
		return ""
	}
}
