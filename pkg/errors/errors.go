// Package errors provides typed errors for chunkctl
package errors

import (
	"errors"
	"fmt"
)

// Kind represents the category of error
type Kind int

const (
	// KindUnsupportedFormat indicates a file extension outside the supported set
	KindUnsupportedFormat Kind = iota
	// KindInvalidSizeSpec indicates a malformed size string (e.g. "abc")
	KindInvalidSizeSpec
	// KindNoChunksFound indicates a merge directory with no matching chunk files
	KindNoChunksFound
	// KindAmbiguousChunkSet indicates chunks from more than one source in a directory
	KindAmbiguousChunkSet
	// KindEstimationFailure indicates a sampling/parsing error during size estimation
	KindEstimationFailure
	// KindPartialWrite indicates an I/O failure mid-split or mid-merge
	KindPartialWrite
	// KindConfig indicates a configuration error
	KindConfig
)

// ChunkError is the base error type for all chunkctl errors
type ChunkError struct {
	Kind    Kind
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error returns the error message
func (e *ChunkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", kindString(e.Kind), e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", kindString(e.Kind), e.Message)
}

// Unwrap returns the underlying cause
func (e *ChunkError) Unwrap() error {
	return e.Cause
}

// New creates a new ChunkError
func New(kind Kind, message string, cause error) *ChunkError {
	return &ChunkError{
		Kind:    kind,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// WithContext adds context to the error
func (e *ChunkError) WithContext(key string, value interface{}) *ChunkError {
	e.Context[key] = value
	return e
}

// IsKind checks if an error is of a specific kind
func IsKind(err error, kind Kind) bool {
	var chunkErr *ChunkError
	if err == nil {
		return false
	}
	if errors.As(err, &chunkErr) {
		return chunkErr.Kind == kind
	}
	return false
}

// IsFatal returns true if the error aborts the whole operation.
// AmbiguousChunkSet and EstimationFailure are advisory: the first is
// reported and processing continues, the second degrades to a heuristic.
func IsFatal(err error) bool {
	var chunkErr *ChunkError
	if err == nil {
		return false
	}
	if !errors.As(err, &chunkErr) {
		return true
	}
	switch chunkErr.Kind {
	case KindAmbiguousChunkSet, KindEstimationFailure:
		return false
	default:
		return true
	}
}

func kindString(k Kind) string {
	switch k {
	case KindUnsupportedFormat:
		return "UNSUPPORTED_FORMAT"
	case KindInvalidSizeSpec:
		return "INVALID_SIZE_SPEC"
	case KindNoChunksFound:
		return "NO_CHUNKS_FOUND"
	case KindAmbiguousChunkSet:
		return "AMBIGUOUS_CHUNK_SET"
	case KindEstimationFailure:
		return "ESTIMATION_FAILURE"
	case KindPartialWrite:
		return "PARTIAL_WRITE"
	case KindConfig:
		return "CONFIG"
	default:
		return "UNKNOWN"
	}
}

// Convenience functions for common errors

// UnsupportedFormat creates an unsupported-format error for the given extension
func UnsupportedFormat(ext string) *ChunkError {
	return New(KindUnsupportedFormat, fmt.Sprintf("unsupported file type: %s", ext), nil)
}

// InvalidSizeSpec creates an invalid-size-spec error for the given input
func InvalidSizeSpec(spec string) *ChunkError {
	return New(KindInvalidSizeSpec,
		fmt.Sprintf("invalid size format: %q (use format like '50MB', '1.5GB', or '100KB')", spec), nil)
}

// NoChunksFound creates a no-chunks-found error for the given directory
func NoChunksFound(dir string) *ChunkError {
	return New(KindNoChunksFound, fmt.Sprintf("no chunk files found in directory: %s", dir), nil)
}

// PartialWrite creates a partial-write error
func PartialWrite(message string, cause error) *ChunkError {
	return New(KindPartialWrite, message, cause)
}

// ConfigError creates a configuration error
func ConfigError(message string, cause error) *ChunkError {
	return New(KindConfig, message, cause)
}
