package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeInvalidLetter  = "DIR001"
	ErrCodeInvalidPage    = "DIR002"
	ErrCodeInvalidOrdinal = "DIR003"
	ErrCodeExportFailed   = "DIR004"
	ErrCodeInvalidRequest = "DIR005"
)

// Errors
var (
	ErrInvalidLetter  = errors.New("letter filter must be 'all' or a single letter A-Z")
	ErrInvalidPage    = errors.New("page must be a positive integer")
	ErrInvalidOrdinal = errors.New("entry id must be a positive integer")
	ErrExportFailed   = errors.New("failed to export directory")

	// Source errors never reach the caller; the reconciler degrades instead
	ErrRemoteUnavailable = errors.New("remote profile source unavailable")
	ErrLocalUnavailable  = errors.New("local directory cache unavailable")
)

// DirectoryError custom error type
type DirectoryError struct {
	Code    string
	Message string
	Err     error
}

func (e *DirectoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DirectoryError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewInvalidLetterError(letter string) *DirectoryError {
	return &DirectoryError{
		Code:    ErrCodeInvalidLetter,
		Message: fmt.Sprintf("Invalid letter filter %q", letter),
		Err:     ErrInvalidLetter,
	}
}

func NewInvalidPageError() *DirectoryError {
	return &DirectoryError{
		Code:    ErrCodeInvalidPage,
		Message: "Invalid page number",
		Err:     ErrInvalidPage,
	}
}

func NewInvalidOrdinalError(raw string) *DirectoryError {
	return &DirectoryError{
		Code:    ErrCodeInvalidOrdinal,
		Message: fmt.Sprintf("Invalid entry id %q", raw),
		Err:     ErrInvalidOrdinal,
	}
}

func NewExportFailedError(err error) *DirectoryError {
	return &DirectoryError{
		Code:    ErrCodeExportFailed,
		Message: "Failed to export directory",
		Err:     fmt.Errorf("%w: %v", ErrExportFailed, err),
	}
}
