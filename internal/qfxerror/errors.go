// Package qfxerror defines the error types returned while reading, converting
// and verifying QFX files.
package qfxerror

import (
	"errors"
	"fmt"
)

// Process exit codes returned by the CLI for each error class.
const (
	ExitGeneric           = 1
	ExitFileNotFound      = 2
	ExitMalformedDocument = 3
	ExitVerification      = 4
)

// FileNotFoundError is returned when an input file does not exist or is a directory.
type FileNotFoundError struct {
	FilePath string
	Err      error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("input file '%s' not found", e.FilePath)
}

func (e *FileNotFoundError) Unwrap() error {
	return e.Err
}

// MissingFieldError is returned when a required routing-identifier tag is absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field <%s> not found in document", e.Field)
}

// MissingDateRangeError reports that no usable <DTSTART>/<DTEND> range exists.
// It only degrades output naming and never aborts a conversion.
type MissingDateRangeError struct {
	Reason string
}

func (e *MissingDateRangeError) Error() string {
	if e.Reason == "" {
		return "could not find date range in document"
	}
	return fmt.Sprintf("could not find date range in document: %s", e.Reason)
}

// MalformedDocumentError is returned when transaction records exist but their
// amounts cannot be located or parsed.
type MalformedDocumentError struct {
	FilePath string
	Reason   string
	Snippet  string
}

func (e *MalformedDocumentError) Error() string {
	msg := "malformed document"
	if e.FilePath != "" {
		msg = fmt.Sprintf("malformed document '%s'", e.FilePath)
	}
	if e.Snippet != "" {
		return fmt.Sprintf("%s: %s. Content snippet: '%s'", msg, e.Reason, e.Snippet)
	}
	return fmt.Sprintf("%s: %s", msg, e.Reason)
}

// VerificationFailure is returned after a verification pass whose overall
// status is false. The converted file is left on disk.
type VerificationFailure struct {
	OutputPath   string
	FailedChecks []string
}

func (e *VerificationFailure) Error() string {
	if e.OutputPath != "" {
		return fmt.Sprintf("conversion verification failed for '%s': %v", e.OutputPath, e.FailedChecks)
	}
	return fmt.Sprintf("conversion verification failed: %v", e.FailedChecks)
}

// ExitCode maps an error returned by a command to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var notFound *FileNotFoundError
	var missingField *MissingFieldError
	var malformed *MalformedDocumentError
	var verification *VerificationFailure

	switch {
	case errors.As(err, &notFound):
		return ExitFileNotFound
	case errors.As(err, &missingField), errors.As(err, &malformed):
		return ExitMalformedDocument
	case errors.As(err, &verification):
		return ExitVerification
	default:
		return ExitGeneric
	}
}
