package studyModel

import (
	"errors"
	"fmt"
)

// Pipeline error taxonomy. Every failure surfaced to the user maps to one
// of these, none are silently swallowed.
var (
	// ErrUnsupportedType - unrecognized file type, fails before any I/O.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrSizeLimit - media exceeds the transcription request ceiling, fails before upload.
	ErrSizeLimit = errors.New("file exceeds transcription size limit")

	// ErrEmptyArchive - a presentation package with no slide entries.
	ErrEmptyArchive = errors.New("no slides found in the uploaded file")

	// ErrInsufficientText - aggregate extracted text below the minimum
	// threshold, the catch-all for scanned/empty/corrupt documents.
	ErrInsufficientText = errors.New("insufficient text extracted from document")

	// ErrParseFailure - the summarization response is not valid JSON after
	// recovery attempts.
	ErrParseFailure = errors.New("failed to parse AI response")
)

// RemoteError is a non-success HTTP status from an external endpoint,
// propagated with status code and raw body.
type RemoteError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s error (%d): %s", e.Service, e.StatusCode, e.Body)
}

func IsRemoteError(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
