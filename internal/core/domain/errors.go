package domain

import "errors"

// Domain errors represent decode-pipeline and media-resolution failures.
// These are distinct from infrastructure errors.
var (
	// ErrDecode indicates malformed base64 or byte content.
	ErrDecode = errors.New("decode failed")

	// ErrOpen indicates the SQL engine or archive adapter rejected the byte buffer.
	ErrOpen = errors.New("open failed")

	// ErrQuery indicates malformed SQL or a runtime failure during projection.
	ErrQuery = errors.New("query failed")

	// ErrExtract indicates an archive member extraction failure.
	ErrExtract = errors.New("extract failed")

	// ErrManifest indicates the media manifest is missing or malformed.
	ErrManifest = errors.New("media manifest invalid")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrClosed indicates the component has been disposed.
	ErrClosed = errors.New("closed")

	// ErrUnsupportedFormat indicates an unknown container format.
	ErrUnsupportedFormat = errors.New("unsupported format")
)
