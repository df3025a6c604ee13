package ports

import "errors"

var (
	// ErrOutlineNotFound is returned when the outline file does not exist
	ErrOutlineNotFound = errors.New("outline not found")

	// ErrInvalidDocument is returned when a document file fails validation
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEncoderNotFound is returned when the video encoder binary is missing
	ErrEncoderNotFound = errors.New("video encoder not found")

	// ErrBrowserNotFound is returned when no headless browser is installed
	ErrBrowserNotFound = errors.New("browser not found")
)
