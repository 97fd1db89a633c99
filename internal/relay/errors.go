package relay

import "errors"

var (
	// ErrInvalidInput indicates a missing or malformed file reference or chat id.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFileTooLarge indicates the origin refuses direct fetches of this file.
	// The send-to-chat path has no such ceiling.
	ErrFileTooLarge = errors.New("file too large for direct download")

	// ErrUpstreamFetchFailed indicates the byte fetch from the origin failed.
	ErrUpstreamFetchFailed = errors.New("upstream fetch failed")

	// ErrRelayFailed indicates no dispatch method accepted the file reference.
	ErrRelayFailed = errors.New("relay failed")
)
