package files

import "errors"

var (
	// ErrUnrecognizedPayload indicates the inbound message carried no file the
	// service knows how to reference. The user has to resend.
	ErrUnrecognizedPayload = errors.New("unrecognized payload")

	// ErrPersistence indicates the metadata store rejected a write.
	ErrPersistence = errors.New("persistence error")
)
