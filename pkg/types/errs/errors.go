package errs

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrInvalidPayload = errors.New("invalid payload")

	ErrUpstreamStatus = errors.New("upstream returned unexpected status")
	ErrDetectorOutput = errors.New("label detector returned malformed output")
	ErrWorkerStopped  = errors.New("worker stopped")
	ErrAlreadyStarted = errors.New("already started")
)
