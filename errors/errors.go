package errors

import "fmt"

var (
	ErrWorkerPanic         = fmt.Errorf("worker panic")
	ErrParticipantExists   = fmt.Errorf("participant already exists")
	ErrParticipantNotFound = fmt.Errorf("participant not found")
	ErrStorageUnavailable  = fmt.Errorf("storage unavailable")
	ErrInvalidPayload      = fmt.Errorf("invalid payload")
)
