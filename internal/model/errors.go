package model

import "fmt"

// The three failure classes every operation can end in. All are terminal
// for the triggering operation: nothing retries, nothing escalates, the
// user re-triggers if they want another attempt.

// ValidationError is a local, pre-network rejection (mismatched
// confirmation, weak password, missing file). It never reaches the wire.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// RemoteRejection means the server responded but declined the request. The
// message is the server's own wording when supplied, else a fixed fallback
// chosen at the API boundary.
type RemoteRejection struct {
	Message string
}

func (e *RemoteRejection) Error() string { return e.Message }

// TransportFailure covers unreachable servers and responses that could not
// be decoded.
type TransportFailure struct {
	Err error
}

func (e *TransportFailure) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportFailure) Unwrap() error { return e.Err }
