// File: internal/service/errors.go
package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidName = errors.New("name must contain only lowercase letters and hyphens")
	ErrNameTaken   = errors.New("bucket name already exists")

	// ErrPrecondition matches every *PreconditionError
	ErrPrecondition = errors.New("precondition not met")

	ErrBucketMissing = errors.New("bucket not in range")
	ErrObjectMissing = errors.New("object name out of range")
	ErrBucketInUse   = errors.New("bucket should be empty before deleting")
	ErrSameBucket    = errors.New("cannot copy to the same bucket")
)

// ValidationError rejects a candidate bucket name before any remote mutation
type ValidationError struct {
	Name string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid bucket name %q: %v", e.Name, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// PreconditionError is a locally detected rule violation. It is shown to the
// operator as guidance and never written to the diagnostic sink.
type PreconditionError struct {
	Op     string
	Target string
	Reason error
}

func (e *PreconditionError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Reason)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Reason)
}

func (e *PreconditionError) Unwrap() []error {
	return []error{ErrPrecondition, e.Reason}
}

// TransportError is a failure returned by the remote service or the local
// filesystem. It has already been reported when the caller sees it.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeRejected
	OutcomeNotApplicable
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRejected:
		return "rejected"
	case OutcomeNotApplicable:
		return "not applicable"
	default:
		return "failure"
	}
}

// Maps an operation's returned error onto its result tag
func OutcomeOf(err error) Outcome {
	if err == nil {
		return OutcomeSuccess
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return OutcomeRejected
	}
	if errors.Is(err, ErrPrecondition) {
		return OutcomeNotApplicable
	}
	return OutcomeFailure
}

func precondition(op, target string, reason error) error {
	return &PreconditionError{Op: op, Target: target, Reason: reason}
}
