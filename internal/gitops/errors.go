package gitops

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an engine failure so callers can react without parsing
// message text.
type Kind int

const (
	// KindBackend covers failures of the underlying object store.
	KindBackend Kind = iota
	// KindNotFound means a branch, remote, or ref does not exist.
	KindNotFound
	// KindAlreadyExists means a branch or remote name collides.
	KindAlreadyExists
	// KindInvalidOperation covers consistency-rule violations: self-merge,
	// deleting the checked-out branch, committing an empty index, merging a
	// branch that is already up to date.
	KindInvalidOperation
	// KindConflict means a normal merge left unresolved conflicts.
	KindConflict
	// KindUnknown means merge analysis produced an unrecognized result.
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindAlreadyExists:
		return "already exists"
	case KindInvalidOperation:
		return "invalid operation"
	case KindConflict:
		return "conflict"
	case KindUnknown:
		return "unknown"
	default:
		return "backend failure"
	}
}

// OpError is the failure type returned by every engine operation. Op names
// the attempted action, Subject the branch/remote/path it acted on.
type OpError struct {
	Kind    Kind
	Op      string
	Subject string
	// Paths lists conflicting paths for KindConflict errors.
	Paths []string
	Err   error
}

func (e *OpError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Subject != "" {
		fmt.Fprintf(&b, " %q", e.Subject)
	}
	fmt.Fprintf(&b, ": %s", e.Kind)
	if len(e.Paths) > 0 {
		fmt.Fprintf(&b, " in %s", strings.Join(e.Paths, ", "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *OpError) Unwrap() error { return e.Err }

// KindOf extracts the Kind from err, or KindBackend when err carries none.
func KindOf(err error) Kind {
	var op *OpError
	if errors.As(err, &op) {
		return op.Kind
	}
	return KindBackend
}

func opErr(kind Kind, op, subject string, err error) *OpError {
	return &OpError{Kind: kind, Op: op, Subject: subject, Err: err}
}
