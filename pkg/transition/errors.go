package transition

import (
	"errors"
	"fmt"

	"github.com/routers-org/routers/pkg/collapse"
)

// Kind is the error taxonomy a failed match surfaces.
type Kind int

const (
	// InputError marks an invalid input linestring: fewer than 2 points,
	// or non-finite coordinates. Fatal for the request.
	InputError Kind = iota
	// NoCandidates marks an observation that yielded no candidates within
	// the search radius.
	NoCandidates
	// CollapseFailure marks an A* failure or an internal read-lock
	// failure during collapse. Fatal for the request.
	CollapseFailure
)

func (k Kind) String() string {
	switch k {
	case InputError:
		return "InputError"
	case NoCandidates:
		return "NoCandidates"
	case CollapseFailure:
		return "CollapseFailure"
	default:
		return "Unknown"
	}
}

// CollapseReason distinguishes the two ways collapse can fail, mirroring the original's CollapseError enum.
type CollapseReason int

const (
	NoPathFound CollapseReason = iota
	ReadLockFailed
)

func (r CollapseReason) String() string {
	if r == ReadLockFailed {
		return "ReadLockFailed"
	}
	return "NoPathFound"
}

// MatchError is the error type every match-level failure is reported as,
// following map_router's errors.New/fmt.Errorf style (pkg/routing's
// ErrPointTooFar/ErrNoRoute) extended with a Kind discriminator to carry
// input, no-candidate, and collapse-failure errors under one type. A nil
// candidate arena handed to collapse is reported as
// CollapseFailure/ReadLockFailed rather than propagated as a panic.
type MatchError struct {
	Kind   Kind
	Reason CollapseReason
	Err    error
}

func (e *MatchError) Error() string {
	if e.Kind == CollapseFailure {
		return fmt.Sprintf("map match: %s (%s): %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("map match: %s: %v", e.Kind, e.Err)
}

func (e *MatchError) Unwrap() error { return e.Err }

// ErrTooFewPoints and ErrNonFiniteCoordinate are the InputError causes.
var (
	ErrTooFewPoints        = errors.New("input linestring has fewer than 2 points")
	ErrNonFiniteCoordinate = errors.New("input linestring contains a non-finite coordinate")
)

// ErrNoCandidatesForObservation is the NoCandidates cause.
var ErrNoCandidatesForObservation = errors.New("observation yielded no candidates within the search radius")

func newInputError(cause error) *MatchError {
	return &MatchError{Kind: InputError, Err: cause}
}

func newNoCandidatesError(cause error) *MatchError {
	return &MatchError{Kind: NoCandidates, Err: cause}
}

// newCollapseError maps a pkg/collapse sentinel into the Kind/Reason
// taxonomy.
func newCollapseError(cause error) *MatchError {
	reason := NoPathFound
	if errors.Is(cause, collapse.ErrReadLockFailed) {
		reason = ReadLockFailed
	}
	return &MatchError{Kind: CollapseFailure, Reason: reason, Err: cause}
}
