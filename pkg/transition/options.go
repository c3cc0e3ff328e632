package transition

import "github.com/routers-org/routers/pkg/candidate"

// SolverVariant selects which reachability-resolution strategy the
// transition solver uses.
type SolverVariant int

const (
	// Fastest aliases Precompute: the default, eager variant.
	Fastest SolverVariant = iota
	// Precompute resolves every candidate-graph edge's reachability in
	// parallel, layer-pair by layer-pair, before collapsing.
	Precompute
	// Selective resolves reachability lazily: exactly once per edge the
	// collapse search actually visits.
	Selective
)

func (v SolverVariant) String() string {
	switch v {
	case Precompute:
		return "Precompute"
	case Selective:
		return "Selective"
	default:
		return "Fastest"
	}
}

// MatchOptions configures a single match request. Runtime is supplied directly by the caller as
// a type parameter rather than produced via an M::Runtime associated type;
// the simplification is recorded in DESIGN.md.
type MatchOptions[R any] struct {
	SearchDistance float64
	Runtime        R
	Solver         SolverVariant
}

// DefaultMatchOptions returns a MatchOptions using the default search
// radius and the Fastest solver, for the given runtime.
func DefaultMatchOptions[R any](runtime R) MatchOptions[R] {
	return MatchOptions[R]{
		SearchDistance: candidate.DefaultSearchDistance,
		Runtime:        runtime,
		Solver:         Fastest,
	}
}
