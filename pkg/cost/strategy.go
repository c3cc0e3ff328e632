// Package cost implements the two cost strategies the transition solver
// scores candidates with — emission (how well a candidate matches an
// observation) and transition (how plausible a route between two
// candidates is) — plus the shared Strategy contract they both satisfy.
//
// Grounded on the original's transition::costing module
// (costing/util.rs's Strategy/Costing traits, costing/default.rs's
// DefaultEmissionCost/DefaultTransitionCost).
package cost

// Strategy is the contract every cost function satisfies: a pure
// calculation that may report "no cost applies" (an impossible route),
// adapted to a concrete cost via Evaluate, which maps that case to the
// sentinel value 0.0.
type Strategy[Ctx any] interface {
	Calculate(ctx Ctx) (float64, bool)
}

// Evaluate runs a Strategy and maps an absent result to 0.0.
func Evaluate[Ctx any](s Strategy[Ctx], ctx Ctx) float64 {
	v, ok := s.Calculate(ctx)
	if !ok {
		return 0.0
	}
	return v
}

// ResolutionMethod distinguishes a reachability result that required a road
// search (Standard) from one resolved without routing because both
// candidates project onto the same forward-direction edge (DistanceOnly).
type ResolutionMethod int

const (
	Standard ResolutionMethod = iota
	DistanceOnly
)
