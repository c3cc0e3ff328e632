package cost

import (
	"github.com/paulmach/orb"
)

// EmissionContext carries what the emission cost needs to score a single
// candidate projection against its observation.
type EmissionContext struct {
	Point    orb.Point
	Origin   orb.Point
	Distance float64
}

// DefaultEmissionFreeRadius is the default free-radius constant epsilon:
// candidates within roughly this distance of the observation are scored
// near the top of the range.
const DefaultEmissionFreeRadius = 1.0

// DefaultEmissionCost is the default emission strategy: cost = epsilon /
// distance^5. The steep decay concentrates weight on near-colocated
// candidates; it is intentionally cheap to compute since it runs once per
// candidate.
type DefaultEmissionCost struct {
	FreeRadius float64
}

// NewDefaultEmissionCost returns a DefaultEmissionCost using the package's
// default free radius.
func NewDefaultEmissionCost() DefaultEmissionCost {
	return DefaultEmissionCost{FreeRadius: DefaultEmissionFreeRadius}
}

// Calculate implements Strategy[EmissionContext].
func (d DefaultEmissionCost) Calculate(ctx EmissionContext) (float64, bool) {
	if ctx.Distance <= 0 {
		return d.FreeRadius, true
	}
	return d.FreeRadius / pow5(ctx.Distance), true
}

func pow5(x float64) float64 {
	x2 := x * x
	return x2 * x2 * x
}
