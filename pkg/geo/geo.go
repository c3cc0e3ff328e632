// Package geo provides the geodesic primitives the transition solver needs:
// distance, bearing, destination-point and great-circle interpolation on top
// of github.com/paulmach/orb, plus the planar point-to-segment projection
// used by the spatial scan.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// Distance returns the geodesic (haversine) distance between two points, in meters.
func Distance(a, b orb.Point) float64 {
	return orbgeo.Distance(a, b)
}

// Bearing returns the initial bearing from a to b, in degrees, 0 = north.
func Bearing(a, b orb.Point) float64 {
	return orbgeo.Bearing(a, b)
}

// Destination returns the point reached from p travelling distance meters
// along the given bearing (degrees).
func Destination(p orb.Point, bearingDeg, distance float64) orb.Point {
	return orbgeo.PointAtBearingAndDistance(p, bearingDeg, distance)
}

// BoundingBox computes a geodesic axis-aligned bounding box whose corners are
// the destinations from p at bearings 135 and 315 degrees at distance d — a
// square inscribing a circle of radius d.
func BoundingBox(p orb.Point, d float64) orb.Bound {
	bottomRight := Destination(p, 135.0, d)
	topLeft := Destination(p, 315.0, d)

	return orb.Bound{
		Min: orb.Point{math.Min(topLeft[0], bottomRight[0]), math.Min(topLeft[1], bottomRight[1])},
		Max: orb.Point{math.Max(topLeft[0], bottomRight[0]), math.Max(topLeft[1], bottomRight[1])},
	}
}

// InterpolateGreatCircle returns the point a fraction t ([0,1]) of the way
// along the great-circle segment from a to b.
func InterpolateGreatCircle(a, b orb.Point, t float64) orb.Point {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}

	d := Distance(a, b)
	if d == 0 {
		return a
	}

	brg := Bearing(a, b)
	return Destination(a, brg, d*t)
}

// ProjectPointToSegment projects p onto the segment a->b, clamped to [0,1],
// and returns the projected point (via great-circle interpolation) and the
// fractional position along the segment.
func ProjectPointToSegment(p, a, b orb.Point) (projected orb.Point, ratio float64) {
	_, t := PointToSegmentDist(p[1], p[0], a[1], a[0], b[1], b[0])
	return InterpolateGreatCircle(a, b, t), t
}
