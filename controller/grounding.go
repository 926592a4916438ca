package controller

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ProbeShape is the vertical cylinder swept below the body. A zero Height
// sweeps a flat disc.
type ProbeShape struct {
	Radius float64
	Height float64
}

// Hit is the nearest surface found by a downward cast. Distance is measured
// from the cast origin to the surface.
type Hit struct {
	Distance float64
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
}

// Caster is the shape-cast primitive provided by a physics backend. It must
// not report shapes belonging to ignore.
type Caster interface {
	CastDown(origin mgl64.Vec3, maxDistance float64, shape ProbeShape, ignore Body) (Hit, bool)
}

// GroundingResult is produced fresh every tick and never carried over.
// Normal is only meaningful when HasHit is true.
type GroundingResult struct {
	Grounded bool
	HasHit   bool
	Normal   mgl64.Vec3
	Distance float64
}

// Sensor turns a downward shape cast into a grounding decision.
type Sensor struct {
	Shape     ProbeShape
	Tolerance float64
	// Range extends the cast past the grounded band so the distance to a
	// floor below is still reported while airborne.
	Range float64
	// MaxSlope rejects surfaces steeper than this many radians. Zero
	// accepts any surface.
	MaxSlope float64
}

// Classify applies the grounded band: a distance up to floatHeight plus
// tolerance, inclusive, is ground.
func Classify(distance, floatHeight, tolerance float64) bool {
	return distance <= floatHeight+tolerance
}

func (s Sensor) Probe(c Caster, body Body, floatHeight float64) GroundingResult {
	if c == nil || body == nil {
		return GroundingResult{}
	}
	reach := floatHeight + s.Tolerance + math.Max(s.Range, 0)
	hit, ok := c.CastDown(body.Position(), reach, s.Shape, body)
	if !ok {
		return GroundingResult{}
	}
	res := GroundingResult{
		HasHit:   true,
		Normal:   hit.Normal,
		Distance: hit.Distance,
	}
	res.Grounded = Classify(hit.Distance, floatHeight, s.Tolerance) && s.walkable(hit.Normal)
	return res
}

func (s Sensor) walkable(normal mgl64.Vec3) bool {
	if s.MaxSlope <= 0 {
		return true
	}
	l := normal.Len()
	if l == 0 {
		return false
	}
	return normal.Dot(Up)/l >= math.Cos(s.MaxSlope)-1e-9
}
