package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/go-gl/mathgl/mgl64"
)

// Regime identifies which position formula produced a Pose.
type Regime int

const (
	// RegimeApproach is the linear motion toward the pivot, active while the offset is above the pivot limit.
	RegimeApproach Regime = iota
	// RegimeOrbit is the pivot-relative motion, active at or below the pivot limit.
	RegimeOrbit
)

func (r Regime) String() string {
	switch r {
	case RegimeOrbit:
		return "orbit"
	default:
		return "approach"
	}
}

// Pose is a camera position and look-at target for one scroll offset.
type Pose struct {
	Offset   float64
	Position mgl64.Vec3
	LookAt   mgl64.Vec3
	Regime   Regime
}

// ComputePose maps a scroll offset to a camera pose.
// It is a pure function of its arguments: identical inputs yield bit-identical output.
//
// Parameters:
//   - cfg: the derived scroll configuration
//   - t: scroll offset (0 at the top of the page, negative further down)
//
// Returns:
//   - Pose: the camera position, look-at target, and the regime that produced the position
func ComputePose(cfg ScrollConfig, t float64) Pose {
	p := Pose{Offset: t, LookAt: cfg.lookAt(t)}
	if t > cfg.pivotLimit {
		p.Position = cfg.approachPosition(t)
		p.Regime = RegimeApproach
	} else {
		p.Position = cfg.orbitPosition(t)
		p.Regime = RegimeOrbit
	}
	return p
}

// approachPosition evaluates the linear regime.
func (c ScrollConfig) approachPosition(t float64) mgl64.Vec3 {
	return mgl64.Vec3{
		c.origin.X() + t*c.initialXSpeed,
		c.origin.Y() + t*c.initialYSpeed,
		c.origin.Z() + t*c.initialZSpeed,
	}
}

// orbitPosition evaluates the pivot regime. y holds the value the approach line reaches at the limit.
func (c ScrollConfig) orbitPosition(t float64) mgl64.Vec3 {
	past := t - c.pivotLimit
	x := c.pivot.X() - past*c.postPivotXSpeed

	f := c.BlendFactor(x)
	zRound := common.Lerp(past*c.orbitRate, 0, f)
	zOscillation := common.Lerp(0, c.oscillationAmplitude*math.Sin(past*c.oscillationFrequency), f)

	return mgl64.Vec3{
		x,
		c.origin.Y() + c.pivotLimit*c.initialYSpeed,
		c.pivot.Z() + zRound + zOscillation,
	}
}

// BlendFactor returns the orbit blend factor for a camera x coordinate in the orbit regime.
// The ratio of x distance from the pivot to the orbit span is clamped to [0, 1] before the shape
// exponent is applied; a zero span is treated as a zero ratio.
//
// Parameters:
//   - x: camera x coordinate
//
// Returns:
//   - float64: blend factor in [0, 1]; 0 at the pivot
func (c ScrollConfig) BlendFactor(x float64) float64 {
	ratio := common.Clamp(common.SafeRatio(x-c.pivot.X(), c.orbitSpan, 0), 0, 1)
	return common.Clamp(math.Pow(ratio, c.orbitExponent), 0, 1)
}

// lookAt interpolates the look-at target along x; y and z stay on the fixed plane.
func (c ScrollConfig) lookAt(t float64) mgl64.Vec3 {
	f := common.Clamp(t/c.maxScroll, 0, 1)
	return mgl64.Vec3{common.Lerp(c.lookAtStart.X(), c.lookAtEnd.X(), f) + c.lookAtOffset, 0, 0}
}

// ContinuityGap returns the distance between the two regimes' positions evaluated at the pivot limit.
// It is zero (up to rounding) for every config NewScrollConfig accepts, and zero when the pivot is disabled.
//
// Returns:
//   - float64: Euclidean distance between the approach and orbit positions at the limit
func (c ScrollConfig) ContinuityGap() float64 {
	if !c.pivotEnabled {
		return 0
	}
	return c.approachPosition(c.pivotLimit).Sub(c.orbitPosition(c.pivotLimit)).Len()
}
