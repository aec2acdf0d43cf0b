package camera

import (
	"github.com/go-gl/mathgl/mgl64"
)

// ScrollConfigOption is a functional option for configuring a ScrollConfig.
type ScrollConfigOption func(*scrollConfigBuilder)

// WithOrigin sets the camera position at scroll offset 0.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - ScrollConfigOption: functional option to set the origin
func WithOrigin(x, y, z float64) ScrollConfigOption {
	return func(b *scrollConfigBuilder) {
		b.origin = mgl64.Vec3{x, y, z}
	}
}

// WithPivotPoint sets the point the camera orbits past the threshold.
// Only x and z take part in the motion; y is carried for completeness.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - ScrollConfigOption: functional option to set the pivot point
func WithPivotPoint(x, y, z float64) ScrollConfigOption {
	return func(b *scrollConfigBuilder) {
		b.pivot = mgl64.Vec3{x, y, z}
		b.pivotEnabled = true
	}
}

// WithoutPivot disables the orbit regime. The camera then moves along the approach line for every offset.
//
// Returns:
//   - ScrollConfigOption: functional option to disable the pivot
func WithoutPivot() ScrollConfigOption {
	return func(b *scrollConfigBuilder) {
		b.pivotEnabled = false
	}
}

// WithPivotLimit hand-codes the scroll offset at which the orbit regime begins instead of deriving it
// from the initial z speed. The z and x approach rates are derived from the limit so both regimes still
// meet at the pivot.
//
// Parameters:
//   - limit: scroll offset of the regime switch (must be non-zero)
//
// Returns:
//   - ScrollConfigOption: functional option to set the pivot limit
func WithPivotLimit(limit float64) ScrollConfigOption {
	return func(b *scrollConfigBuilder) {
		b.pivotLimitOverride = &limit
	}
}

// WithInitialXSpeed sets the x approach rate. Only valid together with WithoutPivot;
// with a pivot the rate is always derived.
//
// Parameters:
//   - speed: x change per unit scroll
//
// Returns:
//   - ScrollConfigOption: functional option to set the x approach rate
func WithInitialXSpeed(speed float64) ScrollConfigOption {
	return func(b *scrollConfigBuilder) {
		b.xSpeedOverride = &speed
	}
}

// WithInitialYSpeed sets the y approach rate. Past the threshold y holds the value reached there.
//
// Parameters:
//   - speed: y change per unit scroll
//
// Returns:
//   - ScrollConfigOption: functional option to set the y approach rate
func WithInitialYSpeed(speed float64) ScrollConfigOption {
	return func(b *scrollConfigBuilder) {
		b.initialYSpeed = speed
	}
}

// WithInitialZSpeed sets the z approach rate, from which the pivot limit is derived.
//
// Parameters:
//   - speed: z change per unit scroll (must be non-zero when a pivot is set)
//
// Returns:
//   - ScrollConfigOption: functional option to set the z approach rate
func WithInitialZSpeed(speed float64) ScrollConfigOption {
	return func(b *scrollConfigBuilder) {
		b.initialZSpeed = speed
	}
}

// WithPostPivotXSpeed sets the x rate once the orbit regime is active.
//
// Parameters:
//   - speed: x change per unit scroll past the threshold
//
// Returns:
//   - ScrollConfigOption: functional option to set the post-pivot x rate
func WithPostPivotXSpeed(speed float64) ScrollConfigOption {
	return func(b *scrollConfigBuilder) {
		b.postPivotXSpeed = speed
	}
}

// WithOrbitShape sets how fast the orbit blend engages as x recedes from the pivot.
//
// Parameters:
//   - span: x distance at which the blend saturates (0 keeps the blend at 0)
//   - exponent: shape exponent applied to the blend ratio (must be positive)
//
// Returns:
//   - ScrollConfigOption: functional option to set the orbit shape
func WithOrbitShape(span, exponent float64) ScrollConfigOption {
	return func(b *scrollConfigBuilder) {
		b.orbitSpan = span
		b.orbitExponent = exponent
	}
}

// WithOrbitRate sets the spiral rate around the pivot.
//
// Parameters:
//   - rate: z change per unit scroll past the threshold before damping
//
// Returns:
//   - ScrollConfigOption: functional option to set the orbit rate
func WithOrbitRate(rate float64) ScrollConfigOption {
	return func(b *scrollConfigBuilder) {
		b.orbitRate = rate
	}
}

// WithOscillation sets the sinusoidal z wobble that fades in deep in the orbit regime.
//
// Parameters:
//   - amplitude: peak z displacement
//   - frequency: radians per unit scroll
//
// Returns:
//   - ScrollConfigOption: functional option to set the oscillation
func WithOscillation(amplitude, frequency float64) ScrollConfigOption {
	return func(b *scrollConfigBuilder) {
		b.oscillationAmplitude = amplitude
		b.oscillationFrequency = frequency
	}
}

// WithLookAt sets the look-at interpolation endpoints and the offset at which the end is reached.
//
// Parameters:
//   - startX: look-at x at scroll offset 0
//   - endX: look-at x at maxScroll
//   - maxScroll: scroll offset at which endX is reached (must be non-zero)
//
// Returns:
//   - ScrollConfigOption: functional option to set the look-at interpolation
func WithLookAt(startX, endX, maxScroll float64) ScrollConfigOption {
	return func(b *scrollConfigBuilder) {
		b.lookAtStart = mgl64.Vec3{startX, 0, 0}
		b.lookAtEnd = mgl64.Vec3{endX, 0, 0}
		b.maxScroll = maxScroll
	}
}

// WithLookAtOffset sets a constant x offset added to the interpolated look-at target.
//
// Parameters:
//   - offset: x offset in world units
//
// Returns:
//   - ScrollConfigOption: functional option to set the look-at offset
func WithLookAtOffset(offset float64) ScrollConfigOption {
	return func(b *scrollConfigBuilder) {
		b.lookAtOffset = offset
	}
}
