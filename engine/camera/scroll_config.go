package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidConfig is returned when a ScrollConfig cannot be derived from its layout constants,
// typically because a derived denominator would be zero.
var ErrInvalidConfig = errors.New("camera: invalid scroll config")

// Default layout constants used when no option overrides them.
var (
	DefaultOrigin      = mgl64.Vec3{-200, 0, 300}
	DefaultPivotPoint  = mgl64.Vec3{-280, 0, 0}
	DefaultLookAtStart = mgl64.Vec3{-200, 0, 0}
	DefaultLookAtEnd   = mgl64.Vec3{-280, 0, 0}
)

const (
	DefaultInitialZSpeed        = 0.2
	DefaultPostPivotXSpeed      = 0.08
	DefaultOrbitSpan            = 180.0
	DefaultOrbitExponent        = 0.4
	DefaultOrbitRate            = 0.1
	DefaultOscillationAmplitude = 30.0
	DefaultOscillationFrequency = 0.002
	DefaultMaxScroll            = -1500.0
)

// ScrollConfig holds the immutable constants that drive ComputePose.
// A ScrollConfig is only obtainable through NewScrollConfig, which derives the pivot threshold
// and the approach rates once. All fields are unexported so a config cannot change after construction.
type ScrollConfig struct {
	origin mgl64.Vec3
	pivot  mgl64.Vec3

	pivotEnabled bool
	pivotLimit   float64

	initialXSpeed float64
	initialYSpeed float64
	initialZSpeed float64

	postPivotXSpeed float64

	orbitSpan     float64
	orbitExponent float64
	orbitRate     float64

	oscillationAmplitude float64
	oscillationFrequency float64

	lookAtStart  mgl64.Vec3
	lookAtEnd    mgl64.Vec3
	lookAtOffset float64
	maxScroll    float64
}

// scrollConfigBuilder collects raw layout constants before derivation.
type scrollConfigBuilder struct {
	origin mgl64.Vec3
	pivot  mgl64.Vec3

	pivotEnabled       bool
	pivotLimitOverride *float64
	xSpeedOverride     *float64

	initialYSpeed float64
	initialZSpeed float64

	postPivotXSpeed float64

	orbitSpan     float64
	orbitExponent float64
	orbitRate     float64

	oscillationAmplitude float64
	oscillationFrequency float64

	lookAtStart  mgl64.Vec3
	lookAtEnd    mgl64.Vec3
	lookAtOffset float64
	maxScroll    float64
}

// NewScrollConfig builds a ScrollConfig from the defaults and the given options, deriving
// the pivot threshold and the approach rates.
//
// With a pivot (the default) the threshold is (pivot.z - origin.z) / initialZSpeed unless
// WithPivotLimit hand-codes it, and the x rate is derived so the approach line passes through
// the pivot exactly at the threshold. WithoutPivot yields a linear-only config.
//
// Parameters:
//   - options: functional options overriding the default layout constants
//
// Returns:
//   - ScrollConfig: the derived configuration
//   - error: wraps ErrInvalidConfig when a derived denominator is zero or an input is unusable
func NewScrollConfig(options ...ScrollConfigOption) (ScrollConfig, error) {
	b := &scrollConfigBuilder{
		origin:               DefaultOrigin,
		pivot:                DefaultPivotPoint,
		pivotEnabled:         true,
		initialZSpeed:        DefaultInitialZSpeed,
		postPivotXSpeed:      DefaultPostPivotXSpeed,
		orbitSpan:            DefaultOrbitSpan,
		orbitExponent:        DefaultOrbitExponent,
		orbitRate:            DefaultOrbitRate,
		oscillationAmplitude: DefaultOscillationAmplitude,
		oscillationFrequency: DefaultOscillationFrequency,
		lookAtStart:          DefaultLookAtStart,
		lookAtEnd:            DefaultLookAtEnd,
		maxScroll:            DefaultMaxScroll,
	}
	for _, option := range options {
		option(b)
	}
	return b.build()
}

func (b *scrollConfigBuilder) build() (ScrollConfig, error) {
	if err := b.validate(); err != nil {
		return ScrollConfig{}, err
	}

	c := ScrollConfig{
		origin:               b.origin,
		pivot:                b.pivot,
		pivotEnabled:         b.pivotEnabled,
		initialYSpeed:        b.initialYSpeed,
		initialZSpeed:        b.initialZSpeed,
		postPivotXSpeed:      b.postPivotXSpeed,
		orbitSpan:            b.orbitSpan,
		orbitExponent:        b.orbitExponent,
		orbitRate:            b.orbitRate,
		oscillationAmplitude: b.oscillationAmplitude,
		oscillationFrequency: b.oscillationFrequency,
		lookAtStart:          b.lookAtStart,
		lookAtEnd:            b.lookAtEnd,
		lookAtOffset:         b.lookAtOffset,
		maxScroll:            b.maxScroll,
	}

	if !b.pivotEnabled {
		c.pivotLimit = math.Inf(-1)
		c.initialXSpeed = common.Deref(b.xSpeedOverride, 0)
		return c, nil
	}

	if b.xSpeedOverride != nil {
		return ScrollConfig{}, fmt.Errorf("%w: initial x speed is derived from the pivot and cannot be set", ErrInvalidConfig)
	}

	if b.pivotLimitOverride != nil {
		c.pivotLimit = *b.pivotLimitOverride
		if c.pivotLimit == 0 {
			return ScrollConfig{}, fmt.Errorf("%w: pivot limit must be non-zero", ErrInvalidConfig)
		}
		c.initialZSpeed = (b.pivot.Z() - b.origin.Z()) / c.pivotLimit
		if c.initialZSpeed == 0 {
			return ScrollConfig{}, fmt.Errorf("%w: pivot and origin share a z coordinate, initial z speed would be zero", ErrInvalidConfig)
		}
	} else {
		if b.initialZSpeed == 0 {
			return ScrollConfig{}, fmt.Errorf("%w: initial z speed must be non-zero", ErrInvalidConfig)
		}
		c.pivotLimit = (b.pivot.Z() - b.origin.Z()) / b.initialZSpeed
		if c.pivotLimit == 0 {
			return ScrollConfig{}, fmt.Errorf("%w: pivot and origin share a z coordinate, pivot limit would be zero", ErrInvalidConfig)
		}
	}

	c.initialXSpeed = (b.pivot.X() - b.origin.X()) / c.pivotLimit

	if !common.IsFinite(c.pivotLimit, c.initialXSpeed, c.initialZSpeed) {
		return ScrollConfig{}, fmt.Errorf("%w: derived rates are not finite", ErrInvalidConfig)
	}
	return c, nil
}

// validate rejects inputs that would produce NaN or infinite output.
func (b *scrollConfigBuilder) validate() error {
	values := []float64{
		b.origin.X(), b.origin.Y(), b.origin.Z(),
		b.pivot.X(), b.pivot.Y(), b.pivot.Z(),
		b.initialYSpeed, b.initialZSpeed, b.postPivotXSpeed,
		b.orbitSpan, b.orbitExponent, b.orbitRate,
		b.oscillationAmplitude, b.oscillationFrequency,
		b.lookAtStart.X(), b.lookAtEnd.X(), b.lookAtOffset, b.maxScroll,
	}
	if b.pivotLimitOverride != nil {
		values = append(values, *b.pivotLimitOverride)
	}
	if b.xSpeedOverride != nil {
		values = append(values, *b.xSpeedOverride)
	}
	if !common.IsFinite(values...) {
		return fmt.Errorf("%w: layout constants must be finite", ErrInvalidConfig)
	}
	if b.maxScroll == 0 {
		return fmt.Errorf("%w: max scroll must be non-zero", ErrInvalidConfig)
	}
	if b.orbitExponent <= 0 {
		return fmt.Errorf("%w: orbit exponent must be positive, got %g", ErrInvalidConfig, b.orbitExponent)
	}
	return nil
}

// Origin returns the camera position at scroll offset 0.
func (c ScrollConfig) Origin() mgl64.Vec3 { return c.origin }

// PivotPoint returns the point the camera orbits past the threshold.
func (c ScrollConfig) PivotPoint() mgl64.Vec3 { return c.pivot }

// PivotEnabled reports whether the config has an orbit regime at all.
func (c ScrollConfig) PivotEnabled() bool { return c.pivotEnabled }

// PivotLimit returns the scroll offset at which the orbit regime begins.
// It is negative infinity when the pivot is disabled.
func (c ScrollConfig) PivotLimit() float64 { return c.pivotLimit }

// InitialXSpeed returns the x rate per unit scroll before the threshold.
func (c ScrollConfig) InitialXSpeed() float64 { return c.initialXSpeed }

// InitialYSpeed returns the y rate per unit scroll before the threshold.
func (c ScrollConfig) InitialYSpeed() float64 { return c.initialYSpeed }

// InitialZSpeed returns the z rate per unit scroll before the threshold.
func (c ScrollConfig) InitialZSpeed() float64 { return c.initialZSpeed }

// PostPivotXSpeed returns the x rate per unit scroll past the threshold.
func (c ScrollConfig) PostPivotXSpeed() float64 { return c.postPivotXSpeed }

// OrbitSpan returns the x distance from the pivot over which the orbit blend engages.
func (c ScrollConfig) OrbitSpan() float64 { return c.orbitSpan }

// OrbitExponent returns the shape exponent applied to the orbit blend ratio.
func (c ScrollConfig) OrbitExponent() float64 { return c.orbitExponent }

// LookAtStart returns the look-at target at scroll offset 0.
func (c ScrollConfig) LookAtStart() mgl64.Vec3 { return c.lookAtStart }

// LookAtEnd returns the look-at target reached at MaxScroll.
func (c ScrollConfig) LookAtEnd() mgl64.Vec3 { return c.lookAtEnd }

// LookAtOffset returns the constant x offset added to the interpolated look-at target.
func (c ScrollConfig) LookAtOffset() float64 { return c.lookAtOffset }

// MaxScroll returns the scroll offset at which LookAtEnd is fully reached.
func (c ScrollConfig) MaxScroll() float64 { return c.maxScroll }
