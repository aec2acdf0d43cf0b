package starfield

import "github.com/go-gl/mathgl/mgl32"

// FieldBuilderOption is a functional option for configuring a Field.
type FieldBuilderOption func(*fieldImpl)

// WithCount sets the number of stars.
//
// Parameters:
//   - count: number of stars (negative values produce an empty field)
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithCount(count int) FieldBuilderOption {
	return func(f *fieldImpl) {
		f.count = count
	}
}

// WithSpread sets the edge length of the cube the stars are scattered in.
//
// Parameters:
//   - spread: cube edge length in world units
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithSpread(spread float32) FieldBuilderOption {
	return func(f *fieldImpl) {
		f.spread = spread
	}
}

// WithCenter sets the center of the field and the point it spins about.
//
// Parameters:
//   - x, y, z: world-space center
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithCenter(x, y, z float32) FieldBuilderOption {
	return func(f *fieldImpl) {
		f.center = mgl32.Vec3{x, y, z}
	}
}

// WithSeed sets the random seed used to scatter the stars.
//
// Parameters:
//   - seed: generator seed
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithSeed(seed uint64) FieldBuilderOption {
	return func(f *fieldImpl) {
		f.seed = seed
	}
}

// WithSpin sets the field's angular velocity.
//
// Parameters:
//   - x, y, z: radians per second about each axis
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithSpin(x, y, z float32) FieldBuilderOption {
	return func(f *fieldImpl) {
		f.spin = mgl32.Vec3{x, y, z}
	}
}

// WithColor sets the base RGBA color of every star.
//
// Parameters:
//   - r, g, b, a: color components in [0, 1]
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithColor(r, g, b, a float32) FieldBuilderOption {
	return func(f *fieldImpl) {
		f.color = mgl32.Vec4{r, g, b, a}
	}
}
