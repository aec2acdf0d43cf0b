package starfield

import (
	"math/rand/v2"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// fieldImpl implements the Field interface.
type fieldImpl struct {
	mu *sync.Mutex

	count  int
	spread float32
	center mgl32.Vec3
	seed   uint64

	// spin is the angular velocity about each axis in radians per second.
	spin  mgl32.Vec3
	angle mgl32.Vec3

	color mgl32.Vec4

	stars []GPUStar
}

// Field is a cloud of stars scattered uniformly in a cube around a center point.
// The field can spin about its center as an idle backdrop while the camera moves through it.
type Field interface {
	// Stars returns a copy of the generated stars in field space.
	//
	// Returns:
	//   - []GPUStar: the stars
	Stars() []GPUStar

	// Count returns the number of stars in the field.
	//
	// Returns:
	//   - int: star count
	Count() int

	// Tick advances the field's spin by dt seconds.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Tick(dt float32)

	// ModelMatrix returns the rotation of the field about its center.
	//
	// Returns:
	//   - mgl32.Mat4: the field's model matrix
	ModelMatrix() mgl32.Mat4

	// InstanceData serializes every star into one contiguous buffer for a per-instance vertex buffer.
	//
	// Returns:
	//   - []byte: Count()*16 bytes
	InstanceData() []byte

	// Uniform returns the GPU uniform for the current spin state.
	//
	// Returns:
	//   - GPUFieldUniform: model matrix and base color
	Uniform() GPUFieldUniform
}

var _ Field = &fieldImpl{}

// NewField creates a Field and scatters its stars. The same seed always produces the same field.
//
// Parameters:
//   - options: functional options for count, spread, center, seed, spin and color
//
// Returns:
//   - Field: the generated field
func NewField(options ...FieldBuilderOption) Field {
	f := &fieldImpl{
		mu:     &sync.Mutex{},
		count:  400,
		spread: 300,
		seed:   1,
		color:  mgl32.Vec4{1, 1, 1, 1},
	}
	for _, opt := range options {
		opt(f)
	}
	if f.count < 0 {
		f.count = 0
	}
	f.stars = scatter(f.count, f.spread, f.center, f.seed)
	return f
}

// scatter places count stars uniformly in a cube of edge spread centered on center.
func scatter(count int, spread float32, center mgl32.Vec3, seed uint64) []GPUStar {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	stars := make([]GPUStar, count)
	for i := range stars {
		for axis := range 3 {
			stars[i].Position[axis] = center[axis] + spread*(rng.Float32()-0.5)
		}
		stars[i].Brightness = 0.6 + 0.4*rng.Float32()
	}
	return stars
}

func (f *fieldImpl) Stars() []GPUStar {
	out := make([]GPUStar, len(f.stars))
	copy(out, f.stars)
	return out
}

func (f *fieldImpl) Count() int {
	return len(f.stars)
}

func (f *fieldImpl) Tick(dt float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.angle = f.angle.Add(f.spin.Mul(dt))
}

func (f *fieldImpl) ModelMatrix() mgl32.Mat4 {
	f.mu.Lock()
	defer f.mu.Unlock()
	rot := mgl32.HomogRotate3DX(f.angle.X()).
		Mul4(mgl32.HomogRotate3DY(f.angle.Y())).
		Mul4(mgl32.HomogRotate3DZ(f.angle.Z()))
	c := f.center
	return mgl32.Translate3D(c.X(), c.Y(), c.Z()).Mul4(rot).Mul4(mgl32.Translate3D(-c.X(), -c.Y(), -c.Z()))
}

func (f *fieldImpl) InstanceData() []byte {
	buf := make([]byte, 0, len(f.stars)*16)
	for i := range f.stars {
		buf = append(buf, f.stars[i].Marshal()...)
	}
	return buf
}

func (f *fieldImpl) Uniform() GPUFieldUniform {
	return GPUFieldUniform{
		Model: f.ModelMatrix(),
		Color: f.color,
	}
}
