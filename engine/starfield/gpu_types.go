package starfield

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUStarSource is the canonical WGSL definition of the per-instance StarInput struct.
// Matches GPUStar layout exactly (16 bytes).
//
//go:embed assets/star.wgsl
var GPUStarSource string

// GPUFieldUniformSource is the canonical WGSL definition of the FieldUniform struct.
// Matches GPUFieldUniform layout exactly (80 bytes, std140 aligned).
//
//go:embed assets/field_uniform.wgsl
var GPUFieldUniformSource string

// GPUStar is the GPU-aligned per-instance record for one star sprite.
type GPUStar struct {
	Position   [3]float32 // offset  0: position in field space (12 bytes)
	Brightness float32    // offset 12: color multiplier in [0, 1] (4 bytes)
}

// Size returns the size of the GPUStar struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUStar) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUStar struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUStar) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Brightness))
	return buf
}

// GPUFieldUniform carries the field's model matrix and base color.
type GPUFieldUniform struct {
	Model [16]float32 // offset  0: column-major field rotation about its center (64 bytes)
	Color [4]float32  // offset 64: RGBA base color (16 bytes)
}

// Size returns the size of the GPUFieldUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUFieldUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFieldUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload.
func (g *GPUFieldUniform) Marshal() []byte {
	buf := make([]byte, 80)
	for i, v := range g.Model {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	for i, v := range g.Color {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(v))
	}
	return buf
}
