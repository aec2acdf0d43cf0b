package starfield

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewField(t *testing.T) {
	Convey("Given the default field", t, func() {
		f := NewField()

		Convey("It holds 400 stars inside a 300 unit cube around the origin", func() {
			So(f.Count(), ShouldEqual, 400)
			for _, s := range f.Stars() {
				for axis := range 3 {
					So(s.Position[axis], ShouldBeBetweenOrEqual, -150, 150)
				}
				So(s.Brightness, ShouldBeBetweenOrEqual, 0.6, 1)
			}
		})

		Convey("Instance data is 16 bytes per star", func() {
			data := f.InstanceData()
			So(len(data), ShouldEqual, 400*16)
			first := f.Stars()[0]
			So(math.Float32frombits(binary.LittleEndian.Uint32(data[0:])), ShouldEqual, first.Position[0])
			So(math.Float32frombits(binary.LittleEndian.Uint32(data[12:])), ShouldEqual, first.Brightness)
		})
	})

	Convey("Given two fields with the same seed", t, func() {
		a := NewField(WithSeed(42), WithCount(50), WithCenter(-240, 0, 0))
		b := NewField(WithSeed(42), WithCount(50), WithCenter(-240, 0, 0))
		c := NewField(WithSeed(43), WithCount(50), WithCenter(-240, 0, 0))

		Convey("They are identical and a different seed differs", func() {
			So(a.Stars(), ShouldResemble, b.Stars())
			So(a.Stars(), ShouldNotResemble, c.Stars())
		})

		Convey("Stars are scattered around the center", func() {
			for _, s := range a.Stars() {
				So(s.Position[0], ShouldBeBetweenOrEqual, -390, -90)
			}
		})
	})

	Convey("Given a negative count", t, func() {
		f := NewField(WithCount(-3))
		So(f.Count(), ShouldEqual, 0)
		So(f.InstanceData(), ShouldBeEmpty)
	})
}

func TestFieldSpin(t *testing.T) {
	Convey("Given a field spinning about y around an offset center", t, func() {
		f := NewField(WithCount(1), WithCenter(10, 0, 0), WithSpin(0, math.Pi, 0), WithColor(1, 0.5, 0.25, 1))

		Convey("Before any tick the model matrix is identity", func() {
			So(f.ModelMatrix().ApproxEqualThreshold(mgl32.Ident4(), 1e-6), ShouldBeTrue)
		})

		Convey("The center stays fixed while the field rotates", func() {
			f.Tick(0.5)
			m := f.ModelMatrix()
			center := m.Mul4x1(mgl32.Vec4{10, 0, 0, 1})
			So(center.X(), ShouldAlmostEqual, 10, 1e-4)
			So(center.Z(), ShouldAlmostEqual, 0, 1e-4)

			p := m.Mul4x1(mgl32.Vec4{11, 0, 0, 1})
			So(p.X(), ShouldAlmostEqual, 10, 1e-4)
			So(math.Abs(float64(p.Z())), ShouldAlmostEqual, 1, 1e-4)
		})

		Convey("The uniform carries the model matrix and color", func() {
			f.Tick(0.25)
			u := f.Uniform()
			So(u.Size(), ShouldEqual, 80)
			So(u.Color, ShouldResemble, [4]float32{1, 0.5, 0.25, 1})
			buf := u.Marshal()
			So(math.Float32frombits(binary.LittleEndian.Uint32(buf[64:])), ShouldEqual, float32(1))
			So(math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])), ShouldEqual, u.Model[0])
		})
	})
}
