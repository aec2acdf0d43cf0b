package camera

import (
	"encoding/binary"
	"math"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScrollController(t *testing.T) {
	Convey("Given a scroll controller", t, func() {
		cfg := representativeConfig(t)
		ctrl := NewScrollController(cfg)

		Convey("The initial pose is the pose at the top of the page", func() {
			So(ctrl.Pose(), ShouldResemble, ComputePose(cfg, 0))
			x, y, z := ctrl.Position()
			So([]float32{x, y, z}, ShouldResemble, []float32{-200, 0, 300})
		})

		Convey("SetScroll does not change the pose until Update", func() {
			ctrl.SetScroll(-750)
			So(ctrl.Scroll(), ShouldEqual, -750)
			So(ctrl.Pose(), ShouldResemble, ComputePose(cfg, 0))

			ctrl.Update()
			So(ctrl.Pose(), ShouldResemble, ComputePose(cfg, -750))
		})

		Convey("The latest offset wins when several arrive before a tick", func() {
			for _, offset := range []float64{-10, -200, -3000, -42} {
				ctrl.SetScroll(offset)
			}
			ctrl.Update()
			So(ctrl.Pose(), ShouldResemble, ComputePose(cfg, -42))
		})

		Convey("Concurrent scroll writers never tear the stored offset", func() {
			var wg sync.WaitGroup
			offsets := []float64{-1, -2000.5, -3e6}
			for _, offset := range offsets {
				wg.Add(1)
				go func(o float64) {
					defer wg.Done()
					for range 1000 {
						ctrl.SetScroll(o)
						ctrl.Update()
					}
				}(offset)
			}
			wg.Wait()
			So(ctrl.Scroll(), ShouldBeIn, offsets)
		})
	})
}

func TestCameraAppliesPose(t *testing.T) {
	Convey("Given a camera attached to a scroll controller", t, func() {
		cfg := representativeConfig(t)
		ctrl := NewScrollController(cfg)
		cam := NewCamera(
			WithFov(float32(75*math.Pi/180)),
			WithAspect(16.0/9.0),
			WithClipPlanes(0.1, 1000),
			WithController(ctrl),
		)

		Convey("The view matrix places the pose position at the view-space origin", func() {
			ctrl.SetScroll(-900)
			cam.Update()

			pos := ctrl.Pose().Position
			eye := cam.ViewMatrix().Mul4x1(mgl32.Vec4{float32(pos.X()), float32(pos.Y()), float32(pos.Z()), 1})
			So(eye.X(), ShouldAlmostEqual, 0, 1e-3)
			So(eye.Y(), ShouldAlmostEqual, 0, 1e-3)
			So(eye.Z(), ShouldAlmostEqual, 0, 1e-3)
		})

		Convey("The look-at target lies straight ahead on the view axis", func() {
			cam.Update()
			look := ctrl.Pose().LookAt
			v := cam.ViewMatrix().Mul4x1(mgl32.Vec4{float32(look.X()), float32(look.Y()), float32(look.Z()), 1})
			So(v.X(), ShouldAlmostEqual, 0, 1e-3)
			So(v.Y(), ShouldAlmostEqual, 0, 1e-3)
			So(v.Z(), ShouldBeLessThan, 0)
		})

		Convey("Projected depth of the target falls inside the WebGPU clip range", func() {
			cam.Update()
			look := ctrl.Pose().LookAt
			clip := cam.ViewProjectionMatrix().Mul4x1(mgl32.Vec4{float32(look.X()), float32(look.Y()), float32(look.Z()), 1})
			depth := clip.Z() / clip.W()
			So(depth, ShouldBeBetween, 0, 1)
		})

		Convey("The GPU uniform carries the matrix and camera position", func() {
			ctrl.SetScroll(-100)
			cam.Update()
			u := NewGPUCameraUniform(cam, 2)
			buf := u.Marshal()
			So(len(buf), ShouldEqual, 80)
			So(u.Size(), ShouldEqual, 80)

			x, _, _ := ctrl.Position()
			So(math.Float32frombits(binary.LittleEndian.Uint32(buf[64:])), ShouldEqual, x)
			So(math.Float32frombits(binary.LittleEndian.Uint32(buf[76:])), ShouldEqual, float32(2))
			vp := cam.ViewProjectionMatrix()
			So(math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])), ShouldEqual, vp[0])
		})
	})

	Convey("Given a camera without a controller", t, func() {
		cam := NewCamera()

		Convey("Update is a no-op and matrices stay identity", func() {
			cam.Update()
			So(cam.ViewMatrix(), ShouldResemble, mgl32.Ident4())
			So(cam.Controller(), ShouldBeNil)
		})
	})
}
