package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer"
	"github.com/Carmen-Shannon/oxy-scroll/engine/scroll"
	"github.com/Carmen-Shannon/oxy-scroll/engine/starfield"
	"github.com/cogentcore/webgpu/wgpu"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeWindow struct {
	width, height int
	title         string
	onUpdate      func()
	onResize      func(width, height int)
	onScroll      func(delta float32)
	onKey         func(keyCode uint32, shift bool)
}

func (w *fakeWindow) SetUpdateCallback(callback func())                           { w.onUpdate = callback }
func (w *fakeWindow) SetResizeCallback(callback func(width, height int))          { w.onResize = callback }
func (w *fakeWindow) SetScrollCallback(callback func(delta float32))              { w.onScroll = callback }
func (w *fakeWindow) SetKeyDownCallback(callback func(keyCode uint32, shift bool)) { w.onKey = callback }
func (w *fakeWindow) SetTitle(title string)                                       { w.title = title }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor                  { return nil }
func (w *fakeWindow) IsRunning() bool                                             { return false }
func (w *fakeWindow) Close() error                                                { return nil }
func (w *fakeWindow) ProcessMessages()                                            {}
func (w *fakeWindow) Width() int                                                  { return w.width }
func (w *fakeWindow) Height() int                                                 { return w.height }

type fakeRenderer struct {
	mu       sync.Mutex
	frames   int
	uploaded int
	width    int
	height   int
}

func (r *fakeRenderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = width, height
}
func (r *fakeRenderer) SetPresentMode(mode renderer.PresentMode) {}
func (r *fakeRenderer) UploadField(field starfield.Field) error {
	r.uploaded = field.Count()
	return nil
}
func (r *fakeRenderer) RenderFrame(cam camera.Camera, field starfield.Field) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames++
	return nil
}
func (r *fakeRenderer) Release() {}

func (r *fakeRenderer) frameCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func TestEngineWiring(t *testing.T) {
	Convey("Given an engine over a fake window and renderer", t, func() {
		win := &fakeWindow{width: 1600, height: 800}
		rend := &fakeRenderer{}
		cfg, err := camera.NewScrollConfig()
		So(err, ShouldBeNil)
		ctrl := camera.NewScrollController(cfg)

		eng, err := NewEngine(
			WithWindow(win),
			WithRenderer(rend),
			WithScrollController(ctrl),
			WithTracker(scroll.NewTracker(scroll.WithPageLength(3000), scroll.WithWheelStep(100))),
			WithField(starfield.NewField(starfield.WithCount(25))),
			WithTitleStatus("preview"),
		)
		So(err, ShouldBeNil)
		e := eng.(*engine)

		Convey("The star field is uploaded and the camera takes the window aspect", func() {
			So(rend.uploaded, ShouldEqual, 25)
			So(eng.Camera().Aspect(), ShouldAlmostEqual, 2.0)
			So(eng.Camera().Controller(), ShouldEqual, ctrl)
		})

		Convey("Scroll input stores the offset without moving the camera until the next tick", func() {
			win.onScroll(-3)
			So(eng.Tracker().Offset(), ShouldEqual, -300)
			So(ctrl.Scroll(), ShouldEqual, -300)
			So(ctrl.Pose().Offset, ShouldEqual, 0)

			e.tick(1.0 / 60)
			So(ctrl.Pose().Offset, ShouldEqual, -300)
			So(ctrl.Pose(), ShouldResemble, camera.ComputePose(cfg, -300))
		})

		Convey("Only the latest of several scroll events is applied", func() {
			win.onScroll(-1)
			win.onScroll(-1)
			win.onKey(common.KeyPageDown, false)
			e.tick(1.0 / 60)
			So(ctrl.Pose().Offset, ShouldEqual, eng.Tracker().Offset())
			So(ctrl.Pose().Offset, ShouldBeLessThan, -200)
		})

		Convey("A resize updates the renderer and the camera aspect", func() {
			win.onResize(900, 900)
			So(rend.width, ShouldEqual, 900)
			So(eng.Camera().Aspect(), ShouldAlmostEqual, 1.0)

			Convey("A zero-sized resize is ignored", func() {
				win.onResize(0, 0)
				So(rend.width, ShouldEqual, 900)
				So(eng.Camera().Aspect(), ShouldAlmostEqual, 1.0)
			})
		})

		Convey("The window title shows the applied offset and regime", func() {
			win.onScroll(-2)
			e.tick(1.0 / 60)
			win.onUpdate()
			So(win.title, ShouldEqual, "preview | offset -200 | "+ctrl.Pose().Regime.String())
		})

		Convey("The tick and render loops run until Quit", func() {
			var ticks int
			var mu sync.Mutex
			eng.SetTickCallback(func(dt float32) {
				mu.Lock()
				ticks++
				mu.Unlock()
			})
			eng.SetTickRate(500)
			eng.SetRenderFrameLimit(500)

			e.handle()
			time.Sleep(50 * time.Millisecond)
			eng.Quit()
			eng.Quit()
			e.wg.Wait()

			mu.Lock()
			defer mu.Unlock()
			So(ticks, ShouldBeGreaterThan, 0)
			So(rend.frameCount(), ShouldBeGreaterThan, 0)
		})
	})

	Convey("SetTickRate from another goroutine races safely with Quit", t, func() {
		eng, err := NewEngine(WithTickRate(200))
		So(err, ShouldBeNil)
		e := eng.(*engine)
		e.handle()
		So(e.running.Load(), ShouldBeTrue)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 1; i <= 50; i++ {
				eng.SetTickRate(float64(100 + i))
			}
		}()
		go func() {
			defer wg.Done()
			eng.Quit()
		}()
		wg.Wait()
		e.wg.Wait()

		So(e.running.Load(), ShouldBeFalse)
		eng.SetTickRate(30)
		So(time.Duration(e.engineTickRate.Load()), ShouldEqual, time.Second/30)
	})

	Convey("An engine without a window cannot run", t, func() {
		eng, err := NewEngine()
		So(err, ShouldBeNil)
		So(eng.Run(), ShouldNotBeNil)
		So(eng.Controller(), ShouldNotBeNil)
		So(eng.Camera().Controller(), ShouldEqual, eng.Controller())
	})

	Convey("A camera built with a scroll controller keeps it", t, func() {
		cfg, err := camera.NewScrollConfig(camera.WithoutPivot())
		So(err, ShouldBeNil)
		ctrl := camera.NewScrollController(cfg)
		eng, err := NewEngine(WithCamera(camera.NewCamera(camera.WithController(ctrl))))
		So(err, ShouldBeNil)
		So(eng.Controller(), ShouldEqual, ctrl)
	})

	Convey("SetTickRate before Run replaces the tick interval", t, func() {
		eng, err := NewEngine(WithTickRate(30))
		So(err, ShouldBeNil)
		e := eng.(*engine)
		So(time.Duration(e.engineTickRate.Load()), ShouldEqual, time.Second/30)
		eng.SetTickRate(0)
		So(time.Duration(e.engineTickRate.Load()), ShouldEqual, time.Second/60)
	})
}
