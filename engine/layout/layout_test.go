package layout

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/scroll"
	"github.com/Carmen-Shannon/oxy-scroll/engine/starfield"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEmbeddedScenes(t *testing.T) {
	Convey("The embedded scenes are listed and all build valid configs", t, func() {
		So(Names(), ShouldResemble, []string{"moon", "solar", "solar-fixed", "torus"})
		for _, name := range Names() {
			spec, err := LoadFrom("", name)
			So(err, ShouldBeNil)
			So(spec.Name, ShouldEqual, name)
			_, err = spec.ScrollConfig()
			So(err, ShouldBeNil)
		}
	})

	Convey("Given the solar scene", t, func() {
		spec, err := LoadFrom("", "solar")
		So(err, ShouldBeNil)
		cfg, err := spec.ScrollConfig()
		So(err, ShouldBeNil)

		Convey("It matches the representative constants", func() {
			So(cfg.PivotLimit(), ShouldAlmostEqual, -1500, 1e-9)
			So(cfg.InitialXSpeed(), ShouldAlmostEqual, 80.0/1500.0, 1e-9)
			So(spec.PageLength(cfg), ShouldEqual, 6000)
		})

		Convey("Its star section feeds the star field", func() {
			f := starfield.NewField(spec.StarOptions()...)
			So(f.Count(), ShouldEqual, 400)
		})

		Convey("Its page section feeds the tracker", func() {
			tr := scroll.NewTracker(spec.TrackerOptions(cfg)...)
			So(tr.PageLength(), ShouldEqual, 6000)
			tr.Wheel(-1)
			So(tr.Offset(), ShouldEqual, -100)
		})

		Convey("Its camera section sets the field of view", func() {
			cam := camera.NewCamera(spec.CameraOptions()...)
			So(cam.Fov(), ShouldAlmostEqual, 75*math.Pi/180, 1e-6)
		})
	})

	Convey("Given the solar-fixed scene", t, func() {
		spec, err := LoadFrom("", "solar-fixed.yaml")
		So(err, ShouldBeNil)
		cfg, err := spec.ScrollConfig()
		So(err, ShouldBeNil)

		Convey("The hand-coded limit is kept and the z rate derived from it", func() {
			So(cfg.PivotLimit(), ShouldEqual, -1200)
			So(cfg.InitialZSpeed(), ShouldAlmostEqual, 0.25, 1e-9)
			So(cfg.ContinuityGap(), ShouldBeLessThan, 1e-9)
		})
	})

	Convey("Given the torus scene", t, func() {
		spec, err := LoadFrom("", "scenes/torus")
		So(err, ShouldBeNil)
		cfg, err := spec.ScrollConfig()
		So(err, ShouldBeNil)

		Convey("It is the linear-only variant", func() {
			So(cfg.PivotEnabled(), ShouldBeFalse)
			p := camera.ComputePose(cfg, -1000)
			So(p.Position.X(), ShouldAlmostEqual, -2, 1e-9)
			So(p.Position.Y(), ShouldAlmostEqual, -2, 1e-9)
			So(p.Position.Z(), ShouldAlmostEqual, 90, 1e-9)
		})
	})
}

func TestLoadFromDisk(t *testing.T) {
	Convey("Given a scene directory", t, func() {
		dir := t.TempDir()

		Convey("A file on disk overrides the embedded copy", func() {
			data := []byte("name: solar\norigin: {x: 0, y: 0, z: 50}\npivot:\n  point: {x: -10, y: 0, z: 0}\n" +
				"speeds: {z: 0.1, post_pivot_x: 0.01}\norbit: {span: 10, exponent: 1, rate: 0.1}\n" +
				"look_at: {start_x: 0, end_x: -10, max_scroll: -500}\n")
			So(os.WriteFile(filepath.Join(dir, "solar.yaml"), data, 0o644), ShouldBeNil)

			spec, err := LoadFrom(dir, "solar")
			So(err, ShouldBeNil)
			cfg, err := spec.ScrollConfig()
			So(err, ShouldBeNil)
			So(cfg.PivotLimit(), ShouldAlmostEqual, -500, 1e-9)

			_, ok := ModTime(dir, "solar")
			So(ok, ShouldBeTrue)
		})

		Convey("A missing name is ErrUnknownScene", func() {
			_, err := LoadFrom(dir, "saturn")
			So(errors.Is(err, ErrUnknownScene), ShouldBeTrue)
			_, err = LoadFrom(dir, "")
			So(errors.Is(err, ErrUnknownScene), ShouldBeTrue)
		})

		Convey("Malformed YAML is reported", func() {
			So(os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("origin: [1, 2"), 0o644), ShouldBeNil)
			_, err := LoadFrom(dir, "bad")
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrUnknownScene), ShouldBeFalse)
		})

		Convey("Degenerate constants surface as ErrInvalidConfig", func() {
			path := filepath.Join(dir, "flat.yaml")
			data := []byte("origin: {x: 0, y: 0, z: 0}\npivot:\n  point: {x: 5, y: 0, z: 0}\nspeeds: {z: 0.1}\n" +
				"orbit: {exponent: 1}\nlook_at: {max_scroll: -100}\n")
			So(os.WriteFile(path, data, 0o644), ShouldBeNil)

			spec, err := LoadFile(path)
			So(err, ShouldBeNil)
			So(spec.Name, ShouldEqual, "flat")
			_, err = spec.ScrollConfig()
			So(errors.Is(err, camera.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}

func TestPageLengthFallback(t *testing.T) {
	Convey("Given a layout without a page length", t, func() {
		spec, err := LoadFrom("", "solar")
		So(err, ShouldBeNil)
		spec.Page.Length = 0
		cfg, err := spec.ScrollConfig()
		So(err, ShouldBeNil)

		Convey("The page extends a quarter past the pivot limit", func() {
			So(spec.PageLength(cfg), ShouldAlmostEqual, 1875, 1e-9)
		})
	})
}

func TestWatcher(t *testing.T) {
	Convey("Given a watcher on a scene directory", t, func() {
		dir := t.TempDir()
		w, err := NewWatcher(dir)
		So(err, ShouldBeNil)
		defer w.Close()

		Convey("Writing a layout file reports its path", func() {
			path := filepath.Join(dir, "solar.yaml")
			So(os.WriteFile(path, []byte("name: solar\n"), 0o644), ShouldBeNil)

			select {
			case got := <-w.Events:
				So(got, ShouldEqual, path)
			case <-time.After(5 * time.Second):
				So("timed out waiting for watcher event", ShouldBeEmpty)
			}
		})

		Convey("Close is safe to call twice", func() {
			So(w.Close(), ShouldBeNil)
			So(w.Close(), ShouldBeNil)
		})
	})
}
