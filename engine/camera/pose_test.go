package camera

import (
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	. "github.com/smartystreets/goconvey/convey"
)

const tolerance = 1e-9

func representativeConfig(t *testing.T, options ...ScrollConfigOption) ScrollConfig {
	t.Helper()
	base := []ScrollConfigOption{
		WithOrigin(-200, 0, 300),
		WithPivotPoint(-280, 0, 0),
		WithInitialZSpeed(0.2),
		WithPostPivotXSpeed(0.08),
		WithOrbitShape(180, 0.4),
		WithOrbitRate(0.1),
		WithOscillation(30, 0.002),
		WithLookAt(-200, -280, -1500),
	}
	cfg, err := NewScrollConfig(append(base, options...)...)
	if err != nil {
		t.Fatalf("representative config rejected: %v", err)
	}
	return cfg
}

func TestScrollConfigDerivation(t *testing.T) {
	Convey("Given the representative scene constants", t, func() {
		cfg := representativeConfig(t)

		Convey("The pivot limit is derived from the z approach", func() {
			So(cfg.PivotLimit(), ShouldAlmostEqual, -1500, tolerance)
		})

		Convey("The x rate makes the approach line pass through the pivot", func() {
			So(cfg.InitialXSpeed(), ShouldAlmostEqual, 80.0/1500.0, tolerance)
		})
	})

	Convey("Given a zero initial z speed", t, func() {
		_, err := NewScrollConfig(WithInitialZSpeed(0))

		Convey("Construction fails with ErrInvalidConfig", func() {
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		})
	})

	Convey("Given a pivot that shares the origin's z coordinate", t, func() {
		_, err := NewScrollConfig(WithOrigin(0, 0, 50), WithPivotPoint(10, 0, 50))
		So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
	})

	Convey("Given degenerate look-at and shape constants", t, func() {
		_, err := NewScrollConfig(WithLookAt(0, 10, 0))
		So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)

		_, err = NewScrollConfig(WithOrbitShape(180, 0))
		So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)

		_, err = NewScrollConfig(WithOrigin(math.NaN(), 0, 300))
		So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
	})

	Convey("Given an explicit x speed with a pivot", t, func() {
		_, err := NewScrollConfig(WithInitialXSpeed(0.5))
		So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
	})

	Convey("Given a hand-coded pivot limit", t, func() {
		cfg, err := NewScrollConfig(
			WithOrigin(0, 0, 100),
			WithPivotPoint(-40, 0, 20),
			WithPivotLimit(-400),
		)
		So(err, ShouldBeNil)

		Convey("The limit is kept and both approach rates are derived from it", func() {
			So(cfg.PivotLimit(), ShouldEqual, -400)
			So(cfg.InitialZSpeed(), ShouldAlmostEqual, 0.2, tolerance)
			So(cfg.InitialXSpeed(), ShouldAlmostEqual, 0.1, tolerance)
			So(cfg.ContinuityGap(), ShouldBeLessThan, tolerance)
		})
	})

	Convey("Given a zero hand-coded pivot limit", t, func() {
		_, err := NewScrollConfig(WithPivotLimit(0))
		So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
	})
}

func TestComputePoseRegimes(t *testing.T) {
	Convey("Given the representative scene constants", t, func() {
		cfg := representativeConfig(t)

		Convey("At the top of the page the camera sits at the origin", func() {
			p := ComputePose(cfg, 0)
			So(p.Regime, ShouldEqual, RegimeApproach)
			So(p.Position.X(), ShouldEqual, -200)
			So(p.Position.Y(), ShouldEqual, 0)
			So(p.Position.Z(), ShouldEqual, 300)
		})

		Convey("At the pivot limit both regimes agree", func() {
			limit := cfg.PivotLimit()
			a := cfg.approachPosition(limit)
			b := cfg.orbitPosition(limit)
			for i := range 3 {
				So(common.ApproxEqual(a[i], b[i], tolerance), ShouldBeTrue)
			}
			So(b.X(), ShouldAlmostEqual, -280, tolerance)
			So(b.Z(), ShouldAlmostEqual, 0, tolerance)
			So(ComputePose(cfg, limit).Regime, ShouldEqual, RegimeOrbit)
			So(cfg.BlendFactor(b.X()), ShouldEqual, 0)
		})

		Convey("Just above the limit the approach regime is still active", func() {
			p := ComputePose(cfg, cfg.PivotLimit()+1e-6)
			So(p.Regime, ShouldEqual, RegimeApproach)
			So(p.Position.X(), ShouldAlmostEqual, -280, 1e-6)
		})

		Convey("Deep in the orbit regime the spiral term has damped out", func() {
			t0 := -5000.0
			past := t0 - cfg.PivotLimit()
			p := ComputePose(cfg, t0)
			So(p.Regime, ShouldEqual, RegimeOrbit)
			So(p.Position.X(), ShouldAlmostEqual, -280-past*0.08, tolerance)
			So(cfg.BlendFactor(p.Position.X()), ShouldEqual, 1)
			So(p.Position.Z(), ShouldAlmostEqual, 30*math.Sin(past*0.002), tolerance)
		})

		Convey("The blend factor stays within [0, 1]", func() {
			for t0 := 0.0; t0 > -20000; t0 -= 37 {
				x := ComputePose(cfg, t0).Position.X()
				f := cfg.BlendFactor(x)
				So(f, ShouldBeBetweenOrEqual, 0, 1)
			}
		})
	})
}

func TestComputePoseProperties(t *testing.T) {
	Convey("Given the representative scene constants", t, func() {
		cfg := representativeConfig(t, WithLookAtOffset(5))

		Convey("Look-at endpoints are reached at 0 and maxScroll", func() {
			So(ComputePose(cfg, 0).LookAt.X(), ShouldEqual, -200+5)
			So(ComputePose(cfg, cfg.MaxScroll()).LookAt.X(), ShouldEqual, -280+5)
		})

		Convey("Look-at x stays between its endpoints on a fixed plane", func() {
			for _, t0 := range []float64{1000, 0, -1, -750, -1500, -1501, -1e6, math.Inf(-1)} {
				l := ComputePose(cfg, t0).LookAt
				So(l.X(), ShouldBeBetweenOrEqual, -280+5, -200+5)
				So(l.Y(), ShouldEqual, 0)
				So(l.Z(), ShouldEqual, 0)
			}
		})

		Convey("Evaluation is idempotent", func() {
			for _, t0 := range []float64{0, -123.456, -1500, -4321.5} {
				So(ComputePose(cfg, t0), ShouldResemble, ComputePose(cfg, t0))
			}
		})

		Convey("x moves strictly monotonically with t in the approach regime", func() {
			prev := ComputePose(cfg, 500).Position.X()
			for t0 := 450.0; t0 > cfg.PivotLimit(); t0 -= 50 {
				x := ComputePose(cfg, t0).Position.X()
				So(x, ShouldBeLessThan, prev)
				prev = x
			}
		})
	})

	Convey("Given a zero orbit span", t, func() {
		cfg := representativeConfig(t, WithOrbitShape(0, 0.4))

		Convey("The blend ratio collapses to 0 and output stays finite", func() {
			for _, t0 := range []float64{-1500, -2000, -9000} {
				p := ComputePose(cfg, t0)
				So(common.IsFinite(p.Position[:]...), ShouldBeTrue)
				So(cfg.BlendFactor(p.Position.X()), ShouldEqual, 0)
			}
		})
	})

	Convey("Given a negative post-pivot speed that moves x toward the pivot's far side", t, func() {
		cfg := representativeConfig(t, WithPostPivotXSpeed(-0.08))

		Convey("The negative ratio clamps to 0 instead of producing NaN", func() {
			p := ComputePose(cfg, -4000)
			So(common.IsFinite(p.Position[:]...), ShouldBeTrue)
			So(cfg.BlendFactor(p.Position.X()), ShouldEqual, 0)
		})
	})
}

func TestLinearOnlyVariant(t *testing.T) {
	Convey("Given a config without a pivot", t, func() {
		cfg, err := NewScrollConfig(
			WithoutPivot(),
			WithOrigin(0, 0, 100),
			WithInitialXSpeed(0.002),
			WithInitialYSpeed(0.002),
			WithInitialZSpeed(0.01),
		)
		So(err, ShouldBeNil)
		So(cfg.PivotEnabled(), ShouldBeFalse)
		So(math.IsInf(cfg.PivotLimit(), -1), ShouldBeTrue)
		So(cfg.ContinuityGap(), ShouldEqual, 0)

		Convey("Every offset uses the approach line", func() {
			p := ComputePose(cfg, -10000)
			So(p.Regime, ShouldEqual, RegimeApproach)
			So(p.Position.X(), ShouldAlmostEqual, -20, tolerance)
			So(p.Position.Y(), ShouldAlmostEqual, -20, tolerance)
			So(p.Position.Z(), ShouldAlmostEqual, 0, tolerance)
		})
	})

	Convey("Given a linear-only config with a zero z speed", t, func() {
		_, err := NewScrollConfig(WithoutPivot(), WithInitialZSpeed(0))

		Convey("No pivot limit is derived so construction succeeds", func() {
			So(err, ShouldBeNil)
		})
	})
}

func TestVerticalRateHeldPastPivot(t *testing.T) {
	Convey("Given a config with a vertical approach rate", t, func() {
		cfg := representativeConfig(t, WithInitialYSpeed(0.01))

		Convey("y holds the value reached at the limit", func() {
			atLimit := ComputePose(cfg, cfg.PivotLimit()).Position.Y()
			So(atLimit, ShouldAlmostEqual, -15, tolerance)
			So(ComputePose(cfg, -6000).Position.Y(), ShouldEqual, atLimit)
			So(cfg.ContinuityGap(), ShouldBeLessThan, tolerance)
		})
	})
}
