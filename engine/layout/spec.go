package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/scroll"
	"github.com/Carmen-Shannon/oxy-scroll/engine/starfield"
	"gopkg.in/yaml.v3"
)

// ErrUnknownScene is returned when a scene name matches neither a file on disk nor an embedded layout.
var ErrUnknownScene = errors.New("layout: unknown scene")

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// PivotSpec places the orbit pivot. Limit, when set, replaces the derived pivot threshold.
type PivotSpec struct {
	Point Vec3Spec `yaml:"point"`
	Limit *float64 `yaml:"limit"`
}

// SpeedSpec holds the per-unit-scroll rates. X is only allowed without a pivot; with a pivot it is derived.
type SpeedSpec struct {
	X         *float64 `yaml:"x"`
	Y         float64  `yaml:"y"`
	Z         float64  `yaml:"z"`
	PostPivot float64  `yaml:"post_pivot_x"`
}

type OrbitSpec struct {
	Span     float64 `yaml:"span"`
	Exponent float64 `yaml:"exponent"`
	Rate     float64 `yaml:"rate"`
}

type OscillationSpec struct {
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
}

type LookAtSpec struct {
	StartX    float64 `yaml:"start_x"`
	EndX      float64 `yaml:"end_x"`
	MaxScroll float64 `yaml:"max_scroll"`
	Offset    float64 `yaml:"offset"`
}

// PageSpec describes the virtual page the scroll tracker walks.
type PageSpec struct {
	Length    float64 `yaml:"length"`
	WheelStep float64 `yaml:"wheel_step"`
	LineStep  float64 `yaml:"line_step"`
	PageStep  float64 `yaml:"page_step"`
}

type CameraSpec struct {
	FovDegrees float64 `yaml:"fov"`
	Near       float64 `yaml:"near"`
	Far        float64 `yaml:"far"`
	PointSize  float64 `yaml:"point_size"`
}

type StarsSpec struct {
	Count  int      `yaml:"count"`
	Spread float64  `yaml:"spread"`
	Center Vec3Spec `yaml:"center"`
	Seed   uint64   `yaml:"seed"`
	Spin   Vec3Spec `yaml:"spin"`
}

// SceneSpec is one scene layout: the scroll camera constants plus the page, camera and star field
// settings the preview and tools need.
type SceneSpec struct {
	Name        string          `yaml:"name"`
	Origin      Vec3Spec        `yaml:"origin"`
	Pivot       *PivotSpec      `yaml:"pivot"`
	Speeds      SpeedSpec       `yaml:"speeds"`
	Orbit       OrbitSpec       `yaml:"orbit"`
	Oscillation OscillationSpec `yaml:"oscillation"`
	LookAt      LookAtSpec      `yaml:"look_at"`
	Page        PageSpec        `yaml:"page"`
	Camera      CameraSpec      `yaml:"camera"`
	Stars       StarsSpec       `yaml:"stars"`
}

// Parse decodes a scene layout from YAML.
//
// Parameters:
//   - data: YAML document
//
// Returns:
//   - *SceneSpec: the decoded layout
//   - error: an error if the document is malformed
func Parse(data []byte) (*SceneSpec, error) {
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("layout: unmarshal: %w", err)
	}
	return &spec, nil
}

// ScrollOptions converts the layout into scroll config options.
//
// Returns:
//   - []camera.ScrollConfigOption: options for camera.NewScrollConfig
func (s *SceneSpec) ScrollOptions() []camera.ScrollConfigOption {
	opts := []camera.ScrollConfigOption{
		camera.WithOrigin(s.Origin.X, s.Origin.Y, s.Origin.Z),
		camera.WithInitialYSpeed(s.Speeds.Y),
		camera.WithInitialZSpeed(s.Speeds.Z),
		camera.WithPostPivotXSpeed(s.Speeds.PostPivot),
		camera.WithOrbitShape(s.Orbit.Span, s.Orbit.Exponent),
		camera.WithOrbitRate(s.Orbit.Rate),
		camera.WithOscillation(s.Oscillation.Amplitude, s.Oscillation.Frequency),
		camera.WithLookAt(s.LookAt.StartX, s.LookAt.EndX, s.LookAt.MaxScroll),
		camera.WithLookAtOffset(s.LookAt.Offset),
	}
	if s.Pivot == nil {
		opts = append(opts, camera.WithoutPivot())
	} else {
		p := s.Pivot.Point
		opts = append(opts, camera.WithPivotPoint(p.X, p.Y, p.Z))
		if s.Pivot.Limit != nil {
			opts = append(opts, camera.WithPivotLimit(*s.Pivot.Limit))
		}
	}
	if s.Speeds.X != nil {
		opts = append(opts, camera.WithInitialXSpeed(*s.Speeds.X))
	}
	return opts
}

// ScrollConfig builds the immutable scroll config for this layout.
//
// Returns:
//   - camera.ScrollConfig: the derived config
//   - error: camera.ErrInvalidConfig wrapped with the scene name when the constants are degenerate
func (s *SceneSpec) ScrollConfig() (camera.ScrollConfig, error) {
	cfg, err := camera.NewScrollConfig(s.ScrollOptions()...)
	if err != nil {
		return camera.ScrollConfig{}, fmt.Errorf("layout: scene %q: %w", s.Name, err)
	}
	return cfg, nil
}

// PageLength returns the scrollable page length. Without an explicit length the page ends a quarter
// beyond the deepest point the layout cares about (the pivot limit or the look-at max scroll).
//
// Parameters:
//   - cfg: the config built from this layout
//
// Returns:
//   - float64: positive page length
func (s *SceneSpec) PageLength(cfg camera.ScrollConfig) float64 {
	if s.Page.Length > 0 {
		return s.Page.Length
	}
	deepest := math.Abs(cfg.MaxScroll())
	if cfg.PivotEnabled() {
		deepest = math.Max(deepest, math.Abs(cfg.PivotLimit()))
	}
	return deepest * 1.25
}

// TrackerOptions converts the page section into scroll tracker options.
//
// Parameters:
//   - cfg: the config built from this layout
//
// Returns:
//   - []scroll.TrackerBuilderOption: options for scroll.NewTracker
func (s *SceneSpec) TrackerOptions(cfg camera.ScrollConfig) []scroll.TrackerBuilderOption {
	return []scroll.TrackerBuilderOption{
		scroll.WithPageLength(s.PageLength(cfg)),
		scroll.WithWheelStep(common.Coalesce(s.Page.WheelStep, 100)),
		scroll.WithKeySteps(common.Coalesce(s.Page.LineStep, 40), common.Coalesce(s.Page.PageStep, 600)),
	}
}

// CameraOptions converts the camera section into camera options. Zero fields keep camera defaults.
//
// Returns:
//   - []camera.CameraBuilderOption: options for camera.NewCamera
func (s *SceneSpec) CameraOptions() []camera.CameraBuilderOption {
	var opts []camera.CameraBuilderOption
	if s.Camera.FovDegrees > 0 {
		opts = append(opts, camera.WithFov(float32(s.Camera.FovDegrees*math.Pi/180)))
	}
	if s.Camera.Near > 0 && s.Camera.Far > s.Camera.Near {
		opts = append(opts, camera.WithClipPlanes(float32(s.Camera.Near), float32(s.Camera.Far)))
	}
	return opts
}

// StarOptions converts the stars section into star field options.
//
// Returns:
//   - []starfield.FieldBuilderOption: options for starfield.NewField
func (s *SceneSpec) StarOptions() []starfield.FieldBuilderOption {
	st := s.Stars
	return []starfield.FieldBuilderOption{
		starfield.WithCount(common.Coalesce(st.Count, 400)),
		starfield.WithSpread(float32(common.Coalesce(st.Spread, 300))),
		starfield.WithCenter(float32(st.Center.X), float32(st.Center.Y), float32(st.Center.Z)),
		starfield.WithSeed(common.Coalesce(st.Seed, 1)),
		starfield.WithSpin(float32(st.Spin.X), float32(st.Spin.Y), float32(st.Spin.Z)),
	}
}
