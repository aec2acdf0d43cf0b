package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer"
	"github.com/Carmen-Shannon/oxy-scroll/engine/scroll"
	"github.com/Carmen-Shannon/oxy-scroll/engine/starfield"
	"github.com/Carmen-Shannon/oxy-scroll/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the engine tick rate in ticks per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate.Store(int64(time.Duration(float64(time.Second) / fps)))
	}
}

// WithWindow sets the window whose input drives the tracker.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer that draws each frame.
//
// Parameters:
//   - r: a renderer bound to the window's surface
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithCamera sets the camera. If it has no controller, the engine's scroll controller is attached.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithScrollController sets the controller that turns offsets into poses.
//
// Parameters:
//   - ctrl: the scroll controller
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScrollController(ctrl camera.ScrollController) EngineBuilderOption {
	return func(e *engine) {
		e.controller = ctrl
	}
}

// WithTracker sets the scroll tracker fed by window input.
//
// Parameters:
//   - t: the tracker
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTracker(t scroll.Tracker) EngineBuilderOption {
	return func(e *engine) {
		e.tracker = t
	}
}

// WithField sets the star field drawn behind the camera path.
//
// Parameters:
//   - f: the star field
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithField(f starfield.Field) EngineBuilderOption {
	return func(e *engine) {
		e.field = f
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
	}
}

// WithTitleStatus shows the scroll offset and regime in the window title.
//
// Parameters:
//   - prefix: text shown before the status
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTitleStatus(prefix string) EngineBuilderOption {
	return func(e *engine) {
		e.titleStatus = true
		if prefix != "" {
			e.titlePrefix = prefix
		}
	}
}
