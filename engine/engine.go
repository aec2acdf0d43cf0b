package engine

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/profiler"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer"
	"github.com/Carmen-Shannon/oxy-scroll/engine/scroll"
	"github.com/Carmen-Shannon/oxy-scroll/engine/starfield"
	"github.com/Carmen-Shannon/oxy-scroll/engine/window"
)

// engine implements the Engine interface.
// Coordinates the tick, render and window threads.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window   window.Window
	renderer renderer.Renderer

	camera     camera.Camera
	controller camera.ScrollController
	tracker    scroll.Tracker
	field      starfield.Field

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate atomic.Int64 // time.Duration between ticks
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	titleStatus     bool
	titlePrefix     string
	lastTitleUpdate time.Time
}

// Engine is the main entry point for the scroll preview.
// Scroll input is stored as it arrives; each tick turns the latest offset into a camera pose,
// and each render frame draws the star field through that pose.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil when running headless
	Window() window.Window

	// Camera returns the camera the renderer draws through.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Controller returns the scroll controller attached to the camera.
	//
	// Returns:
	//   - camera.ScrollController: the controller
	Controller() camera.ScrollController

	// Tracker returns the scroll tracker fed by window input.
	//
	// Returns:
	//   - scroll.Tracker: the tracker
	Tracker() scroll.Tracker

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers a function called each engine tick after the pose is applied.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers a function called after each rendered frame.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run starts the tick and render loops and blocks in the window message loop until the window closes.
	//
	// Returns:
	//   - error: an error if the engine has no window
	Run() error

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine with the provided options.
// Missing pieces get defaults: a controller over the default scroll config, a tracker,
// a camera attached to the controller and a default star field.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: an error if the default scroll config cannot be built
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		tickRateChannel:  make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		profilingEnabled: false,
		titlePrefix:      "oxy-scroll",
	}

	e.profiler = profiler.NewProfiler(profiler.WithStatus(e.status))

	e.engineTickRate.Store(int64(time.Second / 60))

	for _, opt := range options {
		opt(e)
	}

	if e.controller == nil && e.camera != nil {
		if sc, ok := e.camera.Controller().(camera.ScrollController); ok {
			e.controller = sc
		}
	}
	if e.controller == nil {
		cfg, err := camera.NewScrollConfig()
		if err != nil {
			return nil, fmt.Errorf("engine: default scroll config: %w", err)
		}
		e.controller = camera.NewScrollController(cfg)
	}
	if e.tracker == nil {
		e.tracker = scroll.NewTracker()
	}
	if e.camera == nil {
		e.camera = camera.NewCamera()
	}
	if e.camera.Controller() != e.controller {
		e.camera.SetController(e.controller)
	}
	e.camera.Update()
	if e.field == nil {
		e.field = starfield.NewField()
	}

	// Input only stores the offset; the pose is computed on the next tick.
	e.tracker.SetChangeCallback(e.controller.SetScroll)
	e.controller.SetScroll(e.tracker.Offset())

	if e.window != nil {
		e.bindWindow()
	}
	if e.renderer != nil {
		if err := e.renderer.UploadField(e.field); err != nil {
			return nil, fmt.Errorf("engine: upload star field: %w", err)
		}
	}

	return e, nil
}

// bindWindow routes window input to the tracker and resizes to the renderer and camera.
func (e *engine) bindWindow() {
	if e.window.Height() > 0 {
		e.camera.SetAspect(float32(e.window.Width()) / float32(e.window.Height()))
	}
	e.window.SetResizeCallback(func(width, height int) {
		if width <= 0 || height <= 0 {
			return
		}
		if e.renderer != nil {
			e.renderer.Resize(width, height)
		}
		e.camera.SetAspect(float32(width) / float32(height))
	})
	e.window.SetScrollCallback(e.tracker.Wheel)
	e.window.SetKeyDownCallback(func(keyCode uint32, shift bool) {
		e.tracker.Key(keyCode, shift)
	})
	e.window.SetUpdateCallback(e.updateTitle)
}

// updateTitle shows the current offset and regime in the title bar. Runs on the window thread.
func (e *engine) updateTitle() {
	if !e.titleStatus {
		return
	}
	now := time.Now()
	if now.Sub(e.lastTitleUpdate) < 100*time.Millisecond {
		return
	}
	e.lastTitleUpdate = now
	e.window.SetTitle(e.titlePrefix + " | " + e.status())
}

// status describes the pose most recently applied to the camera.
func (e *engine) status() string {
	pose := e.controller.Pose()
	return fmt.Sprintf("offset %.0f | %s", pose.Offset, pose.Regime)
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Controller() camera.ScrollController {
	return e.controller
}

func (e *engine) Tracker() scroll.Tracker {
	return e.tracker
}

func (e *engine) Run() error {
	if e.window == nil {
		return fmt.Errorf("engine: no window to run")
	}
	e.handle()
	e.window.ProcessMessages()
	e.signalQuit()
	e.wg.Wait()
	return nil
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		close(e.quitChannel)
	})
}

// handle launches the tick and render goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.running.Store(true)
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleRender()
}

// tick applies the latest scroll offset to the camera and advances the star field.
func (e *engine) tick(dt float32) {
	e.camera.Update()
	e.field.Tick(dt)
	if e.profilingEnabled {
		e.profiler.EngineTick()
	}
	if e.tickCallback != nil {
		e.tickCallback(dt)
	}
}

// handleEngine runs the fixed-rate tick loop in its own goroutine.
// Listens for dynamic rate changes via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(time.Duration(e.engineTickRate.Load()))
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			e.tick(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
		}
	}
}

// handleRender runs the uncapped (or frame-limited) render loop in its own goroutine.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] render goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			if e.renderer != nil {
				if err := e.renderer.RenderFrame(e.camera, e.field); err != nil {
					log.Printf("[Engine] frame skipped: %v", err)
				}
			}

			if e.renderCallback != nil {
				e.renderCallback(dt)
			}

			if e.profilingEnabled && e.profiler != nil {
				e.profiler.Tick()
			}

			if e.renderFrameLimit > 0 {
				elapsed := time.Since(lastRender)
				if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	e.engineTickRate.Store(int64(newRate))
	if !e.running.Load() {
		return
	}
	// Replace any pending update so the newest rate wins. Never blocks.
	for range 2 {
		select {
		case e.tickRateChannel <- newRate:
			return
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
		}
	}
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}
