package renderer

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/starfield"
	"github.com/cogentcore/webgpu/wgpu"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	sampleCount          MSAASampleCount
	clearColor           wgpu.Color
	pointSize            float32
}

// Renderer draws a star field through a scroll-driven camera.
// It owns the GPU surface and turns the camera and field state into uniforms once per frame.
type Renderer interface {
	// Resize reconfigures the surface for a new framebuffer size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode changes the present mode. Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// UploadField replaces the star instance buffer with the field's stars.
	//
	// Parameters:
	//   - field: the star field to draw
	//
	// Returns:
	//   - error: an error if the GPU buffer could not be created
	UploadField(field starfield.Field) error

	// RenderFrame writes the uniforms for cam and field and draws one frame.
	//
	// Parameters:
	//   - cam: the camera whose matrices were refreshed this frame
	//   - field: the star field whose spin state to draw
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	RenderFrame(cam camera.Camera, field starfield.Field) error

	// Release frees every GPU resource owned by the renderer.
	Release()
}

var _ Renderer = &renderer{}

// StarShaderSource returns the complete WGSL program for star sprites: the camera and field uniform
// structs, the per-instance star input and the vertex/fragment entry points.
//
// Returns:
//   - string: WGSL source
func StarShaderSource() string {
	return strings.Join([]string{
		camera.GPUCameraUniformSource,
		starfield.GPUFieldUniformSource,
		starfield.GPUStarSource,
		starShaderSource,
	}, "\n")
}

// NewRenderer creates a WebGPU renderer for the given surface and configures it for width x height.
//
// Parameters:
//   - surfaceDescriptor: the platform surface descriptor from the window
//   - width: initial framebuffer width in pixels
//   - height: initial framebuffer height in pixels
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the newly created renderer
//   - error: an error if the adapter, device or pipeline could not be created
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		presentMode: PresentModeVSync,
		sampleCount: MSAA4x,
		clearColor:  wgpu.Color{R: 0.01, G: 0.01, B: 0.03, A: 1.0},
		pointSize:   0.7,
	}
	for _, opt := range options {
		opt(r)
	}

	backend, err := newWGPURendererBackend(surfaceDescriptor, r.forceFallbackAdapter, r.sampleCount, r.clearColor)
	if err != nil {
		return nil, fmt.Errorf("failed to create wgpu backend: %w", err)
	}
	r.backend = backend
	r.backend.SetPresentMode(r.presentMode)
	r.backend.ConfigureSurface(width, height)

	if err := r.backend.RegisterStarPipeline(StarShaderSource()); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("failed to register star pipeline: %w", err)
	}
	log.Printf("[Renderer] configured %dx%d, msaa %dx", width, height, r.sampleCount)
	return r, nil
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presentMode = mode
	r.backend.SetPresentMode(mode)
}

func (r *renderer) UploadField(field starfield.Field) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend.InitStarBuffer(field.InstanceData(), field.Count())
}

func (r *renderer) RenderFrame(cam camera.Camera, field starfield.Field) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cu := camera.NewGPUCameraUniform(cam, r.pointSize)
	fu := field.Uniform()
	r.backend.WriteUniforms(cu.Marshal(), fu.Marshal())

	if err := r.backend.BeginFrame(); err != nil {
		return err
	}
	r.backend.DrawStars()
	r.backend.EndFrame()
	r.backend.Present()
	return nil
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.Release()
}
