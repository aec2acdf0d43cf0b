package renderer

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// RendererBackend is the GPU API the Renderer drives once per frame.
type RendererBackend interface {
	// ConfigureSurface (re)configures the swapchain and depth target for a new size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode. Takes effect on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// RegisterStarPipeline compiles the star sprite shader and creates the render pipeline,
	// bind group and uniform buffers. ConfigureSurface must have run first so the surface format is known.
	//
	// Parameters:
	//   - source: complete WGSL source with vs_main and fs_main entry points
	//
	// Returns:
	//   - error: an error if shader or pipeline creation fails
	RegisterStarPipeline(source string) error

	// InitStarBuffer uploads per-instance star data, replacing any previous buffer.
	//
	// Parameters:
	//   - instanceData: packed GPUStar records
	//   - count: number of stars in instanceData
	//
	// Returns:
	//   - error: an error if the buffer could not be created
	InitStarBuffer(instanceData []byte, count int) error

	// WriteUniforms writes the camera and field uniforms to the GPU queue.
	//
	// Parameters:
	//   - cameraData: marshaled camera uniform
	//   - fieldData: marshaled field uniform
	WriteUniforms(cameraData, fieldData []byte)

	// BeginFrame acquires the next swapchain texture and begins the main render pass.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// DrawStars encodes the instanced star draw into the current render pass.
	DrawStars()

	// EndFrame ends the current render pass and submits the command buffer.
	EndFrame()

	// Present presents the surface and releases the swapchain texture.
	Present()

	// Release frees every GPU object the backend owns.
	Release()
}
