package camera

// CameraController defines the interface a Camera reads its position and target from.
// Controllers own positional state; the Camera only turns it into matrices.
type CameraController interface {
	// Update refreshes the controller's positional state. Called by Camera.Update once per frame
	// before Position and Target are read, so both come from the same snapshot.
	Update()

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)
}

// ScrollController is a CameraController driven by a scroll offset.
// The offset may be set from any goroutine; the latest value wins and is only turned into a pose
// when Update runs.
type ScrollController interface {
	CameraController

	// SetScroll stores the latest scroll offset.
	//
	// Parameters:
	//   - offset: scroll offset (0 at the top, negative further down)
	SetScroll(offset float64)

	// Scroll returns the latest scroll offset.
	//
	// Returns:
	//   - float64: the stored scroll offset
	Scroll() float64

	// Pose returns the pose computed by the last Update.
	//
	// Returns:
	//   - Pose: the most recently applied pose
	Pose() Pose

	// Config returns the immutable configuration the controller evaluates.
	//
	// Returns:
	//   - ScrollConfig: the controller's configuration
	Config() ScrollConfig
}
