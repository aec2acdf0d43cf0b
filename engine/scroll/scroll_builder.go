package scroll

// TrackerBuilderOption is a functional option for configuring a Tracker.
type TrackerBuilderOption func(*trackerImpl)

// WithPageLength sets the scrollable distance of the page. The offset is clamped to [-length, 0].
//
// Parameters:
//   - length: page length in scroll units (sign is ignored)
//
// Returns:
//   - TrackerBuilderOption: functional option to set the page length
func WithPageLength(length float64) TrackerBuilderOption {
	return func(tr *trackerImpl) {
		tr.pageLength = length
	}
}

// WithWheelStep sets the distance scrolled per wheel tick.
//
// Parameters:
//   - step: scroll units per wheel tick
//
// Returns:
//   - TrackerBuilderOption: functional option to set the wheel step
func WithWheelStep(step float64) TrackerBuilderOption {
	return func(tr *trackerImpl) {
		tr.wheelStep = step
	}
}

// WithKeySteps sets the distances scrolled by arrow keys and by paging keys.
//
// Parameters:
//   - line: scroll units per arrow key press
//   - page: scroll units per Page Up/Down or Space press
//
// Returns:
//   - TrackerBuilderOption: functional option to set the key steps
func WithKeySteps(line, page float64) TrackerBuilderOption {
	return func(tr *trackerImpl) {
		tr.keyStep = line
		tr.pageStep = page
	}
}

// WithChangeCallback registers the function called with the new offset after every change.
//
// Parameters:
//   - callback: function receiving the clamped offset
//
// Returns:
//   - TrackerBuilderOption: functional option to set the change callback
func WithChangeCallback(callback func(offset float64)) TrackerBuilderOption {
	return func(tr *trackerImpl) {
		tr.onChange = callback
	}
}
