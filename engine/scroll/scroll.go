package scroll

import (
	"math"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-scroll/common"
)

// trackerImpl implements the Tracker interface.
// The offset is stored as math.Float64bits so input callbacks and the render loop never contend on a lock.
type trackerImpl struct {
	offsetBits atomic.Uint64

	pageLength float64
	wheelStep  float64
	keyStep    float64
	pageStep   float64

	onChange func(offset float64)
}

// Tracker turns wheel and keyboard input into a page scroll offset, the way a browser reports
// the distance of the page top from the viewport: 0 at the top and increasingly negative further down.
// The offset is clamped to [-PageLength, 0]. Writes are last-write-wins.
type Tracker interface {
	// Offset returns the current scroll offset.
	//
	// Returns:
	//   - float64: offset in page units, within [-PageLength, 0]
	Offset() float64

	// PageLength returns the scrollable distance of the page.
	//
	// Returns:
	//   - float64: positive page length
	PageLength() float64

	// Wheel applies a mouse wheel delta. Positive deltas scroll toward the top.
	//
	// Parameters:
	//   - delta: wheel ticks reported by the window
	Wheel(delta float32)

	// Key applies a paging key (arrows, Page Up/Down, Space, Home, End).
	// Unknown keys are ignored.
	//
	// Parameters:
	//   - keyCode: GLFW key code
	//   - shift: whether Shift is held (Shift+Space pages up)
	//
	// Returns:
	//   - bool: true if the key changed or addressed the offset
	Key(keyCode uint32, shift bool) bool

	// Set stores an absolute offset, clamped to the page.
	//
	// Parameters:
	//   - offset: requested scroll offset
	Set(offset float64)

	// SetChangeCallback registers the function called with the new offset after every change.
	// The callback runs on the goroutine that delivered the input.
	//
	// Parameters:
	//   - callback: function receiving the clamped offset
	SetChangeCallback(callback func(offset float64))
}

var _ Tracker = &trackerImpl{}

// NewTracker creates a Tracker at the top of the page.
//
// Parameters:
//   - options: functional options for page length and step sizes
//
// Returns:
//   - Tracker: the newly created tracker
func NewTracker(options ...TrackerBuilderOption) Tracker {
	tr := &trackerImpl{
		pageLength: 6000,
		wheelStep:  100,
		keyStep:    40,
		pageStep:   600,
	}
	for _, opt := range options {
		opt(tr)
	}
	tr.pageLength = math.Abs(tr.pageLength)
	return tr
}

func (tr *trackerImpl) Offset() float64 {
	return math.Float64frombits(tr.offsetBits.Load())
}

func (tr *trackerImpl) PageLength() float64 {
	return tr.pageLength
}

func (tr *trackerImpl) Wheel(delta float32) {
	tr.add(float64(delta) * tr.wheelStep)
}

func (tr *trackerImpl) Key(keyCode uint32, shift bool) bool {
	switch keyCode {
	case common.KeyUp:
		tr.add(tr.keyStep)
	case common.KeyDown:
		tr.add(-tr.keyStep)
	case common.KeyPageUp:
		tr.add(tr.pageStep)
	case common.KeyPageDown:
		tr.add(-tr.pageStep)
	case common.KeySpace:
		if shift {
			tr.add(tr.pageStep)
		} else {
			tr.add(-tr.pageStep)
		}
	case common.KeyHome:
		tr.Set(0)
	case common.KeyEnd:
		tr.Set(-tr.pageLength)
	default:
		return false
	}
	return true
}

func (tr *trackerImpl) Set(offset float64) {
	clamped := tr.clamp(offset)
	tr.offsetBits.Store(math.Float64bits(clamped))
	tr.notify(clamped)
}

func (tr *trackerImpl) SetChangeCallback(callback func(offset float64)) {
	tr.onChange = callback
}

// add moves the offset by delta with a compare-and-swap loop so concurrent deltas are not lost.
func (tr *trackerImpl) add(delta float64) {
	for {
		oldBits := tr.offsetBits.Load()
		next := tr.clamp(math.Float64frombits(oldBits) + delta)
		if tr.offsetBits.CompareAndSwap(oldBits, math.Float64bits(next)) {
			tr.notify(next)
			return
		}
	}
}

func (tr *trackerImpl) clamp(offset float64) float64 {
	if math.IsNaN(offset) {
		return tr.Offset()
	}
	return common.Clamp(offset, -tr.pageLength, 0)
}

func (tr *trackerImpl) notify(offset float64) {
	if tr.onChange != nil {
		tr.onChange(offset)
	}
}
