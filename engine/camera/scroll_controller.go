package camera

import (
	"math"
	"sync"
	"sync/atomic"
)

// scrollControllerImpl is the ScrollController implementation.
// offsetBits holds math.Float64bits of the latest offset so scroll callbacks never block the render loop.
type scrollControllerImpl struct {
	mu *sync.Mutex

	cfg        ScrollConfig
	offsetBits atomic.Uint64

	pose Pose
}

// Compile-time interface compliance check
var _ ScrollController = &scrollControllerImpl{}

// NewScrollController creates a controller evaluating cfg. The initial pose is the pose at offset 0.
//
// Parameters:
//   - cfg: the derived scroll configuration
//
// Returns:
//   - ScrollController: the newly created controller
func NewScrollController(cfg ScrollConfig) ScrollController {
	sc := &scrollControllerImpl{
		mu:  &sync.Mutex{},
		cfg: cfg,
	}
	sc.pose = ComputePose(cfg, 0)
	return sc
}

func (sc *scrollControllerImpl) SetScroll(offset float64) {
	sc.offsetBits.Store(math.Float64bits(offset))
}

func (sc *scrollControllerImpl) Scroll() float64 {
	return math.Float64frombits(sc.offsetBits.Load())
}

func (sc *scrollControllerImpl) Update() {
	pose := ComputePose(sc.cfg, sc.Scroll())
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.pose = pose
}

func (sc *scrollControllerImpl) Pose() Pose {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.pose
}

func (sc *scrollControllerImpl) Config() ScrollConfig {
	return sc.cfg
}

func (sc *scrollControllerImpl) Position() (x, y, z float32) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	p := sc.pose.Position
	return float32(p.X()), float32(p.Y()), float32(p.Z())
}

func (sc *scrollControllerImpl) Target() (x, y, z float32) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	t := sc.pose.LookAt
	return float32(t.X()), float32(t.Y()), float32(t.Z())
}
