package sampler

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
)

// ErrInvalidRange is returned when a sample range is empty, not finite or too large.
var ErrInvalidRange = errors.New("sampler: invalid range")

// MaxSamples bounds a single Sample call.
const MaxSamples = 10_000_000

// Sample is the pose evaluated at one scroll offset.
type Sample struct {
	Offset float64
	Pose   camera.Pose
}

// samplerImpl implements the Sampler interface.
type samplerImpl struct {
	mu *sync.Mutex

	workers   int
	chunkSize int

	// pool runs chunk evaluations on reused goroutines.
	pool worker.DynamicWorkerPool
}

// Sampler evaluates camera poses over a range of scroll offsets in parallel.
type Sampler interface {
	// Sample evaluates cfg at every offset from `from` toward `to` in increments of step.
	// Both endpoints are included when the range is a multiple of step. Results are in offset order.
	//
	// Parameters:
	//   - cfg: the scroll config to evaluate
	//   - from: first offset (usually 0)
	//   - to: last offset (usually negative)
	//   - step: positive distance between samples
	//
	// Returns:
	//   - []Sample: the evaluated poses
	//   - error: ErrInvalidRange when the range cannot be sampled
	Sample(cfg camera.ScrollConfig, from, to, step float64) ([]Sample, error)

	// Workers returns the number of pool workers.
	//
	// Returns:
	//   - int: worker count
	Workers() int
}

var _ Sampler = &samplerImpl{}

// NewSampler creates a Sampler backed by a dynamic worker pool.
//
// Parameters:
//   - options: functional options for worker count and chunk size
//
// Returns:
//   - Sampler: the newly created sampler
func NewSampler(options ...SamplerBuilderOption) Sampler {
	s := &samplerImpl{
		mu:        &sync.Mutex{},
		workers:   max(runtime.NumCPU()-1, 1),
		chunkSize: 4096,
	}
	for _, opt := range options {
		opt(s)
	}
	s.workers = max(s.workers, 1)
	s.chunkSize = max(s.chunkSize, 1)
	s.pool = worker.NewDynamicWorkerPool(s.workers, 256, 1*time.Second)
	return s
}

func (s *samplerImpl) Workers() int {
	return s.workers
}

func (s *samplerImpl) Sample(cfg camera.ScrollConfig, from, to, step float64) ([]Sample, error) {
	count, err := sampleCount(from, to, step)
	if err != nil {
		return nil, err
	}
	dir := 1.0
	if to < from {
		dir = -1
	}

	out := make([]Sample, count)

	// Chunks write disjoint ranges of out; the WaitGroup is the barrier.
	s.mu.Lock()
	defer s.mu.Unlock()

	var wg sync.WaitGroup
	taskID := 0
	for start := 0; start < count; start += s.chunkSize {
		end := min(start+s.chunkSize, count)
		lo, hi := start, end
		wg.Add(1)
		s.pool.SubmitTask(worker.Task{
			ID: taskID,
			Do: func() (any, error) {
				defer wg.Done()
				for i := lo; i < hi; i++ {
					t := from + dir*float64(i)*step
					out[i] = Sample{Offset: t, Pose: camera.ComputePose(cfg, t)}
				}
				return nil, nil
			},
		})
		taskID++
	}
	wg.Wait()

	return out, nil
}

func sampleCount(from, to, step float64) (int, error) {
	if math.IsNaN(from) || math.IsInf(from, 0) || math.IsNaN(to) || math.IsInf(to, 0) {
		return 0, fmt.Errorf("%w: endpoints must be finite", ErrInvalidRange)
	}
	if !(step > 0) || math.IsInf(step, 0) {
		return 0, fmt.Errorf("%w: step must be positive", ErrInvalidRange)
	}
	n := math.Floor(math.Abs(to-from)/step) + 1
	if n > MaxSamples {
		return 0, fmt.Errorf("%w: %.0f samples exceeds %d", ErrInvalidRange, n, MaxSamples)
	}
	return int(n), nil
}
