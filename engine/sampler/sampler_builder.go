package sampler

// SamplerBuilderOption is a functional option for configuring a Sampler.
type SamplerBuilderOption func(*samplerImpl)

// WithWorkers sets the number of pool workers.
//
// Parameters:
//   - workers: worker count (values below 1 are raised to 1)
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithWorkers(workers int) SamplerBuilderOption {
	return func(s *samplerImpl) {
		s.workers = workers
	}
}

// WithChunkSize sets how many offsets one pool task evaluates.
//
// Parameters:
//   - size: samples per task (values below 1 are raised to 1)
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithChunkSize(size int) SamplerBuilderOption {
	return func(s *samplerImpl) {
		s.chunkSize = size
	}
}
