package ring

import (
	"fmt"

	"mpcring/utils/concurrency"
	"mpcring/utils/sampling"
	"mpcring/utils/structs"
)

// Sampler is an interface for random ring-element tensor samplers.
type Sampler[T Element] interface {
	GetSource() *sampling.Source
	Read(t *structs.Tensor[T])
	ReadNew(shape ...int) (*structs.Tensor[T], error)
	WithSource(source *sampling.Source) Sampler[T]
}

// UniformSampler draws ring elements uniformly over the full domain of their
// fixed-width representation: every bit pattern, sign bit included, is
// equally likely. It wraps a [sampling.Source] and advances it by one word
// per element drawn.
type UniformSampler[T Element] struct {
	*sampling.Source
}

// NewUniformSampler instantiates a [UniformSampler] from a [sampling.Source].
func NewUniformSampler[T Element](source *sampling.Source) *UniformSampler[T] {
	return &UniformSampler[T]{Source: source}
}

// GetSource returns the underlying [sampling.Source] used by the sampler.
func (u *UniformSampler[T]) GetSource() *sampling.Source {
	return u.Source
}

// WithSource returns an instance of the underlying sampler with
// a new [sampling.Source].
// It can be used concurrently with the original sampler.
func (u *UniformSampler[T]) WithSource(source *sampling.Source) Sampler[T] {
	return &UniformSampler[T]{Source: source}
}

// Read fills t with uniform ring elements, advancing the source by one word
// per element.
func (u *UniformSampler[T]) Read(t *structs.Tensor[T]) {
	u.read(t.Values)
}

func (u *UniformSampler[T]) read(values []T) {
	for i := range values {
		// Truncation keeps the low bits of the word: the result is uniform
		// over the full domain of T.
		values[i] = T(u.Source.Uint64())
	}
}

// ReadNew allocates a tensor with the given shape and fills it with uniform
// ring elements. Returns [ErrInvalidShape] if a dimension is not strictly
// positive.
func (u *UniformSampler[T]) ReadNew(shape ...int) (t *structs.Tensor[T], err error) {
	if t, err = structs.NewTensor[T](shape...); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShape, shape)
	}
	u.Read(t)
	return
}

// ReadConcurrent fills t with uniform ring elements using the given number of
// workers. The tensor is split into contiguous chunks, each filled from a
// child source derived deterministically from the parent seed, so the output
// is reproducible given the parent seed and the worker count. The resulting
// stream differs from the sequential [UniformSampler.Read] stream.
//
// The parent source is advanced by the seed derivations only; the per-chunk
// draws happen on the child sources.
func (u *UniformSampler[T]) ReadConcurrent(t *structs.Tensor[T], workers int) (err error) {

	if workers < 1 {
		return fmt.Errorf("invalid worker count: %d", workers)
	}

	values := t.Values
	chunk := (len(values) + workers - 1) / workers

	// The chunk-to-seed pairing is fixed before any task runs, so scheduling
	// order cannot affect the output.
	var chunks [][]T
	var forks []*UniformSampler[T]
	for start := 0; start < len(values); start += chunk {
		end := min(start+chunk, len(values))
		chunks = append(chunks, values[start:end])
		forks = append(forks, &UniformSampler[T]{Source: sampling.NewSource(u.Source.NewSeed())})
	}

	m := concurrency.NewResourceManager(make([]bool, workers))

	for i := range chunks {
		m.Run(func(bool) (err error) {
			forks[i].read(chunks[i])
			return
		})
	}

	return m.Wait()
}
