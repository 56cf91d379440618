// Package concurrency implements a channel based resource manager for
// concurrent element-wise operations.
package concurrency

import (
	"sync"
)

// ResourceManager schedules tasks over a fixed pool of resources (e.g. a
// per-worker [sampling.Source]) meant to be used concurrently, and collects
// the errors they return.
type ResourceManager[T any] struct {
	sync.WaitGroup
	resources chan T
	errors    chan error
}

// NewResourceManager instantiates a new [ResourceManager] over the given
// resource pool. The pool size bounds the number of tasks running at once.
func NewResourceManager[T any](resources []T) (m *ResourceManager[T]) {

	pool := make(chan T, len(resources))
	for i := range resources {
		pool <- resources[i]
	}

	return &ResourceManager[T]{
		resources: pool,
		errors:    make(chan error, len(resources)),
	}
}

// Task is a function consuming a resource that can be used concurrently.
type Task[T any] func(resource T) (err error)

// Run runs a [Task] concurrently, blocking until a resource is available.
// If an error has already been recorded, the task is skipped.
func (m *ResourceManager[T]) Run(f Task[T]) {
	m.Add(1)
	go func() {
		defer m.Done()
		if len(m.errors) != 0 {
			return
		}
		resource := <-m.resources
		if err := f(resource); err != nil {
			if len(m.errors) < cap(m.errors) {
				m.errors <- err
			}
		}
		m.resources <- resource
	}()
}

// Wait waits until all running tasks have finished and returns the first
// recorded error, if any.
func (m *ResourceManager[T]) Wait() (err error) {
	m.WaitGroup.Wait()
	if len(m.errors) != 0 {
		return <-m.errors
	}
	return
}
