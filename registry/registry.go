// Package registry tracks observed key images so callers can enforce
// linkability across signatures over time. The signature engine never
// consults a registry; callers wire verification output into one.
package registry

import (
	"errors"
	"sync"

	"github.com/athanorlabs/go-blsag/types"
)

// ErrImageAlreadyUsed is returned when a key image has been registered
// before, meaning the owning secret key already signed once.
var ErrImageAlreadyUsed = errors.New("key image already used")

// Registry records key images at most once each. Register must be atomic:
// when two callers race on the same image, exactly one wins and the other
// receives ErrImageAlreadyUsed.
type Registry interface {
	Register(image types.Point) error
	Contains(image types.Point) (bool, error)
}

// MemoryRegistry is an in-process Registry. Safe for concurrent use.
type MemoryRegistry struct {
	mu     sync.Mutex
	images map[string]struct{}
}

var _ Registry = &MemoryRegistry{}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		images: make(map[string]struct{}),
	}
}

func (r *MemoryRegistry) Register(image types.Point) error {
	key := string(image.Encode())

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.images[key]; ok {
		return ErrImageAlreadyUsed
	}
	r.images[key] = struct{}{}
	return nil
}

func (r *MemoryRegistry) Contains(image types.Point) (bool, error) {
	key := string(image.Encode())

	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.images[key]
	return ok, nil
}
