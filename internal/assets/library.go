package assets

import (
	"errors"
	"fmt"
)

// ErrModelNotFound is returned when a handle has no registered model.
var ErrModelNotFound = errors.New("collision model not found")

// Library serves collision models by handle, the way attribute bags
// reference them.
type Library struct {
	models map[string]*CollisionModel
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{models: make(map[string]*CollisionModel)}
}

// Register stores a model under the given handle, replacing any previous
// entry.
func (l *Library) Register(handle string, model *CollisionModel) {
	l.models[handle] = model
}

// Model returns the model registered under the handle.
func (l *Library) Model(handle string) (*CollisionModel, error) {
	m, ok := l.models[handle]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrModelNotFound, handle)
	}
	return m, nil
}
