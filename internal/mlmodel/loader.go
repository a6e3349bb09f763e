package mlmodel

import (
	"errors"
	"fmt"
	"log"
	"sync"
)

// OpenFunc reads a model from path
type OpenFunc func(path string) (Model, error)

// Loader loads the model at most once per process. Both outcomes, a model or
// ErrModelUnavailable, are kept for the lifetime of the Loader.
type Loader struct {
	path string
	open OpenFunc

	once  sync.Once
	model Model
	err   error
}

// NewLoader creates a loader for the artifact at path
func NewLoader(path string) *Loader {
	return NewLoaderWithOpener(path, OpenArtifact)
}

// NewLoaderWithOpener creates a loader with a custom artifact reader
func NewLoaderWithOpener(path string, open OpenFunc) *Loader {
	if path == "" {
		path = DefaultPath
	}
	return &Loader{path: path, open: open}
}

// Path returns the artifact location
func (l *Loader) Path() string {
	return l.path
}

// Load returns the model, loading it on first use.
// Any failure is reported as an error wrapping ErrModelUnavailable.
func (l *Loader) Load() (Model, error) {
	l.once.Do(func() {
		l.model, l.err = l.safeOpen()
		if l.err != nil {
			log.Printf("Warning: %v", l.err)
			return
		}
		log.Printf("Loaded wait-time model from %s", l.path)
	})
	return l.model, l.err
}

// Available reports whether a model is loaded, triggering the load if needed
func (l *Loader) Available() bool {
	_, err := l.Load()
	return err == nil
}

// Version returns the loaded artifact's version, or "" when no model is loaded
// or the model carries no artifact metadata
func (l *Loader) Version() string {
	m, err := l.Load()
	if err != nil {
		return ""
	}
	if a, ok := m.(interface{ Artifact() LinearArtifact }); ok {
		return a.Artifact().Version
	}
	return ""
}

func (l *Loader) safeOpen() (m Model, err error) {
	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = fmt.Errorf("%w: panic while reading %s: %v", ErrModelUnavailable, l.path, r)
		}
	}()

	m, err = l.open(l.path)
	if err != nil {
		if errors.Is(err, ErrModelUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrModelUnavailable, l.path, err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: %s produced no model", ErrModelUnavailable, l.path)
	}
	return m, nil
}
