package render

import (
	"fmt"
	"sync"
)

// Registry holds the renderers available for submission, keyed by name.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	order     []string
}

// NewRegistry creates a registry holding rs. It panics on an invalid or duplicate renderer.
func NewRegistry(rs ...Renderer) *Registry {
	reg := &Registry{renderers: map[string]Renderer{}}
	for _, r := range rs {
		if err := reg.Register(r); err != nil {
			panic(err)
		}
	}
	return reg
}

// NewDefaultRegistry registers every built-in renderer.
func NewDefaultRegistry(inlineBaseURL string) *Registry {
	return NewRegistry(
		NewHTML(inlineBaseURL),
		NewCSV(),
		NewTSV(),
		NewExcel(),
		NewJSON(),
		NewYAML(),
	)
}

func (reg *Registry) Register(r Renderer) error {
	switch r.Kind() {
	case KindInline:
		if _, ok := AsInline(r); !ok {
			return fmt.Errorf("%w: %s", ErrInvalidRenderer, r.Name())
		}
	case KindFile:
		if _, ok := AsFile(r); !ok {
			return fmt.Errorf("%w: %s", ErrInvalidRenderer, r.Name())
		}
	default:
		return fmt.Errorf("%w: %s", ErrInvalidRenderer, r.Name())
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, ok := reg.renderers[r.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateRenderer, r.Name())
	}
	reg.renderers[r.Name()] = r
	reg.order = append(reg.order, r.Name())
	return nil
}

func (reg *Registry) Get(name string) (Renderer, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	r, ok := reg.renderers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRenderer, name)
	}
	return r, nil
}

// List returns renderers in registration order.
func (reg *Registry) List() []Renderer {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	out := make([]Renderer, 0, len(reg.order))
	for _, name := range reg.order {
		out = append(out, reg.renderers[name])
	}
	return out
}
