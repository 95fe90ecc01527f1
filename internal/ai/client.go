package ai

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Generator is the outbound contract to a text-generation backend. The
// reply is expected to be a structured JSON document; parsing happens at
// the caller's boundary, not here.
type Generator interface {
	Generate(ctx context.Context, prompt, model string) (string, error)
}

// Registry maps provider names to generation backends.
type Registry struct {
	mu         sync.RWMutex
	generators map[string]Generator
}

func NewRegistry() *Registry {
	return &Registry{generators: make(map[string]Generator)}
}

// Register adds or replaces the backend for a provider name.
func (r *Registry) Register(provider string, g Generator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generators[provider] = g
}

// Lookup resolves a provider name to its backend.
func (r *Registry) Lookup(provider string) (Generator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.generators[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported provider %q (available: %v)", provider, r.providerNames())
	}
	return g, nil
}

func (r *Registry) providerNames() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
