package terminology

import (
	"fmt"
	"strings"
	"sync"
)

// FactoryKey builds the cache key for a factory: code-system identity,
// version, and the identity of the common-units enumeration it was
// constructed with (empty when none).
func FactoryKey(system, version, commonUnitsID string) string {
	return system + "|" + version + "|" + commonUnitsID
}

// FactorySet is a thread-safe registry of provider factories keyed by
// FactoryKey. It lets the surrounding engine construct each factory once
// and share its precomputed state across requests.
type FactorySet struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewFactorySet creates an empty factory set.
func NewFactorySet() *FactorySet {
	return &FactorySet{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory under key, replacing any previous registration.
func (fs *FactorySet) Register(key string, f Factory) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.factories[key] = f
}

// Lookup returns the factory registered under key.
func (fs *FactorySet) Lookup(key string) (Factory, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	f, ok := fs.factories[key]
	if !ok {
		return nil, fmt.Errorf("factory %q: %w", key, ErrNotFound)
	}
	return f, nil
}

// LookupSystem returns the first factory whose key starts with
// "system|version|"; an empty version matches any version of the system.
func (fs *FactorySet) LookupSystem(system, version string) (Factory, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	prefix := system + "|" + version
	if version != "" {
		prefix += "|"
	}
	for key, f := range fs.factories {
		if strings.HasPrefix(key, prefix) {
			return f, nil
		}
	}
	return nil, fmt.Errorf("factory for %s version %q: %w", system, version, ErrNotFound)
}

// Keys returns the registered keys in unspecified order.
func (fs *FactorySet) Keys() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	keys := make([]string, 0, len(fs.factories))
	for k := range fs.factories {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of registered factories.
func (fs *FactorySet) Len() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.factories)
}
