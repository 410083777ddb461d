package application

import (
	"sort"
	"sync"

	"smartctx/internal/domain"
)

// ContextRegistry tracks live contexts by key, creating them on first use.
// The registry itself is safe for concurrent lookup; compiling against a
// single context still assumes one caller at a time.
type ContextRegistry struct {
	mu       sync.Mutex
	contexts map[string]*domain.SmartContext
	settings domain.Settings
}

// NewContextRegistry creates a registry whose contexts start from the
// given settings.
func NewContextRegistry(settings domain.Settings) *ContextRegistry {
	return &ContextRegistry{
		contexts: make(map[string]*domain.SmartContext),
		settings: settings,
	}
}

// Get returns the context for a key, creating it if it does not exist.
func (r *ContextRegistry) Get(key string) *domain.SmartContext {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sc, ok := r.contexts[key]; ok {
		return sc
	}
	sc := domain.NewSmartContext(key, r.settings)
	r.contexts[key] = sc
	return sc
}

// Remove drops a context.
func (r *ContextRegistry) Remove(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.contexts, key)
}

// Keys returns all context keys, sorted.
func (r *ContextRegistry) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.contexts))
	for key := range r.contexts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
