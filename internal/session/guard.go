package session

import "sync"

// Guard suppresses duplicate in-flight requests for the same logical
// action (a double-click sending two discards for one card slot). A key
// is acquired synchronously before the mutating logic runs and released
// only after the state update commits; a second acquire for a held key
// fails fast.
type Guard struct {
	mu      sync.Mutex
	pending map[string]struct{}
}

func NewGuard() *Guard {
	return &Guard{pending: map[string]struct{}{}}
}

// TryAcquire claims the key, reporting false if it is already held.
func (g *Guard) TryAcquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, held := g.pending[key]; held {
		return false
	}
	g.pending[key] = struct{}{}
	return true
}

// Release frees the key for future requests.
func (g *Guard) Release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.pending, key)
}
