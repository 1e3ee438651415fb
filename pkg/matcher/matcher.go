package matcher

import (
	"fmt"
	"sync"
)

// Matcher is a simple key-value map with thread-safe access.
// It rewrites peer hosts announced by the network to hosts reachable
// from the gateway, which is useful for local development.
type Matcher struct {
	v  map[string]string
	mx sync.RWMutex
}

// Match returns the value associated with the provided host.
// If the host is not found in the map, it returns an error.
func (m *Matcher) Match(host string) (string, error) {
	if m == nil {
		return "", fmt.Errorf("not found")
	}
	m.mx.RLock()
	defer m.mx.RUnlock()
	if v, ok := m.v[host]; ok {
		return v, nil
	}
	return "", fmt.Errorf("not found")
}

// Resolve returns the matched host or the host itself.
func (m *Matcher) Resolve(host string) string {
	if v, err := m.Match(host); err == nil {
		return v
	}
	return host
}

// NewMatcher creates a new Matcher with the provided key-value map.
func NewMatcher(m map[string]string) *Matcher {
	if m == nil {
		m = make(map[string]string)
	}
	return &Matcher{v: m}
}
