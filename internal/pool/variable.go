package pool

import (
	"fmt"
	"sync"

	"coldb/internal/value"
)

// ErrVariableNotFound is returned when a lookup misses the variable pool.
type ErrVariableNotFound struct {
	Name string
}

func (e *ErrVariableNotFound) Error() string {
	return fmt.Sprintf("pool: variable %q not found", e.Name)
}

// VariablePool holds the transient result vectors produced by query kernels
// during one client session (spec.md §3). The server creates one per
// connection and drops it when the session disconnects; nothing in it ever
// survives a restart.
type VariablePool struct {
	mu   sync.Mutex
	vars map[string]*value.Column
}

// NewVariablePool returns an empty pool, ready for one session's lifetime.
func NewVariablePool() *VariablePool {
	return &VariablePool{vars: make(map[string]*value.Column)}
}

// Put registers (or overwrites) a result vector under name.
func (p *VariablePool) Put(name string, col *value.Column) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vars[name] = col
}

// Get looks up a previously stored result vector.
func (p *VariablePool) Get(name string) (*value.Column, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	col, ok := p.vars[name]
	if !ok {
		return nil, &ErrVariableNotFound{Name: name}
	}
	return col, nil
}

// Clear drops every variable, leaving the pool empty and reusable.
func (p *VariablePool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vars = make(map[string]*value.Column)
}

// Len reports how many variables are currently registered.
func (p *VariablePool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.vars)
}
