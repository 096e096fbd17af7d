package pool

import (
	"fmt"
	"sync"

	"coldb/internal/catalog"
)

// ErrDatabaseNotFound is returned when a lookup misses the resource pool.
type ErrDatabaseNotFound struct {
	Name string
}

func (e *ErrDatabaseNotFound) Error() string {
	return fmt.Sprintf("pool: database %q not found", e.Name)
}

// ErrDatabaseExists is returned by Create when the name is already taken.
type ErrDatabaseExists struct {
	Name string
}

func (e *ErrDatabaseExists) Error() string {
	return fmt.Sprintf("pool: database %q already exists", e.Name)
}

// ResourcePool is the process-wide registry of persistent entities: every
// database the server knows about, found either by load at startup
// (internal/persist) or by a CREATE DATABASE during the run. Unlike the
// variable pool, entries here outlive any single session and are what gets
// synced to disk (spec.md §3, §4.9).
type ResourcePool struct {
	mu  sync.RWMutex
	dbs map[string]*catalog.Database
}

// NewResourcePool returns an empty registry.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{dbs: make(map[string]*catalog.Database)}
}

// Create registers a brand new, empty database.
func (p *ResourcePool) Create(name string) (*catalog.Database, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.dbs[name]; ok {
		return nil, &ErrDatabaseExists{Name: name}
	}
	db := catalog.NewDatabase(name)
	p.dbs[name] = db
	return db, nil
}

// Register adds an already-constructed database, e.g. one rebuilt by
// internal/persist's load path.
func (p *ResourcePool) Register(db *catalog.Database) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dbs[db.Name] = db
}

// Get looks up a database by name.
func (p *ResourcePool) Get(name string) (*catalog.Database, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	db, ok := p.dbs[name]
	if !ok {
		return nil, &ErrDatabaseNotFound{Name: name}
	}
	return db, nil
}

// Drop removes a database from the pool, reporting whether it was present.
func (p *ResourcePool) Drop(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.dbs[name]; !ok {
		return false
	}
	delete(p.dbs, name)
	return true
}

// Databases returns every registered database, in no particular order; used
// by internal/persist's sync path to walk the whole tree.
func (p *ResourcePool) Databases() []*catalog.Database {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*catalog.Database, 0, len(p.dbs))
	for _, db := range p.dbs {
		out = append(out, db)
	}
	return out
}
