package rest

import (
	"maps"
	"sync"

	"github.com/google/uuid"
)

// Filter scopes a collection to a subset of its rows. Rows the filter
// rejects are invisible to every Collection operation, including
// DeleteAll.
type Filter func(d Dict) bool

// MemoryCollection is an in-memory, insertion-ordered Collection. It backs
// tests and small deployments; the engine treats it exactly like any other
// store.
type MemoryCollection struct {
	mu      sync.RWMutex
	factory Factory
	filter  Filter
	order   []string
	rows    map[string]Dict
}

// MemoryOption configures a MemoryCollection.
type MemoryOption func(*MemoryCollection)

// WithFilter scopes the collection to rows the filter accepts.
func WithFilter(f Filter) MemoryOption {
	return func(mc *MemoryCollection) { mc.filter = f }
}

// NewMemoryCollection creates an empty collection producing
// representations from factory.
func NewMemoryCollection(factory Factory, opts ...MemoryOption) *MemoryCollection {
	mc := &MemoryCollection{
		factory: factory,
		rows:    make(map[string]Dict),
	}
	for _, opt := range opts {
		opt(mc)
	}
	return mc
}

// Load seeds the collection with fixture rows, assigning ids where absent.
// Rows keep insertion order.
func (mc *MemoryCollection) Load(dicts ...Dict) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	for _, d := range dicts {
		row := maps.Clone(d)
		id, _ := row["id"].(string)
		if id == "" {
			id = uuid.NewString()
			row["id"] = id
		}
		if _, exists := mc.rows[id]; !exists {
			mc.order = append(mc.order, id)
		}
		mc.rows[id] = row
	}
}

func (mc *MemoryCollection) visible(d Dict) bool {
	return mc.filter == nil || mc.filter(d)
}

// Count reports the number of rows the filter admits.
func (mc *MemoryCollection) Count() (int, error) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	n := 0
	for _, id := range mc.order {
		if mc.visible(mc.rows[id]) {
			n++
		}
	}
	return n, nil
}

// Slice returns a page of rows in insertion order. limit 0 means the whole
// tail from offset.
func (mc *MemoryCollection) Slice(offset, limit int) ([]Representation, error) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	var reps []Representation
	seen := 0
	for _, id := range mc.order {
		row := mc.rows[id]
		if !mc.visible(row) {
			continue
		}
		if seen < offset {
			seen++
			continue
		}
		seen++
		if limit > 0 && len(reps) >= limit {
			break
		}
		rep, err := mc.hydrate(row)
		if err != nil {
			return nil, err
		}
		reps = append(reps, rep)
	}
	return reps, nil
}

// GetByID returns the row stored under id, or ErrNotFound when absent or
// filtered out.
func (mc *MemoryCollection) GetByID(id string) (Representation, error) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	row, ok := mc.rows[id]
	if !ok || !mc.visible(row) {
		return nil, ErrNotFound
	}
	return mc.hydrate(row)
}

// Save stores rep under id, assigning a fresh id when empty. The stored
// row always carries its id.
func (mc *MemoryCollection) Save(id string, rep Representation) (Representation, bool, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}

	row := maps.Clone(rep.ToDict())
	row["id"] = id

	// A row the filter hides counts as nonexistent, so writing over it
	// is a create.
	prev, ok := mc.rows[id]
	exists := ok && mc.visible(prev)
	if !ok {
		mc.order = append(mc.order, id)
	}
	mc.rows[id] = row

	saved, err := mc.hydrate(row)
	if err != nil {
		return nil, false, err
	}
	return saved, !exists, nil
}

// DeleteByID removes the row under id if the filter admits it.
func (mc *MemoryCollection) DeleteByID(id string) (bool, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	row, ok := mc.rows[id]
	if !ok || !mc.visible(row) {
		return false, nil
	}
	mc.remove(id)
	return true, nil
}

// DeleteAll removes every row the filter admits and reports how many.
func (mc *MemoryCollection) DeleteAll() (int, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	n := 0
	for _, id := range append([]string(nil), mc.order...) {
		if mc.visible(mc.rows[id]) {
			mc.remove(id)
			n++
		}
	}
	return n, nil
}

func (mc *MemoryCollection) remove(id string) {
	delete(mc.rows, id)
	for i, v := range mc.order {
		if v == id {
			mc.order = append(mc.order[:i], mc.order[i+1:]...)
			break
		}
	}
}

func (mc *MemoryCollection) hydrate(row Dict) (Representation, error) {
	rep := mc.factory()
	if err := rep.PopulateFromDict(maps.Clone(row)); err != nil {
		return nil, err
	}
	return rep, nil
}
