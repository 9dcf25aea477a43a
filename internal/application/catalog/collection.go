package catalog

import (
	"sync"

	"github.com/google/uuid"
)

// Entity is anything a reconciled collection can hold
type Entity interface {
	EntityID() uuid.UUID
}

// Collection is one view's reconciled, in-memory entity list. Each
// collection is owned by exactly one reconciler; views read snapshots
// and subscribe to change notifications but never mutate.
//
// Visible is the view's visibility predicate; Merge folds an incoming
// push representation into the locally held record (preserving
// locally-known expanded fields the push payload does not carry).
type Collection[E Entity] struct {
	mu      sync.RWMutex
	items   []E
	visible func(E) bool
	merge   func(existing, incoming E) E

	subMu sync.Mutex
	subs  map[uint64]func()
	next  uint64
}

// NewCollection creates an empty collection with the given visibility
// predicate and merge function
func NewCollection[E Entity](visible func(E) bool, merge func(existing, incoming E) E) *Collection[E] {
	return &Collection[E]{
		visible: visible,
		merge:   merge,
		subs:    make(map[uint64]func()),
	}
}

// ApplyCreated applies a remote created event: an entity already known
// under that id is treated as an update, otherwise a visible entity is
// prepended and an invisible one ignored. Those are exactly the updated
// semantics, which also makes duplicate delivery of a created event a
// no-op.
func (c *Collection[E]) ApplyCreated(incoming E) {
	c.ApplyUpdated(incoming)
}

// ApplyUpdated applies a remote updated event: a known entity is
// merged and then re-gated by the visibility predicate (evicted when
// it fails); an unknown entity that now passes the predicate is
// inserted, which handles updates arriving before their created event
// as well as "became visible" transitions.
func (c *Collection[E]) ApplyUpdated(incoming E) {
	c.mu.Lock()
	if i := c.indexOf(incoming.EntityID()); i >= 0 {
		c.reconcileAt(i, incoming)
	} else if c.visible(incoming) {
		c.items = append([]E{incoming}, c.items...)
	} else {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	c.notify()
}

// ApplyDeleted removes the entity by id; unknown ids are a no-op
func (c *Collection[E]) ApplyDeleted(id uuid.UUID) {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.mu.Unlock()
	c.notify()
}

// Patch applies fn to the entity with the given id, then re-evaluates
// visibility. It reports whether the entity was found.
func (c *Collection[E]) Patch(id uuid.UUID, fn func(E) E) bool {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return false
	}
	updated := fn(c.items[i])
	if c.visible(updated) {
		c.items[i] = updated
	} else {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
	c.mu.Unlock()
	c.notify()
	return true
}

// Refresh re-evaluates the visibility predicate over the whole
// collection, evicting entities that no longer pass. Used when a
// gating condition changes without a per-entity event (the category
// cascade).
func (c *Collection[E]) Refresh() {
	c.mu.Lock()
	kept := c.items[:0]
	evicted := false
	for _, item := range c.items {
		if c.visible(item) {
			kept = append(kept, item)
		} else {
			evicted = true
		}
	}
	c.items = kept
	c.mu.Unlock()
	if evicted {
		c.notify()
	}
}

// Replace hydrates the collection wholesale from a fetched listing,
// filtered by the visibility predicate
func (c *Collection[E]) Replace(items []E) {
	c.mu.Lock()
	c.items = make([]E, 0, len(items))
	for _, item := range items {
		if c.visible(item) {
			c.items = append(c.items, item)
		}
	}
	c.mu.Unlock()
	c.notify()
}

// Items returns a snapshot of the collection in display order
func (c *Collection[E]) Items() []E {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]E(nil), c.items...)
}

// Get returns the entity with the given id
func (c *Collection[E]) Get(id uuid.UUID) (E, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero E
	return zero, false
}

// Len returns the number of entities currently visible
func (c *Collection[E]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Subscribe registers a change notification callback and returns its
// disposer. Callbacks fire after every mutation that changed the
// collection.
func (c *Collection[E]) Subscribe(fn func()) func() {
	c.subMu.Lock()
	id := c.next
	c.next++
	c.subs[id] = fn
	c.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.subMu.Lock()
			delete(c.subs, id)
			c.subMu.Unlock()
		})
	}
}

// reconcileAt merges the incoming record into slot i and re-gates it.
// Caller holds the write lock.
func (c *Collection[E]) reconcileAt(i int, incoming E) {
	merged := c.merge(c.items[i], incoming)
	if c.visible(merged) {
		c.items[i] = merged
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
}

// indexOf finds an entity by id. Caller holds at least a read lock.
func (c *Collection[E]) indexOf(id uuid.UUID) int {
	for i := range c.items {
		if c.items[i].EntityID() == id {
			return i
		}
	}
	return -1
}

func (c *Collection[E]) notify() {
	c.subMu.Lock()
	fns := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
