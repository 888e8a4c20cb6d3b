package availability

import (
	"sync"
)

// Drafts keeps one unsaved bag per signed-in user. Nothing is persisted.
type Drafts struct {
	mu   sync.Mutex
	bags map[string]*Bag
}

func NewDrafts() *Drafts {
	return &Drafts{bags: make(map[string]*Bag)}
}

// Get returns a copy of the user's draft.
func (d *Drafts) Get(userID string) (*Bag, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.bags[userID]
	if !ok {
		return nil, false
	}
	return b.Clone(), true
}

func (d *Drafts) Put(userID string, b *Bag) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bags[userID] = b.Clone()
}

// Update applies fn to the stored draft in place. The draft is left as it was
// if fn fails.
func (d *Drafts) Update(userID string, fn func(*Bag) error) (*Bag, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.bags[userID]
	if !ok {
		return nil, false, nil
	}
	next := b.Clone()
	if err := fn(next); err != nil {
		return nil, true, err
	}
	d.bags[userID] = next
	return next.Clone(), true, nil
}

func (d *Drafts) Drop(userID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.bags[userID]
	delete(d.bags, userID)
	return ok
}
