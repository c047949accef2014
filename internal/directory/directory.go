// Package directory is the in-process user directory the admin dashboard
// reads. It lives for the lifetime of one process only: entries added at
// runtime are never persisted, and separate worker processes each hold
// their own seeded copy.
package directory

import (
	"sort"
	"strings"
	"sync"
	"time"
)

type Entry struct {
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

type Directory interface {
	List() []Entry
	Find(email string) (Entry, bool)
	Add(e Entry)
}

// InMemory is the default Directory implementation, seeded once at startup.
type InMemory struct {
	mu      sync.RWMutex
	entries []Entry
}

// Seeded returns a directory preloaded with the fixed startup set.
func Seeded() *InMemory {
	now := time.Now().UTC()
	return &InMemory{entries: []Entry{
		{Email: "admin@storefront.local", Name: "Store Admin", Role: "ADMIN", JoinedAt: now},
		{Email: "support@storefront.local", Name: "Support Desk", Role: "ADMIN", JoinedAt: now},
		{Email: "demo@storefront.local", Name: "Demo Customer", Role: "USER", JoinedAt: now},
	}}
}

func (d *InMemory) List() []Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (d *InMemory) Find(email string) (Entry, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, e := range d.entries {
		if strings.EqualFold(e.Email, email) {
			return e, true
		}
	}
	return Entry{}, false
}

// Add inserts an entry, replacing any existing one with the same email.
func (d *InMemory) Add(e Entry) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.entries {
		if strings.EqualFold(d.entries[i].Email, e.Email) {
			d.entries[i] = e
			return
		}
	}
	d.entries = append(d.entries, e)
}
