// Package clipboard holds the single-slot store that carries a source record
// from a list page to the create/edit form. The list page writes, the form
// page reads and clears; each slot is last-write-wins with no TTL.
package clipboard

import (
	cache "github.com/patrickmn/go-cache"
)

const (
	editSlot = "edit_source"
	copySlot = "copy_source"
)

// Source is the cached record a form session is seeded from.
type Source struct {
	ID     string            `json:"id"`
	Kind   string            `json:"kind"`
	Fields map[string]string `json:"fields"`
}

// Store is passed as a capability to the list and form handlers; it is never
// reached through a package-level singleton.
type Store struct {
	c *cache.Cache
}

func NewStore() *Store {
	return &Store{c: cache.New(cache.NoExpiration, 0)}
}

func (s *Store) SetEditSource(src Source) {
	s.c.Set(editSlot, src, cache.NoExpiration)
}

func (s *Store) GetEditSource() (Source, bool) {
	return s.get(editSlot)
}

func (s *Store) ClearEditSource() {
	s.c.Delete(editSlot)
}

func (s *Store) SetCopySource(src Source) {
	s.c.Set(copySlot, src, cache.NoExpiration)
}

func (s *Store) GetCopySource() (Source, bool) {
	return s.get(copySlot)
}

func (s *Store) ClearCopySource() {
	s.c.Delete(copySlot)
}

// Clear empties both slots; called when a form session ends.
func (s *Store) Clear() {
	s.c.Delete(editSlot)
	s.c.Delete(copySlot)
}

func (s *Store) get(slot string) (Source, bool) {
	v, ok := s.c.Get(slot)
	if !ok {
		return Source{}, false
	}
	src, ok := v.(Source)
	return src, ok
}
