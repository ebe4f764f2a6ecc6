package guide

import "strings"

// Store exposes guide lookup for the chat handler.
type Store interface {
	List() []Guide
	FindByID(id string) (Guide, bool)
	Match(query string) Guide
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Guide
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied guides.
func NewMemoryStore(items []Guide) *MemoryStore {
	return &MemoryStore{items: append([]Guide(nil), items...)}
}

// List returns all guides in declaration order.
func (s *MemoryStore) List() []Guide {
	return append([]Guide(nil), s.items...)
}

// FindByID looks up a guide by identifier.
func (s *MemoryStore) FindByID(id string) (Guide, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Guide{}, false
}

// Match returns the first guide with a keyword contained in query, then the
// general guide, then a bare default.
func (s *MemoryStore) Match(query string) Guide {
	for _, item := range s.items {
		for _, kw := range item.Keywords {
			if kw != "" && strings.Contains(query, kw) {
				return item
			}
		}
	}
	if g, ok := s.FindByID(GeneralID); ok {
		return g
	}
	return Guide{ID: GeneralID, Name: "総合案内", Prompt: "あなたは金沢市の案内アシスタントです。"}
}
