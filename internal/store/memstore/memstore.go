// Package memstore is a process-local substrate. Nothing survives a restart.
package memstore

import "github.com/idilsaglam/shoplist/internal/store"

type Store struct {
	data   map[string][]byte
	writes int
}

func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(key string) ([]byte, error) {
	v, ok := s.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *Store) Set(key string, value []byte) error {
	s.data[key] = append([]byte(nil), value...)
	s.writes++
	return nil
}

// Writes counts Set calls since New.
func (s *Store) Writes() int { return s.writes }

func (s *Store) Close() error { return nil }
