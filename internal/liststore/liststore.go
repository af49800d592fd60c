// Package liststore owns the shopping list: an ordered sequence of items
// held in memory and mirrored wholesale to a persistence substrate after
// every mutation. Display surfaces render from Items and never hold state
// of their own.
//
// A Store is not safe for concurrent use; callers serialize operations.
package liststore

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/store"
)

// SnapshotKey is the substrate key holding the serialized list.
const SnapshotKey = "shoppingList"

var (
	ErrEmptyName       = errors.New("item name is required")
	ErrInvalidQuantity = errors.New("quantity must be a non-negative integer")
)

type Store struct {
	kv    store.Substrate
	log   *zap.Logger
	items []model.Item
}

func New(kv store.Substrate, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{kv: kv, log: log}
}

// Items returns a copy of the list in display order.
func (s *Store) Items() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int { return len(s.items) }

// Find returns the item stored under name.
func (s *Store) Find(name string) (model.Item, bool) {
	if i := s.index(name); i >= 0 {
		return s.items[i], true
	}
	return model.Item{}, false
}

// Stats counts bought and pending items.
func (s *Store) Stats() (bought, pending int) {
	for _, it := range s.items {
		if it.Bought {
			bought++
		} else {
			pending++
		}
	}
	return
}

func (s *Store) index(name string) int {
	for i, it := range s.items {
		if it.Name == name {
			return i
		}
	}
	return -1
}

// Add merges quantity into the item called name, or appends a new
// unbought item. A non-empty imageURL replaces the stored one. Invalid
// input or a failed save leaves the list untouched.
func (s *Store) Add(name string, quantity int, imageURL string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if quantity < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	prev := s.Items()
	if i := s.index(name); i >= 0 {
		it := &s.items[i]
		if it.Quantity > math.MaxInt-quantity {
			return fmt.Errorf("%w: %d + %d overflows", ErrInvalidQuantity, it.Quantity, quantity)
		}
		it.Quantity += quantity
		if imageURL != "" {
			it.ImageURL = imageURL
		}
		s.log.Debug("item merged", zap.String("name", name), zap.Int("quantity", it.Quantity))
	} else {
		s.items = append(s.items, model.Item{Name: name, Quantity: quantity, ImageURL: imageURL})
		s.log.Debug("item added", zap.String("name", name), zap.Int("quantity", quantity))
	}
	return s.commit(prev)
}

// AddInput is Add fed from raw form fields.
func (s *Store) AddInput(name, quantity, imageURL string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	n, err := ParseQuantity(quantity)
	if err != nil {
		return err
	}
	return s.Add(name, n, strings.TrimSpace(imageURL))
}

// ParseQuantity accepts a base-10 non-negative integer.
func ParseQuantity(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, raw)
	}
	return n, nil
}

// ToggleBought flips the bought flag. Unknown names are ignored.
func (s *Store) ToggleBought(name string) error {
	i := s.index(name)
	if i < 0 {
		return nil
	}
	prev := s.Items()
	s.items[i].Bought = !s.items[i].Bought
	return s.commit(prev)
}

// Remove deletes the item in place. Unknown names are ignored.
func (s *Store) Remove(name string) error {
	i := s.index(name)
	if i < 0 {
		return nil
	}
	prev := s.Items()
	s.items = append(s.items[:i], s.items[i+1:]...)
	return s.commit(prev)
}

// Clear empties the list and persists the empty state.
func (s *Store) Clear() error {
	prev := s.Items()
	s.items = s.items[:0]
	return s.commit(prev)
}

// commit saves the list, restoring prev when the write fails so memory
// never runs ahead of the substrate.
func (s *Store) commit(prev []model.Item) error {
	if err := s.Save(); err != nil {
		s.items = prev
		return err
	}
	return nil
}

// Load replaces the in-memory list with the persisted snapshot. A missing,
// empty or unreadable snapshot seeds the default items with a single write.
func (s *Store) Load() error {
	raw, err := s.kv.Get(SnapshotKey)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return s.seed("no snapshot")
	case err != nil:
		return fmt.Errorf("load %s: %w", SnapshotKey, err)
	}

	items, err := decode(raw)
	if err != nil {
		s.log.Warn("discarding corrupt snapshot", zap.Error(err))
		return s.seed("corrupt snapshot")
	}
	if len(items) == 0 {
		return s.seed("empty snapshot")
	}
	s.items = items
	s.log.Debug("snapshot loaded", zap.Int("items", len(items)))
	return nil
}

func (s *Store) seed(reason string) error {
	s.items = model.DefaultItems()
	s.log.Info("seeding default items", zap.String("reason", reason))
	return s.Save()
}

// Save writes the full list as one JSON array, replacing any prior value.
func (s *Store) Save() error {
	b, err := json.MarshalIndent(s.snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := s.kv.Set(SnapshotKey, b); err != nil {
		s.log.Error("save failed", zap.Error(err))
		return fmt.Errorf("save %s: %w", SnapshotKey, err)
	}
	return nil
}

// snapshot never encodes as null so an empty list reads back as [].
func (s *Store) snapshot() []model.Item {
	if s.items == nil {
		return []model.Item{}
	}
	return s.items
}

// Snapshot returns the serialized form Save would write.
func (s *Store) Snapshot() ([]byte, error) {
	return json.MarshalIndent(s.snapshot(), "", "  ")
}

func decode(raw []byte) ([]model.Item, error) {
	var items []model.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	seen := make(map[string]bool, len(items))
	for i, it := range items {
		switch {
		case strings.TrimSpace(it.Name) == "":
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyName)
		case it.Quantity < 0:
			return nil, fmt.Errorf("entry %d: %w", i, ErrInvalidQuantity)
		case seen[it.Name]:
			return nil, fmt.Errorf("entry %d: duplicate name %q", i, it.Name)
		}
		seen[it.Name] = true
	}
	return items, nil
}
