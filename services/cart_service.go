package services

import (
	"context"
	"log"
	"sync"

	"perfume-store/models"
	"perfume-store/repositories"
)

// CartStore is the single source of truth for one session's cart. Every view
// (header badge, cart page, checkout) reads the same store, and every
// mutation persists the full snapshot and notifies subscribers.
//
// Persistence failures are logged and never roll back the in-memory
// mutation; the cart keeps working for the rest of the session.
type CartStore struct {
	mu      sync.RWMutex
	key     string
	storage repositories.CartStorage
	lines   []models.CartLine

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// NewCartStore restores a prior snapshot from storage. Absent and malformed
// snapshots both start an empty cart.
func NewCartStore(ctx context.Context, key string, storage repositories.CartStorage) *CartStore {
	s := &CartStore{
		key:     key,
		storage: storage,
		subs:    make(map[int]func()),
	}

	lines, err := storage.Load(ctx, key)
	if err != nil {
		log.Printf("cart %s: failed to restore snapshot, starting empty: %v", key, err)
		lines = nil
	}
	s.lines = lines
	return s
}

// AddItem merges the candidate into the cart: an existing line with the same
// cart item id gains quantity 1, otherwise a new line is appended with
// quantity 1. Availability is the caller's responsibility; no stock check
// happens here.
func (s *CartStore) AddItem(ctx context.Context, input models.CartLineInput) {
	id := input.ItemID()

	s.mu.Lock()
	found := false
	for i := range s.lines {
		if s.lines[i].CartItemID == id {
			s.lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		s.lines = append(s.lines, models.CartLine{
			CartItemID: id,
			ProductID:  input.ProductID,
			Name:       input.Name,
			Size:       input.Size,
			UnitPrice:  input.UnitPrice,
			Image:      input.Image,
			Quantity:   1,
		})
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify()
}

// RemoveItem deletes the whole line. Quantity never drops to zero; removal is
// total. Removing an unknown id is a no-op.
func (s *CartStore) RemoveItem(ctx context.Context, cartItemID string) {
	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].CartItemID == cartItemID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			break
		}
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify()
}

// Clear empties the cart, used after a successful payment hand-off.
func (s *CartStore) Clear(ctx context.Context) {
	s.mu.Lock()
	s.lines = nil
	if err := s.storage.Delete(ctx, s.key); err != nil {
		log.Printf("cart %s: failed to clear persisted snapshot: %v", s.key, err)
	}
	s.mu.Unlock()

	s.notify()
}

// Snapshot returns a copy of the lines in insertion order.
func (s *CartStore) Snapshot() []models.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]models.CartLine, len(s.lines))
	copy(lines, s.lines)
	return lines
}

func (s *CartStore) Subtotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, l := range s.lines {
		total += l.LineTotal()
	}
	return total
}

func (s *CartStore) TotalQuantity() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var qty int
	for _, l := range s.lines {
		qty += l.Quantity
	}
	return qty
}

func (s *CartStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

// Subscribe registers fn to run after every mutation and returns an
// unsubscribe func.
func (s *CartStore) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *CartStore) persistLocked(ctx context.Context) {
	lines := make([]models.CartLine, len(s.lines))
	copy(lines, s.lines)
	if err := s.storage.Save(ctx, s.key, lines); err != nil {
		log.Printf("cart %s: failed to persist snapshot: %v", s.key, err)
	}
}

func (s *CartStore) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// CartManager hands out one shared CartStore per session id, so concurrent
// requests from the same browser observe a single consistent snapshot.
type CartManager struct {
	mu      sync.Mutex
	storage repositories.CartStorage
	stores  map[string]*CartStore
}

func NewCartManager(storage repositories.CartStorage) *CartManager {
	return &CartManager{
		storage: storage,
		stores:  make(map[string]*CartStore),
	}
}

func (m *CartManager) Get(ctx context.Context, sessionID string) *CartStore {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[sessionID]; ok {
		return store
	}
	store := NewCartStore(ctx, sessionID, m.storage)
	m.stores[sessionID] = store
	return store
}
