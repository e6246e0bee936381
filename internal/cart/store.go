package cart

import (
	"log"
	"sync"

	"github.com/leademy-studio/shusha-rest/internal/domain"
)

// Storage is the durable per-browser store the cart persists into. Failures
// are non-fatal: the store keeps operating in memory for the session.
type Storage interface {
	Load() ([]domain.CartLine, error)
	Save(lines []domain.CartLine) error
}

// Listener receives a read-only snapshot after every successful mutation.
type Listener func(items []domain.CartLine)

// Store owns the authoritative ordered list of cart lines for one session.
// All mutations go through the store; consumers only read snapshots or call
// the mutation operations.
type Store struct {
	mu        sync.Mutex
	items     []domain.CartLine
	storage   Storage
	logger    *log.Logger
	listeners []subscription
	nextID    int
}

type subscription struct {
	id int
	fn Listener
}

// New loads the cart from storage. A missing or corrupt entry yields an
// empty cart; the error is logged, never returned.
func New(storage Storage, logger *log.Logger) *Store {
	s := &Store{
		storage: storage,
		logger:  logger,
	}
	if storage != nil {
		items, err := storage.Load()
		if err != nil {
			logger.Printf("load cart: %v", err)
		} else {
			s.items = items
		}
	}
	return s
}

// Subscribe registers a listener and returns its unsubscribe func.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.listeners {
			if sub.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// AddItem appends a quantity-1 line copying the product fields, or bumps the
// quantity of the existing line with the same ID. The stored snapshot wins
// over any changed fields on the incoming product.
func (s *Store) AddItem(p domain.Product) {
	s.mutate(func() bool {
		if i := s.index(p.ID); i >= 0 {
			s.items[i].Quantity++
		} else {
			s.items = append(s.items, domain.LineFromProduct(p))
		}
		return true
	})
}

// RemoveItem drops the line with the given ID. No-op if absent.
func (s *Store) RemoveItem(id string) {
	s.mutate(func() bool {
		i := s.index(id)
		if i < 0 {
			return false
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		return true
	})
}

// SetQuantity sets the line quantity; qty <= 0 removes the line. No-op if
// the ID is absent.
func (s *Store) SetQuantity(id string, qty int) {
	s.mutate(func() bool {
		i := s.index(id)
		if i < 0 {
			return false
		}
		if qty <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		} else {
			s.items[i].Quantity = qty
		}
		return true
	})
}

// IncrementItem adds one to the line quantity. No-op if absent.
func (s *Store) IncrementItem(id string) {
	s.mutate(func() bool {
		i := s.index(id)
		if i < 0 {
			return false
		}
		s.items[i].Quantity++
		return true
	})
}

// DecrementItem subtracts one from the line quantity; a quantity-1 line is
// removed rather than dropping to zero.
func (s *Store) DecrementItem(id string) {
	s.mutate(func() bool {
		i := s.index(id)
		if i < 0 {
			return false
		}
		if s.items[i].Quantity > 1 {
			s.items[i].Quantity--
		} else {
			s.items = append(s.items[:i], s.items[i+1:]...)
		}
		return true
	})
}

// Clear empties the cart. The storage entry is overwritten, not deleted.
func (s *Store) Clear() {
	s.mutate(func() bool {
		s.items = nil
		return true
	})
}

// Items returns an ordered snapshot copy of the cart lines.
func (s *Store) Items() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// TotalItems is the sum of quantities across all lines.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// TotalPrice is the sum of price*quantity across all lines.
func (s *Store) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, it := range s.items {
		total += it.LineTotal()
	}
	return total
}

// HasItem reports whether a line with the given ID exists.
func (s *Store) HasItem(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index(id) >= 0
}

// ItemQuantity returns the quantity of the line, or 0 if absent.
func (s *Store) ItemQuantity(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(id); i >= 0 {
		return s.items[i].Quantity
	}
	return 0
}

func (s *Store) index(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshot() []domain.CartLine {
	out := make([]domain.CartLine, len(s.items))
	copy(out, s.items)
	return out
}

// mutate applies fn under the lock, persists, then notifies listeners with
// the post-write snapshot outside the lock so listeners can read the store.
// Listeners only ever see copies; they cannot touch the owned slice.
func (s *Store) mutate(fn func() bool) {
	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return
	}
	if s.storage != nil {
		if err := s.storage.Save(s.snapshot()); err != nil {
			s.logger.Printf("save cart: %v", err)
		}
	}
	snap := s.snapshot()
	fns := make([]Listener, 0, len(s.listeners))
	for _, sub := range s.listeners {
		fns = append(fns, sub.fn)
	}
	s.mu.Unlock()

	for _, l := range fns {
		l(snap)
	}
}
