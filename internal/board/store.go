// README: In-memory order store; upsert-by-id preserving position.
package board

import "sync"

// Store holds the live board. It is owned by the service that mounts it
// and rebuilt from a full fetch; the feed adapter is its only writer
// after that. All methods are safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	orders []Order
	index  map[int]int // order id → position in orders
}

func NewStore() *Store {
	return &Store{index: make(map[int]int)}
}

// Load replaces the entire snapshot with the given orders, keeping their
// sequence. Called once after the initial fetch (and on manual refresh).
func (s *Store) Load(orders []Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = make([]Order, len(orders))
	copy(s.orders, orders)
	s.index = make(map[int]int, len(orders))
	for i, o := range s.orders {
		s.index[o.ID] = i
	}
}

// Upsert replaces the order with the same id in place, preserving its
// position; unseen ids are prepended. Updates are full-record
// replacements, so last-writer-wins needs no field merging.
func (s *Store) Upsert(o Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.index[o.ID]; ok {
		s.orders[i] = o
		return
	}
	s.orders = append([]Order{o}, s.orders...)
	for id, i := range s.index {
		s.index[id] = i + 1
	}
	s.index[o.ID] = 0
}

// Get returns the current copy of an order, if present.
func (s *Store) Get(id int) (Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return Order{}, false
	}
	return s.orders[i], true
}

// Snapshot returns a copy of the current ordered view. Callers may filter
// or paginate it freely without affecting the store.
func (s *Store) Snapshot() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Len reports the number of orders on the board.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}
