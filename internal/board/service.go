// README: Board service; reconciles the live feed and gates transition requests.
package board

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"buensabor/internal/identity"
)

var (
	ErrNotFound   = errors.New("order not found")
	ErrForbidden  = errors.New("transition not allowed for role")
	ErrBadRequest = errors.New("bad request")
)

// Gateway is the authoritative backend. RequestTransition never mutates
// the local store: the backend republishes the change on the feed, and
// the feed is the store's only writer. This avoids the race between an
// optimistic local update and the feed-driven one.
type Gateway interface {
	ListOrders(ctx context.Context) ([]Order, error)
	OrderDetail(ctx context.Context, id int) (OrderDetail, error)
	RequestTransition(ctx context.Context, id int, target Status) error
}

// StatusChange is an observed transition, as seen on the feed.
type StatusChange struct {
	OrderID    int
	From       Status // empty when the order first appears on the board
	To         Status
	Total      float64
	ObservedAt time.Time
}

// Recorder persists observed transitions for the dashboard history.
type Recorder interface {
	Record(ctx context.Context, change StatusChange) error
}

type Service struct {
	store    *Store
	gateway  Gateway
	recorder Recorder
}

// NewService wires the board. recorder may be nil (history disabled).
func NewService(store *Store, gateway Gateway, recorder Recorder) *Service {
	return &Service{store: store, gateway: gateway, recorder: recorder}
}

// Refresh replaces the board with a full fetch from the backend.
func (s *Service) Refresh(ctx context.Context) error {
	orders, err := s.gateway.ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}
	s.store.Load(orders)
	return nil
}

// List returns the role-visible board, optionally restricted to one
// status tab. The snapshot keeps the store's order.
func (s *Service) List(role identity.Role, tab Status) []Order {
	all := s.store.Snapshot()
	out := make([]Order, 0, len(all))
	for _, o := range all {
		if !Visible(role, o.Status) {
			continue
		}
		if tab != "" && o.Status != tab {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Detail fetches the extended record straight from the backend. It is
// never cached on the board.
func (s *Service) Detail(ctx context.Context, id int) (OrderDetail, error) {
	return s.gateway.OrderDetail(ctx, id)
}

// RequestTransition validates that the role may request the change from
// the order's current state and relays it to the backend. Local state is
// left untouched; the update arrives via the feed.
func (s *Service) RequestTransition(ctx context.Context, role identity.Role, id int, target Status) error {
	if _, ok := statusMeta[target]; !ok {
		return ErrBadRequest
	}
	o, ok := s.store.Get(id)
	if !ok {
		return ErrNotFound
	}
	if !CanTransition(role, o.Status, target) {
		return ErrForbidden
	}
	return s.gateway.RequestTransition(ctx, id, target)
}

// ApplyUpdate upserts a feed-delivered order into the board and records
// the observed transition. Called from the feed adapter's goroutine.
func (s *Service) ApplyUpdate(ctx context.Context, o Order) {
	prev, existed := s.store.Get(o.ID)
	s.store.Upsert(o)
	if s.recorder == nil {
		return
	}
	if existed && prev.Status == o.Status {
		return
	}
	change := StatusChange{
		OrderID:    o.ID,
		To:         o.Status,
		Total:      o.Total,
		ObservedAt: time.Now().UTC(),
	}
	if existed {
		change.From = prev.Status
	}
	if err := s.recorder.Record(ctx, change); err != nil {
		log.Printf("board: record status change for order %d: %v", o.ID, err)
	}
}
