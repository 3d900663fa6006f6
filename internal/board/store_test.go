// README: Order store tests (upsert position semantics, snapshot isolation).
package board

import "testing"

func order(id int, s Status) Order {
	return Order{ID: id, Status: s, PlacedAt: "2025-05-01T12:00:00", Total: 100, EstimatedMinutes: 20}
}

func TestStoreUpsertReplacesInPlace(t *testing.T) {
	s := NewStore()
	s.Load([]Order{order(1, StatusPending), order(2, StatusPending), order(3, StatusReady)})

	updated := order(2, StatusReady)
	updated.Total = 250
	s.Upsert(updated)

	snap := s.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot length = %d, want 3", len(snap))
	}
	if snap[1].ID != 2 {
		t.Fatalf("order 2 moved to position %d", indexOf(snap, 2))
	}
	if snap[1].Status != StatusReady || snap[1].Total != 250 {
		t.Errorf("order 2 not fully replaced: %+v", snap[1])
	}
}

func TestStoreUpsertPrependsUnseen(t *testing.T) {
	s := NewStore()
	s.Load([]Order{order(1, StatusPending)})

	s.Upsert(order(2, StatusPending))

	snap := s.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("snapshot length = %d, want 2", len(snap))
	}
	if snap[0].ID != 2 || snap[1].ID != 1 {
		t.Errorf("new order should be at the front: %v", ids(snap))
	}

	// positions stay addressable after the shift
	if o, ok := s.Get(1); !ok || o.ID != 1 {
		t.Errorf("Get(1) after prepend = %+v, %v", o, ok)
	}
}

// TestStoreFeedScenario is the end-to-end reconciliation sequence: an
// update to a known order keeps its slot, then a new order lands on top.
func TestStoreFeedScenario(t *testing.T) {
	s := NewStore()
	s.Load([]Order{order(1, StatusPending)})

	s.Upsert(order(1, StatusReady))
	snap := s.Snapshot()
	if len(snap) != 1 || snap[0].ID != 1 || snap[0].Status != StatusReady {
		t.Fatalf("after update: %v", snap)
	}

	s.Upsert(order(2, StatusPending))
	snap = s.Snapshot()
	if len(snap) != 2 || snap[0].ID != 2 || snap[1].ID != 1 || snap[1].Status != StatusReady {
		t.Fatalf("after new order: %v", snap)
	}
}

func TestStoreUpsertIsIdempotentPerID(t *testing.T) {
	s := NewStore()
	o := order(7, StatusPending)
	s.Upsert(o)
	s.Upsert(o)
	if s.Len() != 1 {
		t.Fatalf("duplicate upsert grew the board to %d", s.Len())
	}
}

func TestStoreLoadReplacesEverything(t *testing.T) {
	s := NewStore()
	s.Load([]Order{order(1, StatusPending), order(2, StatusReady)})
	s.Load([]Order{order(3, StatusPending)})

	if s.Len() != 1 {
		t.Fatalf("length after reload = %d, want 1", s.Len())
	}
	if _, ok := s.Get(1); ok {
		t.Error("stale order survived a reload")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.Load([]Order{order(1, StatusPending)})

	snap := s.Snapshot()
	snap[0].Status = StatusCancelled

	if o, _ := s.Get(1); o.Status != StatusPending {
		t.Error("mutating a snapshot leaked into the store")
	}
}

func indexOf(orders []Order, id int) int {
	for i, o := range orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func ids(orders []Order) []int {
	out := make([]int, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}
