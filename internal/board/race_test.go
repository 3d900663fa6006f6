// README: Concurrency tests for the board store (run with -race).
package board

import (
	"context"
	"sync"
	"testing"
)

// TestStoreConcurrentUpsertAndSnapshot hammers the store from a writer
// goroutine (standing in for the feed callback) while readers snapshot.
func TestStoreConcurrentUpsertAndSnapshot(t *testing.T) {
	s := NewStore()
	s.Load([]Order{order(1, StatusPending)})

	var wg sync.WaitGroup
	start := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-start
		for i := 0; i < 500; i++ {
			s.Upsert(order(i%10, StatusReady))
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for i := 0; i < 500; i++ {
				snap := s.Snapshot()
				seen := make(map[int]bool, len(snap))
				for _, o := range snap {
					if seen[o.ID] {
						t.Errorf("duplicate id %d in snapshot", o.ID)
						return
					}
					seen[o.ID] = true
				}
				_, _ = s.Get(i % 10)
			}
		}()
	}

	close(start)
	wg.Wait()

	if s.Len() != 10 {
		t.Fatalf("expected 10 distinct orders, got %d", s.Len())
	}
}

// TestServiceConcurrentApplyUpdate checks the feed path end to end under
// concurrent updates for the same and different ids.
func TestServiceConcurrentApplyUpdate(t *testing.T) {
	store := NewStore()
	svc := NewService(store, &stubGateway{}, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				svc.ApplyUpdate(ctx, order((w*7+i)%25, StatusPreparing))
			}
		}(w)
	}
	wg.Wait()

	if store.Len() != 25 {
		t.Fatalf("expected 25 distinct orders, got %d", store.Len())
	}
}
