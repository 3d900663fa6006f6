// README: Insights tests (prompt shape + unconfigured behavior).
package insights

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"buensabor/internal/history"
)

func TestBuildPrompt(t *testing.T) {
	p := buildPrompt(history.DailySummary{
		Day:       time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		Orders:    42,
		Delivered: 30,
		Cancelled: 3,
		Revenue:   15750.50,
	})
	for _, want := range []string{"2025-05-01", "42 distinct orders", "30 delivered", "3 cancelled", "$15750.50"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q:\n%s", want, p)
		}
	}
}

func TestDailyDigestUnconfigured(t *testing.T) {
	svc, err := NewService(context.Background(), "", nil, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if _, err := svc.DailyDigest(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
