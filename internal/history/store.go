// README: Postgres audit log of transitions observed on the live feed.
package history

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"buensabor/internal/board"
)

// Store appends every observed status change and serves the dashboard
// aggregates. The board stays correct without it; history is additive.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the audit table when missing. Called once at
// startup; the table is append-only so there is nothing to migrate.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS order_status_events (
			id          BIGSERIAL PRIMARY KEY,
			order_id    INTEGER NOT NULL,
			from_status TEXT,
			to_status   TEXT NOT NULL,
			total       NUMERIC(12,2) NOT NULL DEFAULT 0,
			observed_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS order_status_events_observed_at_idx
			ON order_status_events (observed_at)`)
	return err
}

// Record implements board.Recorder.
func (s *Store) Record(ctx context.Context, c board.StatusChange) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO order_status_events (
			order_id, from_status, to_status, total, observed_at
		) VALUES ($1, $2, $3, $4, $5)`,
		c.OrderID,
		nullIfEmpty(c.From),
		string(c.To),
		c.Total,
		c.ObservedAt,
	)
	return err
}

// DailySummary aggregates one calendar day of observed activity.
type DailySummary struct {
	Day       time.Time `json:"day"`
	Orders    int       `json:"orders"`
	Delivered int       `json:"delivered"`
	Cancelled int       `json:"cancelled"`
	Revenue   float64   `json:"revenue"`
}

// Summary computes the aggregates for the day containing ts (UTC).
// Revenue counts delivered orders only.
func (s *Store) Summary(ctx context.Context, ts time.Time) (DailySummary, error) {
	day := ts.UTC().Truncate(24 * time.Hour)
	row := s.db.QueryRow(ctx, `
		SELECT
			COUNT(DISTINCT order_id),
			COUNT(*) FILTER (WHERE to_status = 'ENTREGADO'),
			COUNT(*) FILTER (WHERE to_status = 'CANCELADO'),
			COALESCE(SUM(total) FILTER (WHERE to_status = 'ENTREGADO'), 0)
		FROM order_status_events
		WHERE observed_at >= $1 AND observed_at < $2`,
		day, day.Add(24*time.Hour),
	)
	out := DailySummary{Day: day}
	if err := row.Scan(&out.Orders, &out.Delivered, &out.Cancelled, &out.Revenue); err != nil {
		return DailySummary{}, err
	}
	return out, nil
}

// Recent returns the latest observed changes, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]board.StatusChange, error) {
	rows, err := s.db.Query(ctx, `
		SELECT order_id, COALESCE(from_status, ''), to_status, total, observed_at
		FROM order_status_events
		ORDER BY observed_at DESC
		LIMIT $1`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []board.StatusChange
	for rows.Next() {
		var c board.StatusChange
		var from, to string
		if err := rows.Scan(&c.OrderID, &from, &to, &c.Total, &c.ObservedAt); err != nil {
			return nil, err
		}
		c.From = board.Status(from)
		c.To = board.Status(to)
		out = append(out, c)
	}
	return out, rows.Err()
}

func nullIfEmpty(s board.Status) *string {
	if s == "" {
		return nil
	}
	v := string(s)
	return &v
}
