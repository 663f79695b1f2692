package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/emclarke/pharmacy-rota/pkg/core/rota"
)

// RotaRecord is one published rota's header row.
type RotaRecord struct {
	ID          string
	WeekStart   string
	Score       float64
	Feasible    bool
	PublishedAt string
}

// PublishRota stores a finished weekly rota and all its assignments in one
// transaction.
func (s *Store) PublishRota(ctx context.Context, weekStart time.Time, week *rota.WeeklyRota, score float64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO rota (id, week_start, score, feasible)
		VALUES ($1, $2, $3, $4)
	`, week.ID, weekStart, score, week.Feasible())
	if err != nil {
		return fmt.Errorf("failed to insert rota: %w", err)
	}

	for _, a := range week.Assignments {
		_, err := tx.Exec(ctx, `
			INSERT INTO rota_assignment (id, rota_id, pharmacist_id, slot_id, locked, backfill)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, a.ID, week.ID, a.PharmacistID, a.SlotID, a.Locked, a.Backfill)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit rota: %w", err)
	}

	return nil
}

// GetRotas lists published rota headers, newest first.
func (s *Store) GetRotas(ctx context.Context) ([]RotaRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, week_start, score, feasible, published_at
		FROM rota
		ORDER BY published_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rotas: %w", err)
	}
	defer rows.Close()

	var records []RotaRecord
	for rows.Next() {
		var (
			r           RotaRecord
			weekStart   time.Time
			publishedAt time.Time
		)
		if err := rows.Scan(&r.ID, &weekStart, &r.Score, &r.Feasible, &publishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rota: %w", err)
		}
		r.WeekStart = weekStart.Format("2006-01-02")
		r.PublishedAt = publishedAt.UTC().Format(time.RFC3339)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rotas: %w", err)
	}

	return records, nil
}

// GetRotaAssignments retrieves the assignments of one published rota.
func (s *Store) GetRotaAssignments(ctx context.Context, rotaID string) ([]rota.Assignment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, pharmacist_id, slot_id, locked, backfill
		FROM rota_assignment
		WHERE rota_id = $1
		ORDER BY slot_id, pharmacist_id
	`, rotaID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []rota.Assignment
	for rows.Next() {
		var a rota.Assignment
		if err := rows.Scan(&a.ID, &a.PharmacistID, &a.SlotID, &a.Locked, &a.Backfill); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}
