package repository

import (
	"context"
	"database/sql"

	"github.com/landsuite/plot-erp/internal/domain"
)

const activityColumns = `id, lead_id, user_id, type, summary, outcome, next_action_at, created_at`

func (s *Store) CreateActivity(ctx context.Context, a domain.Activity) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO activities (`+activityColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.LeadID, a.UserID, string(a.Type), a.Summary, string(a.Outcome),
		nullTime(a.NextActionAt), a.CreatedAt.UTC(),
	)
	return err
}

func (s *Store) ListActivitiesByLead(ctx context.Context, leadID string) ([]domain.Activity, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE lead_id = ? ORDER BY created_at DESC`,
		leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Activity
	for rows.Next() {
		var (
			a          domain.Activity
			nextAction sql.NullTime
		)
		if err := rows.Scan(&a.ID, &a.LeadID, &a.UserID, &a.Type, &a.Summary,
			&a.Outcome, &nextAction, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.NextActionAt = timePtr(nextAction)
		a.CreatedAt = a.CreatedAt.UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}
