package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/landsuite/plot-erp/internal/domain"
)

const leadColumns = `id, source, first_name, last_name, phone, email, city,
       budget_min, budget_max, plot_size_pref, facing_pref, status, reason_lost,
       lead_score, assigned_to_user_id, last_contact_at, next_followup_at,
       created_at, updated_at`

func scanLead(row interface{ Scan(...any) error }) (domain.Lead, error) {
	var (
		l            domain.Lead
		sizePref     sql.NullFloat64
		lastContact  sql.NullTime
		nextFollowup sql.NullTime
	)
	err := row.Scan(
		&l.ID, &l.Source, &l.FirstName, &l.LastName, &l.Phone, &l.Email, &l.City,
		&l.BudgetMin, &l.BudgetMax, &sizePref, &l.FacingPref, &l.Status, &l.ReasonLost,
		&l.LeadScore, &l.AssignedToUserID, &lastContact, &nextFollowup,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return domain.Lead{}, err
	}
	l.PlotSizePref = floatPtr(sizePref)
	l.LastContactAt = timePtr(lastContact)
	l.NextFollowupAt = timePtr(nextFollowup)
	l.CreatedAt = l.CreatedAt.UTC()
	l.UpdatedAt = l.UpdatedAt.UTC()
	return l, nil
}

func (s *Store) GetLead(ctx context.Context, id string) (domain.Lead, error) {
	row := s.q(ctx).QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = ?`, id)
	l, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Lead{}, domain.ErrLeadNotFound
	}
	return l, err
}

func (s *Store) PutLead(ctx context.Context, l domain.Lead) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO leads (`+leadColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		  source = VALUES(source), first_name = VALUES(first_name),
		  last_name = VALUES(last_name), phone = VALUES(phone),
		  email = VALUES(email), city = VALUES(city),
		  budget_min = VALUES(budget_min), budget_max = VALUES(budget_max),
		  plot_size_pref = VALUES(plot_size_pref), facing_pref = VALUES(facing_pref),
		  status = VALUES(status), reason_lost = VALUES(reason_lost),
		  lead_score = VALUES(lead_score),
		  assigned_to_user_id = VALUES(assigned_to_user_id),
		  last_contact_at = VALUES(last_contact_at),
		  next_followup_at = VALUES(next_followup_at),
		  updated_at = VALUES(updated_at)`,
		l.ID, string(l.Source), l.FirstName, l.LastName, l.Phone, l.Email, l.City,
		l.BudgetMin, l.BudgetMax, nullFloat(l.PlotSizePref), string(l.FacingPref), string(l.Status), l.ReasonLost,
		l.LeadScore, l.AssignedToUserID, nullTime(l.LastContactAt), nullTime(l.NextFollowupAt),
		l.CreatedAt.UTC(), l.UpdatedAt.UTC(),
	)
	return err
}

// LeadFilter narrows ListLeads. Zero values mean "no filter".
type LeadFilter struct {
	Status     domain.LeadStatus
	AssignedTo string
}

func (s *Store) ListLeads(ctx context.Context, f LeadFilter) ([]domain.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE 1=1`
	var args []any
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(f.Status))
	}
	if f.AssignedTo != "" {
		query += ` AND assigned_to_user_id = ?`
		args = append(args, f.AssignedTo)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []domain.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func (s *Store) DeleteLead(ctx context.Context, id string) error {
	res, err := s.q(ctx).ExecContext(ctx, `DELETE FROM leads WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrLeadNotFound
	}
	return nil
}
