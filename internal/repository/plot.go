package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/landsuite/plot-erp/internal/domain"
)

const plotColumns = `id, project_id, block, phase, plot_no, size, size_unit, facing, corner,
       status, base_rate, current_rate, min_rate, max_rate,
       hold_expiry_at, booked_at, last_status_change_at, buyer_id, sales_owner_id, notes`

func scanPlot(row interface{ Scan(...any) error }) (domain.Plot, error) {
	var (
		p            domain.Plot
		holdExpiry   sql.NullTime
		bookedAt     sql.NullTime
		buyerID      sql.NullString
		salesOwnerID sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.ProjectID, &p.Block, &p.Phase, &p.PlotNo, &p.Size, &p.SizeUnit, &p.Facing, &p.Corner,
		&p.Status, &p.BaseRate, &p.CurrentRate, &p.MinRate, &p.MaxRate,
		&holdExpiry, &bookedAt, &p.LastStatusChangeAt, &buyerID, &salesOwnerID, &p.Notes,
	)
	if err != nil {
		return domain.Plot{}, err
	}
	p.HoldExpiryAt = timePtr(holdExpiry)
	p.BookedAt = timePtr(bookedAt)
	p.BuyerID = strPtr(buyerID)
	p.SalesOwnerID = strPtr(salesOwnerID)
	p.LastStatusChangeAt = p.LastStatusChangeAt.UTC()
	return p, nil
}

func (s *Store) GetPlot(ctx context.Context, id string) (domain.Plot, error) {
	row := s.q(ctx).QueryRowContext(ctx, `SELECT `+plotColumns+` FROM plots WHERE id = ?`, id)
	p, err := scanPlot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Plot{}, domain.ErrPlotNotFound
	}
	return p, err
}

// PutPlot upserts the full plot row. The engine always writes the whole
// record after mutating it in memory.
func (s *Store) PutPlot(ctx context.Context, p domain.Plot) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO plots (`+plotColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		  status = VALUES(status), base_rate = VALUES(base_rate),
		  current_rate = VALUES(current_rate), min_rate = VALUES(min_rate),
		  max_rate = VALUES(max_rate), hold_expiry_at = VALUES(hold_expiry_at),
		  booked_at = VALUES(booked_at),
		  last_status_change_at = VALUES(last_status_change_at),
		  buyer_id = VALUES(buyer_id), sales_owner_id = VALUES(sales_owner_id),
		  notes = VALUES(notes)`,
		p.ID, p.ProjectID, p.Block, p.Phase, p.PlotNo, p.Size, string(p.SizeUnit), string(p.Facing), p.Corner,
		string(p.Status), p.BaseRate, p.CurrentRate, p.MinRate, p.MaxRate,
		nullTime(p.HoldExpiryAt), nullTime(p.BookedAt), p.LastStatusChangeAt.UTC(),
		nullStr(p.BuyerID), nullStr(p.SalesOwnerID), p.Notes,
	)
	return err
}

// PlotFilter narrows ListPlots. Zero values mean "no filter".
type PlotFilter struct {
	ProjectID string
	Status    domain.PlotStatus
}

func (s *Store) ListPlots(ctx context.Context, f PlotFilter) ([]domain.Plot, error) {
	query := `SELECT ` + plotColumns + ` FROM plots WHERE 1=1`
	var args []any
	if f.ProjectID != "" {
		query += ` AND project_id = ?`
		args = append(args, f.ProjectID)
	}
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(f.Status))
	}
	query += ` ORDER BY project_id, block, plot_no`

	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plots []domain.Plot
	for rows.Next() {
		p, err := scanPlot(rows)
		if err != nil {
			return nil, err
		}
		plots = append(plots, p)
	}
	return plots, rows.Err()
}

// UpdatePlotRates changes the rate band of a plot. The caller is
// responsible for validating min <= current <= max before calling.
func (s *Store) UpdatePlotRates(ctx context.Context, id string, current, min, max float64) error {
	res, err := s.q(ctx).ExecContext(ctx,
		`UPDATE plots SET current_rate = ?, min_rate = ?, max_rate = ? WHERE id = ?`,
		current, min, max, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Zero rows can mean "same values"; confirm existence explicitly.
		if _, err := s.GetPlot(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
