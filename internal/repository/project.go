package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/landsuite/plot-erp/internal/domain"
)

const projectColumns = `id, name, code, location_city, location_area, developer_name,
       launch_date, status, default_plot_size_unit, base_rate, inventory_count,
       created_by, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (domain.Project, error) {
	var (
		p          domain.Project
		launchDate sql.NullTime
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Code, &p.LocationCity, &p.LocationArea, &p.DeveloperName,
		&launchDate, &p.Status, &p.DefaultPlotSizeUnit, &p.BaseRate, &p.InventoryCount,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Project{}, err
	}
	p.LaunchDate = timePtr(launchDate)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

func (s *Store) GetProject(ctx context.Context, id string) (domain.Project, error) {
	row := s.q(ctx).QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Project{}, domain.ErrProjectNotFound
	}
	return p, err
}

func (s *Store) PutProject(ctx context.Context, p domain.Project) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO projects (`+projectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		  name = VALUES(name), code = VALUES(code),
		  location_city = VALUES(location_city), location_area = VALUES(location_area),
		  developer_name = VALUES(developer_name), launch_date = VALUES(launch_date),
		  status = VALUES(status),
		  default_plot_size_unit = VALUES(default_plot_size_unit),
		  base_rate = VALUES(base_rate), inventory_count = VALUES(inventory_count),
		  updated_at = VALUES(updated_at)`,
		p.ID, p.Name, p.Code, p.LocationCity, p.LocationArea, p.DeveloperName,
		nullTime(p.LaunchDate), string(p.Status), string(p.DefaultPlotSizeUnit), p.BaseRate, p.InventoryCount,
		p.CreatedBy, p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
	)
	return err
}

func (s *Store) ListProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}
