package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/landsuite/plot-erp/internal/domain"
)

// ErrEmailExists is returned when registering a user with a taken email.
var ErrEmailExists = errors.New("email already exists")

const userColumns = `id, name, email, phone, role, reports_to_user_id, active,
       password_hash, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var (
		u         domain.User
		reportsTo sql.NullString
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &reportsTo, &u.Active,
		&u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.ReportsToUserID = strPtr(reportsTo)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (domain.User, error) {
	row := s.q(ctx).QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row := s.q(ctx).QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, err
}

func (s *Store) CreateUser(ctx context.Context, u domain.User) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, strings.ToLower(strings.TrimSpace(u.Email)), u.Phone, string(u.Role),
		nullStr(u.ReportsToUserID), u.Active, u.PasswordHash,
		u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrEmailExists
	}
	return err
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

// ListUsersByRole returns active users holding the given role. The
// sweeper uses it to reach the project managers on hold expiry.
func (s *Store) ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = ? AND active = 1 ORDER BY name`,
		string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows *sql.Rows) ([]domain.User, error) {
	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
