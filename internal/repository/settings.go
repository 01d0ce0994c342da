package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/landsuite/plot-erp/internal/domain"
)

func (s *Store) GetSettings(ctx context.Context) (domain.Settings, error) {
	var st domain.Settings
	err := s.q(ctx).QueryRowContext(ctx, `
		SELECT id, default_hold_hours, auto_expire_hold,
		       auto_reassign_dead_leads_days, discount_approval_threshold
		FROM settings LIMIT 1`,
	).Scan(&st.ID, &st.DefaultHoldHours, &st.AutoExpireHold,
		&st.AutoReassignDeadLeadsDays, &st.DiscountApprovalThreshold)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Settings{}, domain.ErrSettingsNotFound
	}
	return st, err
}

func (s *Store) PutSettings(ctx context.Context, st domain.Settings) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO settings (id, default_hold_hours, auto_expire_hold,
		       auto_reassign_dead_leads_days, discount_approval_threshold)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		  default_hold_hours = VALUES(default_hold_hours),
		  auto_expire_hold = VALUES(auto_expire_hold),
		  auto_reassign_dead_leads_days = VALUES(auto_reassign_dead_leads_days),
		  discount_approval_threshold = VALUES(discount_approval_threshold)`,
		st.ID, st.DefaultHoldHours, st.AutoExpireHold,
		st.AutoReassignDeadLeadsDays, st.DiscountApprovalThreshold,
	)
	return err
}

// EnsureSettings seeds the defaults on first run so the engines always
// find a policy row.
func (s *Store) EnsureSettings(ctx context.Context) (domain.Settings, error) {
	st, err := s.GetSettings(ctx)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, domain.ErrSettingsNotFound) {
		return domain.Settings{}, err
	}
	st = domain.DefaultSettings()
	if err := s.PutSettings(ctx, st); err != nil {
		return domain.Settings{}, err
	}
	return st, nil
}
