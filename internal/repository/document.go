package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/landsuite/plot-erp/internal/domain"
)

const documentColumns = `id, entity_type, entity_id, doc_type, url, uploaded_by,
       verified_by, verified_at, status, remarks, created_at`

func scanDocument(row interface{ Scan(...any) error }) (domain.Document, error) {
	var (
		d          domain.Document
		verifiedBy sql.NullString
		verifiedAt sql.NullTime
	)
	err := row.Scan(
		&d.ID, &d.EntityType, &d.EntityID, &d.DocType, &d.URL, &d.UploadedBy,
		&verifiedBy, &verifiedAt, &d.Status, &d.Remarks, &d.CreatedAt,
	)
	if err != nil {
		return domain.Document{}, err
	}
	d.VerifiedBy = strPtr(verifiedBy)
	d.VerifiedAt = timePtr(verifiedAt)
	d.CreatedAt = d.CreatedAt.UTC()
	return d, nil
}

func (s *Store) GetDocument(ctx context.Context, id string) (domain.Document, error) {
	row := s.q(ctx).QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)
	d, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Document{}, domain.ErrDocumentNotFound
	}
	return d, err
}

func (s *Store) PutDocument(ctx context.Context, d domain.Document) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		  verified_by = VALUES(verified_by), verified_at = VALUES(verified_at),
		  status = VALUES(status), remarks = VALUES(remarks)`,
		d.ID, string(d.EntityType), d.EntityID, string(d.DocType), d.URL, d.UploadedBy,
		nullStr(d.VerifiedBy), nullTime(d.VerifiedAt), string(d.Status), d.Remarks,
		d.CreatedAt.UTC(),
	)
	return err
}

func (s *Store) ListDocumentsByEntity(ctx context.Context, entityType domain.EntityType, entityID string) ([]domain.Document, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE entity_type = ? AND entity_id = ? ORDER BY created_at DESC`,
		string(entityType), entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
