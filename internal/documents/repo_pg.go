package documents

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts an upload record.
func (r *PGRepo) Create(ctx context.Context, upload Upload) error {
	const query = `
INSERT INTO resume_uploads (
    id,
    user_id,
    file_name,
    mime_type,
    size_bytes,
    storage_provider,
    storage_key,
    extracted_text_key,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.DB.ExecContext(ctx, query,
		upload.ID,
		upload.UserID,
		upload.FileName,
		upload.MimeType,
		upload.SizeBytes,
		upload.StorageProvider,
		upload.StorageKey,
		nullableString(upload.ExtractedTextKey),
		upload.CreatedAt,
	)
	return err
}

// ListByUser returns uploads newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Upload, error) {
	const query = `
SELECT id, user_id, file_name, mime_type, size_bytes, storage_provider, storage_key, extracted_text_key, created_at
FROM resume_uploads
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Upload{}
	for rows.Next() {
		var u Upload
		var extractedKey sql.NullString
		if err := rows.Scan(
			&u.ID,
			&u.UserID,
			&u.FileName,
			&u.MimeType,
			&u.SizeBytes,
			&u.StorageProvider,
			&u.StorageKey,
			&extractedKey,
			&u.CreatedAt,
		); err != nil {
			return nil, err
		}
		if extractedKey.Valid {
			u.ExtractedTextKey = extractedKey.String
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
