package files

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres. created_at comes from the
// column default so the database clock orders records.
type PGRepo struct {
	DB *sql.DB
}

// Save inserts a record and reads back the database-assigned timestamp.
func (r *PGRepo) Save(ctx context.Context, rec FileRecord) (FileRecord, error) {
	const query = `
INSERT INTO files (
    id,
    origin_id,
    file_name,
    file_size,
    mime_type,
    category,
    owner_chat_id
) VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING created_at`

	rec.ID = uuid.NewString()

	var size sql.NullInt64
	if rec.FileSize != nil {
		size = sql.NullInt64{Int64: *rec.FileSize, Valid: true}
	}
	var mimeType sql.NullString
	if rec.MimeType != "" {
		mimeType = sql.NullString{String: rec.MimeType, Valid: true}
	}

	err := r.DB.QueryRowContext(
		ctx,
		query,
		rec.ID,
		rec.OriginID,
		rec.FileName,
		size,
		mimeType,
		string(rec.Category),
		rec.OwnerChatID,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return FileRecord{}, err
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	return rec, nil
}

// ListAll lists every record ordered newest-first. seq breaks clock ties.
func (r *PGRepo) ListAll(ctx context.Context) ([]FileRecord, error) {
	const query = `
SELECT id, origin_id, file_name, file_size, mime_type, category, owner_chat_id, created_at
FROM files
ORDER BY created_at DESC, seq DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []FileRecord{}
	for rows.Next() {
		var rec FileRecord
		var size sql.NullInt64
		var mimeType sql.NullString
		var category string
		if err := rows.Scan(
			&rec.ID,
			&rec.OriginID,
			&rec.FileName,
			&size,
			&mimeType,
			&category,
			&rec.OwnerChatID,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		if size.Valid {
			v := size.Int64
			rec.FileSize = &v
		}
		if mimeType.Valid {
			rec.MimeType = mimeType.String
		}
		rec.Category = Category(category)
		rec.CreatedAt = rec.CreatedAt.UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
