package files

import "context"

// Repo persists file records. Implementations assign ID and CreatedAt on
// Save; CreatedAt is strictly increasing per store so listings are totally
// ordered.
type Repo interface {
	Save(ctx context.Context, rec FileRecord) (FileRecord, error)
	// ListAll returns every record, newest first.
	ListAll(ctx context.Context) ([]FileRecord, error)
}
