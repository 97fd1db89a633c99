package files

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu      sync.RWMutex
	records []FileRecord
	last    time.Time
	now     func() time.Time
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{now: time.Now}
}

// Save appends a record, assigning its ID and a strictly increasing CreatedAt.
func (r *MemoryRepo) Save(ctx context.Context, rec FileRecord) (FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return FileRecord{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	createdAt := r.now().UTC()
	if !createdAt.After(r.last) {
		createdAt = r.last.Add(time.Microsecond)
	}
	r.last = createdAt

	rec.ID = uuid.NewString()
	rec.CreatedAt = createdAt
	r.records = append(r.records, rec)
	return rec, nil
}

// ListAll returns all records, newest first.
func (r *MemoryRepo) ListAll(ctx context.Context) ([]FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	out := make([]FileRecord, len(r.records))
	copy(out, r.records)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
