package documents

import (
	"context"
	"sync"
)

// MemoryRepo keeps upload records in process. Records are held in insertion
// order, which is also creation order, so listing walks backwards.
type MemoryRepo struct {
	mu      sync.RWMutex
	uploads []Upload
}

// NewMemoryRepo returns an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Create records an upload.
func (r *MemoryRepo) Create(ctx context.Context, upload Upload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.uploads = append(r.uploads, upload)
	r.mu.Unlock()
	return nil
}

// ListByUser returns the user's uploads newest first. A limit of zero or
// less means no limit.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Upload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	offset = max(offset, 0)

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Upload{}
	skipped := 0
	for i := len(r.uploads) - 1; i >= 0; i-- {
		u := r.uploads[i]
		if u.UserID != userID {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, u)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
