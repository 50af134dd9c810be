package documents

import "context"

// Repo persists retained upload records.
type Repo interface {
	Create(ctx context.Context, upload Upload) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Upload, error)
}
