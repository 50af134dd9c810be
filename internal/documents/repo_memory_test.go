package documents

import (
	"context"
	"testing"
	"time"
)

func TestMemoryRepoListsNewestFirstPerUser(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	for i, owner := range []string{"u1", "u2", "u1", "u1"} {
		err := repo.Create(ctx, Upload{ID: string(rune('a' + i)), UserID: owner, CreatedAt: base.Add(time.Duration(i) * time.Minute)})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.ListByUser(ctx, "u1", 0, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 3 || got[0].ID != "d" || got[2].ID != "a" {
		t.Fatalf("unexpected order %+v", got)
	}

	page, _ := repo.ListByUser(ctx, "u1", 1, 1)
	if len(page) != 1 || page[0].ID != "c" {
		t.Fatalf("unexpected page %+v", page)
	}

	none, _ := repo.ListByUser(ctx, "nobody", 10, 0)
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", none)
	}
}
