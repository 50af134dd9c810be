package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepoCreateAndLookup(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, User{ID: "user_1", Email: "Ada@Example.com", Name: "Ada"}))

	byEmail, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user_1", byEmail.ID)
	assert.False(t, byEmail.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", byID.Email)
	assert.Equal(t, Profile{ID: "user_1", Name: "Ada", Email: "ada@example.com"}, byID.Profile())

	err = repo.Create(ctx, User{ID: "user_2", Email: "ADA@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = repo.GetByID(ctx, "user_2")
	assert.ErrorIs(t, err, ErrNotFound)
}
