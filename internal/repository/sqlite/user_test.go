package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/recipe-api/internal/domain"
)

func TestUserRepository_Create(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()

	user := &domain.User{Email: "test@example.com", Name: "Test User", PasswordHash: "hashedpw"}
	require.NoError(t, repo.Create(context.Background(), user))

	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{Email: "dup@example.com", PasswordHash: "hash1"}))

	err := repo.Create(ctx, &domain.User{Email: "dup@example.com", PasswordHash: "hash2"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestUserRepository_GetByIDAndEmail(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	user := &domain.User{Email: "byid@example.com", Name: "By ID", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)
	assert.Equal(t, user.Name, found.Name)

	found, err = repo.GetByEmail(ctx, "byid@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestUserRepository_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepository_Update(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	user := &domain.User{Email: "update@example.com", Name: "Before", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))

	user.Name = "After"
	require.NoError(t, repo.Update(ctx, user))

	found, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", found.Name)

	err = repo.Update(ctx, &domain.User{ID: 9999, Email: "x@example.com"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
