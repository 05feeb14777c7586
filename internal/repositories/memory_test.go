package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geticard_backend/internal/models"
)

func TestMemoryUserRepositoryConditionalCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	user := &models.User{Email: "alice@x.com", Name: "Alice", PasswordHash: "digest"}
	require.NoError(t, repo.Create(ctx, user))

	err := repo.Create(ctx, &models.User{Email: "alice@x.com", Name: "Imposter"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	found, err := repo.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.Name)

	_, err = repo.FindByEmail(ctx, "bob@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryCardRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCardRepository()

	card := &models.Card{CardID: "card-0a1b2c3d", ContactEmail: "alice@x.com", Name: "Alice"}
	require.NoError(t, repo.Create(ctx, card))

	err := repo.Create(ctx, &models.Card{CardID: "card-0a1b2c3d"})
	assert.ErrorIs(t, err, ErrCardAlreadyExists)

	byEmail, err := repo.FindByContactEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, "card-0a1b2c3d", byEmail.CardID)

	_, err = repo.FindByContactEmail(ctx, "bob@x.com")
	assert.ErrorIs(t, err, ErrCardNotFound)

	card.Bio = "hi"
	require.NoError(t, repo.Save(ctx, card))
	byID, err := repo.FindByID(ctx, "card-0a1b2c3d")
	require.NoError(t, err)
	assert.Equal(t, "hi", byID.Bio)

	require.NoError(t, repo.Delete(ctx, "card-0a1b2c3d"))
	_, err = repo.FindByID(ctx, "card-0a1b2c3d")
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestMemoryCardRepositoryCloneIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCardRepository()

	card := &models.Card{CardID: "card-ffffffff", ContactEmail: "alice@x.com", Gallery: []string{"/uploads/a.png"}}
	require.NoError(t, repo.Create(ctx, card))

	got, err := repo.FindByID(ctx, "card-ffffffff")
	require.NoError(t, err)
	got.Gallery[0] = "mutated"

	again, err := repo.FindByID(ctx, "card-ffffffff")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/a.png", again.Gallery[0])
}
