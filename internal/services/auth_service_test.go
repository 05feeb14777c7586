package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geticard_backend/internal/auth"
	"geticard_backend/internal/models"
	"geticard_backend/internal/repositories"
	"geticard_backend/internal/services/dto"
	"geticard_backend/pkg/apperrors"
)

func newAuthFixture() (AuthService, *repositories.MemoryUserRepository, *repositories.MemoryCardRepository, *auth.TokenIssuer) {
	users := repositories.NewMemoryUserRepository()
	cards := repositories.NewMemoryCardRepository()
	tokens := auth.NewTokenIssuer("test-secret", 60)
	return NewAuthService(users, cards, tokens), users, cards, tokens
}

func TestRegisterAndDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newAuthFixture()

	req := &dto.RegisterRequest{Name: "Alice", Email: "alice@x.com", Password: "pw1secret"}
	require.NoError(t, svc.Register(ctx, req))

	err := svc.Register(ctx, req)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.HTTPCode)
}

func TestRegisterShortPasswordAccepted(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newAuthFixture()

	require.NoError(t, svc.Register(ctx, &dto.RegisterRequest{Name: "Alice", Email: "alice@x.com", Password: "pw1"}))

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "alice@x.com", Password: "pw1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestRegisterEmptyPassword(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	err := svc.Register(context.Background(), &dto.RegisterRequest{Name: "Alice", Email: "alice@x.com", Password: ""})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestLoginSuccessTokenSubject(t *testing.T) {
	ctx := context.Background()
	svc, _, _, tokens := newAuthFixture()

	require.NoError(t, svc.Register(ctx, &dto.RegisterRequest{Name: "Alice", Email: "alice@x.com", Password: "pw1secret"}))

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "alice@x.com", Password: "pw1secret"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	assert.Nil(t, resp.CardID)

	subject, err := tokens.Parse(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", subject)
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newAuthFixture()

	require.NoError(t, svc.Register(ctx, &dto.RegisterRequest{Name: "Alice", Email: "alice@x.com", Password: "pw1secret"}))

	// Wrong password and unknown email both map to the same 401.
	for _, req := range []*dto.LoginRequest{
		{Email: "alice@x.com", Password: "wrong"},
		{Email: "nobody@x.com", Password: "pw1secret"},
	} {
		_, err := svc.Login(ctx, req)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 401, appErr.HTTPCode)
	}
}

func TestLoginReturnsCardID(t *testing.T) {
	ctx := context.Background()
	svc, _, cards, _ := newAuthFixture()

	require.NoError(t, svc.Register(ctx, &dto.RegisterRequest{Name: "Alice", Email: "alice@x.com", Password: "pw1secret"}))
	require.NoError(t, cards.Create(ctx, &models.Card{CardID: "card-0a1b2c3d", ContactEmail: "alice@x.com"}))

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "alice@x.com", Password: "pw1secret"})
	require.NoError(t, err)
	require.NotNil(t, resp.CardID)
	assert.Equal(t, "card-0a1b2c3d", *resp.CardID)
}
