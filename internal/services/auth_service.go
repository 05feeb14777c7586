package services

import (
	"context"

	"geticard_backend/internal/auth"
	"geticard_backend/internal/logger"
	"geticard_backend/internal/models"
	"geticard_backend/internal/repositories"
	"geticard_backend/internal/services/dto"
	"geticard_backend/pkg/apperrors"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) error
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	cardRepo repositories.CardRepository
	tokens   *auth.TokenIssuer
}

func NewAuthService(
	userRepo repositories.UserRepository,
	cardRepo repositories.CardRepository,
	tokens *auth.TokenIssuer,
) AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		cardRepo: cardRepo,
		tokens:   tokens,
	}
}

// Register creates an account. Duplicate emails conflict; no token is
// issued, the caller logs in separately.
func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) error {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return apperrors.NewBadRequestError(err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return apperrors.ErrEmailAlreadyExists
		}
		return apperrors.ErrStoreUnavailable(err)
	}

	logger.CtxInfo(ctx, "user registered", "email", user.Email)
	return nil
}

// Login verifies credentials and issues a session token with the email as
// subject. The response carries the id of the caller's card when one exists.
func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.ErrStoreUnavailable(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var cardID *string
	card, err := s.cardRepo.FindByContactEmail(ctx, user.Email)
	switch {
	case err == nil:
		cardID = &card.CardID
	case apperrors.Is(err, repositories.ErrCardNotFound):
		// no card yet, card_id stays null
	default:
		return nil, apperrors.ErrStoreUnavailable(err)
	}

	return &dto.LoginResponse{
		AccessToken: token,
		CardID:      cardID,
	}, nil
}
