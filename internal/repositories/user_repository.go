package repositories

import (
	"context"
	"errors"

	"geticard_backend/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepository persists account records keyed by login email.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Create inserts the user only if no record exists for the email,
	// returning ErrUserAlreadyExists otherwise. The conditional insert makes
	// the duplicate check race-free.
	Create(ctx context.Context, user *models.User) error
}
