package repositories

import (
	"context"
	"errors"

	"geticard_backend/internal/models"
)

var (
	ErrCardNotFound      = errors.New("card not found")
	ErrCardAlreadyExists = errors.New("card already exists")
)

// CardRepository persists card records keyed by card id.
//
// FindByContactEmail is a linear scan; eventual consistency of that lookup
// is acceptable. One-card-per-contact-email stays application-enforced
// (scan before create), not a store-level uniqueness constraint.
type CardRepository interface {
	FindByID(ctx context.Context, cardID string) (*models.Card, error)

	// FindByContactEmail returns the first card whose contact_email matches,
	// or ErrCardNotFound when no card exists for the email.
	FindByContactEmail(ctx context.Context, email string) (*models.Card, error)

	// Create inserts the card only if the id is unassigned, returning
	// ErrCardAlreadyExists otherwise.
	Create(ctx context.Context, card *models.Card) error

	// Save overwrites the full record (last writer wins).
	Save(ctx context.Context, card *models.Card) error

	Delete(ctx context.Context, cardID string) error
}
