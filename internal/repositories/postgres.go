package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"geticard_backend/internal/models"
)

// OpenPostgres connects to the relational backend and migrates the schema.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Card{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}

// GormUserRepository implements UserRepository on the relational backend.
// The primary-key constraint on email makes Create race-free.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GormCardRepository implements CardRepository on the relational backend.
type GormCardRepository struct {
	db *gorm.DB
}

func NewGormCardRepository(db *gorm.DB) *GormCardRepository {
	return &GormCardRepository{db: db}
}

func (r *GormCardRepository) FindByID(ctx context.Context, cardID string) (*models.Card, error) {
	var card models.Card
	err := r.db.WithContext(ctx).First(&card, "card_id = ?", cardID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return &card, nil
}

func (r *GormCardRepository) FindByContactEmail(ctx context.Context, email string) (*models.Card, error) {
	var card models.Card
	err := r.db.WithContext(ctx).First(&card, "contact_email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card by contact email: %w", err)
	}
	return &card, nil
}

func (r *GormCardRepository) Create(ctx context.Context, card *models.Card) error {
	err := r.db.WithContext(ctx).Create(card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCardAlreadyExists
		}
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

func (r *GormCardRepository) Save(ctx context.Context, card *models.Card) error {
	if err := r.db.WithContext(ctx).Save(card).Error; err != nil {
		return fmt.Errorf("failed to save card: %w", err)
	}
	return nil
}

func (r *GormCardRepository) Delete(ctx context.Context, cardID string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Card{}, "card_id = ?", cardID).Error; err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}
