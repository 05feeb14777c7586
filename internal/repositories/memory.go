package repositories

import (
	"context"
	"sync"

	"geticard_backend/internal/models"
)

// MemoryUserRepository is an in-process UserRepository used for development
// and tests. Safe for concurrent use.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[string]models.User),
	}
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return ErrUserAlreadyExists
	}
	r.users[user.Email] = *user
	return nil
}

// MemoryCardRepository is an in-process CardRepository used for development
// and tests. Safe for concurrent use.
type MemoryCardRepository struct {
	mu    sync.RWMutex
	cards map[string]*models.Card
}

func NewMemoryCardRepository() *MemoryCardRepository {
	return &MemoryCardRepository{
		cards: make(map[string]*models.Card),
	}
}

func (r *MemoryCardRepository) FindByID(ctx context.Context, cardID string) (*models.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	card, ok := r.cards[cardID]
	if !ok {
		return nil, ErrCardNotFound
	}
	return card.Clone(), nil
}

func (r *MemoryCardRepository) FindByContactEmail(ctx context.Context, email string) (*models.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, card := range r.cards {
		if card.ContactEmail == email {
			return card.Clone(), nil
		}
	}
	return nil, ErrCardNotFound
}

func (r *MemoryCardRepository) Create(ctx context.Context, card *models.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cards[card.CardID]; ok {
		return ErrCardAlreadyExists
	}
	r.cards[card.CardID] = card.Clone()
	return nil
}

func (r *MemoryCardRepository) Save(ctx context.Context, card *models.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cards[card.CardID] = card.Clone()
	return nil
}

func (r *MemoryCardRepository) Delete(ctx context.Context, cardID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.cards, cardID)
	return nil
}
