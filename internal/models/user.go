package models

// User is an account record. Accounts are keyed by login email; the card id
// back-reference is optional and may stay empty for accounts that never
// created a card.
type User struct {
	Email        string `json:"email" gorm:"primaryKey;size:255" dynamodbav:"email"`
	Name         string `json:"name" dynamodbav:"name"`
	PasswordHash string `json:"-" gorm:"not null" dynamodbav:"password"`
	CardID       string `json:"card_id,omitempty" dynamodbav:"card_id,omitempty"`
}

func (User) TableName() string {
	return "geticard_users"
}
