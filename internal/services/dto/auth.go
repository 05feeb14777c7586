package dto

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the session token plus a convenience card id for the
// frontend: the id of the card whose contact email matches the login email,
// or null when none exists.
type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	CardID      *string `json:"card_id"`
}
