package dto

import "io"

// ImageUpload is one inbound image payload from a multipart submission.
type ImageUpload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

// CreateCardRequest accepts either a JSON body (no images) or multipart
// form fields plus an avatar and/or gallery payloads filled in by the
// handler.
type CreateCardRequest struct {
	ContactEmail string `json:"contact_email" validate:"required,email"`
	Name         string `json:"name"`
	Bio          string `json:"bio"`
	Company      string `json:"company"`
	Whatsapp     string `json:"whatsapp"`
	Instagram    string `json:"instagram"`
	Linkedin     string `json:"linkedin"`
	Site         string `json:"site"`
	PaymentKey   string `json:"payment_key"`

	Avatar  *ImageUpload  `json:"-"`
	Gallery []ImageUpload `json:"-"`
}

type CreateCardResponse struct {
	CardID string `json:"card_id"`
	// Created is false when a card already existed for the contact email and
	// its id was returned instead (idempotent create).
	Created bool `json:"-"`
}

// UpdateCardRequest carries a partial update: nil pointers leave the field
// unchanged, set pointers fully overwrite it. Avatar and Gallery override
// stored references directly (JSON path); NewAvatar/NewGallery carry fresh
// payloads (multipart path).
type UpdateCardRequest struct {
	ContactEmail *string   `json:"contact_email" validate:"omitempty,email"`
	Name         *string   `json:"name"`
	Bio          *string   `json:"bio"`
	Company      *string   `json:"company"`
	Whatsapp     *string   `json:"whatsapp"`
	Instagram    *string   `json:"instagram"`
	Linkedin     *string   `json:"linkedin"`
	Site         *string   `json:"site"`
	PaymentKey   *string   `json:"payment_key"`
	Avatar       *string   `json:"avatar"`
	Gallery      *[]string `json:"gallery"`

	NewAvatar  *ImageUpload  `json:"-"`
	NewGallery []ImageUpload `json:"-"`
	// ReplaceGallery switches new gallery payloads from append (default) to
	// replacing the whole sequence.
	ReplaceGallery bool `json:"-"`
}
