package models

import "gorm.io/datatypes"

// Card is a public digital business card. CardID is immutable once assigned;
// ContactEmail decides ownership and may differ from an account's login
// email. Optional fields left unset are omitted from the stored record and
// from responses.
type Card struct {
	CardID       string `json:"card_id" gorm:"primaryKey;column:card_id;size:64" dynamodbav:"card_id"`
	ContactEmail string `json:"contact_email" gorm:"index;size:255;not null" dynamodbav:"contact_email"`

	Name       string `json:"name,omitempty" dynamodbav:"name,omitempty"`
	Bio        string `json:"bio,omitempty" dynamodbav:"bio,omitempty"`
	Company    string `json:"company,omitempty" dynamodbav:"company,omitempty"`
	Whatsapp   string `json:"whatsapp,omitempty" dynamodbav:"whatsapp,omitempty"`
	Instagram  string `json:"instagram,omitempty" dynamodbav:"instagram,omitempty"`
	Linkedin   string `json:"linkedin,omitempty" dynamodbav:"linkedin,omitempty"`
	Site       string `json:"site,omitempty" dynamodbav:"site,omitempty"`
	PaymentKey string `json:"payment_key,omitempty" dynamodbav:"payment_key,omitempty"`

	// Avatar and Gallery hold blob references: absolute URLs for object
	// storage, or legacy /uploads/... paths for local storage.
	Avatar  string                      `json:"avatar,omitempty" dynamodbav:"avatar,omitempty"`
	Gallery datatypes.JSONSlice[string] `json:"gallery,omitempty" dynamodbav:"gallery,omitempty"`
}

func (Card) TableName() string {
	return "geticard_cards"
}

// Clone returns a deep copy, so repository callers cannot alias the stored
// gallery slice.
func (c *Card) Clone() *Card {
	clone := *c
	if c.Gallery != nil {
		clone.Gallery = make(datatypes.JSONSlice[string], len(c.Gallery))
		copy(clone.Gallery, c.Gallery)
	}
	return &clone
}

// BlobReferences lists every blob reference attached to the card, avatar
// first.
func (c *Card) BlobReferences() []string {
	var refs []string
	if c.Avatar != "" {
		refs = append(refs, c.Avatar)
	}
	refs = append(refs, c.Gallery...)
	return refs
}
