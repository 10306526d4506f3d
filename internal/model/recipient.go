// internal/model/recipient.go
package model

import "time"

type Recipient struct {
	ID                int     `db:"id" json:"id"`
	Email             string  `db:"email" json:"email"`
	Name              *string `db:"name" json:"name"`
	RecipientCategory *string `db:"recipient_category" json:"recipient_category"`
}

type RecipientInput struct {
	Email             OptionalString `json:"email"`
	Name              OptionalString `json:"name"`
	RecipientCategory OptionalString `json:"recipient_category"`
}

// RecipientList is a named audience segment. RecipientCategory is the natural
// key other entities reference by value.
type RecipientList struct {
	ID                int       `db:"id" json:"id"`
	RecipientCategory string    `db:"recipient_category" json:"recipient_category"`
	Description       *string   `db:"description" json:"description"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

type RecipientListInput struct {
	RecipientCategory OptionalString `json:"recipient_category"`
	Description       OptionalString `json:"description"`
}

type EmailTemplate struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type EmailTemplateInput struct {
	Name    OptionalString `json:"name"`
	Content OptionalString `json:"content"`
}
