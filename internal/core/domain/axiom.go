package domain

import "time"

// Axiom is a guiding principle applied to document content.
type Axiom struct {
	ID        string    `json:"axiomId"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateAxiomRequest is the payload for creating an axiom.
type CreateAxiomRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	IsDefault *bool  `json:"isDefault,omitempty"`
}

// UpdateAxiomRequest is the payload for updating an axiom.
// Nil fields are left untouched by the backend.
type UpdateAxiomRequest struct {
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
	IsDefault *bool   `json:"isDefault,omitempty"`
}

// IsEmpty reports whether the update carries no changes.
func (r UpdateAxiomRequest) IsEmpty() bool {
	return r.Title == nil && r.Content == nil && r.IsDefault == nil
}
