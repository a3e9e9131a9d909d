package domain

import (
	"fmt"
	"strings"
	"time"
)

// DocumentStatus is the position of a document in the review workflow.
type DocumentStatus string

// Known document statuses.
const (
	DocumentDraft    DocumentStatus = "DRAFT"
	DocumentInReview DocumentStatus = "IN_REVIEW"
	DocumentApproved DocumentStatus = "APPROVED"
)

// AllDocumentStatuses returns the statuses in workflow order.
func AllDocumentStatuses() []DocumentStatus {
	return []DocumentStatus{DocumentDraft, DocumentInReview, DocumentApproved}
}

// Valid returns true if the status is recognised.
func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentDraft, DocumentInReview, DocumentApproved:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s DocumentStatus) String() string {
	return string(s)
}

// ParseDocumentStatus parses a status case-insensitively ("in-review" is accepted).
func ParseDocumentStatus(s string) (DocumentStatus, error) {
	st := DocumentStatus(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_"))
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown document status %q", ErrInvalidInput, s)
	}
	return st, nil
}

// Document is the PRD being authored.
type Document struct {
	ID         string         `json:"documentId"`
	UserID     string         `json:"userId"`
	Title      string         `json:"title"`
	Content    string         `json:"content"`
	TemplateID string         `json:"templateId,omitempty"`
	PersonaID  string         `json:"personaId,omitempty"`
	Status     DocumentStatus `json:"status"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// CreateDocumentRequest is the payload for creating a document.
type CreateDocumentRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content,omitempty"`
	TemplateID string `json:"templateId,omitempty"`
	PersonaID  string `json:"personaId,omitempty"`
}

// UpdateDocumentRequest is the payload for updating a document.
type UpdateDocumentRequest struct {
	Title      *string         `json:"title,omitempty"`
	Content    *string         `json:"content,omitempty"`
	TemplateID *string         `json:"templateId,omitempty"`
	PersonaID  *string         `json:"personaId,omitempty"`
	Status     *DocumentStatus `json:"status,omitempty"`
}

// IsEmpty reports whether the update carries no changes.
func (r UpdateDocumentRequest) IsEmpty() bool {
	return r.Title == nil && r.Content == nil && r.TemplateID == nil &&
		r.PersonaID == nil && r.Status == nil
}

// SubmitResult is returned when a document is submitted for review.
type SubmitResult struct {
	Document Document `json:"document"`
	Message  string   `json:"message"`
}
