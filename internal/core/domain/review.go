package domain

import (
	"fmt"
	"strings"
	"time"
)

// ReviewStatus is the verdict of a review.
type ReviewStatus string

// Known review statuses.
const (
	ReviewPending          ReviewStatus = "PENDING"
	ReviewApproved         ReviewStatus = "APPROVED"
	ReviewChangesRequested ReviewStatus = "CHANGES_REQUESTED"
)

// Valid returns true if the status is recognised.
func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewPending, ReviewApproved, ReviewChangesRequested:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s ReviewStatus) String() string {
	return string(s)
}

// ParseReviewStatus parses a status case-insensitively.
func ParseReviewStatus(s string) (ReviewStatus, error) {
	st := ReviewStatus(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_"))
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown review status %q", ErrInvalidInput, s)
	}
	return st, nil
}

// Review is feedback recorded against a document.
type Review struct {
	ID         string       `json:"reviewId"`
	DocumentID string       `json:"documentId"`
	ReviewerID string       `json:"reviewerId"`
	Feedback   string       `json:"feedback"`
	Status     ReviewStatus `json:"status"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// CreateReviewRequest is the payload for creating a review.
type CreateReviewRequest struct {
	DocumentID string       `json:"documentId"`
	Feedback   string       `json:"feedback"`
	Status     ReviewStatus `json:"status"`
}

// UpdateReviewRequest is the payload for updating a review.
type UpdateReviewRequest struct {
	Feedback *string       `json:"feedback,omitempty"`
	Status   *ReviewStatus `json:"status,omitempty"`
}
