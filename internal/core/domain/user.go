package domain

import (
	"strings"
	"time"
)

// UserProfile is the current user as returned by /me.
type UserProfile struct {
	ID               string     `json:"userId"`
	Email            string     `json:"email"`
	Name             string     `json:"name,omitempty"`
	SubscriptionTier string     `json:"subscriptionTier,omitempty"`
	CreatedAt        *time.Time `json:"createdAt,omitempty"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
}

// FirstName returns the first word of name, or fallback when name is blank.
func FirstName(name, fallback string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return fallback
	}
	return fields[0]
}
