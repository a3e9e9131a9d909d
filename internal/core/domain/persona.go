package domain

import (
	"fmt"
	"strings"
	"time"
)

// ExampleType classifies a persona calibration example.
type ExampleType string

// Known example types.
const (
	ExampleLiked       ExampleType = "liked"
	ExampleDisliked    ExampleType = "disliked"
	ExampleBeforeAfter ExampleType = "before_after"
)

// Valid returns true if the example type is recognised.
func (t ExampleType) Valid() bool {
	switch t {
	case ExampleLiked, ExampleDisliked, ExampleBeforeAfter:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t ExampleType) String() string {
	return string(t)
}

// ParseExampleType parses an example type; "before-after" is accepted as an alias.
func ParseExampleType(s string) (ExampleType, error) {
	t := ExampleType(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown example type %q", ErrInvalidInput, s)
	}
	return t, nil
}

// PersonaPreferences captures a reviewer's stylistic preferences.
type PersonaPreferences struct {
	Tone           string   `json:"tone"`
	Length         string   `json:"length"`
	TechnicalDepth string   `json:"technicalDepth"`
	Likes          []string `json:"likes"`
	Dislikes       []string `json:"dislikes"`
}

// PersonaPreferencesPatch is a partial set of preferences.
type PersonaPreferencesPatch struct {
	Tone           *string  `json:"tone,omitempty"`
	Length         *string  `json:"length,omitempty"`
	TechnicalDepth *string  `json:"technicalDepth,omitempty"`
	Likes          []string `json:"likes,omitempty"`
	Dislikes       []string `json:"dislikes,omitempty"`
}

// PersonaExample is evidence attached to a persona.
type PersonaExample struct {
	ID             string      `json:"exampleId"`
	Type           ExampleType `json:"type"`
	Content        string      `json:"content"`
	RevisedContent string      `json:"revisedContent,omitempty"`
	Notes          string      `json:"notes,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// Persona is an individual reviewer profile built from real examples.
type Persona struct {
	ID          string             `json:"personaId"`
	UserID      string             `json:"userId"`
	Name        string             `json:"name"`
	Role        string             `json:"role"`
	Preferences PersonaPreferences `json:"preferences"`
	Examples    []PersonaExample   `json:"examples"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// CreatePersonaRequest is the payload for creating a persona.
type CreatePersonaRequest struct {
	Name        string                   `json:"name"`
	Role        string                   `json:"role"`
	Preferences *PersonaPreferencesPatch `json:"preferences,omitempty"`
}

// UpdatePersonaRequest is the payload for updating a persona.
type UpdatePersonaRequest struct {
	Name        *string                  `json:"name,omitempty"`
	Role        *string                  `json:"role,omitempty"`
	Preferences *PersonaPreferencesPatch `json:"preferences,omitempty"`
}

// IsEmpty reports whether the update carries no changes.
func (r UpdatePersonaRequest) IsEmpty() bool {
	return r.Name == nil && r.Role == nil && r.Preferences == nil
}

// AddPersonaExampleRequest is the payload for attaching an example.
type AddPersonaExampleRequest struct {
	Type           ExampleType `json:"type"`
	Content        string      `json:"content"`
	RevisedContent string      `json:"revisedContent,omitempty"`
	Notes          string      `json:"notes,omitempty"`
}
