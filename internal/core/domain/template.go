package domain

import (
	"fmt"
	"strings"
	"time"
)

// TemplateAudience is the audience category a template targets.
type TemplateAudience string

// Known template audiences.
const (
	AudienceEngineering TemplateAudience = "ENGINEERING"
	AudienceProduct     TemplateAudience = "PRODUCT"
	AudienceLeadership  TemplateAudience = "LEADERSHIP"
	AudienceCustom      TemplateAudience = "CUSTOM"
)

// AllTemplateAudiences returns the audiences in display order.
func AllTemplateAudiences() []TemplateAudience {
	return []TemplateAudience{AudienceEngineering, AudienceProduct, AudienceLeadership, AudienceCustom}
}

// Valid returns true if the audience is recognised.
func (a TemplateAudience) Valid() bool {
	switch a {
	case AudienceEngineering, AudienceProduct, AudienceLeadership, AudienceCustom:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (a TemplateAudience) String() string {
	return string(a)
}

// Description returns a human-readable label.
func (a TemplateAudience) Description() string {
	switch a {
	case AudienceEngineering:
		return "Engineering"
	case AudienceProduct:
		return "Product Manager"
	case AudienceLeadership:
		return "Leadership"
	case AudienceCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// ParseTemplateAudience parses an audience case-insensitively.
func ParseTemplateAudience(s string) (TemplateAudience, error) {
	a := TemplateAudience(strings.ToUpper(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", fmt.Errorf("%w: unknown audience %q", ErrInvalidInput, s)
	}
	return a, nil
}

// Template is a structural skeleton for a document.
type Template struct {
	ID        string           `json:"templateId"`
	UserID    string           `json:"userId"`
	Name      string           `json:"name"`
	Audience  TemplateAudience `json:"audience"`
	Structure string           `json:"structure"`
	IsDefault bool             `json:"isDefault"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// CreateTemplateRequest is the payload for creating a template.
type CreateTemplateRequest struct {
	Name      string           `json:"name"`
	Audience  TemplateAudience `json:"audience"`
	Structure string           `json:"structure"`
	IsDefault *bool            `json:"isDefault,omitempty"`
}

// UpdateTemplateRequest is the payload for updating a template.
type UpdateTemplateRequest struct {
	Name      *string           `json:"name,omitempty"`
	Audience  *TemplateAudience `json:"audience,omitempty"`
	Structure *string           `json:"structure,omitempty"`
	IsDefault *bool             `json:"isDefault,omitempty"`
}

// IsEmpty reports whether the update carries no changes.
func (r UpdateTemplateRequest) IsEmpty() bool {
	return r.Name == nil && r.Audience == nil && r.Structure == nil && r.IsDefault == nil
}
