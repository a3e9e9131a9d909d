package validation

import "github.com/kameleon-labs/kameleon-cli/internal/core/domain"

// LoginInput is the sign-in form.
type LoginInput struct {
	Email    string `field:"email" validate:"email"`
	Password string `field:"password" validate:"required"`
}

// Validate checks the form.
func (in LoginInput) Validate() FieldErrors { return Check(in) }

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Name            string `field:"name" validate:"min=2"`
	Email           string `field:"email" validate:"email"`
	Password        string `field:"password" validate:"pwlength,pwupper,pwlower,pwdigit,pwsymbol"`
	ConfirmPassword string `field:"confirmPassword" validate:"eqfield=Password"`
}

// Validate checks the form.
func (in RegisterInput) Validate() FieldErrors { return Check(in) }

// VerifyEmailInput is the email confirmation form.
// The email normally arrives prefilled from the registration step.
type VerifyEmailInput struct {
	Code  string `field:"code" validate:"len=6,digits"`
	Email string `field:"email" validate:"required"`
}

// Validate checks the form.
func (in VerifyEmailInput) Validate() FieldErrors { return Check(in) }

// ForgotPasswordInput is the password reset request form.
type ForgotPasswordInput struct {
	Email string `field:"email" validate:"email"`
}

// Validate checks the form.
func (in ForgotPasswordInput) Validate() FieldErrors { return Check(in) }

// ResetPasswordInput is the password reset confirmation form.
type ResetPasswordInput struct {
	Email           string `field:"email" validate:"email"`
	Code            string `field:"code" validate:"len=6,digits"`
	NewPassword     string `field:"newPassword" validate:"pwlength,pwupper,pwlower,pwdigit,pwsymbol"`
	ConfirmPassword string `field:"confirmPassword" validate:"eqfield=NewPassword"`
}

// Validate checks the form.
func (in ResetPasswordInput) Validate() FieldErrors { return Check(in) }

// NewPersonaInput is the dashboard form for adding a reviewer persona.
type NewPersonaInput struct {
	Name           string `field:"name" validate:"notblank"`
	Role           string `field:"role" validate:"notblank"`
	Tone           string `field:"tone"`
	Length         string `field:"length"`
	TechnicalDepth string `field:"technicalDepth"`
}

// Validate checks the form.
func (in NewPersonaInput) Validate() FieldErrors { return Check(in) }

// Request converts the form into the backend payload.
func (in NewPersonaInput) Request() domain.CreatePersonaRequest {
	req := domain.CreatePersonaRequest{Name: in.Name, Role: in.Role}
	if in.Tone != "" || in.Length != "" || in.TechnicalDepth != "" {
		req.Preferences = &domain.PersonaPreferencesPatch{
			Tone:           nonEmpty(in.Tone),
			Length:         nonEmpty(in.Length),
			TechnicalDepth: nonEmpty(in.TechnicalDepth),
		}
	}
	return req
}

// NewDocumentInput is the dashboard form for starting a document.
type NewDocumentInput struct {
	Title      string `field:"title" validate:"notblank"`
	TemplateID string `field:"templateId" validate:"required"`
	PersonaID  string `field:"personaId"`
	Content    string `field:"content"`
}

// Validate checks the form.
func (in NewDocumentInput) Validate() FieldErrors { return Check(in) }

// Request converts the form into the backend payload.
func (in NewDocumentInput) Request() domain.CreateDocumentRequest {
	return domain.CreateDocumentRequest{
		Title:      in.Title,
		Content:    in.Content,
		TemplateID: in.TemplateID,
		PersonaID:  in.PersonaID,
	}
}

// NewAxiomInput is the form for adding an axiom.
type NewAxiomInput struct {
	Title     string `field:"title" validate:"notblank"`
	Content   string `field:"content" validate:"notblank"`
	IsDefault bool   `field:"isDefault"`
}

// Validate checks the form.
func (in NewAxiomInput) Validate() FieldErrors { return Check(in) }

// Request converts the form into the backend payload.
func (in NewAxiomInput) Request() domain.CreateAxiomRequest {
	req := domain.CreateAxiomRequest{Title: in.Title, Content: in.Content}
	if in.IsDefault {
		req.IsDefault = &in.IsDefault
	}
	return req
}

// NewTemplateInput is the form for adding a template.
type NewTemplateInput struct {
	Name      string `field:"name" validate:"notblank"`
	Audience  string `field:"audience" validate:"audience"`
	Structure string `field:"structure" validate:"notblank"`
	IsDefault bool   `field:"isDefault"`
}

// Validate checks the form.
func (in NewTemplateInput) Validate() FieldErrors { return Check(in) }

// Request converts the form into the backend payload.
func (in NewTemplateInput) Request() domain.CreateTemplateRequest {
	req := domain.CreateTemplateRequest{
		Name:      in.Name,
		Audience:  domain.TemplateAudience(in.Audience),
		Structure: in.Structure,
	}
	if in.IsDefault {
		req.IsDefault = &in.IsDefault
	}
	return req
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
