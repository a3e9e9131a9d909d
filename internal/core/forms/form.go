package forms

import (
	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/validation"
)

// Phase is the lifecycle state of a form.
type Phase int

// Form phases.
const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSuccess
	PhaseError
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Form is the state of one form page.
// The zero value is an idle form.
type Form struct {
	Phase  Phase
	Fields validation.FieldErrors
	// Error is the banner message shown in PhaseError.
	Error string
	// Message is an informational banner, e.g. a resend confirmation.
	Message string
	// Next is set on success when the page moves on.
	Next *Navigation
}

// Begin starts a submission. It clears previous errors and, if fieldErrs is
// non-empty, records them and stays Idle, returning false: the caller must
// not call the network. Otherwise the form enters Submitting.
func (f *Form) Begin(fieldErrs validation.FieldErrors) bool {
	f.Error = ""
	f.Message = ""
	f.Next = nil
	f.Fields = nil
	if len(fieldErrs) > 0 {
		f.Fields = fieldErrs
		f.Phase = PhaseIdle
		return false
	}
	f.Phase = PhaseSubmitting
	return true
}

// Succeed ends the submission successfully. nav may be nil.
func (f *Form) Succeed(nav *Navigation) {
	f.Phase = PhaseSuccess
	f.Next = nav
}

// Fail ends the submission with a banner message.
// An empty message is replaced with the generic fallback.
func (f *Form) Fail(message string) {
	if message == "" {
		message = domain.GenericErrorMessage
	}
	f.Phase = PhaseError
	f.Error = message
}

// Edit records that the user changed field, clearing its error.
// A form in PhaseError returns to Idle so it can be resubmitted.
func (f *Form) Edit(field validation.Field) {
	if f.Fields != nil {
		f.Fields.Clear(field)
	}
	if f.Phase == PhaseError {
		f.Phase = PhaseIdle
		f.Error = ""
	}
}

// Reset returns the form to its zero state.
func (f *Form) Reset() {
	*f = Form{}
}

// InputsDisabled reports whether inputs are locked, which is only while submitting.
func (f *Form) InputsDisabled() bool {
	return f.Phase == PhaseSubmitting
}

// FieldError returns the error shown under field.
func (f *Form) FieldError(field validation.Field) string {
	return f.Fields[field]
}

// Apply folds an outcome of an asynchronous submission into the form.
func (f *Form) Apply(o Outcome) {
	switch {
	case len(o.Fields) > 0:
		f.Begin(o.Fields)
	case o.Success:
		f.Message = o.Message
		f.Succeed(o.Next)
	default:
		f.Fail(o.Error)
	}
}

// Outcome is the result of a submission, as produced by the auth flows.
type Outcome struct {
	Success bool
	// Fields is set when validation failed and nothing was submitted.
	Fields validation.FieldErrors
	// Error is the banner message on failure.
	Error string
	// Message is an informational message on success.
	Message string
	// Next is where to go after success. It may be nil.
	Next *Navigation
}

// Submitted reports whether the outcome came from a network call,
// as opposed to a validation rejection.
func (o Outcome) Submitted() bool {
	return len(o.Fields) == 0
}

// Invalid builds the outcome of a rejected validation.
func Invalid(fields validation.FieldErrors) Outcome {
	return Outcome{Fields: fields}
}

// Failure builds a failed outcome.
func Failure(message string) Outcome {
	return Outcome{Error: message}
}

// Success builds a successful outcome.
func Success(next *Navigation) Outcome {
	return Outcome{Success: true, Next: next}
}
