package validation

import (
	"sort"
	"strings"
)

// Field identifies a form input.
type Field string

// Form fields.
const (
	FieldName            Field = "name"
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
	FieldCode            Field = "code"
	FieldNewPassword     Field = "newPassword"
	FieldTitle           Field = "title"
	FieldRole            Field = "role"
	FieldContent         Field = "content"
	FieldAudience        Field = "audience"
	FieldStructure       Field = "structure"
	FieldTemplate        Field = "templateId"
)

// AllFields returns every field in display order.
func AllFields() []Field {
	return []Field{
		FieldName, FieldEmail, FieldPassword, FieldConfirmPassword, FieldCode,
		FieldNewPassword, FieldTitle, FieldRole, FieldContent, FieldAudience, FieldStructure, FieldTemplate,
	}
}

// Valid returns true if the field is recognised.
func (f Field) Valid() bool {
	for _, known := range AllFields() {
		if f == known {
			return true
		}
	}
	return false
}

func (f Field) order() int {
	for i, known := range AllFields() {
		if f == known {
			return i
		}
	}
	return len(AllFields())
}

// FieldErrors maps a field to the message shown beneath it.
// A nil or empty FieldErrors means the input passed validation.
type FieldErrors map[Field]string

// Error implements error, listing messages in field display order.
func (e FieldErrors) Error() string {
	fields := e.Fields()
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, string(f)+": "+e[f])
	}
	return strings.Join(msgs, "; ")
}

// Fields returns the fields with errors in display order.
func (e FieldErrors) Fields() []Field {
	fields := make([]Field, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].order() < fields[j].order() })
	return fields
}

// First returns the message of the first field in display order, or "".
func (e FieldErrors) First() string {
	fields := e.Fields()
	if len(fields) == 0 {
		return ""
	}
	return e[fields[0]]
}

// Has reports whether f has an error.
func (e FieldErrors) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

// Clear removes the error of f, as the pages do when the user edits it.
func (e FieldErrors) Clear(f Field) {
	delete(e, f)
}

// Err returns e as an error, or nil when there are no field errors.
func (e FieldErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
