// Package validation holds the client-side form schemas.
//
// Schemas are plain structs tagged for go-playground/validator. A schema
// that fails validation yields FieldErrors, one human-readable message per
// offending field, which the form pages render under the matching input.
// A form whose schema fails is never submitted to the network.
//
// The password predicates behind the live checklist and the password
// validation tags are the same functions, so the checklist and submission
// can never disagree.
package validation
