package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
)

// labels name fields in generic messages such as "Title is required".
var labels = map[Field]string{
	FieldName:      "Name",
	FieldEmail:     "Email",
	FieldPassword:  "Password",
	FieldCode:      "Verification code",
	FieldTitle:     "Title",
	FieldRole:      "Role",
	FieldContent:   "Content",
	FieldAudience:  "Audience",
	FieldStructure: "Structure",
	FieldTemplate:  "Template",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("field")
	})

	for _, r := range requirements {
		test := r.test
		mustRegister(v, r.Key, func(fl validator.FieldLevel) bool {
			return test(fl.Field().String())
		})
	}
	mustRegister(v, "digits", func(fl validator.FieldLevel) bool {
		return isDigits(fl.Field().String())
	})
	mustRegister(v, "audience", func(fl validator.FieldLevel) bool {
		return domain.TemplateAudience(fl.Field().String()).Valid()
	})
	mustRegister(v, "notblank", validators.NotBlank)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

// Check validates a tagged schema and returns its field errors.
// It returns nil when the schema is valid. Only the first failing rule of a
// field is reported.
func Check(schema any) FieldErrors {
	err := validate.Struct(schema)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError means a programming error: a non-struct schema.
		panic(fmt.Sprintf("validation: %v", err))
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		f := Field(fe.Field())
		if _, seen := out[f]; seen {
			continue
		}
		out[f] = message(f, fe)
	}
	return out
}

func message(f Field, fe validator.FieldError) string {
	for _, r := range requirements {
		if fe.Tag() == r.Key {
			return r.Message
		}
	}

	switch fe.Tag() {
	case "email":
		return "Please enter a valid email address"
	case "eqfield":
		return "Passwords do not match"
	case "len":
		return "Verification code must be 6 digits"
	case "digits":
		return "Code must contain only numbers"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label(f), fe.Param())
	case "audience":
		return "Please choose a valid audience"
	case "required", "notblank":
		if f == FieldTemplate {
			return "Please choose a template"
		}
		return label(f) + " is required"
	default:
		return label(f) + " is invalid"
	}
}

func label(f Field) string {
	if l, ok := labels[f]; ok {
		return l
	}
	return string(f)
}
