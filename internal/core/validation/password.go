package validation

import (
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// PasswordSymbols is the set of characters that satisfy the symbol requirement.
const PasswordSymbols = `!@#$%^&*(),.?":{}|<>`

// Requirement is one password predicate.
type Requirement struct {
	// Key is the stable identifier, also the validation tag name.
	Key string
	// Label is shown in the live checklist.
	Label string
	// Message is shown under the field when the requirement fails on submit.
	Message string
	test    func(string) bool
}

// Met reports whether password satisfies the requirement.
func (r Requirement) Met(password string) bool {
	return r.test(password)
}

var requirements = []Requirement{
	{
		Key:     "pwlength",
		Label:   "At least 8 characters",
		Message: "Password must be at least 8 characters",
		test:    func(s string) bool { return utf8.RuneCountInString(s) >= MinPasswordLength },
	},
	{
		Key:     "pwupper",
		Label:   "One uppercase letter",
		Message: "Password must contain an uppercase letter",
		test:    func(s string) bool { return containsRange(s, 'A', 'Z') },
	},
	{
		Key:     "pwlower",
		Label:   "One lowercase letter",
		Message: "Password must contain a lowercase letter",
		test:    func(s string) bool { return containsRange(s, 'a', 'z') },
	},
	{
		Key:     "pwdigit",
		Label:   "One number",
		Message: "Password must contain a number",
		test:    func(s string) bool { return containsRange(s, '0', '9') },
	},
	{
		Key:     "pwsymbol",
		Label:   "One special character",
		Message: "Password must contain a special character",
		test:    func(s string) bool { return strings.ContainsAny(s, PasswordSymbols) },
	},
}

// Requirements returns the password predicates in checklist order.
func Requirements() []Requirement {
	out := make([]Requirement, len(requirements))
	copy(out, requirements)
	return out
}

// RequirementResult pairs a requirement with its outcome for a password.
type RequirementResult struct {
	Requirement
	Satisfied bool
}

// CheckPassword evaluates every requirement against password, in order.
func CheckPassword(password string) []RequirementResult {
	results := make([]RequirementResult, len(requirements))
	for i, r := range requirements {
		results[i] = RequirementResult{Requirement: r, Satisfied: r.Met(password)}
	}
	return results
}

// AllMet reports whether password satisfies every requirement.
func AllMet(password string) bool {
	for _, r := range requirements {
		if !r.Met(password) {
			return false
		}
	}
	return true
}

func containsRange(s string, lo, hi byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= lo && s[i] <= hi {
			return true
		}
	}
	return false
}
