package validation

// CodeLength is the number of digits in an emailed confirmation code.
const CodeLength = 6

// SanitizeCode keeps only ASCII digits of s and truncates to CodeLength.
// Code inputs pass every keystroke through it.
func SanitizeCode(s string) string {
	out := make([]byte, 0, CodeLength)
	for i := 0; i < len(s) && len(out) < CodeLength; i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
