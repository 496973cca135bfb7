// Package phone validates Russian phone numbers as entered by users.
package phone

import "regexp"

// pattern accepts +7XXXXXXXXXX or 8XXXXXXXXXX, ten digits after the prefix.
var pattern = regexp.MustCompile(`^(?:\+7|8)\d{10}$`)

// Validate reports whether raw is a well-formed Russian phone number.
// The input is matched as-is: callers trim surrounding whitespace first,
// and any interior spaces, dashes or parentheses make the number invalid.
func Validate(raw string) bool {
	return pattern.MatchString(raw)
}
