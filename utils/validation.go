// utils/validation.go
package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Allows an optional + prefix followed by 7-15 digits
	regex := `^\+?[0-9]{7,15}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

// ParseQuantity parses form input into a prescription quantity. Anything that
// is not a whole number greater than zero is rejected.
func ParseQuantity(raw string) (int, bool) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || qty <= 0 {
		return 0, false
	}
	return qty, true
}
