package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^\+?[1-9][0-9]{9,14}$`)

// NormalizePhone strips separators from a phone number and validates it as an
// international number of 10 to 15 digits. The returned value has no leading '+'.
func NormalizePhone(phone string) (string, error) {
	stripped := strings.NewReplacer("-", "", " ", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
	if stripped == "" {
		return "", fmt.Errorf("phone number is required")
	}
	if !phonePattern.MatchString(stripped) {
		return "", fmt.Errorf("invalid phone number format: %s", phone)
	}
	return strings.TrimPrefix(stripped, "+"), nil
}
