// Package mask renders identifiers in a form that is safe to echo back to a
// client: enough to recognise the destination, not enough to recover it.
package mask

import (
	"regexp"
	"strings"
)

// Placeholder is returned for identifiers that are neither phone- nor
// email-shaped.
const Placeholder = "***"

var phonePattern = regexp.MustCompile(`^\+?\d{7,}$`)

// Mask returns the display form of identifier.
//
//	+919406038554     → +91********54
//	jane.doe@acme.io  → ja******@acme.io
func Mask(identifier string) string {
	if phonePattern.MatchString(identifier) {
		return maskPhone(identifier)
	}
	return maskEmail(identifier)
}

func maskPhone(phone string) string {
	prefix := ""
	digits := phone
	if strings.HasPrefix(phone, "+") {
		prefix, digits = "+", phone[1:]
	}
	return prefix + digits[:2] + strings.Repeat("*", len(digits)-4) + digits[len(digits)-2:]
}

func maskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return Placeholder
	}

	runes := []rune(local)
	shown := 2
	if len(runes) < shown {
		shown = len(runes)
	}
	hidden := len(runes) - shown
	if hidden < 1 {
		hidden = 1
	}
	return string(runes[:shown]) + strings.Repeat("*", hidden) + "@" + domain
}
