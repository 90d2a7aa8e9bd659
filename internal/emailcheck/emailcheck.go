// Package emailcheck contains predicates classifying candidate contact emails.
package emailcheck

import "strings"

var genericLocalParts = map[string]bool{
	"support": true,
	"info":    true,
	"contact": true,
	"sales":   true,
}

// Valid reports whether email looks like a usable personal address.
// Platform noreply addresses and local-only domains are rejected.
func Valid(email string) bool {
	if email == "" || strings.Contains(email, "noreply") || strings.HasSuffix(email, ".local") {
		return false
	}

	at := strings.IndexByte(email, '@')
	if at < 1 || at != strings.LastIndexByte(email, '@') {
		return false
	}

	domain := email[at+1:]
	for i := 1; i < len(domain)-1; i++ {
		if domain[i] == '.' {
			return true
		}
	}

	return false
}

// Generic reports whether email's local part is a known role account name.
func Generic(email string) bool {
	local := email
	if at := strings.IndexByte(email, '@'); at >= 0 {
		local = email[:at]
	}

	return genericLocalParts[local]
}

// Acceptable reports whether email can be used as a lead contact.
func Acceptable(email string) bool {
	return Valid(email) && !Generic(email)
}
