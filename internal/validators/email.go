package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checks that the domain part of email actually
// resolves, so staff accounts cannot be registered on a typo'd domain.
// DNS failures count as invalid.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := strings.ToLower(email[at+1:])
	if !strings.Contains(domain, ".") {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}
	// Some small domains receive mail on the A record directly.
	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}
