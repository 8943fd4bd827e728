package validator

import (
	"context"
	"net"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/idna"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	idnaProfile  = idna.Lookup
)

const dnsTimeout = 3 * time.Second

// DNSResolver abstracts DNS lookups to simplify testing.
type DNSResolver interface {
	LookupMX(ctx context.Context, domain string) ([]*net.MX, error)
}

type systemDNSResolver struct{}

func (systemDNSResolver) LookupMX(ctx context.Context, domain string) ([]*net.MX, error) {
	return net.DefaultResolver.LookupMX(ctx, domain)
}

// EmailValidator checks address syntax and, optionally, domain deliverability
// via MX records.
type EmailValidator struct {
	dnsResolver DNSResolver
	checkMX     bool
}

// Option configures optional validator behaviour.
type Option func(*EmailValidator)

// WithDNSResolver overrides the default DNS resolver.
func WithDNSResolver(resolver DNSResolver) Option {
	return func(v *EmailValidator) {
		if resolver != nil {
			v.dnsResolver = resolver
		}
	}
}

// WithMXCheck enables MX record verification of the address domain.
func WithMXCheck(enabled bool) Option {
	return func(v *EmailValidator) {
		v.checkMX = enabled
	}
}

// NewEmailValidator builds a validator with sensible defaults.
func NewEmailValidator(opts ...Option) *EmailValidator {
	v := &EmailValidator{dnsResolver: systemDNSResolver{}}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// IsValid reports whether the address is well formed and, when MX checking is
// enabled, whether its domain accepts mail.
func (v *EmailValidator) IsValid(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !emailPattern.MatchString(email) {
		return false
	}

	parts := strings.SplitN(email, "@", 2)
	domain := parts[1]
	if !isDomainValid(domain) {
		return false
	}
	asciiDomain, err := idnaProfile.ToASCII(domain)
	if err != nil || asciiDomain == "" {
		return false
	}

	if !v.checkMX {
		return true
	}
	return v.hasMXRecord(asciiDomain)
}

func (v *EmailValidator) hasMXRecord(domain string) bool {
	if v.dnsResolver == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), dnsTimeout)
	defer cancel()
	records, err := v.dnsResolver.LookupMX(ctx, domain)
	return err == nil && len(records) > 0
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	parts := strings.Split(domain, ".")
	for _, part := range parts {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}
