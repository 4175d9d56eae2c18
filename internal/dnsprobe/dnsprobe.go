// Package dnsprobe answers the narrow question "does this domain resolve".
// A domain with any A/AAAA or NS records is considered present in the DNS;
// lookup failures of any kind mean absent, never an error. Registration
// status is the checker's concern, not this package's.
package dnsprobe

import (
	"context"
	"log/slog"
	"net"

	"domaincheck/internal/logging"
)

// Resolver is the subset of *net.Resolver the prober needs. Hidden behind
// an interface so tests can fake lookups without touching the network.
type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
	LookupNS(ctx context.Context, name string) ([]*net.NS, error)
}

// Prober performs DNS presence checks.
type Prober struct {
	resolver Resolver
	logger   *slog.Logger
}

// Option configures the Prober during construction.
type Option func(*Prober)

// WithResolver overrides the default net.Resolver.
func WithResolver(r Resolver) Option {
	return func(p *Prober) { p.resolver = r }
}

// New creates a Prober backed by the system resolver.
func New(opts ...Option) *Prober {
	p := &Prober{
		resolver: net.DefaultResolver,
		logger:   logging.New("dnsprobe"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// HasRecords reports whether the domain has any address records, falling
// back to an NS query when the address lookup comes up empty. Only context
// cancellation surfaces as an error; NXDOMAIN and transient resolver
// failures are treated as "no records".
func (p *Prober) HasRecords(ctx context.Context, domain string) (bool, error) {
	addrs, err := p.resolver.LookupIPAddr(ctx, domain)
	if err == nil && len(addrs) > 0 {
		return true, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}

	// Parked or delegated-but-unhosted domains often have NS records only.
	nss, err := p.resolver.LookupNS(ctx, domain)
	if err == nil && len(nss) > 0 {
		return true, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}

	if err != nil {
		p.logger.DebugContext(ctx, "no DNS records", "domain", domain, "err", err)
	}
	return false, nil
}
