// Package checker decides whether domains are available for registration.
// The verdict combines two signals: DNS presence (cheap, catches almost all
// registered domains) and RDAP registration data (authoritative, catches
// registered-but-unresolvable domains and yields registrar detail).
package checker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"domaincheck/internal/config"
	"domaincheck/internal/logging"
	"domaincheck/internal/rdap"
	"domaincheck/internal/store"
)

// DNSProber reports whether a domain has DNS records.
type DNSProber interface {
	HasRecords(ctx context.Context, domain string) (bool, error)
}

// RDAPClient looks up registration data. A nil Registration with nil error
// means "not registered".
type RDAPClient interface {
	Domain(ctx context.Context, domain string) (*rdap.Registration, error)
}

// Cache remembers past check results. Implemented by *store.SqlStore.
type Cache interface {
	SaveCheck(rec *store.CheckRecord) error
	FreshCheck(domain string, ttl time.Duration) (*store.CheckRecord, error)
}

// Checker runs availability checks and keyword scans.
type Checker struct {
	dns      DNSProber
	rdap     RDAPClient
	cache    Cache
	cacheTTL time.Duration
	defaults []string
	parallel int
	logger   *slog.Logger
}

// Config wires a Checker. DNS and RDAP are required; Cache is optional.
type Config struct {
	DNS         DNSProber
	RDAP        RDAPClient
	Cache       Cache
	CacheTTL    time.Duration
	DefaultTLDs []string
	Parallel    int
}

// New creates a Checker.
func New(cfg Config) (*Checker, error) {
	if cfg.DNS == nil {
		return nil, fmt.Errorf("checker: DNS prober is required")
	}
	if cfg.RDAP == nil {
		return nil, fmt.Errorf("checker: RDAP client is required")
	}
	defaults := cfg.DefaultTLDs
	if len(defaults) == 0 {
		defaults = config.DefaultTLDs
	}
	parallel := cfg.Parallel
	if parallel < 1 {
		parallel = 1
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Checker{
		dns:      cfg.DNS,
		rdap:     cfg.RDAP,
		cache:    cfg.Cache,
		cacheTTL: ttl,
		defaults: dedupeTLDs(defaults),
		parallel: parallel,
		logger:   logging.New("checker"),
	}, nil
}

// CheckDomain determines whether a single domain is available for
// registration. With useCache, a fresh cached verdict is returned without
// touching the network.
func (c *Checker) CheckDomain(ctx context.Context, domain string, useCache bool) (*Result, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if err := ValidateDomain(domain); err != nil {
		return nil, err
	}

	if useCache && c.cache != nil {
		rec, err := c.cache.FreshCheck(domain, c.cacheTTL)
		if err != nil {
			c.logger.WarnContext(ctx, "cache read failed", "domain", domain, "err", err)
		} else if rec != nil {
			c.logger.DebugContext(ctx, "cache hit", "domain", domain, "status", rec.Status)
			return recordToResult(rec), nil
		}
	}

	c.logger.InfoContext(ctx, "checking domain", "domain", domain)

	res, err := c.liveCheck(ctx, domain)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.SaveCheck(resultToRecord(res)); err != nil {
			c.logger.WarnContext(ctx, "cache write failed", "domain", domain, "err", err)
		}
	}
	return res, nil
}

// liveCheck implements the decision table: DNS presence first, then RDAP
// either for registration detail or as a second opinion.
func (c *Checker) liveCheck(ctx context.Context, domain string) (*Result, error) {
	hasDNS, err := c.dns.HasRecords(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("dns probe %s: %w", domain, err)
	}

	reg, rdapErr := c.rdap.Domain(ctx, domain)
	if rdapErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		// Degrade: a flaky registry must not mask a DNS-confirmed verdict.
		c.logger.WarnContext(ctx, "rdap lookup failed", "domain", domain, "err", rdapErr)
	}

	switch {
	case hasDNS && reg != nil:
		return &Result{
			Domain:           domain,
			Status:           StatusRegistered,
			Registrar:        reg.Registrar,
			RegistrationDate: reg.RegistrationDate,
			ExpirationDate:   reg.ExpirationDate,
			HasDNS:           true,
			RDAPAvailable:    true,
		}, nil
	case hasDNS:
		return &Result{
			Domain:           domain,
			Status:           StatusRegistered,
			Registrar:        rdap.UnknownField,
			RegistrationDate: rdap.UnknownField,
			ExpirationDate:   rdap.UnknownField,
			HasDNS:           true,
			RDAPAvailable:    false,
			Note:             noteRDAPUnavailable,
		}, nil
	case reg != nil:
		return &Result{
			Domain:           domain,
			Status:           StatusRegistered,
			Registrar:        reg.Registrar,
			RegistrationDate: reg.RegistrationDate,
			ExpirationDate:   reg.ExpirationDate,
			HasDNS:           false,
			RDAPAvailable:    true,
			Note:             noteRDAPOnly,
		}, nil
	default:
		return &Result{
			Domain:        domain,
			Status:        StatusAvailable,
			HasDNS:        false,
			RDAPAvailable: false,
			Note:          noteNoEvidence,
		}, nil
	}
}

// ScanTLDs checks keyword.<tld> for every TLD in tlds (or the default list
// when tlds is empty) and aggregates the verdicts. Candidates are checked
// concurrently up to the configured parallelism; output lists preserve the
// input TLD order.
func (c *Checker) ScanTLDs(ctx context.Context, keyword string, tlds []string, useCache bool) (*ScanResult, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if err := ValidateKeyword(keyword); err != nil {
		return nil, err
	}

	list := dedupeTLDs(tlds)
	if len(list) == 0 {
		list = c.defaults
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("no TLDs to scan")
	}

	scanID := uuid.NewString()
	c.logger.InfoContext(ctx, "scanning keyword", "scan_id", scanID, "keyword", keyword, "tlds", len(list))

	results := make([]*Result, len(list))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallel)
	for i, tld := range list {
		g.Go(func() error {
			res, err := c.CheckDomain(gCtx, keyword+"."+tld, useCache)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", keyword, err)
	}

	out := &ScanResult{
		ScanID:          scanID,
		Keyword:         keyword,
		TLDsChecked:     len(list),
		TLDsCheckedList: list,
	}
	for _, res := range results {
		if res.Status == StatusAvailable {
			out.AvailableDomains = append(out.AvailableDomains, res.Domain)
		} else {
			out.TakenDomains = append(out.TakenDomains, res.Domain)
		}
	}
	out.AvailableCount = len(out.AvailableDomains)
	out.TakenCount = len(out.TakenDomains)
	return out, nil
}

func recordToResult(rec *store.CheckRecord) *Result {
	return &Result{
		Domain:           rec.Domain,
		Status:           Status(rec.Status),
		Registrar:        rec.Registrar,
		RegistrationDate: rec.RegistrationDate,
		ExpirationDate:   rec.ExpirationDate,
		HasDNS:           rec.HasDNS,
		RDAPAvailable:    rec.RDAPAvailable,
		Note:             rec.Note,
		Cached:           true,
	}
}

func resultToRecord(res *Result) *store.CheckRecord {
	return &store.CheckRecord{
		Domain:           res.Domain,
		Status:           string(res.Status),
		Registrar:        res.Registrar,
		RegistrationDate: res.RegistrationDate,
		ExpirationDate:   res.ExpirationDate,
		HasDNS:           res.HasDNS,
		RDAPAvailable:    res.RDAPAvailable,
		Note:             res.Note,
	}
}
