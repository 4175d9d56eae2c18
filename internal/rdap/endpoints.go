package rdap

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// BootstrapURL is the IANA bootstrap registry mapping TLDs to RDAP servers.
const BootstrapURL = "https://data.iana.org/rdap/dns.json"

// FallbackBase is the redirector used for TLDs with no known server.
const FallbackBase = "https://rdap.org"

// wellKnown covers the registries the checker hits most, so lookups work
// without a bootstrap fetch. Verisign and PIR use non-standard path layouts.
var wellKnown = map[string]string{
	"com": "https://rdap.verisign.com/com/v1",
	"net": "https://rdap.verisign.com/net/v1",
	"org": "https://rdap.publicinterestregistry.org/rdap",
	"ch":  "https://rdap.nic.ch",
	"li":  "https://rdap.nic.li",
}

// bootstrapDocument is the IANA dns.json shape: each service entry pairs a
// list of TLDs with a list of base URLs.
type bootstrapDocument struct {
	Version  string       `json:"version"`
	Services [][][]string `json:"services"`
}

// endpointTable resolves a TLD to an RDAP base URL. Resolution order:
// explicit overrides, IANA bootstrap data (if loaded), the built-in
// well-known table, then the rdap.org redirector.
type endpointTable struct {
	mu        sync.RWMutex
	overrides map[string]string
	bootstrap map[string]string
}

func newEndpointTable(overrides map[string]string) *endpointTable {
	norm := make(map[string]string, len(overrides))
	for tld, base := range overrides {
		norm[strings.ToLower(strings.TrimPrefix(tld, "."))] = strings.TrimSuffix(base, "/")
	}
	return &endpointTable{overrides: norm}
}

// baseFor returns the RDAP base URL for the given TLD.
func (t *endpointTable) baseFor(tld string) string {
	tld = strings.ToLower(tld)

	t.mu.RLock()
	defer t.mu.RUnlock()

	if base, ok := t.overrides[tld]; ok {
		return base
	}
	if base, ok := t.bootstrap[tld]; ok {
		return base
	}
	if base, ok := wellKnown[tld]; ok {
		return base
	}
	return FallbackBase
}

// applyBootstrap replaces the bootstrap-derived mappings.
func (t *endpointTable) applyBootstrap(doc *bootstrapDocument) {
	m := make(map[string]string)
	for _, svc := range doc.Services {
		if len(svc) < 2 || len(svc[1]) == 0 {
			continue
		}
		base := strings.TrimSuffix(svc[1][0], "/")
		for _, tld := range svc[0] {
			m[strings.ToLower(tld)] = base
		}
	}
	t.mu.Lock()
	t.bootstrap = m
	t.mu.Unlock()
}

// LoadBootstrap fetches the IANA bootstrap registry and installs its
// TLD-to-server mappings. Explicit config overrides still win.
func (c *Client) LoadBootstrap(ctx context.Context) error {
	var doc bootstrapDocument
	if err := c.doJSON(ctx, c.bootstrapURL, "load rdap bootstrap", &doc); err != nil {
		return err
	}
	c.endpoints.applyBootstrap(&doc)
	c.logger.InfoContext(ctx, "rdap bootstrap loaded", "version", doc.Version, "services", len(doc.Services))
	return nil
}

// domainURL builds the RDAP domain query URL for a fully qualified name.
func (t *endpointTable) domainURL(domain string) string {
	tld := domain
	if i := strings.LastIndex(domain, "."); i >= 0 {
		tld = domain[i+1:]
	}
	return fmt.Sprintf("%s/domain/%s", t.baseFor(tld), domain)
}
