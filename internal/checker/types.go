package checker

import (
	"fmt"
	"strings"
)

// Status is the availability verdict for a domain.
type Status string

const (
	StatusRegistered Status = "Registered"
	StatusAvailable  Status = "Available"
)

// Notes attached to results when the evidence is partial.
const (
	noteRDAPUnavailable = "Domain has DNS records but RDAP data couldn't be retrieved"
	noteRDAPOnly        = "Domain found in RDAP registry"
	noteNoEvidence      = "No DNS records or RDAP data found"
)

// Result is the outcome of a single domain availability check.
type Result struct {
	Domain           string `json:"domain"`
	Status           Status `json:"status"`
	Registrar        string `json:"registrar,omitempty"`
	RegistrationDate string `json:"registration_date,omitempty"`
	ExpirationDate   string `json:"expiration_date,omitempty"`
	HasDNS           bool   `json:"has_dns"`
	RDAPAvailable    bool   `json:"rdap_data_available"`
	Note             string `json:"note,omitempty"`
	Cached           bool   `json:"cached,omitempty"`
}

// ScanResult aggregates a keyword scan across TLDs.
type ScanResult struct {
	ScanID           string   `json:"scan_id"`
	Keyword          string   `json:"keyword"`
	TLDsChecked      int      `json:"tlds_checked"`
	AvailableCount   int      `json:"available_count"`
	TakenCount       int      `json:"taken_count"`
	AvailableDomains []string `json:"available_domains"`
	TakenDomains     []string `json:"taken_domains"`
	TLDsCheckedList  []string `json:"tlds_checked_list"`
}

const maxLabelLen = 63

// ValidateDomain rejects names that could never be a registrable domain:
// empty input, missing TLD, bad characters, malformed labels.
func ValidateDomain(domain string) error {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return fmt.Errorf("domain is required")
	}
	if len(domain) > 253 {
		return fmt.Errorf("domain %q exceeds 253 characters", domain)
	}
	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return fmt.Errorf("domain %q has no TLD", domain)
	}
	for _, label := range labels {
		if err := validateLabel(label); err != nil {
			return fmt.Errorf("domain %q: %w", domain, err)
		}
	}
	return nil
}

// ValidateKeyword rejects scan keywords that are not a single DNS label.
func ValidateKeyword(keyword string) error {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return fmt.Errorf("keyword is required")
	}
	if strings.Contains(keyword, ".") {
		return fmt.Errorf("keyword %q must be a single label, not a domain", keyword)
	}
	if err := validateLabel(keyword); err != nil {
		return fmt.Errorf("keyword %q: %w", keyword, err)
	}
	return nil
}

func validateLabel(label string) error {
	if label == "" {
		return fmt.Errorf("empty label")
	}
	if len(label) > maxLabelLen {
		return fmt.Errorf("label %q exceeds %d characters", label, maxLabelLen)
	}
	if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
		return fmt.Errorf("label %q starts or ends with a hyphen", label)
	}
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
		default:
			return fmt.Errorf("label %q contains invalid character %q", label, r)
		}
	}
	return nil
}

// dedupeTLDs lowercases, trims leading dots, and removes duplicates while
// preserving first-seen order.
func dedupeTLDs(tlds []string) []string {
	seen := make(map[string]bool, len(tlds))
	out := make([]string, 0, len(tlds))
	for _, tld := range tlds {
		tld = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tld), "."))
		if tld == "" || seen[tld] {
			continue
		}
		seen[tld] = true
		out = append(out, tld)
	}
	return out
}
