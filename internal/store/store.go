// Package store persists completed availability checks in SQLite so
// repeated lookups within the freshness window skip the network.
package store

// CheckRecord is one persisted availability check result.
type CheckRecord struct {
	ID               string `json:"id"`
	Domain           string `json:"domain"`
	Status           string `json:"status"`
	Registrar        string `json:"registrar,omitempty"`
	RegistrationDate string `json:"registration_date,omitempty"`
	ExpirationDate   string `json:"expiration_date,omitempty"`
	HasDNS           bool   `json:"has_dns"`
	RDAPAvailable    bool   `json:"rdap_data_available"`
	Note             string `json:"note,omitempty"`
	CheckedAt        string `json:"checked_at"`
}
