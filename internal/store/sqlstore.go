package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// nowUTC returns the current UTC time as an ISO 8601 string.
func nowUTC() string { return time.Now().UTC().Format(time.RFC3339) }

// nullStr converts a sql.NullString to a plain string (empty if null).
func nullStr(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

const schemaVersionV1 = 1

// currentSchemaVersion is the target schema version for this build.
const currentSchemaVersion = schemaVersionV1

const schemaV1 = `
CREATE TABLE schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE checks (
	id                TEXT PRIMARY KEY,
	domain            TEXT NOT NULL,
	status            TEXT NOT NULL,
	registrar         TEXT,
	registration_date TEXT,
	expiration_date   TEXT,
	has_dns           INTEGER NOT NULL DEFAULT 0,
	rdap_available    INTEGER NOT NULL DEFAULT 0,
	note              TEXT,
	checked_at        TEXT NOT NULL
);

CREATE INDEX idx_checks_domain_time ON checks(domain, checked_at DESC);
`

// SqlStore persists check results in SQLite.
type SqlStore struct {
	db *sql.DB
}

// Open opens or creates a SQLite DB at path and runs migrations.
// Creates the parent directory (e.g. ~/.domaincheck) if it does not exist.
func Open(path string) (*SqlStore, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &SqlStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SqlStore) migrate() error {
	var tableCount int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableCount == 0 {
		// Fresh database.
		if _, err := s.db.Exec(schemaV1); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", currentSchemaVersion); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
		return nil
	}

	var v int
	err = s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read schema version: %w", err)
	}
	if errors.Is(err, sql.ErrNoRows) {
		v = schemaVersionV1
		if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", v); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
	}
	if v != currentSchemaVersion {
		return fmt.Errorf("unknown schema version %d", v)
	}
	return nil
}

// Close closes the database connection.
func (s *SqlStore) Close() error {
	return s.db.Close()
}

// SaveCheck inserts a check result. A missing ID or timestamp is filled in.
func (s *SqlStore) SaveCheck(rec *CheckRecord) error {
	if rec == nil {
		return errors.New("check record is nil")
	}
	if rec.Domain == "" {
		return errors.New("check record has no domain")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CheckedAt == "" {
		rec.CheckedAt = nowUTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO checks(id, domain, status, registrar, registration_date,
		                    expiration_date, has_dns, rdap_available, note, checked_at)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Domain, rec.Status, rec.Registrar, rec.RegistrationDate,
		rec.ExpirationDate, boolInt(rec.HasDNS), boolInt(rec.RDAPAvailable),
		rec.Note, rec.CheckedAt,
	)
	if err != nil {
		return fmt.Errorf("insert check: %w", err)
	}
	return nil
}

// FreshCheck returns the most recent check for domain if it is newer than
// ttl, or nil when there is no usable entry.
func (s *SqlStore) FreshCheck(domain string, ttl time.Duration) (*CheckRecord, error) {
	cutoff := time.Now().UTC().Add(-ttl).Format(time.RFC3339)
	row := s.db.QueryRow(
		`SELECT id, domain, status, registrar, registration_date, expiration_date,
		        has_dns, rdap_available, note, checked_at
		 FROM checks
		 WHERE domain = ? AND checked_at >= ?
		 ORDER BY checked_at DESC LIMIT 1`,
		domain, cutoff,
	)
	rec, err := scanCheck(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fresh check: %w", err)
	}
	return rec, nil
}

// RecentChecks returns up to limit checks, newest first.
func (s *SqlStore) RecentChecks(limit int) ([]*CheckRecord, error) {
	if limit < 1 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, domain, status, registrar, registration_date, expiration_date,
		        has_dns, rdap_available, note, checked_at
		 FROM checks ORDER BY checked_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent checks: %w", err)
	}
	defer rows.Close()

	var list []*CheckRecord
	for rows.Next() {
		rec, err := scanCheck(rows)
		if err != nil {
			return nil, fmt.Errorf("scan check: %w", err)
		}
		list = append(list, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent checks: %w", err)
	}
	return list, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCheck(row rowScanner) (*CheckRecord, error) {
	var rec CheckRecord
	var registrar, regDate, expDate, note sql.NullString
	var hasDNS, rdapAvail int
	err := row.Scan(&rec.ID, &rec.Domain, &rec.Status, &registrar, &regDate,
		&expDate, &hasDNS, &rdapAvail, &note, &rec.CheckedAt)
	if err != nil {
		return nil, err
	}
	rec.Registrar = nullStr(registrar)
	rec.RegistrationDate = nullStr(regDate)
	rec.ExpirationDate = nullStr(expDate)
	rec.Note = nullStr(note)
	rec.HasDNS = hasDNS == 1
	rec.RDAPAvailable = rdapAvail == 1
	return &rec, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
