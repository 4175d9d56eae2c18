package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func openTestStore(t *testing.T) *SqlStore {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "checks.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.Close()

	// Reopening an existing database must not rerun the fresh install.
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	s.Close()
}

func TestSaveCheck_FillsIDAndTimestamp(t *testing.T) {
	s := openTestStore(t)

	rec := &CheckRecord{Domain: "example.com", Status: "Registered", HasDNS: true}
	if err := s.SaveCheck(rec); err != nil {
		t.Fatalf("SaveCheck: %v", err)
	}
	if rec.ID == "" {
		t.Error("expected generated ID")
	}
	if rec.CheckedAt == "" {
		t.Error("expected generated timestamp")
	}
}

func TestSaveCheck_Validation(t *testing.T) {
	s := openTestStore(t)
	if err := s.SaveCheck(nil); err == nil {
		t.Error("expected error for nil record")
	}
	if err := s.SaveCheck(&CheckRecord{}); err == nil {
		t.Error("expected error for record without domain")
	}
}

func TestFreshCheck_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	want := &CheckRecord{
		Domain:           "example.com",
		Status:           "Registered",
		Registrar:        "Example Registrar",
		RegistrationDate: "1995-08-14T04:00:00Z",
		ExpirationDate:   "2026-08-13T04:00:00Z",
		HasDNS:           true,
		RDAPAvailable:    true,
	}
	if err := s.SaveCheck(want); err != nil {
		t.Fatalf("SaveCheck: %v", err)
	}

	got, err := s.FreshCheck("example.com", time.Hour)
	if err != nil {
		t.Fatalf("FreshCheck: %v", err)
	}
	if got == nil {
		t.Fatal("expected a fresh check")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestFreshCheck_RespectsTTL(t *testing.T) {
	s := openTestStore(t)

	stale := &CheckRecord{
		Domain:    "old.net",
		Status:    "Available",
		CheckedAt: time.Now().UTC().Add(-2 * time.Hour).Format(time.RFC3339),
	}
	if err := s.SaveCheck(stale); err != nil {
		t.Fatalf("SaveCheck: %v", err)
	}

	got, err := s.FreshCheck("old.net", time.Hour)
	if err != nil {
		t.Fatalf("FreshCheck: %v", err)
	}
	if got != nil {
		t.Errorf("stale record served as fresh: %+v", got)
	}

	got, err = s.FreshCheck("old.net", 3*time.Hour)
	if err != nil {
		t.Fatalf("FreshCheck: %v", err)
	}
	if got == nil {
		t.Error("record within ttl should be returned")
	}
}

func TestFreshCheck_UnknownDomain(t *testing.T) {
	s := openTestStore(t)
	got, err := s.FreshCheck("nobody-checked.me", time.Hour)
	if err != nil {
		t.Fatalf("FreshCheck: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestRecentChecks_NewestFirst(t *testing.T) {
	s := openTestStore(t)

	base := time.Now().UTC()
	for i, domain := range []string{"a.com", "b.com", "c.com"} {
		rec := &CheckRecord{
			Domain:    domain,
			Status:    "Available",
			CheckedAt: base.Add(time.Duration(i) * time.Minute).Format(time.RFC3339),
		}
		if err := s.SaveCheck(rec); err != nil {
			t.Fatalf("SaveCheck: %v", err)
		}
	}

	list, err := s.RecentChecks(2)
	if err != nil {
		t.Fatalf("RecentChecks: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 records, got %d", len(list))
	}
	if list[0].Domain != "c.com" || list[1].Domain != "b.com" {
		t.Errorf("wrong order: %s, %s", list[0].Domain, list[1].Domain)
	}
}
