// Package mcp exposes the domain checker as Model Context Protocol tools
// over the official Go SDK. Each tool call maps to exactly one checker
// operation; upstream registry trouble degrades the result rather than
// failing the call.
package mcp

import (
	"context"
	"fmt"
	"io"
	"sync"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"domaincheck/internal/checker"
	"domaincheck/internal/logging"
)

// Server wraps the MCP SDK server around a checker.
type Server struct {
	MCPServer *sdkmcp.Server

	checker *checker.Checker

	mu     sync.Mutex
	closer io.Closer
}

// NewServer creates an MCP server exposing the domain availability tools.
// closer, if non-nil, is closed on Shutdown (the result cache store).
func NewServer(c *checker.Checker, version string, closer io.Closer) *Server {
	if version == "" {
		version = "dev"
	}
	s := &Server{checker: c, closer: closer}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "domaincheck", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "check_domain_tool",
		Description: "Check if a domain is available for registration by querying DNS records and RDAP registration data. Returns status, registrar, and registration/expiration dates.",
	}, s.handleCheckDomain)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "check_tlds_tool",
		Description: "Check a keyword across multiple top-level domains and report which candidate domains are available and which are taken.",
	}, s.handleCheckTLDs)
}

// --- Tool input/output types ---

type checkDomainInput struct {
	Domain  string `json:"domain" jsonschema:"domain name to check (e.g. example.com)"`
	NoCache bool   `json:"no_cache,omitempty" jsonschema:"bypass the result cache and force live lookups"`
}

type checkDomainOutput struct {
	Domain           string `json:"domain"`
	Status           string `json:"status"`
	Registrar        string `json:"registrar,omitempty"`
	RegistrationDate string `json:"registration_date,omitempty"`
	ExpirationDate   string `json:"expiration_date,omitempty"`
	HasDNS           bool   `json:"has_dns"`
	RDAPAvailable    bool   `json:"rdap_data_available"`
	Note             string `json:"note,omitempty"`
	Cached           bool   `json:"cached,omitempty"`
}

type checkTLDsInput struct {
	Keyword string   `json:"keyword" jsonschema:"keyword to check across TLDs (single label, e.g. myapp)"`
	TLDs    []string `json:"tlds,omitempty" jsonschema:"TLDs to check (defaults to the built-in popular list)"`
	NoCache bool     `json:"no_cache,omitempty" jsonschema:"bypass the result cache and force live lookups"`
}

type checkTLDsOutput struct {
	ScanID           string   `json:"scan_id"`
	Keyword          string   `json:"keyword"`
	TLDsChecked      int      `json:"tlds_checked"`
	AvailableCount   int      `json:"available_count"`
	TakenCount       int      `json:"taken_count"`
	AvailableDomains []string `json:"available_domains"`
	TakenDomains     []string `json:"taken_domains"`
	TLDsCheckedList  []string `json:"tlds_checked_list"`
}

// --- Tool handlers ---

func (s *Server) handleCheckDomain(ctx context.Context, _ *sdkmcp.CallToolRequest, input checkDomainInput) (*sdkmcp.CallToolResult, checkDomainOutput, error) {
	res, err := s.checker.CheckDomain(ctx, input.Domain, !input.NoCache)
	if err != nil {
		return nil, checkDomainOutput{}, fmt.Errorf("check_domain_tool: %w", err)
	}

	logging.New("mcp").InfoContext(ctx, "check_domain_tool",
		"domain", res.Domain, "status", res.Status, "cached", res.Cached)

	return nil, checkDomainOutput{
		Domain:           res.Domain,
		Status:           string(res.Status),
		Registrar:        res.Registrar,
		RegistrationDate: res.RegistrationDate,
		ExpirationDate:   res.ExpirationDate,
		HasDNS:           res.HasDNS,
		RDAPAvailable:    res.RDAPAvailable,
		Note:             res.Note,
		Cached:           res.Cached,
	}, nil
}

func (s *Server) handleCheckTLDs(ctx context.Context, _ *sdkmcp.CallToolRequest, input checkTLDsInput) (*sdkmcp.CallToolResult, checkTLDsOutput, error) {
	scan, err := s.checker.ScanTLDs(ctx, input.Keyword, input.TLDs, !input.NoCache)
	if err != nil {
		return nil, checkTLDsOutput{}, fmt.Errorf("check_tlds_tool: %w", err)
	}

	logging.New("mcp").InfoContext(ctx, "check_tlds_tool",
		"scan_id", scan.ScanID, "keyword", scan.Keyword,
		"available", scan.AvailableCount, "taken", scan.TakenCount)

	// Empty lists serialize as [] rather than null for tool consumers.
	available := scan.AvailableDomains
	if available == nil {
		available = []string{}
	}
	taken := scan.TakenDomains
	if taken == nil {
		taken = []string{}
	}

	return nil, checkTLDsOutput{
		ScanID:           scan.ScanID,
		Keyword:          scan.Keyword,
		TLDsChecked:      scan.TLDsChecked,
		AvailableCount:   scan.AvailableCount,
		TakenCount:       scan.TakenCount,
		AvailableDomains: available,
		TakenDomains:     taken,
		TLDsCheckedList:  scan.TLDsCheckedList,
	}, nil
}

// Run serves MCP over the given transport until ctx is canceled.
func (s *Server) Run(ctx context.Context, transport sdkmcp.Transport) error {
	return s.MCPServer.Run(ctx, transport)
}

// Shutdown releases the server's resources (closes the cache store).
func (s *Server) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closer != nil {
		_ = s.closer.Close()
		s.closer = nil
	}
}
