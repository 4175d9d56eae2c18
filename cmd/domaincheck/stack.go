package main

import (
	"context"
	"fmt"
	"io"

	"domaincheck/internal/checker"
	"domaincheck/internal/config"
	"domaincheck/internal/dnsprobe"
	"domaincheck/internal/logging"
	mcpserver "domaincheck/internal/mcp"
	"domaincheck/internal/rdap"
	"domaincheck/internal/store"
)

// buildChecker assembles the DNS prober, RDAP client, and optional cache
// into a ready Checker. The returned store is nil when caching is disabled;
// the caller owns closing it.
func buildChecker(ctx context.Context, cfg *config.Config) (*checker.Checker, *store.SqlStore, error) {
	rdapClient, err := rdap.New(
		rdap.WithTimeout(cfg.RDAP.Timeout),
		rdap.WithUserAgent(cfg.RDAP.UserAgent),
		rdap.WithEndpoints(cfg.RDAP.Endpoints),
		rdap.WithLogger(logging.New("rdap")),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create rdap client: %w", err)
	}

	if cfg.RDAP.Bootstrap {
		// Best effort: the built-in table still covers the common TLDs.
		if err := rdapClient.LoadBootstrap(ctx); err != nil {
			logging.New("rdap").Warn("bootstrap load failed, using built-in endpoints", "err", err)
		}
	}

	var cache *store.SqlStore
	if cfg.Cache.Path != "" {
		cache, err = store.Open(cfg.Cache.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open cache store: %w", err)
		}
	}

	chkCfg := checker.Config{
		DNS:         dnsprobe.New(),
		RDAP:        rdapClient,
		CacheTTL:    cfg.Cache.TTL,
		DefaultTLDs: cfg.Scan.TLDs,
		Parallel:    cfg.Scan.Parallel,
	}
	if cache != nil {
		chkCfg.Cache = cache
	}

	chk, err := checker.New(chkCfg)
	if err != nil {
		if cache != nil {
			_ = cache.Close()
		}
		return nil, nil, err
	}
	return chk, cache, nil
}

// buildServer assembles the checker stack and wraps it in an MCP server.
// The closer must stay an untyped nil when caching is disabled: boxing a
// nil *store.SqlStore into io.Closer would slip past Shutdown's nil check.
func buildServer(ctx context.Context, cfg *config.Config, version string) (*mcpserver.Server, error) {
	chk, cache, err := buildChecker(ctx, cfg)
	if err != nil {
		return nil, err
	}
	var closer io.Closer
	if cache != nil {
		closer = cache
	}
	return mcpserver.NewServer(chk, version, closer), nil
}
