package main

import (
	"context"

	"github.com/spf13/cobra"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"domaincheck/internal/logging"
	mcpserver "domaincheck/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server over stdin/stdout exposing check_domain_tool and
check_tlds_tool. MCP hosts connect via their server configuration and call
the tools directly.

The server monitors for parent process death. When the host disconnects or
restarts, the server self-terminates to prevent zombie processes.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	srv, err := buildServer(ctx, cfg, version)
	if err != nil {
		return err
	}
	defer srv.Shutdown()

	mcpserver.WatchParent(ctx, cancel)

	logging.New("mcp").Info("starting domaincheck MCP server over stdio (parent watchdog active)")
	return srv.Run(ctx, &sdkmcp.StdioTransport{})
}
