package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"domaincheck/internal/checker"
)

var checkFlags struct {
	noCache bool
}

var checkCmd = &cobra.Command{
	Use:   "check <domain>",
	Short: "Check if a single domain is available for registration",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkFlags.noCache, "no-cache", false, "Bypass the result cache and force live lookups")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	chk, cache, err := buildChecker(ctx, cfg)
	if err != nil {
		return err
	}
	if cache != nil {
		defer cache.Close()
	}

	res, err := chk.CheckDomain(ctx, args[0], !checkFlags.noCache)
	if err != nil {
		return err
	}

	printResult(cmd, res)
	return nil
}

func printResult(cmd *cobra.Command, res *checker.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Domain:   %s\n", res.Domain)
	fmt.Fprintf(out, "Status:   %s\n", res.Status)
	if res.Status == checker.StatusRegistered {
		fmt.Fprintf(out, "Registrar:  %s\n", res.Registrar)
		fmt.Fprintf(out, "Registered: %s\n", res.RegistrationDate)
		fmt.Fprintf(out, "Expires:    %s\n", res.ExpirationDate)
	}
	fmt.Fprintf(out, "DNS records: %v\n", res.HasDNS)
	fmt.Fprintf(out, "RDAP data:   %v\n", res.RDAPAvailable)
	if res.Note != "" {
		fmt.Fprintf(out, "Note: %s\n", res.Note)
	}
	if res.Cached {
		fmt.Fprintf(out, "(served from cache)\n")
	}
}
