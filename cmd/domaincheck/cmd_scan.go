package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var scanFlags struct {
	tlds    []string
	noCache bool
}

var scanCmd = &cobra.Command{
	Use:   "scan <keyword>",
	Short: "Check a keyword across multiple TLDs",
	Long: `Checks <keyword>.<tld> for every TLD in the scan list and reports which
candidate domains are available. Without --tld the built-in popular list
is used.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	f := scanCmd.Flags()
	f.StringSliceVar(&scanFlags.tlds, "tld", nil, "TLD to include (repeatable; default: built-in list)")
	f.BoolVar(&scanFlags.noCache, "no-cache", false, "Bypass the result cache and force live lookups")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	chk, cache, err := buildChecker(ctx, cfg)
	if err != nil {
		return err
	}
	if cache != nil {
		defer cache.Close()
	}

	scan, err := chk.ScanTLDs(ctx, args[0], scanFlags.tlds, !scanFlags.noCache)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Keyword: %s (%d TLDs: %s)\n",
		scan.Keyword, scan.TLDsChecked, strings.Join(scan.TLDsCheckedList, ", "))
	fmt.Fprintf(out, "Available (%d):\n", scan.AvailableCount)
	for _, d := range scan.AvailableDomains {
		fmt.Fprintf(out, "  %s\n", d)
	}
	fmt.Fprintf(out, "Taken (%d):\n", scan.TakenCount)
	for _, d := range scan.TakenDomains {
		fmt.Fprintf(out, "  %s\n", d)
	}
	return nil
}
