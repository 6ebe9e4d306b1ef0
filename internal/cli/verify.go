package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/clauseguard/clauseguard/internal/audit"
)

var verifyDir string

// verifyChainCmd represents the verify-chain command
var verifyChainCmd = &cobra.Command{
	Use:   "verify-chain",
	Short: "Verify the integrity of the audit chain",
	Long: `Verify-chain replays the audit log and recomputes every hash link.

An intact chain proves no past verdict has been altered or removed. If
the chain is broken, the index of the earliest tampered record is
reported.

Example:
  clauseguard verify-chain
  clauseguard verify-chain --audit-dir /var/lib/clauseguard/audit`,
	Args: cobra.NoArgs,
	RunE: runVerifyChain,
}

func init() {
	rootCmd.AddCommand(verifyChainCmd)

	verifyChainCmd.Flags().StringVar(&verifyDir, "audit-dir", "./audit", "audit chain directory")
}

func runVerifyChain(cmd *cobra.Command, args []string) error {
	path := filepath.Join(verifyDir, "chain.log")
	report := audit.VerifyChain(path)

	if report.OK {
		fmt.Printf("Chain OK: %d records, head %s\n", report.Total, shortHash(report.LastHash))
		return nil
	}

	fmt.Printf("Chain BROKEN: first tampered record at index %d\n", report.FirstTampered)
	for _, e := range report.Errors {
		fmt.Printf("  - %s\n", e)
	}
	return fmt.Errorf("audit chain verification failed")
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
