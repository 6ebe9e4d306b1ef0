package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clauseguard/clauseguard/internal/catalog"
	"github.com/clauseguard/clauseguard/internal/model"
)

var catalogDomain string

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate pattern catalogs",
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the loaded catalog for a domain",
	Long: `Show lists every pattern, golden structure, and axiom the review
would use for a domain, plus the catalog fingerprint that keys cached
verification results.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		domain := model.Domain(catalogDomain)
		cat, err := catalog.Load(domain)
		if err != nil {
			return err
		}

		fmt.Printf("Domain: %s\nFingerprint: %s\n\n", cat.Domain, cat.Fingerprint())

		fmt.Printf("Patterns (%d):\n", len(cat.Patterns))
		for _, p := range cat.Patterns {
			fmt.Printf("  %-12s %-9s %-8s %s\n", p.ID, p.Kind, p.Severity, p.Name)
		}

		fmt.Printf("\nGolden structures (%d):\n", len(cat.Goldens))
		for _, g := range cat.Goldens {
			fmt.Printf("  %-12s %s\n", g.ID, g.Name)
		}

		fmt.Printf("\nAxioms (%d):\n", len(cat.Axioms))
		for _, a := range cat.Axioms {
			fmt.Printf("  %-28s %s\n", a.CitationID, a.Display)
		}
		return nil
	},
}

var catalogLintCmd = &cobra.Command{
	Use:   "lint <file>",
	Short: "Validate an external catalog pack",
	Long: `Lint checks an external pack file against the catalog schema and
compiles every matcher, without running a review.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load(model.Domain(catalogDomain))
		if err != nil {
			return err
		}
		if err := cat.LoadFile(args[0]); err != nil {
			return err
		}
		fmt.Printf("OK: %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogLintCmd)

	catalogCmd.PersistentFlags().StringVar(&catalogDomain, "domain", "generic", "contract domain")
}
