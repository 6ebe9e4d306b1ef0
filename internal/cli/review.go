package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clauseguard/clauseguard/internal/model"
	"github.com/clauseguard/clauseguard/internal/pipeline"
)

var (
	domainName    string
	outJSON       string
	outMD         string
	reviewTimeout time.Duration
	catalogPacks  []string
	noCache       bool
	cacheDir      string
	noAudit       bool
	auditDir      string
	llmEnabled    bool
	llmProvider   string
	llmModel      string
)

// reviewCmd represents the review command
var reviewCmd = &cobra.Command{
	Use:   "review <file>",
	Short: "Review a contract file and generate per-clause verdicts",
	Long: `Review analyzes a contract document to:
- Segment the text into clauses
- Match clauses against the domain pattern catalog
- Run legal-reasoning checks (ambiguity, coherence, missing time limits)
- Formally verify flagged clauses against a statutory axiom base
- Propose rewrites justified by proven contradictions
- Append the run to the tamper-evident audit chain

Example:
  clauseguard review contract.txt
  clauseguard review contract.txt --domain labor --json report.json --md report.md
  clauseguard review contract.txt --catalog ./my-patterns.yaml
  clauseguard review contract.txt --llm --llm-provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)

	reviewCmd.Flags().StringVar(&domainName, "domain", "generic", "contract domain (generic, labor, realestate, it_saas)")
	reviewCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path")
	reviewCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path")
	reviewCmd.Flags().DurationVar(&reviewTimeout, "timeout", 2*time.Minute, "overall review timeout")
	reviewCmd.Flags().StringArrayVar(&catalogPacks, "catalog", nil, "extra catalog pack file (repeatable)")

	reviewCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable verification result cache")
	reviewCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist verification results under this directory")

	reviewCmd.Flags().BoolVar(&noAudit, "no-audit", false, "skip the audit chain append")
	reviewCmd.Flags().StringVar(&auditDir, "audit-dir", "./audit", "audit chain directory")

	// LLM flags
	reviewCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable plain-language advisory generation")
	reviewCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "advisory provider (openai, anthropic, ollama)")
	reviewCmd.Flags().StringVar(&llmModel, "llm-model", "", "advisory model name")
}

func runReview(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), reviewTimeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Reviewing: %s\n", file)
		fmt.Fprintf(os.Stderr, "Domain: %s\n", cfg.Domain)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", reviewTimeout)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg, catalogPacks...)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}

	result, err := p.ReviewText(ctx, filepath.Base(file), string(data))
	if err != nil {
		return fmt.Errorf("review failed: %w", err)
	}

	if err := p.RenderReport(result, outJSON, outMD); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// buildConfig layers the config sources shared by review and batch:
// defaults, then the viper-loaded file and CLAUSEGUARD_* environment, then
// explicitly set flags.
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) { dc.TagName = "yaml" }); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("domain") || cfg.Domain == "" {
		cfg.Domain = model.Domain(domainName)
	}
	if !cfg.Domain.Valid() {
		return nil, fmt.Errorf("unknown domain %q (known: %v)", cfg.Domain, model.KnownDomains())
	}

	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("cache-dir") {
		cfg.Cache.Dir = cacheDir
	}
	if flags.Changed("no-audit") {
		cfg.Audit.Enabled = !noAudit
	}
	if flags.Changed("audit-dir") {
		cfg.Audit.Dir = auditDir
	}
	cfg.Output.Verbose = verbose

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}
