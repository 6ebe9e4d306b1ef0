package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/clauseguard/clauseguard/internal/pipeline"
	"github.com/clauseguard/clauseguard/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Review multiple contract files from a directory in parallel",
	Long: `Batch reviews every .txt and .md file in a directory:
- Files are reviewed concurrently with a configurable worker count
- Each review runs the full clause pipeline
- Individual JSON reports are written per file
- All runs share one audit chain and one result cache

Example:
  clauseguard batch ./contracts
  clauseguard batch ./contracts --concurrency 4 --output-dir ./reports
  clauseguard batch ./contracts --domain it_saas --timeout 10m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./clauseguard-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	batchCmd.Flags().StringVar(&domainName, "domain", "generic", "contract domain (generic, labor, realestate, it_saas)")
	batchCmd.Flags().StringArrayVar(&catalogPacks, "catalog", nil, "extra catalog pack file (repeatable)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable verification result cache")
	batchCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist verification results under this directory")
	batchCmd.Flags().BoolVar(&noAudit, "no-audit", false, "skip the audit chain append")
	batchCmd.Flags().StringVar(&auditDir, "audit-dir", "./audit", "audit chain directory")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Batch review: %s (domain %s, %d workers)\n", dir, cfg.Domain, concurrency)

	p, err := pipeline.NewPipeline(cfg, catalogPacks...)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	processor := worker.NewBatchProcessor(p, concurrency)
	results, err := processor.ProcessDir(ctx, dir)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	renderer := pipeline.NewRenderer()
	failed := 0
	for _, r := range results {
		if r.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Path, r.Error)
			continue
		}

		name := strings.TrimSuffix(filepath.Base(r.Path), filepath.Ext(r.Path))
		jsonPath := filepath.Join(outputDir, name+".json")
		if err := renderer.RenderJSON(r.Result, jsonPath); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Path, err)
			continue
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s -> %s\n", r.Path, jsonPath)
		}
	}

	fmt.Fprintf(os.Stderr, "Reviewed %d files, %d failed\n", len(results), failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d reviews failed", failed, len(results))
	}
	return nil
}
