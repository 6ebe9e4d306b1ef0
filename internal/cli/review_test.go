package cli

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/clauseguard/clauseguard/internal/model"
)

func TestBuildConfig_SourcePrecedence(t *testing.T) {
	defer func() {
		viper.Reset()
		domainName = "generic"
		_ = reviewCmd.Flags().Set("audit-dir", "./audit")
	}()

	// Subtests share viper and flag state, so order matters: the flag
	// subtest marks its flag as changed for the rest of the process.
	t.Run("file and env values reach the config", func(t *testing.T) {
		viper.Reset()
		viper.Set("domain", "labor")
		viper.Set("solver.rate_per_second", 5.0)
		viper.Set("thresholds.golden_similarity", 0.9)

		cfg, err := buildConfig(reviewCmd)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.Domain != model.DomainLabor {
			t.Errorf("Expected the configured domain labor, got %s", cfg.Domain)
		}
		if cfg.Solver.RatePerSecond != 5.0 {
			t.Errorf("Expected rate 5.0 from config, got %v", cfg.Solver.RatePerSecond)
		}
		if cfg.Thresholds.GoldenSimilarity != 0.9 {
			t.Errorf("Expected golden similarity 0.9 from config, got %v", cfg.Thresholds.GoldenSimilarity)
		}
		if cfg.Solver.Burst != model.DefaultConfig().Solver.Burst {
			t.Errorf("Expected unset values to keep defaults, got burst %d", cfg.Solver.Burst)
		}
	})

	t.Run("unknown domain from the config file is rejected", func(t *testing.T) {
		viper.Reset()
		viper.Set("domain", "maritime")

		if _, err := buildConfig(reviewCmd); err == nil {
			t.Error("Expected an unknown configured domain to fail")
		}
	})

	t.Run("explicit flag overrides the config file", func(t *testing.T) {
		viper.Reset()
		viper.Set("domain", "labor")
		viper.Set("audit.dir", "/from/file")

		if err := reviewCmd.Flags().Set("audit-dir", "/from/flag"); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(reviewCmd)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.Domain != model.DomainLabor {
			t.Errorf("Expected the untouched domain flag to defer to the file, got %s", cfg.Domain)
		}
		if cfg.Audit.Dir != "/from/flag" {
			t.Errorf("Expected the explicit flag to win, got %s", cfg.Audit.Dir)
		}
	})
}
