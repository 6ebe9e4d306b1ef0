package model

import "time"

// Config is the complete runtime configuration. Values merge from CLI flags,
// CLAUSEGUARD_* environment variables, the config file, and these defaults,
// in that order of priority.
type Config struct {
	Domain     Domain           `yaml:"domain"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Solver     SolverConfig     `yaml:"solver"`
	Thresholds ThresholdConfig  `yaml:"thresholds"`
	Audit      AuditConfig      `yaml:"audit"`
	Cache      CacheConfig      `yaml:"cache"`
	LLM        LLMConfig        `yaml:"llm"`
	Output     OutputConfig     `yaml:"output"`
}

// PipelineConfig bounds the per-clause worker pool.
type PipelineConfig struct {
	Workers int `yaml:"workers"` // 0 means one worker per clause, capped at MaxWorkers
	// MaxWorkers caps the pool when Workers is 0.
	MaxWorkers int `yaml:"max_workers"`
}

// SolverConfig bounds each satisfiability check.
type SolverConfig struct {
	Timeout time.Duration `yaml:"timeout"` // Wall-clock budget per clause
	// RatePerSecond throttles solver invocations across the document; 0
	// disables throttling.
	RatePerSecond float64 `yaml:"rate_per_second"`
	Burst         int     `yaml:"burst"`
}

// ThresholdConfig holds the tunable decision thresholds. These are
// deliberately configuration, not constants: they must be validated against a
// labeled corpus, not assumed.
type ThresholdConfig struct {
	GoldenSimilarity   float64 `yaml:"golden_similarity"`   // Structural similarity for a golden-structure SAFE finding
	CoverageMinimum    float64 `yaml:"coverage_minimum"`    // Translation coverage below which verification is UNKNOWN
	CoherenceSimilarity float64 `yaml:"coherence_similarity"` // Effect/trigger similarity for a duplication edge
	SegmentationLimit  int     `yaml:"segmentation_limit"`  // Max unsegmented text length before SegmentationError
}

// AuditConfig locates the append-only verdict chain.
type AuditConfig struct {
	Dir     string `yaml:"dir"`
	Enabled bool   `yaml:"enabled"`
}

// CacheConfig controls the verification-result cache. An empty Dir keeps
// the cache memory-only; setting it adds a disk tier under that path.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// LLMConfig configures the optional advisory summarizer. Disabled by
// default; the summarizer never affects verdict severity.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai", "anthropic", "ollama" or "" (disabled)
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // Environment only, never persisted
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Domain: DomainGeneric,
		Pipeline: PipelineConfig{
			Workers:    0,
			MaxWorkers: 8,
		},
		Solver: SolverConfig{
			Timeout:       2 * time.Second,
			RatePerSecond: 50,
			Burst:         10,
		},
		Thresholds: ThresholdConfig{
			GoldenSimilarity:    0.85,
			CoverageMinimum:     0.30,
			CoherenceSimilarity: 0.30,
			SegmentationLimit:   4000,
		},
		Audit: AuditConfig{
			Dir:     "./audit",
			Enabled: true,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Hour,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 1000,
		},
	}
}
