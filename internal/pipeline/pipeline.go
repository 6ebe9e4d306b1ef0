// Package pipeline orchestrates the complete clause review: segmentation,
// pattern matching, lawyer-thinking analysis, formal verification, rewrite
// proposals, and verdict aggregation, with an audit record appended per
// clause verdict at the end of every successful run.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/clauseguard/clauseguard/internal/audit"
	"github.com/clauseguard/clauseguard/internal/cache"
	"github.com/clauseguard/clauseguard/internal/catalog"
	"github.com/clauseguard/clauseguard/internal/lawyer"
	"github.com/clauseguard/clauseguard/internal/llm"
	"github.com/clauseguard/clauseguard/internal/logic"
	"github.com/clauseguard/clauseguard/internal/model"
	"github.com/clauseguard/clauseguard/internal/pattern"
	"github.com/clauseguard/clauseguard/internal/rewrite"
	"github.com/clauseguard/clauseguard/internal/segment"
	"github.com/clauseguard/clauseguard/internal/solver"
	"github.com/clauseguard/clauseguard/internal/verdict"
	"github.com/clauseguard/clauseguard/internal/worker"
)

// Pipeline orchestrates the complete review process
type Pipeline struct {
	segmenter  *segment.Segmenter
	cat        *catalog.Catalog
	engine     *pattern.Engine
	decomposer *lawyer.Decomposer
	translator *logic.Translator
	verifier   *solver.Verifier
	rewriter   *rewrite.Engine
	aggregator *verdict.Aggregator
	store      *audit.Store    // nil when audit disabled
	summarizer *llm.Summarizer // nil or disabled when no provider configured
	renderer   *Renderer
	config     *model.Config
}

// NewPipeline creates a pipeline from configuration. Extra catalog pack
// files, if any, stack on top of the embedded packs for the configured
// domain.
func NewPipeline(cfg *model.Config, extraPacks ...string) (*Pipeline, error) {
	cat, err := catalog.Load(cfg.Domain)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	for _, path := range extraPacks {
		if err := cat.LoadFile(path); err != nil {
			return nil, err
		}
	}

	engine, err := pattern.New(cat, cfg.Thresholds.GoldenSimilarity)
	if err != nil {
		return nil, fmt.Errorf("pattern engine: %w", err)
	}

	var resultCache cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			resultCache = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			resultCache = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.TTL)
		}
	}

	verifier := solver.NewVerifier(solver.NewDPLL(), solver.Options{
		Timeout:         cfg.Solver.Timeout,
		RatePerSecond:   cfg.Solver.RatePerSecond,
		Burst:           cfg.Solver.Burst,
		CoverageMinimum: cfg.Thresholds.CoverageMinimum,
		Cache:           resultCache,
		CacheTTL:        cfg.Cache.TTL,
		Fingerprint:     cat.Fingerprint(),
	})

	var store *audit.Store
	if cfg.Audit.Enabled {
		store, err = audit.NewStore(cfg.Audit.Dir)
		if err != nil {
			return nil, fmt.Errorf("open audit chain: %w", err)
		}
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize advisory provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		segmenter:  segment.New(cfg.Thresholds.SegmentationLimit),
		cat:        cat,
		engine:     engine,
		decomposer: lawyer.NewDecomposer(cfg.Thresholds.CoherenceSimilarity),
		translator: logic.NewTranslator(),
		verifier:   verifier,
		rewriter:   rewrite.NewEngine(),
		aggregator: verdict.New(),
		store:      store,
		summarizer: summarizer,
		renderer:   NewRenderer(),
		config:     cfg,
	}, nil
}

// Catalog exposes the loaded catalog, mainly for inspection commands.
func (p *Pipeline) Catalog() *catalog.Catalog { return p.cat }

// clauseJob runs the per-clause detectors and the translator for one
// clause. Document-level analysis happens after the pool drains.
type clauseJob struct {
	clause     model.Clause
	docText    string
	engine     *pattern.Engine
	decomposer *lawyer.Decomposer
	translator *logic.Translator
}

type clauseResult struct {
	clauseID    string
	findings    []model.Finding
	translation model.Translation
}

func (r *clauseResult) GetError() error { return nil }

// Execute executes the per-clause analysis
func (j *clauseJob) Execute(ctx context.Context) worker.Result {
	findings := j.engine.Match(j.clause, j.docText)
	findings = append(findings, j.decomposer.AnalyzeClause(j.clause)...)

	return &clauseResult{
		clauseID:    j.clause.ID,
		findings:    findings,
		translation: j.translator.Translate(j.clause, findings),
	}
}

// ReviewText reviews one contract document and returns the complete
// per-clause verdicts. On cancellation it returns the context error with
// no partial result and no audit record.
func (p *Pipeline) ReviewText(ctx context.Context, documentID, text string) (*model.DocumentResult, error) {
	clauses, err := p.segmenter.Segment(text)
	if err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}
	p.logf("segmented %s into %d clauses", documentID, len(clauses))

	for i := range clauses {
		clauses[i].EffectTags = lawyer.ExtractEffectTags(clauses[i].Text)
	}

	workers := p.config.Pipeline.Workers
	if workers <= 0 {
		workers = len(clauses)
		if max := p.config.Pipeline.MaxWorkers; max > 0 && workers > max {
			workers = max
		}
	}

	pool := worker.NewPool(ctx, workers)
	pool.Start()
	defer pool.Shutdown()
	for _, clause := range clauses {
		pool.Submit(&clauseJob{
			clause:     clause,
			docText:    text,
			engine:     p.engine,
			decomposer: p.decomposer,
			translator: p.translator,
		})
	}
	results := pool.Wait()
	if err := pool.Err(); err != nil {
		return nil, err
	}
	if len(results) != len(clauses) {
		return nil, fmt.Errorf("clause analysis incomplete: %d of %d", len(results), len(clauses))
	}

	byClause := make(map[string]*clauseResult, len(results))
	for _, r := range results {
		cr := r.(*clauseResult)
		byClause[cr.clauseID] = cr
	}

	// Coherence needs the full clause set, so it runs after the barrier.
	for _, f := range p.decomposer.AnalyzeDocument(clauses) {
		if cr, ok := byClause[f.ClauseID]; ok {
			cr.findings = append(cr.findings, f)
		}
	}

	verdicts := make([]model.Verdict, 0, len(clauses))
	for _, clause := range clauses {
		cr := byClause[clause.ID]

		var verification *model.VerificationResult
		if model.MaxFindingSeverity(cr.findings).Rank() >= model.SeverityMedium.Rank() {
			vr, err := p.verifier.Verify(ctx, cr.translation, p.cat.Axioms)
			if err != nil {
				return nil, err
			}
			verification = &vr
			p.logf("verified %s: %s", clause.ID, vr.Status)
		}

		var rw *model.Rewrite
		if verification != nil && verification.Status == model.StatusUNSAT {
			rw = p.rewriter.Propose(clause, *verification, p.matchedPatterns(cr.findings))
		}

		verdicts = append(verdicts, p.aggregator.Aggregate(clause, cr.findings, verification, rw))
	}

	result := &model.DocumentResult{
		Domain:   p.config.Domain,
		Clauses:  clauses,
		Verdicts: verdicts,
	}

	// Advisory runs after aggregation and never feeds back into it.
	if p.summarizer.IsEnabled() {
		advisory, err := p.summarizer.GenerateAdvisory(ctx, *result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: advisory generation failed: %v\n", err)
		} else {
			result.Summary = advisory
		}
	}

	// One audit record per clause verdict, so each decision is
	// independently addressable in the chain.
	if p.store != nil {
		for _, v := range verdicts {
			rec, err := p.store.Append(audit.Entry{
				DocumentID:         documentID,
				Domain:             p.config.Domain,
				EngineVersion:      verdict.EngineVersion,
				CatalogFingerprint: p.cat.Fingerprint(),
				ClauseID:           v.ClauseID,
				Verdict:            v,
			})
			if err != nil {
				return nil, fmt.Errorf("append audit record for %s: %w", v.ClauseID, err)
			}
			p.logf("audit record %d appended for %s (%s)", rec.Index, v.ClauseID, rec.Hash[:12])
		}
	}

	return result, nil
}

// matchedPatterns resolves the catalog patterns behind a clause's findings.
func (p *Pipeline) matchedPatterns(findings []model.Finding) []model.Pattern {
	var out []model.Pattern
	for _, f := range findings {
		if f.PatternID == "" || f.Suppressed {
			continue
		}
		if pat, ok := p.cat.Pattern(f.PatternID); ok {
			out = append(out, pat)
		}
	}
	return out
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
