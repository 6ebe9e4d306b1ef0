package solver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/clauseguard/clauseguard/internal/cache"
	"github.com/clauseguard/clauseguard/internal/model"
)

// Verifier applies verification policy around the oracle: coverage gating,
// per-query deadlines, rate limiting, and result caching keyed on the
// proposition set and the catalog fingerprint. Any outcome the oracle
// cannot produce in time degrades to UNKNOWN, never to SAT.
type Verifier struct {
	oracle      Oracle
	limiter     *rate.Limiter
	cache       cache.Cache
	ttl         time.Duration
	timeout     time.Duration
	coverageMin float64
	fingerprint string
}

// Options configures a Verifier. Cache may be nil to disable caching.
type Options struct {
	Timeout         time.Duration
	RatePerSecond   float64
	Burst           int
	CoverageMinimum float64
	Cache           cache.Cache
	CacheTTL        time.Duration
	// Fingerprint identifies the axiom catalog; cached results are only
	// valid for the catalog they were computed against.
	Fingerprint string
}

// NewVerifier wraps an oracle with verification policy.
func NewVerifier(oracle Oracle, opts Options) *Verifier {
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Limit(opts.RatePerSecond)
	if opts.RatePerSecond <= 0 {
		limit = rate.Inf
	}
	return &Verifier{
		oracle:      oracle,
		limiter:     rate.NewLimiter(limit, burst),
		cache:       opts.Cache,
		ttl:         opts.CacheTTL,
		timeout:     opts.Timeout,
		coverageMin: opts.CoverageMinimum,
		fingerprint: opts.Fingerprint,
	}
}

// Verify checks one clause's translation against the axiom base. Low
// coverage short-circuits to UNKNOWN: a verdict on propositions that
// explain too little of the clause would be vacuous. A returned error means
// the caller's context was cancelled; everything else is expressed in the
// result status.
func (v *Verifier) Verify(ctx context.Context, tr model.Translation, axioms []model.Axiom) (model.VerificationResult, error) {
	if tr.Coverage < v.coverageMin {
		return model.VerificationResult{
			ClauseID: tr.ClauseID,
			Status:   model.StatusUnknown,
			Reason:   fmt.Sprintf("translation coverage %.2f below minimum %.2f", tr.Coverage, v.coverageMin),
		}, nil
	}
	if len(tr.Propositions) == 0 {
		return model.VerificationResult{
			ClauseID: tr.ClauseID,
			Status:   model.StatusUnknown,
			Reason:   "no propositions extracted",
		}, nil
	}

	key := v.cacheKey(tr)
	if v.cache != nil {
		if data, ok := v.cache.Get(key); ok {
			var cached model.VerificationResult
			if err := json.Unmarshal(data, &cached); err == nil {
				cached.ClauseID = tr.ClauseID
				return cached, nil
			}
		}
	}

	if err := v.limiter.Wait(ctx); err != nil {
		return model.VerificationResult{}, err
	}

	queryCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	start := time.Now()
	outcome, err := v.oracle.Check(queryCtx, Problem{Assumptions: tr.Propositions, Axioms: axioms})
	elapsed := time.Since(start)
	if err != nil {
		if ctx.Err() != nil {
			return model.VerificationResult{}, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return model.VerificationResult{
				ClauseID: tr.ClauseID,
				Status:   model.StatusUnknown,
				Reason:   fmt.Sprintf("solver timed out after %s", v.timeout),
				Elapsed:  elapsed,
			}, nil
		}
		return model.VerificationResult{
			ClauseID: tr.ClauseID,
			Status:   model.StatusUnknown,
			Reason:   fmt.Sprintf("solver error: %v", err),
			Elapsed:  elapsed,
		}, nil
	}

	result := model.VerificationResult{
		ClauseID: tr.ClauseID,
		Status:   outcome.Status,
		UnsatCore: outcome.Core,
		Axioms:   outcome.Violated,
		Elapsed:  elapsed,
	}
	if result.Status == model.StatusUNSAT {
		result.Reason = fmt.Sprintf("propositions contradict %d axiom(s)", len(outcome.Violated))
	}

	if v.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = v.cache.Set(key, data, v.ttl)
		}
	}
	return result, nil
}

// cacheKey keys on the signed atom set together with the catalog
// fingerprint so a catalog change invalidates every entry.
func (v *Verifier) cacheKey(tr model.Translation) string {
	var b strings.Builder
	for _, p := range tr.Propositions {
		if !p.Polarity {
			b.WriteByte('!')
		}
		b.WriteString(p.Key())
		b.WriteByte(0)
	}
	return cache.ResultKey(b.String(), v.fingerprint)
}
