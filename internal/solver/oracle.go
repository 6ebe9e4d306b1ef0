// Package solver decides satisfiability of a clause's propositions against
// the statutory axiom base and, on contradiction, extracts a minimal
// unsatisfiable core. The oracle is abstract so the propositional backend
// can be swapped without touching the verification policy around it.
package solver

import (
	"context"

	"github.com/clauseguard/clauseguard/internal/model"
)

// Problem is a CNF satisfiability instance. Assumptions are the clause's
// extracted propositions, each asserted as a unit clause; Axioms carry the
// statutory constraints. Core extraction only ever weakens Assumptions,
// never Axioms.
type Problem struct {
	Assumptions []model.Proposition
	Axioms      []model.Axiom
}

// Outcome is the raw oracle answer before verification policy is applied.
type Outcome struct {
	Status model.VerificationStatus
	// Core holds a minimal subset of the assumptions that is already
	// inconsistent with the axioms. Populated only for UNSAT.
	Core []model.Proposition
	// Violated lists the citation IDs of axioms touched by the core.
	Violated []string
}

// Oracle answers satisfiability queries. Implementations honor context
// cancellation; a deadline hit surfaces as ctx.Err, never as a guess.
type Oracle interface {
	Check(ctx context.Context, p Problem) (Outcome, error)
}
