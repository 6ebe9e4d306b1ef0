package solver

import (
	"context"

	"github.com/clauseguard/clauseguard/internal/model"
)

// DPLL is an in-process propositional oracle. Axiom instances here are a
// few dozen atoms at most, so a plain recursive search with unit
// propagation decides them in microseconds; the context check guards
// against pathological catalogs, not expected load.
type DPLL struct{}

// NewDPLL creates the propositional oracle.
func NewDPLL() *DPLL { return &DPLL{} }

type lit struct {
	atom string
	neg  bool
}

// Check decides the problem and, when inconsistent, shrinks the assumption
// set to a minimal core.
func (d *DPLL) Check(ctx context.Context, p Problem) (Outcome, error) {
	sat, err := d.satisfiable(ctx, p.Assumptions, p.Axioms)
	if err != nil {
		return Outcome{}, err
	}
	if sat {
		return Outcome{Status: model.StatusSAT}, nil
	}

	core, err := d.minimizeCore(ctx, p)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Status:   model.StatusUNSAT,
		Core:     core,
		Violated: violatedAxioms(core, p.Axioms),
	}, nil
}

// minimizeCore deletes assumptions one at a time, walking from the latest
// textual span backwards so that when two subsets tie the earlier
// propositions survive. The result is minimal: removing any member makes
// the rest consistent with the axioms.
func (d *DPLL) minimizeCore(ctx context.Context, p Problem) ([]model.Proposition, error) {
	core := append([]model.Proposition(nil), p.Assumptions...)
	for i := len(core) - 1; i >= 0; i-- {
		trial := append(append([]model.Proposition(nil), core[:i]...), core[i+1:]...)
		sat, err := d.satisfiable(ctx, trial, p.Axioms)
		if err != nil {
			return nil, err
		}
		if !sat {
			core = trial
		}
	}
	return core, nil
}

func (d *DPLL) satisfiable(ctx context.Context, assumptions []model.Proposition, axioms []model.Axiom) (bool, error) {
	clauses := make([][]lit, 0, len(assumptions)+len(axioms))
	for _, a := range assumptions {
		clauses = append(clauses, []lit{{atom: a.Key(), neg: !a.Polarity}})
	}
	for _, ax := range axioms {
		for _, c := range ax.Clauses {
			cl := make([]lit, len(c))
			for i, l := range c {
				cl[i] = lit{atom: l.Key(), neg: l.Negated}
			}
			clauses = append(clauses, cl)
		}
	}
	return dpll(ctx, clauses, map[string]bool{})
}

func dpll(ctx context.Context, clauses [][]lit, assign map[string]bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	// Unit propagation to fixpoint.
	for {
		unit, conflict, done := propagateStep(clauses, assign)
		if conflict {
			return false, nil
		}
		if done {
			return true, nil
		}
		if unit == nil {
			break
		}
		assign[unit.atom] = !unit.neg
	}

	atom := pickUnassigned(clauses, assign)
	for _, v := range []bool{true, false} {
		branch := make(map[string]bool, len(assign)+1)
		for k, val := range assign {
			branch[k] = val
		}
		branch[atom] = v
		sat, err := dpll(ctx, clauses, branch)
		if err != nil {
			return false, err
		}
		if sat {
			return true, nil
		}
	}
	return false, nil
}

// propagateStep scans the clause set once under the current assignment.
// It reports the first unit literal found, a conflict (some clause fully
// falsified), or completion (every clause satisfied).
func propagateStep(clauses [][]lit, assign map[string]bool) (unit *lit, conflict, done bool) {
	done = true
	for _, c := range clauses {
		satisfied := false
		var unassigned []lit
		for _, l := range c {
			v, ok := assign[l.atom]
			if !ok {
				unassigned = append(unassigned, l)
				continue
			}
			if v != l.neg {
				satisfied = true
				break
			}
		}
		if satisfied {
			continue
		}
		if len(unassigned) == 0 {
			return nil, true, false
		}
		done = false
		if len(unassigned) == 1 && unit == nil {
			u := unassigned[0]
			unit = &u
		}
	}
	return unit, false, done
}

func pickUnassigned(clauses [][]lit, assign map[string]bool) string {
	for _, c := range clauses {
		for _, l := range c {
			if _, ok := assign[l.atom]; !ok {
				return l.atom
			}
		}
	}
	return ""
}

func violatedAxioms(core []model.Proposition, axioms []model.Axiom) []string {
	atoms := make(map[string]bool, len(core))
	for _, p := range core {
		atoms[p.Key()] = true
	}
	var out []string
	for _, ax := range axioms {
		touched := false
		for _, c := range ax.Clauses {
			for _, l := range c {
				if atoms[l.Key()] {
					touched = true
				}
			}
		}
		if touched {
			out = append(out, ax.CitationID)
		}
	}
	return out
}
