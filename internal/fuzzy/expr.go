package fuzzy

import (
	"fmt"
	"math"
)

// Inputs holds fuzzified degrees keyed by variable name, then term name.
type Inputs map[string]map[string]float64

// Set stores the full fuzzification of x against v.
func (in Inputs) Set(v *Variable, x float64) {
	in[v.Name()] = v.Fuzzify(x)
}

// Degree looks up a precomputed degree.
func (in Inputs) Degree(variable, term string) (float64, error) {
	terms, ok := in[variable]
	if !ok {
		return 0, fmt.Errorf("%w: variable %q was not fuzzified", ErrUnknownTerm, variable)
	}
	deg, ok := terms[term]
	if !ok {
		return 0, fmt.Errorf("%w: %s.%s", ErrUnknownTerm, variable, term)
	}
	return deg, nil
}

// Expr is an antecedent expression tree. The set of implementations is closed:
// TermExpr, AndExpr, OrExpr and NotExpr.
type Expr interface {
	fmt.Stringer
	expr()
}

// TermExpr is a leaf referring to one term of one variable.
type TermExpr struct {
	Variable string
	Term     string
}

// AndExpr is the Zadeh conjunction (min).
type AndExpr struct {
	LHS, RHS Expr
}

// OrExpr is the Zadeh disjunction (max).
type OrExpr struct {
	LHS, RHS Expr
}

// NotExpr is the standard complement (1 - x).
type NotExpr struct {
	Operand Expr
}

func (TermExpr) expr() {}
func (AndExpr) expr()  {}
func (OrExpr) expr()   {}
func (NotExpr) expr()  {}

func (e TermExpr) String() string { return e.Variable + "." + e.Term }
func (e AndExpr) String() string  { return "(" + e.LHS.String() + " AND " + e.RHS.String() + ")" }
func (e OrExpr) String() string   { return "(" + e.LHS.String() + " OR " + e.RHS.String() + ")" }
func (e NotExpr) String() string  { return "NOT " + e.Operand.String() }

// Term builds a leaf expression
func Term(variable, term string) Expr { return TermExpr{Variable: variable, Term: term} }

// And builds a conjunction
func And(lhs, rhs Expr) Expr { return AndExpr{LHS: lhs, RHS: rhs} }

// Or builds a disjunction
func Or(lhs, rhs Expr) Expr { return OrExpr{LHS: lhs, RHS: rhs} }

// Not builds a complement
func Not(e Expr) Expr { return NotExpr{Operand: e} }

// AllOf folds exprs left to right with And. It returns nil for no operands.
func AllOf(exprs ...Expr) Expr { return fold(And, exprs) }

// AnyOf folds exprs left to right with Or. It returns nil for no operands.
func AnyOf(exprs ...Expr) Expr { return fold(Or, exprs) }

func fold(op func(Expr, Expr) Expr, exprs []Expr) Expr {
	if len(exprs) == 0 {
		return nil
	}
	acc := exprs[0]
	for _, e := range exprs[1:] {
		acc = op(acc, e)
	}
	return acc
}

// Evaluate computes the firing strength of e against fuzzified inputs.
func Evaluate(e Expr, in Inputs) (float64, error) {
	switch e := e.(type) {
	case TermExpr:
		return in.Degree(e.Variable, e.Term)
	case AndExpr:
		l, r, err := evalPair(e.LHS, e.RHS, in)
		if err != nil {
			return 0, err
		}
		return math.Min(l, r), nil
	case OrExpr:
		l, r, err := evalPair(e.LHS, e.RHS, in)
		if err != nil {
			return 0, err
		}
		return math.Max(l, r), nil
	case NotExpr:
		v, err := Evaluate(e.Operand, in)
		if err != nil {
			return 0, err
		}
		return 1 - v, nil
	default:
		return 0, fmt.Errorf("%w: unsupported expression %T", ErrConfig, e)
	}
}

func evalPair(lhs, rhs Expr, in Inputs) (float64, float64, error) {
	l, err := Evaluate(lhs, in)
	if err != nil {
		return 0, 0, err
	}
	r, err := Evaluate(rhs, in)
	if err != nil {
		return 0, 0, err
	}
	return l, r, nil
}

// TermRefs lists every leaf of e in left-to-right order.
func TermRefs(e Expr) []TermExpr {
	var refs []TermExpr
	var walk func(Expr)
	walk = func(e Expr) {
		switch e := e.(type) {
		case TermExpr:
			refs = append(refs, e)
		case AndExpr:
			walk(e.LHS)
			walk(e.RHS)
		case OrExpr:
			walk(e.LHS)
			walk(e.RHS)
		case NotExpr:
			walk(e.Operand)
		}
	}
	walk(e)
	return refs
}

// Rule pairs an antecedent with one consequent term.
type Rule struct {
	Antecedent Expr
	Consequent TermExpr
}

// NewRule builds a rule whose consequent is term of the output variable.
func NewRule(antecedent Expr, variable, term string) Rule {
	return Rule{Antecedent: antecedent, Consequent: TermExpr{Variable: variable, Term: term}}
}

// Fire returns the firing strength of the rule.
func (r Rule) Fire(in Inputs) (float64, error) {
	return Evaluate(r.Antecedent, in)
}

func (r Rule) String() string {
	return "IF " + r.Antecedent.String() + " THEN " + r.Consequent.String()
}
