package fuzzy

import "fmt"

type term struct {
	name string
	mf   Membership
}

// Variable is a linguistic variable: a named set of fuzzy terms over one universe.
// Terms are added while the configuration is being built and never afterwards.
type Variable struct {
	name     string
	universe Universe
	terms    []term
	index    map[string]int
}

// NewVariable creates a variable with no terms
func NewVariable(name string, universe Universe) *Variable {
	return &Variable{
		name:     name,
		universe: universe,
		index:    make(map[string]int),
	}
}

// Name returns the variable name
func (v *Variable) Name() string { return v.name }

// Universe returns the domain the variable is defined over
func (v *Variable) Universe() Universe { return v.universe }

// AddTerm binds a membership function to a new term name.
func (v *Variable) AddTerm(name string, mf Membership) error {
	if name == "" {
		return fmt.Errorf("%w: variable %q: empty term name", ErrConfig, v.name)
	}
	if _, exists := v.index[name]; exists {
		return fmt.Errorf("%w: %w: variable %q already has term %q", ErrConfig, ErrDuplicateTerm, v.name, name)
	}
	v.index[name] = len(v.terms)
	v.terms = append(v.terms, term{name: name, mf: mf})
	return nil
}

// Terms returns term names in declaration order
func (v *Variable) Terms() []string {
	names := make([]string, len(v.terms))
	for i, t := range v.terms {
		names[i] = t.name
	}
	return names
}

// HasTerm reports whether the term is defined
func (v *Variable) HasTerm(name string) bool {
	_, ok := v.index[name]
	return ok
}

// Membership returns the function bound to a term.
func (v *Variable) Membership(name string) (Membership, error) {
	i, ok := v.index[name]
	if !ok {
		return Membership{}, fmt.Errorf("%w: %s.%s", ErrUnknownTerm, v.name, name)
	}
	return v.terms[i].mf, nil
}

// Degree returns the membership of x in a single term.
func (v *Variable) Degree(name string, x float64) (float64, error) {
	mf, err := v.Membership(name)
	if err != nil {
		return 0, err
	}
	return mf.Evaluate(x), nil
}

// Fuzzify evaluates every term at x.
func (v *Variable) Fuzzify(x float64) map[string]float64 {
	out := make(map[string]float64, len(v.terms))
	for _, t := range v.terms {
		out[t.name] = t.mf.Evaluate(x)
	}
	return out
}

// Sample evaluates a term over the variable's universe.
func (v *Variable) Sample(name string) ([]float64, error) {
	mf, err := v.Membership(name)
	if err != nil {
		return nil, err
	}
	return v.universe.Sample(mf), nil
}
