package fuzzy

import (
	"fmt"
	"math"
)

// Engine runs Mamdani inference for one output variable: min implication,
// max aggregation, centroid defuzzification.
// An Engine is immutable after NewEngine and safe for concurrent use.
type Engine struct {
	name   string
	output *Variable
	rules  []Rule
	// consequents[i] is rules[i]'s consequent sampled over the output universe
	consequents [][]float64
}

// NewEngine validates rules against the output variable and precomputes the
// sampled consequent of every rule.
func NewEngine(name string, output *Variable, rules []Rule) (*Engine, error) {
	if output == nil {
		return nil, fmt.Errorf("%w: engine %q has no output variable", ErrConfig, name)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: engine %q has no rules", ErrConfig, name)
	}

	consequents := make([][]float64, len(rules))
	for i, r := range rules {
		if r.Antecedent == nil {
			return nil, fmt.Errorf("%w: engine %q rule %d has no antecedent", ErrConfig, name, i)
		}
		if r.Consequent.Variable != output.Name() {
			return nil, fmt.Errorf("%w: engine %q rule %d concludes on %q, want %q",
				ErrConfig, name, i, r.Consequent.Variable, output.Name())
		}
		sampled, err := output.Sample(r.Consequent.Term)
		if err != nil {
			return nil, fmt.Errorf("%w: engine %q rule %d: %w", ErrConfig, name, i, err)
		}
		consequents[i] = sampled
	}

	return &Engine{
		name:        name,
		output:      output,
		rules:       append([]Rule(nil), rules...),
		consequents: consequents,
	}, nil
}

// Name returns the engine name
func (e *Engine) Name() string { return e.name }

// Strengths returns each rule's firing strength in rule order.
func (e *Engine) Strengths(in Inputs) ([]float64, error) {
	out := make([]float64, len(e.rules))
	for i, r := range e.rules {
		s, err := r.Fire(in)
		if err != nil {
			return nil, fmt.Errorf("engine %q rule %d: %w", e.name, i, err)
		}
		out[i] = s
	}
	return out, nil
}

// Aggregate clips every rule's consequent at its firing strength and combines
// the results by pointwise maximum. If no rule fires the set is all zeros.
func (e *Engine) Aggregate(in Inputs) ([]float64, error) {
	strengths, err := e.Strengths(in)
	if err != nil {
		return nil, err
	}

	agg := make([]float64, e.output.Universe().Len())
	for i, s := range strengths {
		if s <= 0 {
			continue
		}
		for j, mu := range e.consequents[i] {
			agg[j] = math.Max(agg[j], math.Min(s, mu))
		}
	}
	return agg, nil
}

// Infer aggregates and defuzzifies in one step.
func (e *Engine) Infer(in Inputs) (float64, error) {
	agg, err := e.Aggregate(in)
	if err != nil {
		return 0, err
	}
	return Centroid(e.output.Universe(), agg), nil
}
