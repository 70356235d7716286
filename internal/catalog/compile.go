package catalog

import (
	"fmt"
	"strings"

	"github.com/quentinrf/plant-monitor/services/crop-service/internal/fuzzy"
	"github.com/quentinrf/plant-monitor/services/crop-service/internal/recommender"
)

// SuitabilityVariable names the consequent variable of every crop engine
const SuitabilityVariable = "suitability"

// Input variable names used in rule references
const (
	VariablePH          = "ph"
	VariableTemperature = "temperature"
	VariableHumidity    = "humidity"
)

// Compile builds the fuzzy variables and one engine per crop. Any problem
// is reported as fuzzy.ErrConfig and no evaluator is produced.
func (c *Catalog) Compile(opts ...recommender.Option) (*recommender.Evaluator, error) {
	ph, err := buildVariable(VariablePH, c.Inputs.PH)
	if err != nil {
		return nil, err
	}
	temperature, err := buildVariable(VariableTemperature, c.Inputs.Temperature)
	if err != nil {
		return nil, err
	}
	humidity, err := buildVariable(VariableHumidity, c.Inputs.Humidity)
	if err != nil {
		return nil, err
	}
	suitability, err := buildVariable(SuitabilityVariable, c.Suitability)
	if err != nil {
		return nil, err
	}

	inputs := map[string]*fuzzy.Variable{
		VariablePH:          ph,
		VariableTemperature: temperature,
		VariableHumidity:    humidity,
	}

	crops := make([]recommender.CropModel, 0, len(c.Crops))
	for _, spec := range c.Crops {
		rules := make([]fuzzy.Rule, 0, len(spec.Rules))
		for i, rs := range spec.Rules {
			antecedent, err := compileExpr(rs.When)
			if err == nil {
				err = checkRefs(antecedent, inputs, rs.When.line)
			}
			if err != nil {
				return nil, fmt.Errorf("crop %q rule %d: %w", spec.Name, i, err)
			}
			rules = append(rules, fuzzy.NewRule(antecedent, SuitabilityVariable, rs.Then))
		}

		engine, err := fuzzy.NewEngine(spec.Name, suitability, rules)
		if err != nil {
			return nil, err
		}
		crops = append(crops, recommender.CropModel{
			Name:    spec.Name,
			Engine:  engine,
			Optimal: spec.Optimal,
		})
	}

	return recommender.New(recommender.Inputs{
		PH:          ph,
		Temperature: temperature,
		Humidity:    humidity,
	}, crops, opts...)
}

func buildVariable(name string, spec VariableSpec) (*fuzzy.Variable, error) {
	u, err := fuzzy.NewUniverse(spec.Universe.Min, spec.Universe.Max, spec.Universe.Step)
	if err != nil {
		return nil, fmt.Errorf("variable %q: %w", name, err)
	}

	v := fuzzy.NewVariable(name, u)
	for _, ts := range spec.Terms {
		mf, err := buildMembership(ts)
		if err != nil {
			return nil, fmt.Errorf("variable %q term %q: %w", name, ts.Name, err)
		}
		if err := v.AddTerm(ts.Name, mf); err != nil {
			return nil, err
		}
	}
	if len(v.Terms()) == 0 {
		return nil, fmt.Errorf("%w: variable %q has no terms", fuzzy.ErrConfig, name)
	}
	return v, nil
}

func buildMembership(spec TermSpec) (fuzzy.Membership, error) {
	p := spec.Points
	switch strings.ToLower(spec.Shape) {
	case "triangle", "tri":
		if len(p) != 3 {
			return fuzzy.Membership{}, fmt.Errorf("%w: triangle needs 3 points, got %d", fuzzy.ErrConfig, len(p))
		}
		return fuzzy.NewTriangle(p[0], p[1], p[2])
	case "trapezoid", "trap":
		if len(p) != 4 {
			return fuzzy.Membership{}, fmt.Errorf("%w: trapezoid needs 4 points, got %d", fuzzy.ErrConfig, len(p))
		}
		return fuzzy.NewTrapezoid(p[0], p[1], p[2], p[3])
	default:
		return fuzzy.Membership{}, fmt.Errorf("%w: unknown shape %q", fuzzy.ErrConfig, spec.Shape)
	}
}

// compileExpr turns a YAML expression into an antecedent tree.
func compileExpr(spec ExprSpec) (fuzzy.Expr, error) {
	switch {
	case spec.Term != "":
		variable, term, ok := strings.Cut(spec.Term, ".")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: term %q must be variable.term", fuzzy.ErrConfig, spec.line, spec.Term)
		}
		return fuzzy.Term(variable, term), nil

	case spec.Not != nil:
		operand, err := compileExpr(*spec.Not)
		if err != nil {
			return nil, err
		}
		return fuzzy.Not(operand), nil

	case len(spec.All) > 0:
		operands, err := compileAll(spec.All)
		if err != nil {
			return nil, err
		}
		return fuzzy.AllOf(operands...), nil

	case len(spec.Any) > 0:
		operands, err := compileAll(spec.Any)
		if err != nil {
			return nil, err
		}
		return fuzzy.AnyOf(operands...), nil

	default:
		return nil, fmt.Errorf("%w: line %d: empty expression", fuzzy.ErrConfig, spec.line)
	}
}

func compileAll(specs []ExprSpec) ([]fuzzy.Expr, error) {
	out := make([]fuzzy.Expr, len(specs))
	for i, s := range specs {
		e, err := compileExpr(s)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// checkRefs resolves every term of a rule against the input variables.
func checkRefs(e fuzzy.Expr, inputs map[string]*fuzzy.Variable, line int) error {
	for _, ref := range fuzzy.TermRefs(e) {
		v, known := inputs[ref.Variable]
		if !known || !v.HasTerm(ref.Term) {
			return fmt.Errorf("%w: line %d: %w: %s", fuzzy.ErrConfig, line, fuzzy.ErrUnknownTerm, ref)
		}
	}
	return nil
}
