// Package catalog loads the crop catalog (input variables, suitability
// variable and per-crop rules) from YAML and compiles it into an evaluator.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/quentinrf/plant-monitor/services/crop-service/internal/domain"
)

//go:embed default.yaml
var defaultCatalog []byte

// Catalog is the YAML document describing all fuzzy configuration.
type Catalog struct {
	Inputs      InputsSpec   `yaml:"inputs"`
	Suitability VariableSpec `yaml:"suitability"`
	Crops       []CropSpec   `yaml:"crops"`
}

// InputsSpec holds the three sensor variables
type InputsSpec struct {
	PH          VariableSpec `yaml:"ph"`
	Temperature VariableSpec `yaml:"temperature"`
	Humidity    VariableSpec `yaml:"humidity"`
}

// UniverseSpec is a sampled domain
type UniverseSpec struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// VariableSpec is a linguistic variable
type VariableSpec struct {
	Universe UniverseSpec `yaml:"universe"`
	Terms    []TermSpec   `yaml:"terms"`
}

// TermSpec is one membership function. Points has 3 entries for a
// triangle and 4 for a trapezoid.
type TermSpec struct {
	Name   string    `yaml:"name"`
	Shape  string    `yaml:"shape"`
	Points []float64 `yaml:"points"`
}

// CropSpec is one candidate crop
type CropSpec struct {
	Name    string                   `yaml:"name"`
	Optimal domain.GrowingConditions `yaml:"optimal"`
	Rules   []RuleSpec               `yaml:"rules"`
}

// RuleSpec maps an antecedent to a suitability term
type RuleSpec struct {
	When ExprSpec `yaml:"when"`
	Then string   `yaml:"then"`
}

// ExprSpec is an antecedent in YAML form. Exactly one field is set:
//
//	ph.neutral               # Term
//	{all: [a, b, c]}         # a AND b AND c
//	{any: [a, b]}            # a OR b
//	{not: a}                 # NOT a
type ExprSpec struct {
	Term string
	All  []ExprSpec
	Any  []ExprSpec
	Not  *ExprSpec

	line int
}

// UnmarshalYAML accepts either a scalar term reference or a one-key mapping.
func (s *ExprSpec) UnmarshalYAML(node *yaml.Node) error {
	s.line = node.Line
	if node.Kind == yaml.ScalarNode {
		s.Term = strings.TrimSpace(node.Value)
		if s.Term == "" {
			return fmt.Errorf("line %d: empty term reference", node.Line)
		}
		return nil
	}

	var raw struct {
		All []ExprSpec `yaml:"all"`
		Any []ExprSpec `yaml:"any"`
		Not *ExprSpec  `yaml:"not"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	set := 0
	for _, ok := range []bool{raw.All != nil, raw.Any != nil, raw.Not != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("line %d: expression needs exactly one of all, any or not", node.Line)
	}

	s.All, s.Any, s.Not = raw.All, raw.Any, raw.Not
	return nil
}

// Parse decodes a catalog document. Unknown fields are rejected.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return &c, nil
}

// Load reads a catalog file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Default returns the embedded food crop catalog
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// LoadOrDefault reads path, or the embedded catalog when path is empty.
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}
