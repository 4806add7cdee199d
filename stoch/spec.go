package stoch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DistSpec is the declarative form of one distribution, loaded from YAML.
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
	Probs  []float64          `yaml:"probs,omitempty"`
}

// SpecFile is a YAML file declaring a model component's stochastic items:
// the owning class simple name plus one DistSpec per item id. The CLI and
// tests register these against a run to audit override resolution and smoke
// the sampling path.
type SpecFile struct {
	Owner string              `yaml:"owner"`
	Items map[string]DistSpec `yaml:"items"`
}

// LoadSpecFile reads and validates a SpecFile.
func LoadSpecFile(path string) (*SpecFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec: %w", err)
	}
	var spec SpecFile
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("spec %s: %w", path, err)
	}
	if spec.Owner == "" {
		return nil, invalidParamf("spec %s declares no owner", path)
	}
	if len(spec.Items) == 0 {
		return nil, invalidParamf("spec %s declares no items", path)
	}
	for id, ds := range spec.Items {
		if _, err := FromSpec(ds); err != nil {
			return nil, fmt.Errorf("spec %s, item %s: %w", path, id, err)
		}
	}
	return &spec, nil
}

// requireParams checks that all required keys exist in a params map.
func requireParams(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return invalidParamf("distribution requires parameter %q", k)
		}
	}
	return nil
}

// FromSpec constructs an unregistered Distribution from its declarative
// form. Type names match the Family spellings.
func FromSpec(spec DistSpec) (Distribution, error) {
	switch spec.Type {
	case FamilyNormal.String():
		if err := requireParams(spec.Params, "mean", "stdDev"); err != nil {
			return nil, err
		}
		return NewNormal(spec.Params["mean"], spec.Params["stdDev"])

	case FamilyUniform.String():
		if err := requireParams(spec.Params, "min", "max"); err != nil {
			return nil, err
		}
		return NewUniform(spec.Params["min"], spec.Params["max"])

	case FamilyExponential.String():
		if err := requireParams(spec.Params, "mean"); err != nil {
			return nil, err
		}
		return NewExponential(spec.Params["mean"])

	case FamilyBernoulli.String():
		if err := requireParams(spec.Params, "p"); err != nil {
			return nil, err
		}
		return NewBernoulli(spec.Params["p"])

	case FamilyPoisson.String():
		if err := requireParams(spec.Params, "lambda"); err != nil {
			return nil, err
		}
		return NewPoisson(spec.Params["lambda"])

	case FamilyGeometric.String():
		if err := requireParams(spec.Params, "p"); err != nil {
			return nil, err
		}
		return NewGeometric(spec.Params["p"])

	case FamilyNegativeBinomial.String():
		if err := requireParams(spec.Params, "n", "p"); err != nil {
			return nil, err
		}
		return NewNegativeBinomial(int(spec.Params["n"]), spec.Params["p"])

	case FamilyTriangular.String():
		if err := requireParams(spec.Params, "min", "mode", "max"); err != nil {
			return nil, err
		}
		return NewTriangular(spec.Params["min"], spec.Params["mode"], spec.Params["max"])

	case FamilyWeibull.String():
		if err := requireParams(spec.Params, "shape", "scale"); err != nil {
			return nil, err
		}
		return NewWeibull(spec.Params["shape"], spec.Params["scale"])

	case FamilyFixedContinuous.String():
		if err := requireParams(spec.Params, "value"); err != nil {
			return nil, err
		}
		return NewFixedContinuous(spec.Params["value"]), nil

	case FamilyCustomCategorical.String():
		if len(spec.Probs) == 0 {
			return nil, invalidParamf("custom categorical requires a probs list")
		}
		return NewCustomCategorical(spec.Probs...)

	case FamilyUniformDiscrete.String():
		if err := requireParams(spec.Params, "k"); err != nil {
			return nil, err
		}
		return NewUniformDiscrete(int(spec.Params["k"]))

	default:
		return nil, invalidParamf("unknown distribution type %q", spec.Type)
	}
}
