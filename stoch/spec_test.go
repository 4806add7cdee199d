package stoch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSpec(t *testing.T) {
	tests := []struct {
		name string
		spec DistSpec
		want Family
	}{
		{"normal", DistSpec{Type: "normal", Params: map[string]float64{"mean": 3, "stdDev": 1}}, FamilyNormal},
		{"uniform", DistSpec{Type: "uniform", Params: map[string]float64{"min": 0, "max": 2}}, FamilyUniform},
		{"exponential", DistSpec{Type: "exponential", Params: map[string]float64{"mean": 4}}, FamilyExponential},
		{"bernoulli", DistSpec{Type: "bernoulli", Params: map[string]float64{"p": 0.4}}, FamilyBernoulli},
		{"poisson", DistSpec{Type: "poisson", Params: map[string]float64{"lambda": 2}}, FamilyPoisson},
		{"geometric", DistSpec{Type: "geometric", Params: map[string]float64{"p": 0.5}}, FamilyGeometric},
		{"negative binomial", DistSpec{Type: "negative_binomial", Params: map[string]float64{"n": 3, "p": 0.5}}, FamilyNegativeBinomial},
		{"triangular", DistSpec{Type: "triangular", Params: map[string]float64{"min": 1, "mode": 2, "max": 4}}, FamilyTriangular},
		{"weibull", DistSpec{Type: "weibull", Params: map[string]float64{"shape": 1.5, "scale": 2}}, FamilyWeibull},
		{"fixed", DistSpec{Type: "fixed", Params: map[string]float64{"value": 9}}, FamilyFixedContinuous},
		{"custom categorical", DistSpec{Type: "custom_categorical", Probs: []float64{0.5, 0.5}}, FamilyCustomCategorical},
		{"uniform discrete", DistSpec{Type: "uniform_discrete", Params: map[string]float64{"k": 6}}, FamilyUniformDiscrete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := FromSpec(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Family())
		})
	}
}

func TestFromSpec_Errors(t *testing.T) {
	tests := []struct {
		name string
		spec DistSpec
	}{
		{"unknown type", DistSpec{Type: "zipf"}},
		{"missing param", DistSpec{Type: "normal", Params: map[string]float64{"mean": 3}}},
		{"invalid param", DistSpec{Type: "exponential", Params: map[string]float64{"mean": -1}}},
		{"categorical without probs", DistSpec{Type: "custom_categorical"}},
		{"categorical bad pmf", DistSpec{Type: "custom_categorical", Probs: []float64{0.5, 0.2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromSpec(tt.spec)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParam)
		})
	}
}

func TestLoadSpecFile(t *testing.T) {
	doc := `
owner: Epidemic
items:
  contactRate:
    type: exponential
    params:
      mean: 3.5
  severity:
    type: custom_categorical
    probs: [0.7, 0.2, 0.1]
`
	path := filepath.Join(t.TempDir(), "items.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	spec, err := LoadSpecFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Epidemic", spec.Owner)
	require.Len(t, spec.Items, 2)
	assert.Equal(t, 3.5, spec.Items["contactRate"].Params["mean"])
}

func TestLoadSpecFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		doc  string
	}{
		{"no owner", "items:\n  x:\n    type: fixed\n    params: {value: 1}\n"},
		{"no items", "owner: M\n"},
		{"bad item", "owner: M\nitems:\n  x:\n    type: zipf\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.doc), 0o644))
			_, err := LoadSpecFile(path)
			assert.Error(t, err)
		})
	}
}
