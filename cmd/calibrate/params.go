package main

import (
	"github.com/pthm-cable/silk/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of tunable breeze and influence parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters, defaulting
// to the values in cfg.
func NewParamVector(cfg *config.Config) *ParamVector {
	b, inf := cfg.Breeze, cfg.Influence
	return &ParamVector{
		Specs: []ParamSpec{
			// Gust and drift mix
			{Name: "gust_weight_x", Path: "breeze.gust_weight_x", Min: 0.1, Max: 1.2, Default: b.GustWeightX},
			{Name: "gust_weight_y", Path: "breeze.gust_weight_y", Min: 0.1, Max: 1.2, Default: b.GustWeightY},
			{Name: "drift_weight_x", Path: "breeze.drift_weight_x", Min: 0.0, Max: 0.8, Default: b.DriftWeightX},
			{Name: "drift_weight_y", Path: "breeze.drift_weight_y", Min: 0.0, Max: 0.8, Default: b.DriftWeightY},
			{Name: "gust_strength_max", Path: "breeze.gust_strength_max", Min: 0.2, Max: 1.0, Default: b.GustStrengthMax},
			// Smoothing
			{Name: "pointer_alpha_x", Path: "influence.pointer_alpha_x", Min: 0.01, Max: 0.2, Default: inf.PointerAlphaX},
			{Name: "pointer_alpha_y", Path: "influence.pointer_alpha_y", Min: 0.01, Max: 0.2, Default: inf.PointerAlphaY},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes parameter values into cfg. Order matches Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	cfg.Breeze.GustWeightX = c[0]
	cfg.Breeze.GustWeightY = c[1]
	cfg.Breeze.DriftWeightX = c[2]
	cfg.Breeze.DriftWeightY = c[3]
	cfg.Breeze.GustStrengthMax = max(c[4], cfg.Breeze.GustStrengthMin)
	cfg.Influence.PointerAlphaX = c[5]
	cfg.Influence.PointerAlphaY = c[6]
}
