package sklearn

import (
	"strings"

	"sk2pmml/pkg/errors"
	"sk2pmml/pkg/graph"
	"sk2pmml/pkg/model"
	"sk2pmml/pkg/pmml"
)

const (
	// OptionsKey holds the converter specific options of an estimator.
	OptionsKey = "pmml_options_"
	// NameKey holds the model name an estimator should be given.
	NameKey = "pmml_name_"
)

var (
	_ Step              = &BaseStep{}
	_ HasNode           = &BaseStep{}
	_ HasFeatureNamesIn = &BaseStep{}
)

// BaseStep implements the Step queries on top of the attributes of a graph node.
// It accepts continuous double features.
type BaseStep struct {
	node             *graph.Node
	numberOfFeatures int
}

func NewBaseStep(node *graph.Node) (BaseStep, error) {
	n := UnknownFeatures
	for _, key := range []string{"n_features_in_", "n_features_"} {
		if node.Has(key) {
			var err error
			if n, err = node.Int(key); err != nil {
				return BaseStep{}, err
			}
			break
		}
	}
	return BaseStep{node: node, numberOfFeatures: n}, nil
}

func (s *BaseStep) Node() *graph.Node {
	return s.node
}

func (s *BaseStep) ClassName() string {
	return s.node.Class
}

// SimpleName is the class name without its module.
func (s *BaseStep) SimpleName() string {
	return SimpleName(s.node.Class)
}

func (s *BaseStep) NumberOfFeatures() int {
	return s.numberOfFeatures
}

func (s *BaseStep) OpType() (pmml.OpType, error) {
	return pmml.OpTypeContinuous, nil
}

func (s *BaseStep) DataType() (pmml.DataType, error) {
	return pmml.DataTypeDouble, nil
}

// FeatureNamesIn returns nil when the step was fitted without column names.
func (s *BaseStep) FeatureNamesIn() ([]string, error) {
	if !s.node.Has("feature_names_in_") {
		return nil, nil
	}
	return s.node.Strings("feature_names_in_")
}

// CheckSize fails with a shape mismatch when actual differs from expected.
func (s *BaseStep) CheckSize(what string, expected, actual int) error {
	if expected != actual {
		return errors.ShapeMismatch(s.ClassName(), what, expected, actual)
	}
	return nil
}

func SimpleName(class string) string {
	return class[strings.LastIndex(class, ".")+1:]
}

var (
	_ HasPMMLName           = &BaseEstimator{}
	_ HasFeatureImportances = &BaseEstimator{}
)

// BaseEstimator adds naming, importance and option lookups to BaseStep.
type BaseEstimator struct {
	BaseStep
}

func NewBaseEstimator(node *graph.Node) (BaseEstimator, error) {
	base, err := NewBaseStep(node)
	if err != nil {
		return BaseEstimator{}, err
	}
	return BaseEstimator{BaseStep: base}, nil
}

func (e *BaseEstimator) PMMLName() (string, error) {
	return e.node.OptionalString(NameKey, "")
}

// FeatureImportances prefers pmml_feature_importances_ over the fitted feature_importances_.
func (e *BaseEstimator) FeatureImportances() ([]float64, error) {
	for _, key := range []string{"pmml_feature_importances_", "feature_importances_"} {
		if e.node.Has(key) {
			return e.node.Floats(key)
		}
	}
	return nil, nil
}

// Option looks key up in pmml_options_. When pmml_options_ does not hold the key, an attribute
// of the same name is used if the fallback policy of the run allows it.
func (e *BaseEstimator) Option(encoder *model.Encoder, key string, def interface{}) (interface{}, error) {
	if e.node.Has(OptionsKey) {
		options, err := e.node.Dict(OptionsKey)
		if err != nil {
			return nil, err
		}
		if v, ok := options[key]; ok {
			return v, nil
		}
	}
	v, ok := e.node.Get(key)
	if !ok {
		return def, nil
	}
	if encoder.Options().OptionFallback == model.FallbackStrict {
		return nil, errors.InvalidConfiguration(e.ClassName(), "option %q is not set in %s, refusing to fall back to the %q attribute", key, OptionsKey, key)
	}
	encoder.Logger().Warn().Str("class", e.ClassName()).Str("option", key).
		Msgf("Option %q is not set in %q, falling back to the surrogate attribute %q", key, OptionsKey, key)
	return v, nil
}

func (e *BaseEstimator) BoolOption(encoder *model.Encoder, key string, def bool) (bool, error) {
	v, err := e.Option(encoder, key, def)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, errors.InvalidConfiguration(e.ClassName(), "option %q: expected a boolean, got %v", key, v)
	}
	return b, nil
}
