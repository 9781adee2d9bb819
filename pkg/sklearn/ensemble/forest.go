// Package ensemble converts tree ensembles into segmented MiningModels.
package ensemble

import (
	"strconv"

	"sk2pmml/pkg/errors"
	"sk2pmml/pkg/graph"
	"sk2pmml/pkg/model"
	"sk2pmml/pkg/pmml"
	"sk2pmml/pkg/sklearn"
	_ "sk2pmml/pkg/sklearn/tree"
)

const (
	RandomForestClassifierClass = "sklearn.ensemble._forest.RandomForestClassifier"
	RandomForestRegressorClass  = "sklearn.ensemble._forest.RandomForestRegressor"
)

func init() {
	classifier := func(node *graph.Node) (sklearn.Step, error) { return NewRandomForestClassifier(node) }
	regressor := func(node *graph.Node) (sklearn.Step, error) { return NewRandomForestRegressor(node) }
	sklearn.Register(RandomForestClassifierClass, classifier)
	sklearn.Register("sklearn.ensemble.forest.RandomForestClassifier", classifier)
	sklearn.Register(RandomForestRegressorClass, regressor)
	sklearn.Register("sklearn.ensemble.forest.RandomForestRegressor", regressor)
}

var (
	_ sklearn.Classifier = &RandomForestClassifier{}
	_ sklearn.Regressor  = &RandomForestRegressor{}
)

// Member is an estimator that can take part in an ensemble.
type Member interface {
	sklearn.Estimator
	sklearn.HasSegmentID
	sklearn.HasApplyField
}

type forest struct {
	sklearn.BaseEstimator
	estimators []Member
}

func newForest(node *graph.Node) (forest, error) {
	base, err := sklearn.NewBaseEstimator(node)
	if err != nil {
		return forest{}, err
	}
	children, err := node.Children("estimators_")
	if err != nil {
		return forest{}, err
	}
	if len(children) == 0 {
		return forest{}, errors.InvalidConfiguration(node.Class, "ensemble without estimators")
	}
	f := forest{BaseEstimator: base}
	for i, child := range children {
		estimator, err := sklearn.BuildEstimator(child)
		if err != nil {
			return forest{}, err
		}
		member, ok := estimator.(Member)
		if !ok {
			return forest{}, errors.UnsupportedCapability(child.Class, "ensemble member", sklearn.RoleName(estimator))
		}
		member.SetSegmentID(i + 1)
		f.estimators = append(f.estimators, member)
	}
	return f, nil
}

func (f *forest) Estimators() []Member {
	return f.estimators
}

// DataType is float, the type trees compare their inputs in.
func (f *forest) DataType() (pmml.DataType, error) {
	return pmml.DataTypeFloat, nil
}

// encodeSegments encodes every member against schema and combines them with method.
func (f *forest) encodeSegments(schema *model.Schema, function pmml.MiningFunction, method pmml.MultipleModelMethod) (*pmml.MiningModel, error) {
	encoder := schema.Encoder()
	// compact and numeric are validated only: members always encode as binary splits.
	for _, key := range []string{"compact", "numeric"} {
		if _, err := f.BoolOption(encoder, key, true); err != nil {
			return nil, err
		}
	}
	winnerID, err := f.BoolOption(encoder, "winner_id", false)
	if err != nil {
		return nil, err
	}

	segmentation := &pmml.Segmentation{MultipleModelMethod: method}
	for i, estimator := range f.estimators {
		if estimator.MiningFunction() != function {
			return nil, errors.UnsupportedCapability(estimator.ClassName(), string(function)+" estimator", string(estimator.MiningFunction())+" estimator")
		}
		m, err := sklearn.Encode(estimator, schema, "")
		if err != nil {
			return nil, err
		}
		segmentation.Segments = append(segmentation.Segments, &pmml.Segment{
			ID:        strconv.Itoa(i + 1),
			Predicate: &pmml.True{},
			Model:     m,
		})
	}
	m := pmml.NewMiningModel(function, schema.TargetName(), segmentation)
	if winnerID {
		for i, estimator := range f.estimators {
			sklearn.EncodeApplyOutput(m, estimator.ApplyField(), strconv.Itoa(i+1))
		}
	}
	encoder.Logger().Debug().Str("class", f.ClassName()).Int("segments", len(segmentation.Segments)).Msg("Encoded ensemble")
	return m, nil
}

// RandomForestClassifier averages the class probabilities of its trees.
type RandomForestClassifier struct {
	forest
}

func NewRandomForestClassifier(node *graph.Node) (*RandomForestClassifier, error) {
	f, err := newForest(node)
	if err != nil {
		return nil, err
	}
	return &RandomForestClassifier{f}, nil
}

func (c *RandomForestClassifier) MiningFunction() pmml.MiningFunction {
	return pmml.MiningFunctionClassification
}

func (c *RandomForestClassifier) Classes() ([]string, error) {
	return c.Node().Values("classes_")
}

func (c *RandomForestClassifier) EncodeModel(schema *model.Schema) (pmml.Model, error) {
	label, ok := schema.Label().(*model.CategoricalLabel)
	if !ok {
		return nil, errors.SchemaContract(c.ClassName(), "expected a categorical label")
	}
	m, err := c.encodeSegments(schema, pmml.MiningFunctionClassification, pmml.MultipleModelMethodAverage)
	if err != nil {
		return nil, err
	}
	sklearn.EncodeProbabilityOutput(m, label)
	return m, nil
}

// RandomForestRegressor averages the predictions of its trees.
type RandomForestRegressor struct {
	forest
}

func NewRandomForestRegressor(node *graph.Node) (*RandomForestRegressor, error) {
	f, err := newForest(node)
	if err != nil {
		return nil, err
	}
	return &RandomForestRegressor{f}, nil
}

func (r *RandomForestRegressor) MiningFunction() pmml.MiningFunction {
	return pmml.MiningFunctionRegression
}

func (r *RandomForestRegressor) PredictionDataType() pmml.DataType {
	return pmml.DataTypeDouble
}

func (r *RandomForestRegressor) EncodeModel(schema *model.Schema) (pmml.Model, error) {
	m, err := r.encodeSegments(schema, pmml.MiningFunctionRegression, pmml.MultipleModelMethodAverage)
	if err != nil {
		return nil, err
	}
	return m, nil
}
