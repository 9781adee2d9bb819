package sklearn

import (
	"fmt"

	"sk2pmml/pkg/errors"
	"sk2pmml/pkg/model"
	"sk2pmml/pkg/pmml"
)

type callState int

const (
	stateConstructed callState = iota
	stateValidated
	stateEncoded
)

// EncodeCall drives one estimator through validation and encoding against a schema.
type EncodeCall struct {
	estimator Estimator
	schema    *model.Schema
	name      string
	state     callState
	model     pmml.Model
}

// NewEncodeCall prepares the encoding of estimator. name is the model name used when
// neither the fragment nor the estimator provides one.
func NewEncodeCall(estimator Estimator, schema *model.Schema, name string) *EncodeCall {
	return &EncodeCall{estimator: estimator, schema: schema, name: name}
}

// Validate checks the label and the number of features.
func (c *EncodeCall) Validate() error {
	if c.state != stateConstructed {
		return nil
	}
	if err := CheckLabel(c.estimator, c.schema.Label()); err != nil {
		return err
	}
	if err := CheckFeatures(c.estimator, c.schema.Features()); err != nil {
		return err
	}
	c.state = stateValidated
	return nil
}

// Encode builds the model fragment. Encoding twice returns the same fragment.
func (c *EncodeCall) Encode() (pmml.Model, error) {
	switch c.state {
	case stateConstructed:
		return nil, errors.SchemaContract(c.estimator.ClassName(), "encoding an estimator that has not been validated")
	case stateEncoded:
		return c.model, nil
	}

	m, err := c.estimator.EncodeModel(c.schema)
	if err != nil {
		return nil, err
	}
	attributes := m.Attributes()
	if attributes.ModelName == "" {
		if attributes.ModelName, err = c.modelName(); err != nil {
			return nil, err
		}
	}
	if attributes.AlgorithmName == "" {
		attributes.AlgorithmName = SimpleName(c.estimator.ClassName())
	}

	encoder := c.schema.Encoder()
	if e, ok := c.estimator.(HasFeatureImportances); ok {
		importances, err := e.FeatureImportances()
		if err != nil {
			return nil, err
		}
		if importances != nil {
			features := c.schema.Features()
			if len(importances) != len(features) {
				return nil, errors.ShapeMismatch(c.estimator.ClassName(), "feature importances", len(features), len(importances))
			}
			for i, f := range features {
				encoder.AddFeatureImportance(m, f, importances[i])
			}
		}
	}
	encoder.ActivateFeatures(m, c.schema.Features())

	c.model = m
	c.state = stateEncoded
	return m, nil
}

func (c *EncodeCall) modelName() (string, error) {
	if e, ok := c.estimator.(HasPMMLName); ok {
		name, err := e.PMMLName()
		if err != nil {
			return "", err
		}
		if name != "" {
			return name, nil
		}
	}
	return c.name, nil
}

// Encode validates estimator against schema and encodes it.
func Encode(estimator Estimator, schema *model.Schema, name string) (pmml.Model, error) {
	call := NewEncodeCall(estimator, schema, name)
	if err := call.Validate(); err != nil {
		return nil, err
	}
	m, err := call.Encode()
	if err != nil {
		return nil, fmt.Errorf("error encoding %s: %w", estimator.ClassName(), err)
	}
	return m, nil
}

// CheckLabel verifies that label agrees with the mining function of estimator.
func CheckLabel(estimator Estimator, label model.Label) error {
	class := estimator.ClassName()
	switch function := estimator.MiningFunction(); function {
	case pmml.MiningFunctionClassification:
		if _, ok := label.(*model.CategoricalLabel); !ok {
			return errors.SchemaContract(class, "a %s model requires a categorical label, got %s", function, describeLabel(label))
		}
	case pmml.MiningFunctionRegression:
		if _, ok := label.(*model.ContinuousLabel); !ok {
			return errors.SchemaContract(class, "a %s model requires a continuous label, got %s", function, describeLabel(label))
		}
	case pmml.MiningFunctionClustering:
		if label != nil {
			return errors.SchemaContract(class, "a %s model does not accept a label, got %s", function, describeLabel(label))
		}
	default:
		return errors.UnsupportedCapability(class, "supervised or clustering estimator", fmt.Sprintf("%q mining function", function))
	}
	return nil
}

func describeLabel(label model.Label) string {
	switch l := label.(type) {
	case nil:
		return "none"
	case *model.CategoricalLabel:
		return fmt.Sprintf("categorical label %q", l.Name())
	default:
		return fmt.Sprintf("continuous label %q", l.Name())
	}
}

// CheckFeatures verifies the number of features when the estimator declares it.
func CheckFeatures(step Step, features model.FeatureList) error {
	expected := step.NumberOfFeatures()
	if expected == UnknownFeatures || expected == len(features) {
		return nil
	}
	return &errors.Conversion{
		Kind:     errors.KindSchemaContract,
		Node:     step.ClassName(),
		Message:  "number of features",
		Expected: fmt.Sprint(expected),
		Actual:   fmt.Sprint(len(features)),
	}
}

// EncodeLabel declares the target field of estimator and returns its label, or nil for clusterers.
func EncodeLabel(estimator Estimator, name string, encoder *model.Encoder) (model.Label, error) {
	switch e := estimator.(type) {
	case Classifier:
		classes, err := e.Classes()
		if err != nil {
			return nil, err
		}
		dataType := model.InferDataType(classes)
		if _, err := encoder.CreateDataField(name, pmml.OpTypeCategorical, dataType, classes...); err != nil {
			return nil, err
		}
		return model.NewCategoricalLabel(name, dataType, classes), nil
	case Regressor:
		dataType := e.PredictionDataType()
		if _, err := encoder.CreateDataField(name, pmml.OpTypeContinuous, dataType); err != nil {
			return nil, err
		}
		return model.NewContinuousLabel(name, dataType), nil
	case Clusterer:
		return nil, nil
	}
	return nil, errors.UnsupportedCapability(estimator.ClassName(), "Classifier, Regressor or Clusterer", RoleName(estimator))
}

// EncodeProbabilityOutput declares one probability(<class>) output field per class of label.
func EncodeProbabilityOutput(m pmml.Model, label *model.CategoricalLabel) {
	output := pmml.EnsureOutput(m)
	for _, class := range label.Values() {
		output.AddField(&pmml.OutputField{
			Name:     model.FieldName("probability", class),
			OpType:   pmml.OpTypeContinuous,
			DataType: pmml.DataTypeDouble,
			Feature:  pmml.ResultFeatureProbability,
			Value:    class,
		})
	}
}

// EncodeApplyOutput declares an entity id output field that reports the node an instance reached.
// segmentID selects the segment of a MiningModel and is empty otherwise.
func EncodeApplyOutput(m pmml.Model, name, segmentID string) {
	pmml.EnsureOutput(m).AddField(&pmml.OutputField{
		Name:      name,
		OpType:    pmml.OpTypeCategorical,
		DataType:  pmml.DataTypeString,
		Feature:   pmml.ResultFeatureEntityID,
		SegmentID: segmentID,
	})
}
