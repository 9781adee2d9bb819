// Package sklearn converts the steps of a fitted model graph into PMML.
package sklearn

import (
	"sk2pmml/pkg/graph"
	"sk2pmml/pkg/model"
	"sk2pmml/pkg/pmml"
)

// UnknownFeatures is the width of a step that does not declare its input width.
const UnknownFeatures = -1

// Step is a node of a pipeline. OpType and DataType describe the features the step accepts.
type Step interface {
	ClassName() string
	NumberOfFeatures() int
	OpType() (pmml.OpType, error)
	DataType() (pmml.DataType, error)
}

// Transformer rewrites a feature list, registering derived fields in the encoder.
type Transformer interface {
	Step
	EncodeFeatures(features model.FeatureList, encoder *model.Encoder) (model.FeatureList, error)
}

// Estimator is the terminal step of a pipeline. EncodeModel builds the model fragment only;
// callers go through Encode to get the validation and naming protocol.
type Estimator interface {
	Step
	MiningFunction() pmml.MiningFunction
	EncodeModel(schema *model.Schema) (pmml.Model, error)
}

type Classifier interface {
	Estimator
	Classes() ([]string, error)
}

type Regressor interface {
	Estimator
	PredictionDataType() pmml.DataType
}

type Clusterer interface {
	Estimator
	NumberOfClusters() (int, error)
}

// HasHead is implemented by steps that stand for a chain of steps.
type HasHead interface {
	Head() Step
}

type HasFeatureNamesIn interface {
	FeatureNamesIn() ([]string, error)
}

// HasNode exposes the graph node a step was built from.
type HasNode interface {
	Node() *graph.Node
}

type HasPMMLName interface {
	PMMLName() (string, error)
}

// HasFeatureImportances returns nil when the estimator has no importances.
type HasFeatureImportances interface {
	FeatureImportances() ([]float64, error)
}

// HasApplyField is implemented by estimators that can report the node an instance reached.
type HasApplyField interface {
	ApplyField() string
}

// HasSegmentID is implemented by estimators whose diagnostic fields depend on their position in an ensemble.
type HasSegmentID interface {
	SetSegmentID(id int)
}

// RoleName names the most specific capability of step.
func RoleName(step Step) string {
	switch step.(type) {
	case Classifier:
		return "Classifier"
	case Regressor:
		return "Regressor"
	case Clusterer:
		return "Clusterer"
	case Estimator:
		return "Estimator"
	case Transformer:
		return "Transformer"
	}
	return "Step"
}
