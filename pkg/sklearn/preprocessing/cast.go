// Package preprocessing holds the sklearn2pmml preprocessing and decoration steps.
package preprocessing

import (
	"strings"

	"sk2pmml/pkg/graph"
	"sk2pmml/pkg/model"
	"sk2pmml/pkg/pmml"
	"sk2pmml/pkg/sklearn"
)

const CastTransformerClass = "sklearn2pmml.preprocessing.CastTransformer"

func init() {
	sklearn.Register(CastTransformerClass, func(node *graph.Node) (sklearn.Step, error) { return NewCastTransformer(node) })
}

var _ sklearn.Transformer = &CastTransformer{}

// CastTransformer changes the data type of every feature.
type CastTransformer struct {
	sklearn.BaseStep
	dataType pmml.DataType
}

func NewCastTransformer(node *graph.Node) (*CastTransformer, error) {
	base, err := sklearn.NewBaseStep(node)
	if err != nil {
		return nil, err
	}
	dtype, err := node.String("dtype")
	if err != nil {
		return nil, err
	}
	dataType, err := ParseDataType(node.Class, dtype)
	if err != nil {
		return nil, err
	}
	return &CastTransformer{BaseStep: base, dataType: dataType}, nil
}

func (t *CastTransformer) TargetDataType() pmml.DataType {
	return t.dataType
}

// EncodeFeatures returns features that already have the target data type as they are.
// Other features are replaced by a field reference of the target type named <datatype>(<feature>).
func (t *CastTransformer) EncodeFeatures(features model.FeatureList, encoder *model.Encoder) (model.FeatureList, error) {
	opType := model.CoercedOpType(t.dataType)
	result := make(model.FeatureList, len(features))
	for i, f := range features {
		if f.DataType() == t.dataType {
			result[i] = f
			continue
		}
		name := model.FieldName(strings.ToLower(string(t.dataType)), f)
		field, err := encoder.EnsureDerivedField(name, opType, t.dataType, f.Ref())
		if err != nil {
			return nil, err
		}
		result[i] = castFeature(field)
	}
	return result, nil
}

func castFeature(field *pmml.DerivedField) model.Feature {
	switch field.DataType {
	case pmml.DataTypeString:
		return model.NewStringFeature(field.Name)
	case pmml.DataTypeInteger, pmml.DataTypeFloat, pmml.DataTypeDouble:
		return model.NewContinuousFeature(field.Name, field.DataType)
	default:
		return model.NewObjectFeature(field.Name, field.OpType, field.DataType)
	}
}
