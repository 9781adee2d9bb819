package categoryencoders

import (
	"strconv"

	"sk2pmml/pkg/graph"
	"sk2pmml/pkg/model"
	"sk2pmml/pkg/pmml"
	"sk2pmml/pkg/sklearn"
)

const OrdinalEncoderClass = "category_encoders.ordinal.OrdinalEncoder"

func init() {
	sklearn.Register(OrdinalEncoderClass, func(node *graph.Node) (sklearn.Step, error) { return NewOrdinalEncoder(node) })
}

var _ sklearn.Transformer = &OrdinalEncoder{}

// OrdinalEncoder replaces every category by its integer code.
type OrdinalEncoder struct {
	categoryEncoder
	mappings []model.OrdinalMapping
}

func NewOrdinalEncoder(node *graph.Node) (*OrdinalEncoder, error) {
	e, err := newCategoryEncoder(node)
	if err != nil {
		return nil, err
	}
	if err := checkPolicy(node.Class, "handle_missing", e.handleMissing, HandleError, HandleValue); err != nil {
		return nil, err
	}
	if err := checkPolicy(node.Class, "handle_unknown", e.handleUnknown, HandleError, HandleValue); err != nil {
		return nil, err
	}
	mappings, err := parseMappings(node)
	if err != nil {
		return nil, err
	}
	return &OrdinalEncoder{categoryEncoder: e, mappings: mappings}, nil
}

func (e *OrdinalEncoder) Mappings() []model.OrdinalMapping {
	return e.mappings
}

func (e *OrdinalEncoder) EncodeFeatures(features model.FeatureList, encoder *model.Encoder) (model.FeatureList, error) {
	if err := e.checkSizes(features, e.mappings); err != nil {
		return nil, err
	}
	result := make(model.FeatureList, len(features))
	for i, f := range features {
		categories := e.mappings[i].Categories
		expression := pmml.NewMapValues(f.Name(), pmml.DataTypeInteger)
		codes := make([]string, 0, categories.Size())
		for _, value := range categories.Values() {
			code, _ := categories.Code(value)
			expression.AddMapping(value, strconv.Itoa(code))
			codes = append(codes, strconv.Itoa(code))
		}
		if e.handleMissing == HandleValue {
			expression.MapMissingTo = strconv.Itoa(MissingCode)
		}
		if e.handleUnknown == HandleValue {
			expression.DefaultValue = strconv.Itoa(UnknownCode)
		}
		field, err := encoder.EnsureDerivedField(model.FieldName("ordinal", f), pmml.OpTypeCategorical, pmml.DataTypeInteger, expression)
		if err != nil {
			return nil, err
		}
		result[i] = model.NewCategoricalFeature(field.Name, pmml.DataTypeInteger, codes)
	}
	return result, nil
}

// checkSizes verifies that features, declared columns and mappings correspond positionally.
func (e *categoryEncoder) checkSizes(features model.FeatureList, mappings []model.OrdinalMapping) error {
	if err := e.CheckSize("columns", len(features), len(e.cols)); err != nil {
		return err
	}
	return e.CheckSize("ordinal mappings", len(features), len(mappings))
}
