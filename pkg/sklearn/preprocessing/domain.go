package preprocessing

import (
	"sk2pmml/pkg/errors"
	"sk2pmml/pkg/graph"
	"sk2pmml/pkg/model"
	"sk2pmml/pkg/pmml"
	"sk2pmml/pkg/sklearn"
)

const (
	ContinuousDomainClass  = "sklearn2pmml.decoration.ContinuousDomain"
	CategoricalDomainClass = "sklearn2pmml.decoration.CategoricalDomain"
)

func init() {
	sklearn.Register(ContinuousDomainClass, func(node *graph.Node) (sklearn.Step, error) { return NewContinuousDomain(node) })
	sklearn.Register(CategoricalDomainClass, func(node *graph.Node) (sklearn.Step, error) { return NewCategoricalDomain(node) })
}

var (
	_ sklearn.Transformer = &ContinuousDomain{}
	_ sklearn.Transformer = &CategoricalDomain{}
)

// domain redeclares the input fields it is applied to.
type domain struct {
	sklearn.BaseStep
	dataType pmml.DataType
}

func newDomain(node *graph.Node) (domain, error) {
	base, err := sklearn.NewBaseStep(node)
	if err != nil {
		return domain{}, err
	}
	d := domain{BaseStep: base}
	if node.Has("dtype") {
		dtype, err := node.String("dtype")
		if err != nil {
			return domain{}, err
		}
		if d.dataType, err = ParseDataType(node.Class, dtype); err != nil {
			return domain{}, err
		}
	}
	return d, nil
}

func (d *domain) dataField(f model.Feature, encoder *model.Encoder) (*pmml.DataField, error) {
	field, ok := encoder.DataField(f.Name())
	if !ok {
		return nil, errors.SchemaContract(d.ClassName(), "feature %q is not an input field", f.Name())
	}
	return field, nil
}

func (d *domain) retype(field *pmml.DataField, opType pmml.OpType, dataType pmml.DataType) error {
	if err := model.CheckTypes(field.Name, opType, dataType); err != nil {
		return err
	}
	field.OpType = opType
	field.DataType = dataType
	return nil
}

// ContinuousDomain declares its input fields continuous.
type ContinuousDomain struct {
	domain
}

func NewContinuousDomain(node *graph.Node) (*ContinuousDomain, error) {
	d, err := newDomain(node)
	if err != nil {
		return nil, err
	}
	if d.dataType == "" {
		d.dataType = pmml.DataTypeDouble
	}
	return &ContinuousDomain{d}, nil
}

func (d *ContinuousDomain) DataType() (pmml.DataType, error) {
	return d.dataType, nil
}

func (d *ContinuousDomain) EncodeFeatures(features model.FeatureList, encoder *model.Encoder) (model.FeatureList, error) {
	result := make(model.FeatureList, len(features))
	for i, f := range features {
		field, err := d.dataField(f, encoder)
		if err != nil {
			return nil, err
		}
		if err := d.retype(field, pmml.OpTypeContinuous, d.dataType); err != nil {
			return nil, err
		}
		result[i] = model.NewFeature(field)
	}
	return result, nil
}

// CategoricalDomain declares its input fields categorical with the values seen during fitting.
type CategoricalDomain struct {
	domain
	values [][]string
}

func NewCategoricalDomain(node *graph.Node) (*CategoricalDomain, error) {
	d, err := newDomain(node)
	if err != nil {
		return nil, err
	}
	result := &CategoricalDomain{domain: d}
	if node.Has("data_values_") {
		if result.values, err = node.ValueLists("data_values_"); err != nil {
			return nil, err
		}
	}
	if result.dataType == "" {
		var all []string
		for _, values := range result.values {
			all = append(all, values...)
		}
		result.dataType = model.InferDataType(all)
	}
	return result, nil
}

func (d *CategoricalDomain) OpType() (pmml.OpType, error) {
	return pmml.OpTypeCategorical, nil
}

func (d *CategoricalDomain) DataType() (pmml.DataType, error) {
	return d.dataType, nil
}

func (d *CategoricalDomain) EncodeFeatures(features model.FeatureList, encoder *model.Encoder) (model.FeatureList, error) {
	if d.values != nil {
		if err := d.CheckSize("data values", len(features), len(d.values)); err != nil {
			return nil, err
		}
	}
	result := make(model.FeatureList, len(features))
	for i, f := range features {
		field, err := d.dataField(f, encoder)
		if err != nil {
			return nil, err
		}
		if err := d.retype(field, pmml.OpTypeCategorical, d.dataType); err != nil {
			return nil, err
		}
		if d.values != nil {
			field.AddValues(d.values[i]...)
		}
		result[i] = model.NewFeature(field)
	}
	return result, nil
}
