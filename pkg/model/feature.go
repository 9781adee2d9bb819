package model

import (
	"sk2pmml/pkg/errors"
	"sk2pmml/pkg/pmml"
)

// Feature is a typed reference to an input column or to a field derived by a prior step.
type Feature interface {
	Name() string
	OpType() pmml.OpType
	DataType() pmml.DataType
	Ref() *pmml.FieldRef
}

var (
	_ Feature = &ContinuousFeature{}
	_ Feature = &CategoricalFeature{}
	_ Feature = &StringFeature{}
	_ Feature = &ObjectFeature{}
)

type baseFeature struct {
	name     string
	dataType pmml.DataType
}

func (f *baseFeature) Name() string            { return f.name }
func (f *baseFeature) DataType() pmml.DataType { return f.dataType }
func (f *baseFeature) Ref() *pmml.FieldRef     { return pmml.NewFieldRef(f.name) }

type ContinuousFeature struct {
	baseFeature
}

func NewContinuousFeature(name string, dataType pmml.DataType) *ContinuousFeature {
	return &ContinuousFeature{baseFeature{name: name, dataType: dataType}}
}

func (f *ContinuousFeature) OpType() pmml.OpType { return pmml.OpTypeContinuous }

// CategoricalFeature is a categorical feature with an enumerated set of values.
type CategoricalFeature struct {
	baseFeature
	values []string
}

func NewCategoricalFeature(name string, dataType pmml.DataType, values []string) *CategoricalFeature {
	return &CategoricalFeature{baseFeature: baseFeature{name: name, dataType: dataType}, values: values}
}

func (f *CategoricalFeature) OpType() pmml.OpType { return pmml.OpTypeCategorical }

func (f *CategoricalFeature) Values() []string {
	return f.values
}

// StringFeature is a categorical string feature whose values are not enumerated.
type StringFeature struct {
	baseFeature
}

func NewStringFeature(name string) *StringFeature {
	return &StringFeature{baseFeature{name: name, dataType: pmml.DataTypeString}}
}

func (f *StringFeature) OpType() pmml.OpType { return pmml.OpTypeCategorical }

// ObjectFeature is passed through without interpretation.
type ObjectFeature struct {
	baseFeature
	opType pmml.OpType
}

func NewObjectFeature(name string, opType pmml.OpType, dataType pmml.DataType) *ObjectFeature {
	return &ObjectFeature{baseFeature: baseFeature{name: name, dataType: dataType}, opType: opType}
}

func (f *ObjectFeature) OpType() pmml.OpType { return f.opType }

// NewFeature creates the feature that best describes field.
func NewFeature(field pmml.Field) Feature {
	name, dataType := field.FieldName(), field.FieldDataType()
	switch field.FieldOpType() {
	case pmml.OpTypeContinuous:
		if dataType.IsNumeric() {
			return NewContinuousFeature(name, dataType)
		}
	case pmml.OpTypeCategorical:
		if df, ok := field.(*pmml.DataField); ok && len(df.Values) > 0 {
			values := make([]string, len(df.Values))
			for i, v := range df.Values {
				values[i] = v.Value
			}
			return NewCategoricalFeature(name, dataType, values)
		}
		if dataType == pmml.DataTypeString {
			return NewStringFeature(name)
		}
	}
	return NewObjectFeature(name, field.FieldOpType(), dataType)
}

// ToContinuous returns f as a continuous feature. Numeric features of another operational
// type are reinterpreted through a continuous(<name>) derived field.
func ToContinuous(f Feature, encoder *Encoder) (*ContinuousFeature, error) {
	if c, ok := f.(*ContinuousFeature); ok {
		return c, nil
	}
	if f.OpType() == pmml.OpTypeContinuous {
		return NewContinuousFeature(f.Name(), f.DataType()), nil
	}
	if !f.DataType().IsNumeric() {
		return nil, errors.SchemaContract(f.Name(), "%s feature over %s data has no continuous form", f.OpType(), f.DataType())
	}
	field, err := encoder.EnsureDerivedField(FieldName("continuous", f), pmml.OpTypeContinuous, pmml.DataTypeDouble, f.Ref())
	if err != nil {
		return nil, err
	}
	return NewContinuousFeature(field.Name, field.DataType), nil
}

// FeatureList is an ordered sequence of features. Positions correspond to the estimator input vector.
type FeatureList []Feature

func (l FeatureList) Names() []string {
	result := make([]string, len(l))
	for i, f := range l {
		result[i] = f.Name()
	}
	return result
}

// CheckUnique fails when two features share a name.
func (l FeatureList) CheckUnique(node string) error {
	seen := make(map[string]int, len(l))
	for i, f := range l {
		if j, ok := seen[f.Name()]; ok {
			return errors.SchemaContract(node, "duplicate feature %q at positions %d and %d", f.Name(), j, i)
		}
		seen[f.Name()] = i
	}
	return nil
}
