package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sk2pmml/pkg/pmml"
)

func TestCategoryMap(t *testing.T) {
	m := NewCategoryMap()
	require.Equal(t, 0, m.ValueFor("b"))
	require.Equal(t, 1, m.ValueFor("a"))
	require.Equal(t, 0, m.ValueFor("b"))
	m.Set("c", 7)
	m.Set("a", 3)

	require.Equal(t, 3, m.Size())
	require.Equal(t, []string{"b", "a", "c"}, m.Values())
	code, ok := m.Code("a")
	require.True(t, ok)
	require.Equal(t, 3, code)
	require.Equal(t, "c", m.CodeToValue[7])
	_, ok = m.CodeToValue[1]
	require.False(t, ok)
}

func TestCheckTypes(t *testing.T) {
	tests := []struct {
		opType   pmml.OpType
		dataType pmml.DataType
		valid    bool
	}{
		{pmml.OpTypeCategorical, pmml.DataTypeString, true},
		{pmml.OpTypeCategorical, pmml.DataTypeObject, true},
		{pmml.OpTypeCategorical, pmml.DataTypeInteger, true},
		{pmml.OpTypeCategorical, pmml.DataTypeFloat, false},
		{pmml.OpTypeOrdinal, pmml.DataTypeDouble, false},
		{pmml.OpTypeContinuous, pmml.DataTypeFloat, true},
		{pmml.OpTypeContinuous, pmml.DataTypeObject, true},
		{pmml.OpTypeContinuous, pmml.DataTypeBoolean, false},
		{pmml.OpTypeContinuous, pmml.DataTypeString, false},
	}

	for _, tt := range tests {
		err := CheckTypes("f", tt.opType, tt.dataType)
		require.Equal(t, tt.valid, err == nil, "%s over %s", tt.opType, tt.dataType)
	}
}

func TestCoercedOpType(t *testing.T) {
	require.Equal(t, pmml.OpTypeCategorical, CoercedOpType(pmml.DataTypeString))
	require.Equal(t, pmml.OpTypeCategorical, CoercedOpType(pmml.DataTypeBoolean))
	require.Equal(t, pmml.OpTypeContinuous, CoercedOpType(pmml.DataTypeObject))
	require.Equal(t, pmml.OpTypeContinuous, CoercedOpType(pmml.DataTypeInteger))
	require.Equal(t, pmml.OpTypeContinuous, CoercedOpType(pmml.DataTypeFloat))
}

func TestFieldName(t *testing.T) {
	require.Equal(t, "string(x)", FieldName("string", NewContinuousFeature("x", pmml.DataTypeDouble)))
	require.Equal(t, "base2(c, 3)", FieldName("base2", NewStringFeature("c"), 3))
	require.Equal(t, "nodeId()", FieldName("nodeId"))
}

func TestFeatureList_CheckUnique(t *testing.T) {
	list := FeatureList{NewStringFeature("a"), NewStringFeature("b")}
	require.NoError(t, list.CheckUnique("node"))
	require.Equal(t, []string{"a", "b"}, list.Names())

	list = append(list, NewContinuousFeature("a", pmml.DataTypeDouble))
	require.Error(t, list.CheckUnique("node"))
}

func TestNewFeature(t *testing.T) {
	categorical := &pmml.DataField{Name: "c", OpType: pmml.OpTypeCategorical, DataType: pmml.DataTypeString}
	_, ok := NewFeature(categorical).(*StringFeature)
	require.True(t, ok)

	categorical.AddValues("a", "b", "a")
	feature, ok := NewFeature(categorical).(*CategoricalFeature)
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, feature.Values())

	continuous := &pmml.DerivedField{Name: "d", OpType: pmml.OpTypeContinuous, DataType: pmml.DataTypeFloat}
	_, ok = NewFeature(continuous).(*ContinuousFeature)
	require.True(t, ok)

	boolean := &pmml.DerivedField{Name: "b", OpType: pmml.OpTypeCategorical, DataType: pmml.DataTypeBoolean}
	object, ok := NewFeature(boolean).(*ObjectFeature)
	require.True(t, ok)
	require.Equal(t, pmml.OpTypeCategorical, object.OpType())

	opaque := &pmml.DerivedField{Name: "o", OpType: pmml.OpTypeContinuous, DataType: pmml.DataTypeObject}
	object, ok = NewFeature(opaque).(*ObjectFeature)
	require.True(t, ok)
	require.Equal(t, pmml.OpTypeContinuous, object.OpType())
}

func TestCategoricalLabel(t *testing.T) {
	label := NewCategoricalLabel("y", pmml.DataTypeString, []string{"setosa", "versicolor", "virginica"})
	require.Equal(t, 3, label.Size())
	require.Equal(t, "versicolor", label.Value(1))
	require.Equal(t, []string{"setosa", "versicolor", "virginica"}, label.Values())
}
