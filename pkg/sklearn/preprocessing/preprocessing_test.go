package preprocessing

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"sk2pmml/pkg/errors"
	"sk2pmml/pkg/graph"
	"sk2pmml/pkg/model"
	"sk2pmml/pkg/pmml"
	"sk2pmml/pkg/sklearn"
)

func newEncoder(t *testing.T) (*model.Encoder, model.FeatureList) {
	encoder := model.NewEncoder(zerolog.Nop(), model.Options{})
	var features model.FeatureList
	for _, column := range []struct {
		name     string
		opType   pmml.OpType
		dataType pmml.DataType
	}{
		{"x", pmml.OpTypeContinuous, pmml.DataTypeFloat},
		{"s", pmml.OpTypeCategorical, pmml.DataTypeString},
	} {
		field, err := encoder.CreateDataField(column.name, column.opType, column.dataType)
		require.NoError(t, err)
		features = append(features, model.NewFeature(field))
	}
	return encoder, features
}

func cast(t *testing.T, dtype string) sklearn.Transformer {
	transformer, err := sklearn.BuildTransformer(graph.NewNode(CastTransformerClass, map[string]interface{}{"dtype": dtype}))
	require.NoError(t, err)
	return transformer
}

func TestParseDataType(t *testing.T) {
	tests := []struct {
		dtype    string
		expected pmml.DataType
	}{
		{"str", pmml.DataTypeString},
		{"numpy.int64", pmml.DataTypeInteger},
		{"float32", pmml.DataTypeFloat},
		{"float", pmml.DataTypeDouble},
		{"Float64", pmml.DataTypeDouble},
		{"bool", pmml.DataTypeBoolean},
		{"O", pmml.DataTypeObject},
		{"double", pmml.DataTypeDouble},
	}

	for _, tt := range tests {
		dataType, err := ParseDataType("cast", tt.dtype)
		require.NoError(t, err)
		require.Equal(t, tt.expected, dataType, tt.dtype)
	}

	_, err := ParseDataType("cast", "complex128")
	require.True(t, errors.Is(err, errors.ErrInvalidConfiguration))
}

func TestCastTransformer_ToString(t *testing.T) {
	encoder, features := newEncoder(t)

	result, err := cast(t, "str").EncodeFeatures(features[:1], encoder)
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Len(t, encoder.DerivedFields(), 1)

	field := encoder.DerivedFields()[0]
	require.Equal(t, "string(x)", field.Name)
	require.Equal(t, pmml.OpTypeCategorical, field.OpType)
	require.Equal(t, pmml.DataTypeString, field.DataType)
	require.Equal(t, &pmml.FieldRef{Field: "x"}, field.Expression)

	require.IsType(t, &model.StringFeature{}, result[0])
	require.Equal(t, pmml.OpTypeCategorical, result[0].OpType())
}

func TestCastTransformer_Idempotent(t *testing.T) {
	encoder, features := newEncoder(t)
	transformer := cast(t, "str")

	once, err := transformer.EncodeFeatures(features, encoder)
	require.NoError(t, err)
	require.Len(t, once, len(features))
	require.Same(t, features[1], once[1])

	twice, err := transformer.EncodeFeatures(once, encoder)
	require.NoError(t, err)
	for i := range once {
		require.Same(t, once[i], twice[i])
	}
	require.Len(t, encoder.DerivedFields(), 1)

	// A second cast of the original features reuses the registered field.
	again, err := transformer.EncodeFeatures(features, encoder)
	require.NoError(t, err)
	require.Equal(t, once[0].Name(), again[0].Name())
	require.Len(t, encoder.DerivedFields(), 1)
}

func TestCastTransformer_Features(t *testing.T) {
	tests := []struct {
		dtype    string
		expected model.Feature
		opType   pmml.OpType
	}{
		{"int", &model.ContinuousFeature{}, pmml.OpTypeContinuous},
		{"float64", &model.ContinuousFeature{}, pmml.OpTypeContinuous},
		{"bool", &model.ObjectFeature{}, pmml.OpTypeCategorical},
		{"object", &model.ObjectFeature{}, pmml.OpTypeContinuous},
	}

	for _, tt := range tests {
		t.Run(tt.dtype, func(t *testing.T) {
			encoder, features := newEncoder(t)
			result, err := cast(t, tt.dtype).EncodeFeatures(features[:1], encoder)
			require.NoError(t, err)
			require.IsType(t, tt.expected, result[0])
			require.Equal(t, tt.opType, result[0].OpType())
		})
	}
}

func TestCastTransformer_Object(t *testing.T) {
	encoder, features := newEncoder(t)
	result, err := cast(t, "object").EncodeFeatures(features, encoder)
	require.NoError(t, err)
	require.Equal(t, []string{"object(x)", "object(s)"}, result.Names())
	for i, f := range result {
		require.Equal(t, pmml.OpTypeContinuous, f.OpType(), f.Name())
		require.Equal(t, pmml.DataTypeObject, f.DataType(), f.Name())
		require.Equal(t, pmml.OpTypeContinuous, encoder.DerivedFields()[i].OpType)
	}
}

func TestCastTransformer_Configuration(t *testing.T) {
	_, err := sklearn.Build(graph.NewNode(CastTransformerClass, nil))
	require.True(t, errors.Is(err, errors.ErrInvalidConfiguration))

	encoder, features := newEncoder(t)
	result, err := cast(t, "int").EncodeFeatures(features[1:], encoder)
	require.NoError(t, err)
	require.Equal(t, "integer(s)", result[0].Name())
}

func TestContinuousDomain(t *testing.T) {
	encoder, features := newEncoder(t)
	step, err := sklearn.BuildTransformer(graph.NewNode(ContinuousDomainClass, map[string]interface{}{"dtype": "float64"}))
	require.NoError(t, err)

	result, err := step.EncodeFeatures(features[:1], encoder)
	require.NoError(t, err)
	require.Equal(t, pmml.DataTypeDouble, result[0].DataType())
	field, _ := encoder.DataField("x")
	require.Equal(t, pmml.DataTypeDouble, field.DataType)

	derived, err := cast(t, "str").EncodeFeatures(features[:1], encoder)
	require.NoError(t, err)
	_, err = step.EncodeFeatures(derived, encoder)
	require.True(t, errors.Is(err, errors.ErrSchemaContract))
}

func TestCategoricalDomain(t *testing.T) {
	encoder, features := newEncoder(t)
	node := graph.NewNode(CategoricalDomainClass, map[string]interface{}{
		"data_values_": []interface{}{[]interface{}{"a", "b", "c"}},
	})
	step, err := sklearn.BuildTransformer(node)
	require.NoError(t, err)

	opType, err := step.OpType()
	require.NoError(t, err)
	require.Equal(t, pmml.OpTypeCategorical, opType)

	result, err := step.EncodeFeatures(features[1:], encoder)
	require.NoError(t, err)
	categorical, ok := result[0].(*model.CategoricalFeature)
	require.True(t, ok)
	require.Equal(t, []string{"a", "b", "c"}, categorical.Values())

	_, err = step.EncodeFeatures(features, encoder)
	require.True(t, errors.Is(err, errors.ErrShapeMismatch))
}

func TestCategoricalDomain_IntegerValues(t *testing.T) {
	node := graph.NewNode(CategoricalDomainClass, map[string]interface{}{
		"data_values_": []interface{}{[]interface{}{1, 2, 3}},
	})
	step, err := NewCategoricalDomain(node)
	require.NoError(t, err)
	dataType, err := step.DataType()
	require.NoError(t, err)
	require.Equal(t, pmml.DataTypeInteger, dataType)
}
