package categoryencoders

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"sk2pmml/pkg/errors"
	"sk2pmml/pkg/graph"
	"sk2pmml/pkg/model"
	"sk2pmml/pkg/pmml"
	"sk2pmml/pkg/sklearn"
)

// letters are categories a, b, c, ... with codes starting at first.
func letters(n, first int) []interface{} {
	pairs := make([]interface{}, n)
	for i := 0; i < n; i++ {
		pairs[i] = []interface{}{string(rune('a' + i)), first + i}
	}
	return pairs
}

func ordinalEncoder(cols []string, mappings ...[]interface{}) map[string]interface{} {
	list := make([]interface{}, len(mappings))
	columns := make([]interface{}, len(cols))
	for i, col := range cols {
		columns[i] = col
		list[i] = map[string]interface{}{"col": col, "mapping": mappings[i]}
	}
	return map[string]interface{}{
		graph.ClassKey:   OrdinalEncoderClass,
		"cols":           columns,
		"handle_missing": "value",
		"handle_unknown": "value",
		"mapping":        list,
	}
}

func baseNNode(base int, attributes map[string]interface{}, mappings ...[]interface{}) *graph.Node {
	cols := []string{"c", "d"}[:len(mappings)]
	columns := make([]interface{}, len(cols))
	for i, col := range cols {
		columns[i] = col
	}
	n := graph.NewNode(BaseNEncoderClass, map[string]interface{}{
		"base":            base,
		"cols":            columns,
		"handle_missing":  "error",
		"handle_unknown":  "error",
		"ordinal_encoder": ordinalEncoder(cols, mappings...),
	})
	for k, v := range attributes {
		n.Put(k, v)
	}
	return n
}

func newEncoder(t *testing.T, names ...string) (*model.Encoder, model.FeatureList) {
	encoder := model.NewEncoder(zerolog.Nop(), model.Options{})
	var features model.FeatureList
	for _, name := range names {
		field, err := encoder.CreateDataField(name, pmml.OpTypeCategorical, pmml.DataTypeString)
		require.NoError(t, err)
		features = append(features, model.NewFeature(field))
	}
	return encoder, features
}

func encode(t *testing.T, n *graph.Node, names ...string) (*model.Encoder, model.FeatureList, error) {
	step, err := sklearn.BuildTransformer(n)
	require.NoError(t, err)
	encoder, features := newEncoder(t, names...)
	result, err := step.EncodeFeatures(features, encoder)
	return encoder, result, err
}

func TestRequiredDigits(t *testing.T) {
	tests := []struct {
		k, base, expected int
	}{
		{5, 2, 4},
		{4, 2, 3},
		{1, 2, 1},
		{2, 2, 2},
		{10, 3, 4},
		{35, 36, 2},
		{3, 1, 4},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, RequiredDigits(tt.k, tt.base), "k=%d base=%d", tt.k, tt.base)
	}

	for base := 2; base <= 36; base++ {
		for k := 1; k <= 200; k++ {
			d := RequiredDigits(k, base)
			require.GreaterOrEqual(t, math.Pow(float64(base), float64(d-1)), float64(k), "k=%d base=%d", k, base)
		}
	}
}

func TestEncodeValues(t *testing.T) {
	categories := model.NewCategoryMap()
	for i := 0; i < 5; i++ {
		categories.Set(string(rune('a'+i)), i)
	}
	encoded := EncodeValues(categories, 2, 4)
	require.Equal(t, "0011", encoded["d"])
	require.Equal(t, "0100", encoded["e"])

	categories.Set("z", 35)
	require.Equal(t, "0z", EncodeValues(categories, 36, 2)["z"])
}

func TestBaseNEncoder_Digits(t *testing.T) {
	encoder, result, err := encode(t, baseNNode(2, nil, letters(5, 0)), "c")
	require.NoError(t, err)

	names := []string{"base2(c, 0)", "base2(c, 1)", "base2(c, 2)", "base2(c, 3)"}
	require.Empty(t, cmp.Diff(names, result.Names()))
	require.Len(t, encoder.DerivedFields(), 4)

	first := result[0].(*BaseNFeature)
	require.Equal(t, map[int][]string{0: {"a", "b", "c", "d", "e"}}, first.Groups)
	second := result[1].(*BaseNFeature)
	require.Equal(t, map[int][]string{0: {"a", "b", "c", "d"}, 1: {"e"}}, second.Groups)
	require.Equal(t, []string{"0", "1"}, second.Values())
	require.Equal(t, pmml.OpTypeCategorical, second.OpType())
	require.Equal(t, pmml.DataTypeInteger, second.DataType())

	field := encoder.DerivedFields()[1]
	expression := field.Expression.(*pmml.MapValues)
	require.Equal(t, []string{"c"}, expression.FieldRefs())
	require.Len(t, expression.InlineTable.Rows, 5)
	require.Empty(t, expression.MapMissingTo)
}

func TestBaseNEncoder_RoundTrip(t *testing.T) {
	for _, base := range []int{2, 3, 4, 7, 16, 36} {
		for _, k := range []int{1, 2, 5, 9, 37, 100} {
			_, result, err := encode(t, baseNNode(base, nil, letters(k, 1)), "c")
			require.NoError(t, err)
			d := RequiredDigits(k, base)
			require.Len(t, result, d)

			decoded := map[string]int{}
			for _, f := range result {
				feature := f.(*BaseNFeature)
				weight := int(math.Pow(float64(base), float64(d-1-feature.Position)))
				for digit, categories := range feature.Groups {
					for _, category := range categories {
						decoded[category] += digit * weight
					}
				}
			}
			require.Len(t, decoded, k)
			for i := 0; i < k; i++ {
				require.Equal(t, i+1, decoded[string(rune('a'+i))], "base=%d k=%d", base, k)
			}
		}
	}
}

func TestBaseNEncoder_DropCols(t *testing.T) {
	dropCols := []interface{}{"c_0", "d_1"}

	_, result, err := encode(t, baseNNode(2, map[string]interface{}{"drop_invariant": true, "drop_cols": dropCols}, letters(3, 1), letters(3, 1)), "c", "d")
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([]string{"base2(c, 1)", "base2(c, 2)", "base2(d, 0)", "base2(d, 2)"}, result.Names()))

	_, result, err = encode(t, baseNNode(2, map[string]interface{}{"drop_cols": dropCols}, letters(3, 1), letters(3, 1)), "c", "d")
	require.NoError(t, err)
	require.Len(t, result, 6)
}

func TestBaseNEncoder_HandleMissing(t *testing.T) {
	encoder, _, err := encode(t, baseNNode(3, map[string]interface{}{"handle_missing": "value"}, letters(4, 1)), "c")
	require.NoError(t, err)
	for _, field := range encoder.DerivedFields() {
		require.Equal(t, "0", field.Expression.(*pmml.MapValues).MapMissingTo)
	}
}

func TestBaseNEncoder_Configuration(t *testing.T) {
	tests := []struct {
		name string
		node *graph.Node
	}{
		{"base too small", baseNNode(1, nil, letters(3, 1))},
		{"base too large", baseNNode(37, nil, letters(3, 1))},
		{"handle missing", baseNNode(2, map[string]interface{}{"handle_missing": "return_nan"}, letters(3, 1))},
		{"handle unknown", baseNNode(2, map[string]interface{}{"handle_unknown": "value"}, letters(3, 1))},
		{"no categories", baseNNode(2, nil, []interface{}{[]interface{}{"nan", MissingCode}})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sklearn.Build(tt.node)
			require.True(t, errors.Is(err, errors.ErrInvalidConfiguration), "%v", err)
		})
	}
}

func TestBaseNEncoder_ShapeMismatch(t *testing.T) {
	_, _, err := encode(t, baseNNode(2, nil, letters(3, 1)), "c", "d")
	require.True(t, errors.Is(err, errors.ErrShapeMismatch))

	n := baseNNode(2, nil, letters(3, 1), letters(3, 1))
	n.Put("cols", []interface{}{"c"})
	_, _, err = encode(t, n, "c", "d")
	require.True(t, errors.Is(err, errors.ErrShapeMismatch))
}

func TestBinaryEncoder(t *testing.T) {
	inner := baseNNode(5, nil, letters(5, 1)).ToMap()
	n := graph.NewNode(BinaryEncoderClass, map[string]interface{}{"base_n_encoder": inner})

	_, result, err := encode(t, n, "c")
	require.NoError(t, err)
	require.Len(t, result, 4)
	require.Equal(t, 2, result[0].(*BaseNFeature).Base)
}

func TestOrdinalEncoder(t *testing.T) {
	mapping := append(letters(2, 1), []interface{}{math.NaN(), MissingCode})
	n, err := graph.FromMap(ordinalEncoder([]string{"c"}, mapping))
	require.NoError(t, err)

	encoder, result, err := encode(t, n, "c")
	require.NoError(t, err)
	require.Equal(t, "ordinal(c)", result[0].Name())
	require.Equal(t, []string{"1", "2"}, result[0].(*model.CategoricalFeature).Values())

	expression := encoder.DerivedFields()[0].Expression.(*pmml.MapValues)
	require.Len(t, expression.InlineTable.Rows, 2)
	require.Equal(t, "-2", expression.MapMissingTo)
	require.Equal(t, "-1", expression.DefaultValue)
}
