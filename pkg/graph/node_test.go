package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"sk2pmml/pkg/errors"
)

const document = `
class: sklearn.pipeline.Pipeline
n_features_in_: 2
flag: true
name: forest
classes_: [a, 1, 2.5, true]
floats: [1, 2.5, .nan]
rows:
  - [1, 2]
  - [3, 4.5]
mapping:
  class: category_encoders.ordinal.OrdinalEncoder
  cols: [x]
steps:
  - [cast, {class: sklearn2pmml.preprocessing.CastTransformer, dtype: str}]
  - [skip, passthrough]
  - [none, null]
`

func decode(t *testing.T) *Node {
	var m map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(document), &m))
	n, err := FromMap(m)
	require.NoError(t, err)
	return n
}

func TestNode_Accessors(t *testing.T) {
	n := decode(t)
	require.Equal(t, "sklearn.pipeline.Pipeline", n.Class)
	require.False(t, n.Has(ClassKey))

	i, err := n.Int("n_features_in_")
	require.NoError(t, err)
	require.Equal(t, 2, i)

	i, err = n.OptionalInt("n_features_", -1)
	require.NoError(t, err)
	require.Equal(t, -1, i)

	b, err := n.Bool("flag", false)
	require.NoError(t, err)
	require.True(t, b)

	s, err := n.OptionalString("missing", "default")
	require.NoError(t, err)
	require.Equal(t, "default", s)

	values, err := n.Values("classes_")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "1", "2.5", "true"}, values)

	floats, err := n.Floats("floats")
	require.NoError(t, err)
	require.Equal(t, 2.5, floats[1])
	require.True(t, math.IsNaN(floats[2]))

	f, err := n.Float("n_features_in_")
	require.NoError(t, err)
	require.Equal(t, 2.0, f)

	rows, err := n.Matrix("rows")
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 2}, {3, 4.5}}, rows)

	child, err := n.Child("mapping")
	require.NoError(t, err)
	require.Equal(t, "category_encoders.ordinal.OrdinalEncoder", child.Class)
	cols, err := child.Strings("cols")
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, cols)
}

func TestNode_Steps(t *testing.T) {
	n := decode(t)
	steps, err := n.Steps("steps")
	require.NoError(t, err)
	require.Len(t, steps, 3)
	require.Equal(t, "cast", steps[0].Name)
	require.Equal(t, "sklearn2pmml.preprocessing.CastTransformer", steps[0].Node.Class)
	require.Nil(t, steps[1].Node)
	require.Nil(t, steps[2].Node)
}

func TestNode_Errors(t *testing.T) {
	n := decode(t)
	tests := []struct {
		name string
		call func() error
	}{
		{"missing", func() error { _, err := n.Int("absent"); return err }},
		{"not an integer", func() error { _, err := n.Int("name"); return err }},
		{"not a string", func() error { _, err := n.String("n_features_in_"); return err }},
		{"not a list", func() error { _, err := n.Floats("name"); return err }},
		{"not numeric", func() error { _, err := n.Floats("classes_"); return err }},
		{"not a mapping", func() error { _, err := n.Child("name"); return err }},
		{"not steps", func() error { _, err := n.Steps("classes_"); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			require.True(t, errors.Is(err, errors.ErrInvalidConfiguration))
		})
	}
}

func TestNode_Int(t *testing.T) {
	tests := []struct {
		value    interface{}
		expected int
		valid    bool
	}{
		{3, 3, true},
		{int64(-4), -4, true},
		{uint64(5), 5, true},
		{6.0, 6, true},
		{-1.0, -1, true},
		{2.5, 0, false},
		{math.Inf(1), 0, false},
		{math.Inf(-1), 0, false},
		{math.NaN(), 0, false},
		{1e19, 0, false},
		{-1e19, 0, false},
		{uint64(math.MaxUint64), 0, false},
		{"3", 0, false},
	}
	for _, tt := range tests {
		n := NewNode("test.Step", map[string]interface{}{"n": tt.value})
		actual, err := n.Int("n")
		if !tt.valid {
			require.True(t, errors.Is(err, errors.ErrInvalidConfiguration), "%v", tt.value)
			continue
		}
		require.NoError(t, err, "%v", tt.value)
		require.Equal(t, tt.expected, actual)
	}
}

func TestFromMap_WithoutClass(t *testing.T) {
	_, err := FromMap(map[string]interface{}{"a": 1})
	require.True(t, errors.Is(err, errors.ErrInvalidConfiguration))
}

func TestNode_Pairs(t *testing.T) {
	n := NewNode("test", map[string]interface{}{
		"mapping": []interface{}{
			[]interface{}{"a", 1},
			[]interface{}{2, 2.0},
			[]interface{}{math.NaN(), -2},
		},
	})
	pairs, err := n.Pairs("mapping")
	require.NoError(t, err)
	require.Equal(t, []Pair{{"a", 1}, {"2", 2}, {"NaN", -2}}, pairs)

	_, err = NewNode("test", map[string]interface{}{"mapping": []interface{}{"a"}}).Pairs("mapping")
	require.True(t, errors.Is(err, errors.ErrInvalidConfiguration))
}
