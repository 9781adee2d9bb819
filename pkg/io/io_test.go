package io

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"sk2pmml/pkg/errors"
	"sk2pmml/pkg/pmml"
)

const graphDocument = `
class: sklearn.tree._classes.DecisionTreeRegressor
n_features_in_: 2
threshold: [0.5, .nan]
pmml_options_:
  winner_id: false
`

func TestLoadGraph(t *testing.T) {
	node, err := LoadGraph(strings.NewReader(graphDocument))
	require.NoError(t, err)
	require.Equal(t, "sklearn.tree._classes.DecisionTreeRegressor", node.Class)

	n, err := node.Int("n_features_in_")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	_, err = LoadGraph(strings.NewReader("n_features_in_: 2"))
	require.True(t, errors.Is(err, errors.ErrInvalidConfiguration))

	_, err = LoadGraph(strings.NewReader("class: [unterminated"))
	require.Error(t, err)
}

func TestApplyPatch(t *testing.T) {
	node, err := LoadGraph(strings.NewReader(graphDocument))
	require.NoError(t, err)

	for _, patch := range []string{
		`{"pmml_options_": {"winner_id": true}, "pmml_name_": "tree"}`,
		"pmml_options_:\n  winner_id: true\npmml_name_: tree\n",
	} {
		patched, err := ApplyPatch(node, []byte(patch))
		require.NoError(t, err)

		options, err := patched.Dict("pmml_options_")
		require.NoError(t, err)
		require.Equal(t, true, options["winner_id"])

		name, err := patched.String("pmml_name_")
		require.NoError(t, err)
		require.Equal(t, "tree", name)

		n, err := patched.Int("n_features_in_")
		require.NoError(t, err)
		require.Equal(t, 2, n)

		thresholds, err := patched.Floats("threshold")
		require.NoError(t, err)
		require.Equal(t, 0.5, thresholds[0])
		require.True(t, math.IsNaN(thresholds[1]))
	}

	// Removing the class makes the graph unusable.
	_, err = ApplyPatch(node, []byte(`{"class": null}`))
	require.True(t, errors.Is(err, errors.ErrInvalidConfiguration))
}

func TestSaveDocument(t *testing.T) {
	dataDictionary := &pmml.DataDictionary{NumberOfFields: 1, Fields: []*pmml.DataField{
		{Name: "x", OpType: pmml.OpTypeContinuous, DataType: pmml.DataTypeDouble},
	}}
	root := &pmml.Node{Score: "1", Predicate: &pmml.True{}}
	doc := pmml.New("4.4", &pmml.Header{}, dataDictionary, pmml.NewTreeModel(pmml.MiningFunctionRegression, "", root))

	var buf bytes.Buffer
	require.NoError(t, SaveDocument(doc, &buf))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "<?xml"))
	require.Contains(t, out, `<PMML xmlns="http://www.dmg.org/PMML-4_4" version="4.4">`)
	require.Contains(t, out, `<DataField name="x" optype="continuous" dataType="double"></DataField>`)
	require.Contains(t, out, `<TreeModel functionName="regression"`)
	require.Contains(t, out, `<True></True>`)

	path := filepath.Join(t.TempDir(), "model.pmml")
	require.NoError(t, SaveDocumentFile(doc, path))
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, out, string(written))
}
