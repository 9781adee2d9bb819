package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConversion_Error(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{
			InvalidConfiguration("BaseNEncoder", "base must be at least 2, got %d", 1),
			"[invalid-configuration] BaseNEncoder: base must be at least 2, got 1",
		},
		{
			ShapeMismatch("Tree", "feature importances", 3, 2),
			"[shape-mismatch] Tree: feature importances (expected: 3, actual: 2)",
		},
		{
			UnsupportedCapability("Pipeline", "Classifier", "Regressor"),
			"[unsupported-capability] Pipeline: expected a Classifier, found a Regressor (expected: Classifier, actual: Regressor)",
		},
		{
			&Conversion{Kind: KindSchemaContract},
			"[schema-contract]",
		},
	}
	for _, test := range tests {
		require.Equal(t, test.expected, test.err.Error())
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("error encoding step: %w", SchemaContract("KMeans", "unexpected label"))

	require.True(t, Is(err, ErrSchemaContract))
	require.False(t, Is(err, ErrShapeMismatch))
	require.True(t, Is(err, &Conversion{}))
	require.False(t, Is(fmt.Errorf("plain"), ErrSchemaContract))

	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, KindSchemaContract, kind)

	_, ok = KindOf(fmt.Errorf("plain"))
	require.False(t, ok)

	var c *Conversion
	require.True(t, As(err, &c))
	require.Equal(t, "KMeans", c.Node)
}
