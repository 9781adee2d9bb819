// Package tree converts fitted decision trees into TreeModels.
package tree

import (
	"strconv"

	"sk2pmml/pkg/errors"
	"sk2pmml/pkg/graph"
	"sk2pmml/pkg/model"
	"sk2pmml/pkg/pmml"
)

// Leaf marks a missing child in the node arrays of a tree.
const Leaf = -1

// Tree is the array representation of a fitted tree: node i splits on Feature[i] at Threshold[i]
// unless ChildrenLeft[i] is Leaf. Value[i] holds one row per output.
type Tree struct {
	ChildrenLeft  []int
	ChildrenRight []int
	Feature       []int
	Threshold     []float64
	Value         [][][]float64
	NodeSamples   []float64
}

// ParseTree reads the tree_ attribute of an estimator.
func ParseTree(node *graph.Node) (*Tree, error) {
	t := &Tree{}
	var err error
	if t.ChildrenLeft, err = node.Ints("children_left"); err != nil {
		return nil, err
	}
	if t.ChildrenRight, err = node.Ints("children_right"); err != nil {
		return nil, err
	}
	if t.Feature, err = node.Ints("feature"); err != nil {
		return nil, err
	}
	if t.Threshold, err = node.Floats("threshold"); err != nil {
		return nil, err
	}
	if t.Value, err = node.Tensor("value"); err != nil {
		return nil, err
	}
	if node.Has("n_node_samples") {
		if t.NodeSamples, err = node.Floats("n_node_samples"); err != nil {
			return nil, err
		}
	}

	n := len(t.ChildrenLeft)
	sizes := []struct {
		what string
		size int
	}{
		{"children_right", len(t.ChildrenRight)},
		{"feature", len(t.Feature)},
		{"threshold", len(t.Threshold)},
		{"value", len(t.Value)},
	}
	if t.NodeSamples != nil {
		sizes = append(sizes, struct {
			what string
			size int
		}{"n_node_samples", len(t.NodeSamples)})
	}
	for _, s := range sizes {
		if s.size != n {
			return nil, errors.ShapeMismatch(node.Class, s.what, n, s.size)
		}
	}
	if n == 0 {
		return nil, errors.InvalidConfiguration(node.Class, "tree without nodes")
	}
	// Children are numbered after their parent, which also rules out cycles.
	for i := 0; i < n; i++ {
		left, right := t.ChildrenLeft[i], t.ChildrenRight[i]
		if left == Leaf && right == Leaf {
			continue
		}
		if left <= i || left >= n || right <= i || right >= n {
			return nil, errors.InvalidConfiguration(node.Class, "node %d has the invalid children %d and %d", i, left, right)
		}
	}
	return t, nil
}

func (t *Tree) IsLeaf(i int) bool {
	return t.ChildrenLeft[i] == Leaf
}

// leafFunc fills in the score of a leaf node.
type leafFunc func(node *pmml.Node, value [][]float64) error

// Encode builds the node hierarchy rooted at node 0. Node ids are the array indices.
func (t *Tree) Encode(class string, features model.FeatureList, leaf leafFunc) (*pmml.Node, error) {
	return t.encodeNode(class, 0, &pmml.True{}, features, leaf)
}

func (t *Tree) encodeNode(class string, i int, predicate pmml.Predicate, features model.FeatureList, leaf leafFunc) (*pmml.Node, error) {
	result := &pmml.Node{ID: strconv.Itoa(i), Predicate: predicate}
	if t.NodeSamples != nil {
		count := t.NodeSamples[i]
		result.RecordCount = &count
	}
	if t.IsLeaf(i) {
		return result, leaf(result, t.Value[i])
	}

	index := t.Feature[i]
	if index < 0 || index >= len(features) {
		return nil, &errors.Conversion{
			Kind:     errors.KindSchemaContract,
			Node:     class,
			Message:  "split feature index out of range",
			Expected: "< " + strconv.Itoa(len(features)),
			Actual:   strconv.Itoa(index),
		}
	}
	left, right, err := SplitPredicates(class, features[index], t.Threshold[i])
	if err != nil {
		return nil, err
	}
	for _, child := range []struct {
		index     int
		predicate pmml.Predicate
	}{{t.ChildrenLeft[i], left}, {t.ChildrenRight[i], right}} {
		n, err := t.encodeNode(class, child.index, child.predicate, features, leaf)
		if err != nil {
			return nil, err
		}
		result.Nodes = append(result.Nodes, n)
	}
	return result, nil
}

// SplitPredicates returns the predicates of the left (value <= threshold) and right branches.
// Categorical features with numeric values are split into sets of values.
func SplitPredicates(class string, f model.Feature, threshold float64) (left, right pmml.Predicate, err error) {
	if f.OpType() == pmml.OpTypeContinuous {
		value := pmml.FormatNumber(threshold)
		left = &pmml.SimplePredicate{Field: f.Name(), Operator: "lessOrEqual", Value: value}
		right = &pmml.SimplePredicate{Field: f.Name(), Operator: "greaterThan", Value: value}
		return left, right, nil
	}
	categorical, ok := f.(interface{ Values() []string })
	if !ok || !f.DataType().IsNumeric() {
		return nil, nil, errors.SchemaContract(class, "cannot split on %s %s feature %q", f.OpType(), f.DataType(), f.Name())
	}
	var leftValues []string
	for _, v := range categorical.Values() {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, nil, errors.SchemaContract(class, "feature %q has the non numeric value %q", f.Name(), v)
		}
		if x <= threshold {
			leftValues = append(leftValues, v)
		}
	}
	array := pmml.NewStringArray(leftValues)
	left = &pmml.SimpleSetPredicate{Field: f.Name(), BooleanOperator: "isIn", Array: array}
	right = &pmml.SimpleSetPredicate{Field: f.Name(), BooleanOperator: "isNotIn", Array: array}
	return left, right, nil
}
