package tree

import (
	"gonum.org/v1/gonum/floats"

	"sk2pmml/pkg/errors"
	"sk2pmml/pkg/graph"
	"sk2pmml/pkg/model"
	"sk2pmml/pkg/pmml"
	"sk2pmml/pkg/sklearn"
)

const (
	DecisionTreeClassifierClass = "sklearn.tree._classes.DecisionTreeClassifier"
	DecisionTreeRegressorClass  = "sklearn.tree._classes.DecisionTreeRegressor"
)

// NodeIDField is the name of the field that reports the node an instance reached.
const NodeIDField = "nodeId"

func init() {
	classifier := func(node *graph.Node) (sklearn.Step, error) { return NewDecisionTreeClassifier(node) }
	regressor := func(node *graph.Node) (sklearn.Step, error) { return NewDecisionTreeRegressor(node) }
	sklearn.Register(DecisionTreeClassifierClass, classifier)
	sklearn.Register("sklearn.tree.tree.DecisionTreeClassifier", classifier)
	sklearn.Register(DecisionTreeRegressorClass, regressor)
	sklearn.Register("sklearn.tree.tree.DecisionTreeRegressor", regressor)
}

var (
	_ sklearn.Classifier    = &DecisionTreeClassifier{}
	_ sklearn.Regressor     = &DecisionTreeRegressor{}
	_ sklearn.HasApplyField = &DecisionTreeClassifier{}
	_ sklearn.HasSegmentID  = &DecisionTreeRegressor{}
)

type decisionTree struct {
	sklearn.BaseEstimator
	tree      *Tree
	segmentID int
}

func newDecisionTree(node *graph.Node) (decisionTree, error) {
	base, err := sklearn.NewBaseEstimator(node)
	if err != nil {
		return decisionTree{}, err
	}
	treeNode, err := node.Child("tree_")
	if err != nil {
		return decisionTree{}, err
	}
	tree, err := ParseTree(treeNode)
	if err != nil {
		return decisionTree{}, err
	}
	return decisionTree{BaseEstimator: base, tree: tree}, nil
}

func (d *decisionTree) Tree() *Tree {
	return d.tree
}

// DataType is float, the type trees compare their inputs in.
func (d *decisionTree) DataType() (pmml.DataType, error) {
	return pmml.DataTypeFloat, nil
}

// SetSegmentID marks the tree as member id of an ensemble.
func (d *decisionTree) SetSegmentID(id int) {
	d.segmentID = id
}

func (d *decisionTree) ApplyField() string {
	if d.segmentID == 0 {
		return NodeIDField
	}
	return model.FieldName(NodeIDField, d.segmentID)
}

// encode builds the TreeModel and, for stand alone trees, the winner id output.
func (d *decisionTree) encode(schema *model.Schema, function pmml.MiningFunction, leaf leafFunc) (*pmml.TreeModel, error) {
	root, err := d.tree.Encode(d.ClassName(), schema.Features(), leaf)
	if err != nil {
		return nil, err
	}
	m := pmml.NewTreeModel(function, schema.TargetName(), root)
	if d.segmentID == 0 {
		winnerID, err := d.BoolOption(schema.Encoder(), "winner_id", false)
		if err != nil {
			return nil, err
		}
		if winnerID {
			sklearn.EncodeApplyOutput(m, d.ApplyField(), "")
		}
	}
	return m, nil
}

// DecisionTreeClassifier scores leaves with the majority class and the class distribution.
type DecisionTreeClassifier struct {
	decisionTree
}

func NewDecisionTreeClassifier(node *graph.Node) (*DecisionTreeClassifier, error) {
	d, err := newDecisionTree(node)
	if err != nil {
		return nil, err
	}
	return &DecisionTreeClassifier{d}, nil
}

func (c *DecisionTreeClassifier) MiningFunction() pmml.MiningFunction {
	return pmml.MiningFunctionClassification
}

func (c *DecisionTreeClassifier) Classes() ([]string, error) {
	return c.Node().Values("classes_")
}

func (c *DecisionTreeClassifier) EncodeModel(schema *model.Schema) (pmml.Model, error) {
	label, ok := schema.Label().(*model.CategoricalLabel)
	if !ok {
		return nil, errors.SchemaContract(c.ClassName(), "expected a categorical label")
	}
	m, err := c.encode(schema, pmml.MiningFunctionClassification, func(node *pmml.Node, value [][]float64) error {
		return ClassifierLeaf(c.ClassName(), label, node, value)
	})
	if err != nil {
		return nil, err
	}
	if c.segmentID == 0 {
		sklearn.EncodeProbabilityOutput(m, label)
	}
	return m, nil
}

// ClassifierLeaf scores node with the class of the largest weight in value.
func ClassifierLeaf(class string, label *model.CategoricalLabel, node *pmml.Node, value [][]float64) error {
	if len(value) != 1 {
		return errors.ShapeMismatch(class, "outputs", 1, len(value))
	}
	counts := value[0]
	if label.Size() == 0 {
		return errors.SchemaContract(class, "label %q has no classes", label.Name())
	}
	if len(counts) != label.Size() {
		return errors.ShapeMismatch(class, "class weights", label.Size(), len(counts))
	}
	total := floats.Sum(counts)
	for i, count := range counts {
		distribution := &pmml.ScoreDistribution{Value: label.Value(i), RecordCount: count}
		if total > 0 {
			probability := count / total
			distribution.Probability = &probability
		}
		node.ScoreDistributions = append(node.ScoreDistributions, distribution)
	}
	node.Score = label.Value(floats.MaxIdx(counts))
	if node.RecordCount == nil {
		node.RecordCount = &total
	}
	return nil
}

// DecisionTreeRegressor scores leaves with the mean target value.
type DecisionTreeRegressor struct {
	decisionTree
}

func NewDecisionTreeRegressor(node *graph.Node) (*DecisionTreeRegressor, error) {
	d, err := newDecisionTree(node)
	if err != nil {
		return nil, err
	}
	return &DecisionTreeRegressor{d}, nil
}

func (r *DecisionTreeRegressor) MiningFunction() pmml.MiningFunction {
	return pmml.MiningFunctionRegression
}

func (r *DecisionTreeRegressor) PredictionDataType() pmml.DataType {
	return pmml.DataTypeDouble
}

func (r *DecisionTreeRegressor) EncodeModel(schema *model.Schema) (pmml.Model, error) {
	m, err := r.encode(schema, pmml.MiningFunctionRegression, func(node *pmml.Node, value [][]float64) error {
		return RegressorLeaf(r.ClassName(), node, value)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func RegressorLeaf(class string, node *pmml.Node, value [][]float64) error {
	if len(value) != 1 || len(value[0]) != 1 {
		return errors.SchemaContract(class, "expected a single output value per node")
	}
	node.Score = pmml.FormatNumber(value[0][0])
	return nil
}
