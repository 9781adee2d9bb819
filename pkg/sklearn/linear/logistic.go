package linear

import (
	"sk2pmml/pkg/errors"
	"sk2pmml/pkg/graph"
	"sk2pmml/pkg/model"
	"sk2pmml/pkg/pmml"
	"sk2pmml/pkg/sklearn"
)

const LogisticRegressionClass = "sklearn.linear_model._logistic.LogisticRegression"

const (
	NormalizationLogit   = "logit"
	NormalizationSoftmax = "softmax"
)

func init() {
	factory := func(node *graph.Node) (sklearn.Step, error) { return NewLogisticRegression(node) }
	sklearn.Register(LogisticRegressionClass, factory)
	sklearn.Register("sklearn.linear_model.logistic.LogisticRegression", factory)
}

var _ sklearn.Classifier = &LogisticRegression{}

// LogisticRegression encodes binary models with the logit and multinomial models with the softmax
// normalization. One-vs-rest multiclass models are not supported.
type LogisticRegression struct {
	linearModel
	multiClass string
}

func NewLogisticRegression(node *graph.Node) (*LogisticRegression, error) {
	m, err := newLinearModel(node)
	if err != nil {
		return nil, err
	}
	multiClass, err := node.OptionalString("multi_class", "auto")
	if err != nil {
		return nil, err
	}
	switch multiClass {
	case "auto":
		solver, err := node.OptionalString("solver", "lbfgs")
		if err != nil {
			return nil, err
		}
		if solver == "liblinear" {
			multiClass = "ovr"
		} else {
			multiClass = "multinomial"
		}
	case "ovr", "multinomial":
	default:
		return nil, errors.InvalidConfiguration(node.Class, "unknown multi_class %q", multiClass)
	}
	return &LogisticRegression{linearModel: m, multiClass: multiClass}, nil
}

func (c *LogisticRegression) MiningFunction() pmml.MiningFunction {
	return pmml.MiningFunctionClassification
}

func (c *LogisticRegression) Classes() ([]string, error) {
	return c.Node().Values("classes_")
}

func (c *LogisticRegression) EncodeModel(schema *model.Schema) (pmml.Model, error) {
	label, ok := schema.Label().(*model.CategoricalLabel)
	if !ok {
		return nil, errors.SchemaContract(c.ClassName(), "expected a categorical label")
	}
	features, err := c.continuousFeatures(schema)
	if err != nil {
		return nil, err
	}
	rows, _ := c.coef.Dims()

	var m *pmml.RegressionModel
	switch {
	case label.Size() == 2:
		if err := c.CheckSize("coefficient rows", 1, rows); err != nil {
			return nil, err
		}
		m = pmml.NewRegressionModel(pmml.MiningFunctionClassification, schema.TargetName(),
			c.table(features, 0, label.Value(1)),
			&pmml.RegressionTable{TargetCategory: label.Value(0)},
		)
		m.NormalizationMethod = NormalizationLogit
	case c.multiClass == "multinomial":
		if err := c.CheckSize("coefficient rows", label.Size(), rows); err != nil {
			return nil, err
		}
		m = pmml.NewRegressionModel(pmml.MiningFunctionClassification, schema.TargetName())
		for i, category := range label.Values() {
			m.Tables = append(m.Tables, c.table(features, i, category))
		}
		m.NormalizationMethod = NormalizationSoftmax
	default:
		return nil, errors.UnsupportedCapability(c.ClassName(), "binary or multinomial classifier", "one-vs-rest classifier")
	}
	sklearn.EncodeProbabilityOutput(m, label)
	return m, nil
}
