package sklearn

import (
	"fmt"

	"sk2pmml/pkg/errors"
	"sk2pmml/pkg/model"
	"sk2pmml/pkg/pmml"
)

var _ HasHead = &Composite{}

// Composite is an ordered, non-empty chain of steps. It is read-only once built.
type Composite struct {
	steps []Step
}

func NewComposite(steps ...Step) (*Composite, error) {
	if len(steps) == 0 {
		return nil, errors.InvalidConfiguration("", "a composite requires at least one step")
	}
	return &Composite{steps: steps}, nil
}

func (c *Composite) Steps() []Step {
	return c.steps
}

// Head returns the first step, looking through nested composites.
func (c *Composite) Head() Step {
	first := c.steps[0]
	if h, ok := first.(HasHead); ok {
		return h.Head()
	}
	return first
}

func (c *Composite) FinalStep() Step {
	return c.steps[len(c.steps)-1]
}

func (c *Composite) NumberOfFeatures() int {
	return c.Head().NumberOfFeatures()
}

func (c *Composite) OpType() (pmml.OpType, error) {
	return c.Head().OpType()
}

func (c *Composite) DataType() (pmml.DataType, error) {
	return c.Head().DataType()
}

// Transformers returns every step before the final estimator. When the final step is not an
// estimator, all steps are returned.
func (c *Composite) Transformers() ([]Transformer, error) {
	steps := c.steps
	if _, ok := c.FinalStep().(Estimator); ok {
		steps = steps[:len(steps)-1]
	}
	result := make([]Transformer, len(steps))
	for i, step := range steps {
		t, ok := step.(Transformer)
		if !ok {
			return nil, errors.UnsupportedCapability(step.ClassName(), "Transformer", RoleName(step))
		}
		result[i] = t
	}
	return result, nil
}

// FinalEstimatorAs returns the final step of c as the role T.
func FinalEstimatorAs[T Step](c *Composite, role string) (T, error) {
	final := c.FinalStep()
	t, ok := final.(T)
	if !ok {
		var zero T
		return zero, errors.UnsupportedCapability(final.ClassName(), role, RoleName(final))
	}
	return t, nil
}

// EncodeFeatures threads features through the transformers of c.
func (c *Composite) EncodeFeatures(features model.FeatureList, encoder *model.Encoder) (model.FeatureList, error) {
	transformers, err := c.Transformers()
	if err != nil {
		return nil, err
	}
	for _, t := range transformers {
		input := len(features)
		if features, err = t.EncodeFeatures(features, encoder); err != nil {
			return nil, fmt.Errorf("error encoding features of %s: %w", t.ClassName(), err)
		}
		if err := features.CheckUnique(t.ClassName()); err != nil {
			return nil, err
		}
		encoder.Logger().Debug().Str("class", t.ClassName()).Int("input", input).Int("output", len(features)).Msg("Transformed features")
	}
	return features, nil
}

// EncodeModel encodes the transformers and then the final estimator against the transformed features.
func (c *Composite) EncodeModel(schema *model.Schema) (pmml.Model, error) {
	estimator, err := FinalEstimatorAs[Estimator](c, "Estimator")
	if err != nil {
		return nil, err
	}
	features, err := c.EncodeFeatures(schema.Features(), schema.Encoder())
	if err != nil {
		return nil, err
	}
	return Encode(estimator, schema.WithFeatures(features), "")
}
