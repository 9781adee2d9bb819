package sklearn

import (
	"sk2pmml/pkg/errors"
	"sk2pmml/pkg/graph"
	"sk2pmml/pkg/pmml"
)

const (
	PipelineClass     = "sklearn.pipeline.Pipeline"
	PMMLPipelineClass = "sklearn2pmml.pipeline.PMMLPipeline"
)

func init() {
	Register(PipelineClass, func(node *graph.Node) (Step, error) { return NewPipeline(node) })
	Register(PMMLPipelineClass, func(node *graph.Node) (Step, error) { return NewPMMLPipeline(node) })
}

var (
	_ Step              = &Pipeline{}
	_ HasHead           = &Pipeline{}
	_ HasFeatureNamesIn = &Pipeline{}
	_ HasPMMLName       = &Pipeline{}
)

// Pipeline is a sklearn.pipeline.Pipeline. Passthrough and dropped steps are skipped.
// Nested pipelines are wrapped in the facade matching their final step.
type Pipeline struct {
	base         BaseStep
	composite    *Composite
	activeFields []string
}

func NewPipeline(node *graph.Node) (*Pipeline, error) {
	base, err := NewBaseStep(node)
	if err != nil {
		return nil, err
	}
	named, err := node.Steps("steps")
	if err != nil {
		return nil, err
	}
	var steps []Step
	for _, ns := range named {
		if ns.Node == nil {
			continue
		}
		step, err := Build(ns.Node)
		if err != nil {
			return nil, err
		}
		if step, err = wrap(step); err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	composite, err := NewComposite(steps...)
	if err != nil {
		return nil, errors.InvalidConfiguration(node.Class, "pipeline without steps")
	}
	if declared, actual := base.NumberOfFeatures(), composite.NumberOfFeatures(); declared != UnknownFeatures && actual != UnknownFeatures {
		if err := base.CheckSize("number of features", declared, actual); err != nil {
			return nil, err
		}
	}
	return &Pipeline{base: base, composite: composite}, nil
}

func (p *Pipeline) Node() *graph.Node {
	return p.base.Node()
}

func (p *Pipeline) ClassName() string {
	return p.base.ClassName()
}

func (p *Pipeline) Composite() *Composite {
	return p.composite
}

func (p *Pipeline) Head() Step {
	return p.composite.Head()
}

func (p *Pipeline) NumberOfFeatures() int {
	return p.composite.NumberOfFeatures()
}

func (p *Pipeline) OpType() (pmml.OpType, error) {
	return p.composite.OpType()
}

func (p *Pipeline) DataType() (pmml.DataType, error) {
	return p.composite.DataType()
}

// FeatureNamesIn prefers the active fields of a PMMLPipeline, then feature_names_in_ of the
// pipeline and of its head.
func (p *Pipeline) FeatureNamesIn() ([]string, error) {
	if p.activeFields != nil {
		return p.activeFields, nil
	}
	names, err := p.base.FeatureNamesIn()
	if err != nil || names != nil {
		return names, err
	}
	if h, ok := p.Head().(HasFeatureNamesIn); ok {
		return h.FeatureNamesIn()
	}
	return nil, nil
}

func (p *Pipeline) PMMLName() (string, error) {
	return p.base.node.OptionalString(NameKey, "")
}

// PMMLPipeline is a Pipeline annotated with the names of its input and target columns.
// Its active fields stay visible through the facade the pipeline is wrapped in.
type PMMLPipeline struct {
	*Pipeline
	targetFields []string
}

func NewPMMLPipeline(node *graph.Node) (*PMMLPipeline, error) {
	p, err := NewPipeline(node)
	if err != nil {
		return nil, err
	}
	result := &PMMLPipeline{Pipeline: p}
	if node.Has("active_fields") {
		if p.activeFields, err = node.Strings("active_fields"); err != nil {
			return nil, err
		}
		if n := p.NumberOfFeatures(); n != UnknownFeatures && n != len(p.activeFields) {
			return nil, errors.ShapeMismatch(node.Class, "active fields", n, len(p.activeFields))
		}
	}
	if node.Has("target_fields") {
		if result.targetFields, err = node.Strings("target_fields"); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (p *PMMLPipeline) TargetFields() []string {
	return p.targetFields
}

// wrap turns nested pipelines into single steps.
func wrap(step Step) (Step, error) {
	var p *Pipeline
	switch s := step.(type) {
	case *Pipeline:
		p = s
	case *PMMLPipeline:
		p = s.Pipeline
	default:
		return step, nil
	}
	if _, ok := p.composite.FinalStep().(Estimator); ok {
		return NewCompositeEstimator(p)
	}
	t, err := NewPipelineTransformer(p)
	if err != nil {
		return nil, err
	}
	return t, nil
}
