package sklearn

import (
	"sk2pmml/pkg/errors"
	"sk2pmml/pkg/model"
	"sk2pmml/pkg/pmml"
)

var (
	_ Transformer = &PipelineTransformer{}
	_ HasHead     = &PipelineTransformer{}
	_ Classifier  = &CompositeClassifier{}
	_ Regressor   = &CompositeRegressor{}
	_ Clusterer   = &CompositeClusterer{}
	_ HasHead     = &CompositeClusterer{}
	_ HasPMMLName = &CompositeClusterer{}
)

// pipelineProxy forwards the Step queries of a facade to its pipeline.
type pipelineProxy struct {
	pipeline *Pipeline
}

func (p *pipelineProxy) Pipeline() *Pipeline {
	return p.pipeline
}

func (p *pipelineProxy) ClassName() string {
	return p.pipeline.ClassName()
}

func (p *pipelineProxy) NumberOfFeatures() int {
	return p.pipeline.NumberOfFeatures()
}

func (p *pipelineProxy) OpType() (pmml.OpType, error) {
	return p.pipeline.OpType()
}

func (p *pipelineProxy) DataType() (pmml.DataType, error) {
	return p.pipeline.DataType()
}

func (p *pipelineProxy) Head() Step {
	return p.pipeline.Head()
}

func (p *pipelineProxy) FeatureNamesIn() ([]string, error) {
	return p.pipeline.FeatureNamesIn()
}

// PipelineTransformer lets a pipeline of transformers act as one transformer.
type PipelineTransformer struct {
	pipelineProxy
}

func NewPipelineTransformer(p *Pipeline) (*PipelineTransformer, error) {
	if _, err := p.composite.Transformers(); err != nil {
		return nil, err
	}
	if final := p.composite.FinalStep(); !isTransformer(final) {
		return nil, errors.UnsupportedCapability(final.ClassName(), "Transformer", RoleName(final))
	}
	return &PipelineTransformer{pipelineProxy{pipeline: p}}, nil
}

func (t *PipelineTransformer) EncodeFeatures(features model.FeatureList, encoder *model.Encoder) (model.FeatureList, error) {
	return t.pipeline.composite.EncodeFeatures(features, encoder)
}

func isTransformer(step Step) bool {
	_, ok := step.(Transformer)
	return ok
}

// compositeEstimator lets a pipeline ending in an estimator act as that estimator.
type compositeEstimator struct {
	pipelineProxy
	final Estimator
}

func (e *compositeEstimator) MiningFunction() pmml.MiningFunction {
	return e.final.MiningFunction()
}

func (e *compositeEstimator) EncodeModel(schema *model.Schema) (pmml.Model, error) {
	return e.pipeline.composite.EncodeModel(schema)
}

func (e *compositeEstimator) PMMLName() (string, error) {
	return e.pipeline.PMMLName()
}

type CompositeClassifier struct {
	compositeEstimator
	classifier Classifier
}

func (c *CompositeClassifier) Classes() ([]string, error) {
	return c.classifier.Classes()
}

type CompositeRegressor struct {
	compositeEstimator
	regressor Regressor
}

func (r *CompositeRegressor) PredictionDataType() pmml.DataType {
	return r.regressor.PredictionDataType()
}

type CompositeClusterer struct {
	compositeEstimator
	clusterer Clusterer
}

func NewCompositeClusterer(p *Pipeline) (*CompositeClusterer, error) {
	clusterer, err := FinalEstimatorAs[Clusterer](p.composite, "Clusterer")
	if err != nil {
		return nil, err
	}
	return &CompositeClusterer{compositeEstimator{pipelineProxy{p}, clusterer}, clusterer}, nil
}

func (c *CompositeClusterer) NumberOfClusters() (int, error) {
	return c.clusterer.NumberOfClusters()
}

func NewCompositeClassifier(p *Pipeline) (*CompositeClassifier, error) {
	classifier, err := FinalEstimatorAs[Classifier](p.composite, "Classifier")
	if err != nil {
		return nil, err
	}
	return &CompositeClassifier{compositeEstimator{pipelineProxy{p}, classifier}, classifier}, nil
}

func NewCompositeRegressor(p *Pipeline) (*CompositeRegressor, error) {
	regressor, err := FinalEstimatorAs[Regressor](p.composite, "Regressor")
	if err != nil {
		return nil, err
	}
	return &CompositeRegressor{compositeEstimator{pipelineProxy{p}, regressor}, regressor}, nil
}

// NewCompositeEstimator wraps p in the facade matching the role of its final estimator.
func NewCompositeEstimator(p *Pipeline) (Estimator, error) {
	if _, err := p.composite.Transformers(); err != nil {
		return nil, err
	}
	var (
		result Estimator
		err    error
	)
	switch final := p.composite.FinalStep().(type) {
	case Classifier:
		result, err = NewCompositeClassifier(p)
	case Regressor:
		result, err = NewCompositeRegressor(p)
	case Clusterer:
		result, err = NewCompositeClusterer(p)
	default:
		return nil, errors.UnsupportedCapability(final.ClassName(), "Classifier, Regressor or Clusterer", RoleName(final))
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}
