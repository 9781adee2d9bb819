package sklearn

import (
	"sort"
	"sync"

	"sk2pmml/pkg/errors"
	"sk2pmml/pkg/graph"
)

// Factory builds the step for a graph node of a registered class.
type Factory func(node *graph.Node) (Step, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes a class buildable. Packages call it from init.
func Register(class string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[class]; ok {
		panic("sklearn: class " + class + " registered twice")
	}
	registry[class] = factory
}

// Classes lists the registered classes in lexical order.
func Classes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	result := make([]string, 0, len(registry))
	for class := range registry {
		result = append(result, class)
	}
	sort.Strings(result)
	return result
}

func Build(node *graph.Node) (Step, error) {
	registryMu.RLock()
	factory, ok := registry[node.Class]
	registryMu.RUnlock()
	if !ok {
		return nil, errors.UnsupportedCapability(node.Class, "registered step class", "unknown class")
	}
	return factory(node)
}

// BuildTransformer builds node and wraps pipelines of transformers into a PipelineTransformer.
func BuildTransformer(node *graph.Node) (Transformer, error) {
	step, err := Build(node)
	if err != nil {
		return nil, err
	}
	return AsTransformer(step)
}

func AsTransformer(step Step) (Transformer, error) {
	step, err := wrap(step)
	if err != nil {
		return nil, err
	}
	t, ok := step.(Transformer)
	if !ok {
		return nil, errors.UnsupportedCapability(step.ClassName(), "Transformer", RoleName(step))
	}
	return t, nil
}

// BuildEstimator builds node and wraps pipelines into the facade matching their final estimator.
func BuildEstimator(node *graph.Node) (Estimator, error) {
	step, err := Build(node)
	if err != nil {
		return nil, err
	}
	return AsEstimator(step)
}

// AsEstimator wraps pipelines into the facade matching their final estimator.
func AsEstimator(step Step) (Estimator, error) {
	step, err := wrap(step)
	if err != nil {
		return nil, err
	}
	e, ok := step.(Estimator)
	if !ok {
		return nil, errors.UnsupportedCapability(step.ClassName(), "Estimator", RoleName(step))
	}
	return e, nil
}
