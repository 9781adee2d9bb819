package linear

import (
	"fmt"

	"sk2pmml/pkg/errors"
	"sk2pmml/pkg/graph"
	"sk2pmml/pkg/model"
	"sk2pmml/pkg/pmml"
	"sk2pmml/pkg/sklearn"
)

const (
	LinearRegressionClass = "sklearn.linear_model._base.LinearRegression"
	RidgeClass            = "sklearn.linear_model._ridge.Ridge"
	LassoClass            = "sklearn.linear_model._coordinate_descent.Lasso"
	ElasticNetClass       = "sklearn.linear_model._coordinate_descent.ElasticNet"
)

func init() {
	factory := func(node *graph.Node) (sklearn.Step, error) { return NewLinearRegression(node) }
	for _, class := range []string{
		LinearRegressionClass,
		"sklearn.linear_model.base.LinearRegression",
		RidgeClass,
		LassoClass,
		ElasticNetClass,
	} {
		sklearn.Register(class, factory)
	}
}

var _ sklearn.Regressor = &LinearRegression{}

// LinearRegression encodes any single output linear regressor as one regression table.
type LinearRegression struct {
	linearModel
}

func NewLinearRegression(node *graph.Node) (*LinearRegression, error) {
	m, err := newLinearModel(node)
	if err != nil {
		return nil, err
	}
	return &LinearRegression{m}, nil
}

func (r *LinearRegression) MiningFunction() pmml.MiningFunction {
	return pmml.MiningFunctionRegression
}

func (r *LinearRegression) PredictionDataType() pmml.DataType {
	return pmml.DataTypeDouble
}

func (r *LinearRegression) EncodeModel(schema *model.Schema) (pmml.Model, error) {
	if rows, _ := r.coef.Dims(); rows != 1 {
		return nil, errors.UnsupportedCapability(r.ClassName(), "single output regressor", fmt.Sprintf("%d output regressor", rows))
	}
	features, err := r.continuousFeatures(schema)
	if err != nil {
		return nil, err
	}
	return pmml.NewRegressionModel(pmml.MiningFunctionRegression, schema.TargetName(), r.table(features, 0, "")), nil
}
