// Package linear converts fitted linear models into RegressionModels.
package linear

import (
	"gonum.org/v1/gonum/mat"

	"sk2pmml/pkg/errors"
	"sk2pmml/pkg/graph"
	"sk2pmml/pkg/model"
	"sk2pmml/pkg/pmml"
	"sk2pmml/pkg/sklearn"
)

// linearModel holds coef_ as a matrix with one row per output and one column per feature.
type linearModel struct {
	sklearn.BaseEstimator
	coef      *mat.Dense
	intercept []float64
}

func newLinearModel(node *graph.Node) (linearModel, error) {
	base, err := sklearn.NewBaseEstimator(node)
	if err != nil {
		return linearModel{}, err
	}
	coef, err := coefficients(node)
	if err != nil {
		return linearModel{}, err
	}
	intercept, err := intercepts(node)
	if err != nil {
		return linearModel{}, err
	}
	m := linearModel{BaseEstimator: base, coef: coef, intercept: intercept}

	rows, cols := coef.Dims()
	if err := m.CheckSize("intercepts", rows, len(intercept)); err != nil {
		return linearModel{}, err
	}
	if n := base.NumberOfFeatures(); n != sklearn.UnknownFeatures {
		if err := m.CheckSize("coefficients", n, cols); err != nil {
			return linearModel{}, err
		}
	}
	return m, nil
}

// coefficients accepts both the vector and the matrix layout of coef_.
func coefficients(node *graph.Node) (*mat.Dense, error) {
	if vector, err := node.Floats("coef_"); err == nil {
		if len(vector) == 0 {
			return nil, errors.InvalidConfiguration(node.Class, "empty coefficient vector")
		}
		return mat.NewDense(1, len(vector), vector), nil
	}
	rows, err := node.Matrix("coef_")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.InvalidConfiguration(node.Class, "empty coefficient matrix")
	}
	m := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, errors.ShapeMismatch(node.Class, "coefficient row length", len(rows[0]), len(row))
		}
		m.SetRow(i, row)
	}
	return m, nil
}

// intercepts accepts both a scalar and a vector intercept_. A model fitted without
// intercept stores the scalar 0.
func intercepts(node *graph.Node) ([]float64, error) {
	if vector, err := node.Floats("intercept_"); err == nil {
		return vector, nil
	}
	scalar, err := node.Float("intercept_")
	if err != nil {
		return nil, err
	}
	return []float64{scalar}, nil
}

// NumberOfFeatures falls back to the width of coef_.
func (m *linearModel) NumberOfFeatures() int {
	if n := m.BaseEstimator.NumberOfFeatures(); n != sklearn.UnknownFeatures {
		return n
	}
	_, cols := m.coef.Dims()
	return cols
}

func (m *linearModel) Coefficients() mat.Matrix {
	return m.coef
}

func (m *linearModel) Intercepts() []float64 {
	return m.intercept
}

// continuousFeatures converts the schema features into regression predictors.
func (m *linearModel) continuousFeatures(schema *model.Schema) ([]*model.ContinuousFeature, error) {
	features := schema.Features()
	_, cols := m.coef.Dims()
	if err := m.CheckSize("features", cols, len(features)); err != nil {
		return nil, err
	}
	result := make([]*model.ContinuousFeature, len(features))
	for i, f := range features {
		c, err := model.ToContinuous(f, schema.Encoder())
		if err != nil {
			return nil, err
		}
		result[i] = c
	}
	return result, nil
}

// table creates the regression table of output row. Zero coefficients are omitted.
func (m *linearModel) table(features []*model.ContinuousFeature, row int, category string) *pmml.RegressionTable {
	table := &pmml.RegressionTable{Intercept: m.intercept[row], TargetCategory: category}
	for i, coefficient := range mat.Row(nil, row, m.coef) {
		if coefficient == 0 {
			continue
		}
		table.NumericPredictors = append(table.NumericPredictors, &pmml.NumericPredictor{
			Name:        features[i].Name(),
			Coefficient: coefficient,
		})
	}
	return table
}
