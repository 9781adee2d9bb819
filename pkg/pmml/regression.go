package pmml

import "encoding/xml"

type RegressionModel struct {
	XMLName xml.Name `xml:"RegressionModel"`
	ModelAttributes
	NormalizationMethod string             `xml:"normalizationMethod,attr,omitempty"`
	Tables              []*RegressionTable `xml:"RegressionTable"`
}

func NewRegressionModel(function MiningFunction, target string, tables ...*RegressionTable) *RegressionModel {
	return &RegressionModel{
		ModelAttributes: NewModelAttributes(function, target),
		Tables:          tables,
	}
}

type RegressionTable struct {
	XMLName               xml.Name                `xml:"RegressionTable"`
	Intercept             float64                 `xml:"intercept,attr"`
	TargetCategory        string                  `xml:"targetCategory,attr,omitempty"`
	NumericPredictors     []*NumericPredictor     `xml:"NumericPredictor"`
	CategoricalPredictors []*CategoricalPredictor `xml:"CategoricalPredictor"`
}

type NumericPredictor struct {
	XMLName     xml.Name `xml:"NumericPredictor"`
	Name        string   `xml:"name,attr"`
	Coefficient float64  `xml:"coefficient,attr"`
}

type CategoricalPredictor struct {
	XMLName     xml.Name `xml:"CategoricalPredictor"`
	Name        string   `xml:"name,attr"`
	Value       string   `xml:"value,attr"`
	Coefficient float64  `xml:"coefficient,attr"`
}
