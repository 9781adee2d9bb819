package model

import "sk2pmml/pkg/pmml"

// Label is the target of a supervised estimator.
type Label interface {
	Name() string
	DataType() pmml.DataType
}

var (
	_ Label = &ContinuousLabel{}
	_ Label = &CategoricalLabel{}
)

type ContinuousLabel struct {
	name     string
	dataType pmml.DataType
}

func NewContinuousLabel(name string, dataType pmml.DataType) *ContinuousLabel {
	return &ContinuousLabel{name: name, dataType: dataType}
}

func (l *ContinuousLabel) Name() string            { return l.name }
func (l *ContinuousLabel) DataType() pmml.DataType { return l.dataType }

// CategoricalLabel holds the target classes in the order the estimator reports them.
type CategoricalLabel struct {
	name     string
	dataType pmml.DataType
	classes  CategoryMap
}

func NewCategoricalLabel(name string, dataType pmml.DataType, values []string) *CategoricalLabel {
	classes := NewCategoryMap()
	for _, v := range values {
		classes.ValueFor(v)
	}
	return &CategoricalLabel{name: name, dataType: dataType, classes: classes}
}

func (l *CategoricalLabel) Name() string            { return l.name }
func (l *CategoricalLabel) DataType() pmml.DataType { return l.dataType }

func (l *CategoricalLabel) Values() []string {
	return l.classes.Values()
}

func (l *CategoricalLabel) Size() int {
	return l.classes.Size()
}

// Value returns the class at index.
func (l *CategoricalLabel) Value(index int) string {
	return l.classes.CodeToValue[index]
}
