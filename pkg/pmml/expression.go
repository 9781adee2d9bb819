package pmml

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Expression computes the value of a DerivedField.
type Expression interface {
	// FieldRefs lists the names of the fields the expression reads, in document order.
	FieldRefs() []string
}

var (
	_ Expression = &FieldRef{}
	_ Expression = &Constant{}
	_ Expression = &Apply{}
	_ Expression = &MapValues{}
)

type FieldRef struct {
	XMLName xml.Name `xml:"FieldRef"`
	Field   string   `xml:"field,attr"`
}

func NewFieldRef(name string) *FieldRef {
	return &FieldRef{Field: name}
}

func (r *FieldRef) FieldRefs() []string {
	return []string{r.Field}
}

type Constant struct {
	XMLName  xml.Name `xml:"Constant"`
	DataType DataType `xml:"dataType,attr,omitempty"`
	Value    string   `xml:",chardata"`
}

func (c *Constant) FieldRefs() []string {
	return nil
}

// Apply invokes a built-in or user-defined function.
type Apply struct {
	XMLName     xml.Name `xml:"Apply"`
	Function    string   `xml:"function,attr"`
	Expressions []Expression
}

func NewApply(function string, expressions ...Expression) *Apply {
	return &Apply{Function: function, Expressions: expressions}
}

func (a *Apply) FieldRefs() []string {
	var result []string
	for _, e := range a.Expressions {
		result = append(result, e.FieldRefs()...)
	}
	return result
}

type FieldColumnPair struct {
	XMLName xml.Name `xml:"FieldColumnPair"`
	Field   string   `xml:"field,attr"`
	Column  string   `xml:"column,attr"`
}

// Cell is a single column value of an InlineTable row. The element name is the column name.
type Cell struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type Row struct {
	XMLName xml.Name `xml:"row"`
	Cells   []Cell
}

type InlineTable struct {
	XMLName xml.Name `xml:"InlineTable"`
	Rows    []Row
}

// AddRow appends a row with one cell per column, in column order.
func (t *InlineTable) AddRow(columns []string, values []string) {
	row := Row{Cells: make([]Cell, len(columns))}
	for i, column := range columns {
		row.Cells[i] = Cell{XMLName: xml.Name{Local: column}, Value: values[i]}
	}
	t.Rows = append(t.Rows, row)
}

// MapValues looks up the value of its input fields in an InlineTable.
type MapValues struct {
	XMLName          xml.Name          `xml:"MapValues"`
	OutputColumn     string            `xml:"outputColumn,attr"`
	DataType         DataType          `xml:"dataType,attr,omitempty"`
	MapMissingTo     string            `xml:"mapMissingTo,attr,omitempty"`
	DefaultValue     string            `xml:"defaultValue,attr,omitempty"`
	FieldColumnPairs []FieldColumnPair `xml:"FieldColumnPair"`
	InlineTable      *InlineTable
}

// NewMapValues creates a single-input lookup of field through the input/output columns.
func NewMapValues(field string, dataType DataType) *MapValues {
	return &MapValues{
		OutputColumn:     "output",
		DataType:         dataType,
		FieldColumnPairs: []FieldColumnPair{{Field: field, Column: "input"}},
		InlineTable:      &InlineTable{},
	}
}

// AddMapping maps input to output.
func (m *MapValues) AddMapping(input, output string) {
	m.InlineTable.AddRow([]string{"input", m.OutputColumn}, []string{input, output})
}

func (m *MapValues) FieldRefs() []string {
	result := make([]string, len(m.FieldColumnPairs))
	for i, pair := range m.FieldColumnPairs {
		result[i] = pair.Field
	}
	return result
}

// Array is a space separated list of values. String values containing blanks are quoted.
type Array struct {
	XMLName xml.Name `xml:"Array"`
	Type    string   `xml:"type,attr"`
	N       int      `xml:"n,attr"`
	Value   string   `xml:",chardata"`
}

func NewStringArray(values []string) *Array {
	parts := make([]string, len(values))
	for i, v := range values {
		if strings.ContainsAny(v, " \t\"") || v == "" {
			v = strconv.Quote(v)
		}
		parts[i] = v
	}
	return &Array{Type: "string", N: len(values), Value: strings.Join(parts, " ")}
}

func NewRealArray(values []float64) *Array {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = FormatNumber(v)
	}
	return &Array{Type: "real", N: len(values), Value: strings.Join(parts, " ")}
}

// FormatNumber renders v in the shortest form that parses back to the same float64.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
