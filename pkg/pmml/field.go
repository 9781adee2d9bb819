package pmml

import "encoding/xml"

// Field is anything that can be referenced by name from an expression.
type Field interface {
	FieldName() string
	FieldOpType() OpType
	FieldDataType() DataType
}

var (
	_ Field = &DataField{}
	_ Field = &DerivedField{}
)

type Value struct {
	XMLName  xml.Name `xml:"Value"`
	Value    string   `xml:"value,attr"`
	Property string   `xml:"property,attr,omitempty"`
}

// DataField declares an input column of the document.
type DataField struct {
	XMLName  xml.Name `xml:"DataField"`
	Name     string   `xml:"name,attr"`
	OpType   OpType   `xml:"optype,attr"`
	DataType DataType `xml:"dataType,attr"`
	Values   []Value  `xml:"Value,omitempty"`
}

func (f *DataField) FieldName() string       { return f.Name }
func (f *DataField) FieldOpType() OpType     { return f.OpType }
func (f *DataField) FieldDataType() DataType { return f.DataType }

// AddValues appends valid values, skipping the ones already declared.
func (f *DataField) AddValues(values ...string) {
	seen := make(map[string]bool, len(f.Values))
	for _, v := range f.Values {
		seen[v.Value] = true
	}
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		f.Values = append(f.Values, Value{Value: v})
	}
}

// DerivedField is a named, typed expression over other fields.
type DerivedField struct {
	XMLName    xml.Name   `xml:"DerivedField"`
	Name       string     `xml:"name,attr"`
	OpType     OpType     `xml:"optype,attr"`
	DataType   DataType   `xml:"dataType,attr"`
	Expression Expression
}

func (f *DerivedField) FieldName() string       { return f.Name }
func (f *DerivedField) FieldOpType() OpType     { return f.OpType }
func (f *DerivedField) FieldDataType() DataType { return f.DataType }

type DataDictionary struct {
	XMLName        xml.Name     `xml:"DataDictionary"`
	NumberOfFields int          `xml:"numberOfFields,attr"`
	Fields         []*DataField `xml:"DataField"`
}

type TransformationDictionary struct {
	XMLName xml.Name        `xml:"TransformationDictionary"`
	Fields  []*DerivedField `xml:"DerivedField"`
}
