package pmml

import "encoding/xml"

// Predicate decides whether a tree node or segment applies to a record.
type Predicate interface {
	isPredicate()
}

var (
	_ Predicate = &True{}
	_ Predicate = &SimplePredicate{}
	_ Predicate = &SimpleSetPredicate{}
)

type True struct {
	XMLName xml.Name `xml:"True"`
}

func (*True) isPredicate() {}

type SimplePredicate struct {
	XMLName  xml.Name `xml:"SimplePredicate"`
	Field    string   `xml:"field,attr"`
	Operator string   `xml:"operator,attr"`
	Value    string   `xml:"value,attr,omitempty"`
}

func (*SimplePredicate) isPredicate() {}

type SimpleSetPredicate struct {
	XMLName         xml.Name `xml:"SimpleSetPredicate"`
	Field           string   `xml:"field,attr"`
	BooleanOperator string   `xml:"booleanOperator,attr"`
	Array           *Array
}

func (*SimpleSetPredicate) isPredicate() {}
