package pmml

import "encoding/xml"

type TreeModel struct {
	XMLName xml.Name `xml:"TreeModel"`
	ModelAttributes
	SplitCharacteristic  string `xml:"splitCharacteristic,attr,omitempty"`
	MissingValueStrategy string `xml:"missingValueStrategy,attr,omitempty"`
	Node                 *Node
}

func NewTreeModel(function MiningFunction, target string, root *Node) *TreeModel {
	return &TreeModel{
		ModelAttributes:     NewModelAttributes(function, target),
		SplitCharacteristic: "binarySplit",
		Node:                root,
	}
}

type Node struct {
	XMLName            xml.Name             `xml:"Node"`
	ID                 string               `xml:"id,attr,omitempty"`
	Score              string               `xml:"score,attr,omitempty"`
	RecordCount        *float64             `xml:"recordCount,attr,omitempty"`
	Predicate          Predicate
	ScoreDistributions []*ScoreDistribution `xml:"ScoreDistribution"`
	Nodes              []*Node              `xml:"Node"`
}

type ScoreDistribution struct {
	XMLName     xml.Name `xml:"ScoreDistribution"`
	Value       string   `xml:"value,attr"`
	RecordCount float64  `xml:"recordCount,attr"`
	Probability *float64 `xml:"probability,attr,omitempty"`
}

// Leaves returns the nodes without children, in document order.
func (n *Node) Leaves() []*Node {
	if len(n.Nodes) == 0 {
		return []*Node{n}
	}
	var result []*Node
	for _, child := range n.Nodes {
		result = append(result, child.Leaves()...)
	}
	return result
}
