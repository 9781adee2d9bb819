package categoryencoders

import (
	"sk2pmml/pkg/graph"
	"sk2pmml/pkg/sklearn"
)

const BinaryEncoderClass = "category_encoders.binary.BinaryEncoder"

func init() {
	sklearn.Register(BinaryEncoderClass, func(node *graph.Node) (sklearn.Step, error) { return NewBinaryEncoder(node) })
}

// NewBinaryEncoder converts a BinaryEncoder, which is a base 2 BaseNEncoder. Recent versions
// keep the fitted state in a nested base_n_encoder.
func NewBinaryEncoder(node *graph.Node) (*BaseNEncoder, error) {
	if node.Has("base_n_encoder") {
		inner, err := node.Child("base_n_encoder")
		if err != nil {
			return nil, err
		}
		return newBaseNEncoder(inner, 2)
	}
	return newBaseNEncoder(node, 2)
}
