package pmml

import "encoding/xml"

// MiningModel combines sub-models through a Segmentation.
type MiningModel struct {
	XMLName xml.Name `xml:"MiningModel"`
	ModelAttributes
	Segmentation *Segmentation
}

func NewMiningModel(function MiningFunction, target string, segmentation *Segmentation) *MiningModel {
	return &MiningModel{
		ModelAttributes: NewModelAttributes(function, target),
		Segmentation:    segmentation,
	}
}

type Segmentation struct {
	XMLName             xml.Name            `xml:"Segmentation"`
	MultipleModelMethod MultipleModelMethod `xml:"multipleModelMethod,attr"`
	Segments            []*Segment          `xml:"Segment"`
}

type Segment struct {
	XMLName   xml.Name `xml:"Segment"`
	ID        string   `xml:"id,attr"`
	Predicate Predicate
	Model     Model
}
