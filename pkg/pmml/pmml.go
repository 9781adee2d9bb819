package pmml

import "encoding/xml"

const Namespace = "http://www.dmg.org/PMML-4_4"

// PMML is the root of a model-scoring document.
type PMML struct {
	XMLName                  xml.Name `xml:"PMML"`
	XMLNS                    string   `xml:"xmlns,attr"`
	Version                  string   `xml:"version,attr"`
	Header                   *Header
	DataDictionary           *DataDictionary
	TransformationDictionary *TransformationDictionary
	Model                    Model
}

func New(version string, header *Header, dataDictionary *DataDictionary, model Model) *PMML {
	return &PMML{
		XMLNS:          Namespace,
		Version:        version,
		Header:         header,
		DataDictionary: dataDictionary,
		Model:          model,
	}
}

type Header struct {
	XMLName     xml.Name     `xml:"Header"`
	Description string       `xml:"description,attr,omitempty"`
	Extensions  []*Extension `xml:"Extension"`
	Application *Application
	Timestamp   string `xml:"Timestamp,omitempty"`
}

type Extension struct {
	XMLName xml.Name `xml:"Extension"`
	Name    string   `xml:"name,attr"`
	Value   string   `xml:"value,attr"`
}

type Application struct {
	XMLName xml.Name `xml:"Application"`
	Name    string   `xml:"name,attr"`
	Version string   `xml:"version,attr,omitempty"`
}
