package pmml

import "encoding/xml"

type ClusteringModel struct {
	XMLName xml.Name `xml:"ClusteringModel"`
	ModelAttributes
	ModelClass        string             `xml:"modelClass,attr"`
	NumberOfClusters  int                `xml:"numberOfClusters,attr"`
	ComparisonMeasure *ComparisonMeasure
	ClusteringFields  []*ClusteringField `xml:"ClusteringField"`
	Clusters          []*Cluster         `xml:"Cluster"`
}

func NewClusteringModel(measure *ComparisonMeasure, fields []*ClusteringField, clusters []*Cluster) *ClusteringModel {
	return &ClusteringModel{
		ModelAttributes:   NewModelAttributes(MiningFunctionClustering, ""),
		ModelClass:        "centerBased",
		NumberOfClusters:  len(clusters),
		ComparisonMeasure: measure,
		ClusteringFields:  fields,
		Clusters:          clusters,
	}
}

type SquaredEuclidean struct {
	XMLName xml.Name `xml:"squaredEuclidean"`
}

type ComparisonMeasure struct {
	XMLName          xml.Name `xml:"ComparisonMeasure"`
	Kind             string   `xml:"kind,attr"`
	CompareFunction  string   `xml:"compareFunction,attr,omitempty"`
	SquaredEuclidean *SquaredEuclidean
}

type ClusteringField struct {
	XMLName xml.Name `xml:"ClusteringField"`
	Field   string   `xml:"field,attr"`
}

type Cluster struct {
	XMLName xml.Name `xml:"Cluster"`
	ID      string   `xml:"id,attr"`
	Name    string   `xml:"name,attr,omitempty"`
	Array   *Array
}
