// Package cluster converts fitted clusterers into ClusteringModels.
package cluster

import (
	"strconv"

	"gonum.org/v1/gonum/mat"

	"sk2pmml/pkg/errors"
	"sk2pmml/pkg/graph"
	"sk2pmml/pkg/model"
	"sk2pmml/pkg/pmml"
	"sk2pmml/pkg/sklearn"
)

const (
	KMeansClass          = "sklearn.cluster._kmeans.KMeans"
	MiniBatchKMeansClass = "sklearn.cluster._kmeans.MiniBatchKMeans"

	// ClusterField is the output field reporting the id of the nearest cluster.
	ClusterField = "cluster"
)

func init() {
	factory := func(node *graph.Node) (sklearn.Step, error) { return NewKMeans(node) }
	sklearn.Register(KMeansClass, factory)
	sklearn.Register("sklearn.cluster.k_means_.KMeans", factory)
	sklearn.Register(MiniBatchKMeansClass, factory)
}

var _ sklearn.Clusterer = &KMeans{}

// KMeans assigns every instance to the center at the smallest squared euclidean distance.
// Cluster ids are the row indices of cluster_centers_, matching the fitted labels_.
type KMeans struct {
	sklearn.BaseEstimator
	centers *mat.Dense
}

func NewKMeans(node *graph.Node) (*KMeans, error) {
	base, err := sklearn.NewBaseEstimator(node)
	if err != nil {
		return nil, err
	}
	rows, err := node.Matrix("cluster_centers_")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.InvalidConfiguration(node.Class, "no cluster centers")
	}
	k := &KMeans{BaseEstimator: base, centers: mat.NewDense(len(rows), len(rows[0]), nil)}
	for i, row := range rows {
		if err := k.CheckSize("cluster center length", len(rows[0]), len(row)); err != nil {
			return nil, err
		}
		k.centers.SetRow(i, row)
	}
	if node.Has("n_clusters") {
		n, err := node.Int("n_clusters")
		if err != nil {
			return nil, err
		}
		if err := k.CheckSize("cluster centers", n, len(rows)); err != nil {
			return nil, err
		}
	}
	if n := base.NumberOfFeatures(); n != sklearn.UnknownFeatures {
		if err := k.CheckSize("cluster center length", n, len(rows[0])); err != nil {
			return nil, err
		}
	}
	return k, nil
}

func (k *KMeans) NumberOfFeatures() int {
	if n := k.BaseEstimator.NumberOfFeatures(); n != sklearn.UnknownFeatures {
		return n
	}
	_, cols := k.centers.Dims()
	return cols
}

func (k *KMeans) MiningFunction() pmml.MiningFunction {
	return pmml.MiningFunctionClustering
}

func (k *KMeans) NumberOfClusters() (int, error) {
	rows, _ := k.centers.Dims()
	return rows, nil
}

func (k *KMeans) Centers() mat.Matrix {
	return k.centers
}

func (k *KMeans) EncodeModel(schema *model.Schema) (pmml.Model, error) {
	features := schema.Features()
	rows, cols := k.centers.Dims()
	if err := k.CheckSize("features", cols, len(features)); err != nil {
		return nil, err
	}

	fields := make([]*pmml.ClusteringField, len(features))
	for i, f := range features {
		c, err := model.ToContinuous(f, schema.Encoder())
		if err != nil {
			return nil, err
		}
		fields[i] = &pmml.ClusteringField{Field: c.Name()}
	}
	clusters := make([]*pmml.Cluster, rows)
	for i := range clusters {
		clusters[i] = &pmml.Cluster{
			ID:    strconv.Itoa(i),
			Array: pmml.NewRealArray(mat.Row(nil, i, k.centers)),
		}
	}
	measure := &pmml.ComparisonMeasure{Kind: "distance", SquaredEuclidean: &pmml.SquaredEuclidean{}}

	m := pmml.NewClusteringModel(measure, fields, clusters)
	pmml.EnsureOutput(m).AddField(&pmml.OutputField{
		Name:     ClusterField,
		OpType:   pmml.OpTypeCategorical,
		DataType: pmml.DataTypeString,
		Feature:  pmml.ResultFeatureClusterID,
	})
	return m, nil
}
