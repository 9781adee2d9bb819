package pmml

// DataType is the storage type of a field.
type DataType string

const (
	DataTypeInteger DataType = "integer"
	DataTypeFloat   DataType = "float"
	DataTypeDouble  DataType = "double"
	DataTypeString  DataType = "string"
	DataTypeBoolean DataType = "boolean"
	// DataTypeObject marks a value that is passed through without interpretation.
	DataTypeObject DataType = "object"
)

// IsNumeric reports whether values of the type are numbers.
func (d DataType) IsNumeric() bool {
	switch d {
	case DataTypeInteger, DataTypeFloat, DataTypeDouble:
		return true
	}
	return false
}

// OpType is the operational type of a field.
type OpType string

const (
	OpTypeCategorical OpType = "categorical"
	OpTypeContinuous  OpType = "continuous"
	OpTypeOrdinal     OpType = "ordinal"
)

type MiningFunction string

const (
	MiningFunctionClassification   MiningFunction = "classification"
	MiningFunctionRegression       MiningFunction = "regression"
	MiningFunctionClustering       MiningFunction = "clustering"
	MiningFunctionAssociationRules MiningFunction = "associationRules"
)

// MultipleModelMethod is the aggregation applied to the segments of a Segmentation.
type MultipleModelMethod string

const (
	MultipleModelMethodAverage         MultipleModelMethod = "average"
	MultipleModelMethodWeightedAverage MultipleModelMethod = "weightedAverage"
	MultipleModelMethodMajorityVote    MultipleModelMethod = "majorityVote"
	MultipleModelMethodSum             MultipleModelMethod = "sum"
	MultipleModelMethodModelChain      MultipleModelMethod = "modelChain"
)

type UsageType string

const (
	UsageTypeActive UsageType = "active"
	UsageTypeTarget UsageType = "target"
)

// ResultFeature selects what an OutputField reports.
type ResultFeature string

const (
	ResultFeaturePredictedValue ResultFeature = "predictedValue"
	ResultFeatureProbability    ResultFeature = "probability"
	ResultFeatureEntityID       ResultFeature = "entityId"
	ResultFeatureClusterID      ResultFeature = "clusterId"
)
