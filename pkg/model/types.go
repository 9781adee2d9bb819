package model

import (
	"fmt"
	"strconv"

	"sk2pmml/pkg/errors"
	"sk2pmml/pkg/pmml"
)

// CheckTypes verifies that opType and dataType can describe the same feature.
func CheckTypes(name string, opType pmml.OpType, dataType pmml.DataType) error {
	switch opType {
	case pmml.OpTypeCategorical, pmml.OpTypeOrdinal:
		if dataType == pmml.DataTypeFloat || dataType == pmml.DataTypeDouble {
			return errors.SchemaContract(name, "%s feature over %s data", opType, dataType)
		}
	case pmml.OpTypeContinuous:
		if !dataType.IsNumeric() && dataType != pmml.DataTypeObject {
			return errors.SchemaContract(name, "%s feature over %s data", opType, dataType)
		}
	default:
		return errors.InvalidConfiguration(name, "unknown operational type %q", opType)
	}
	return nil
}

// CoercedOpType is the operational type a cast to dataType implies: categorical for
// strings and booleans, continuous for everything else.
func CoercedOpType(dataType pmml.DataType) pmml.OpType {
	switch dataType {
	case pmml.DataTypeString, pmml.DataTypeBoolean:
		return pmml.OpTypeCategorical
	default:
		return pmml.OpTypeContinuous
	}
}

// FieldName creates a synthetic field name of the form function(arg1, arg2, ...).
func FieldName(function string, args ...interface{}) string {
	result := function + "("
	for i, arg := range args {
		if i > 0 {
			result += ", "
		}
		switch v := arg.(type) {
		case Feature:
			result += v.Name()
		default:
			result += fmt.Sprint(v)
		}
	}
	return result + ")"
}

// InferDataType is integer when every value is an integer literal and string otherwise.
func InferDataType(values []string) pmml.DataType {
	if len(values) == 0 {
		return pmml.DataTypeString
	}
	for _, v := range values {
		if _, err := strconv.ParseInt(v, 10, 64); err != nil {
			return pmml.DataTypeString
		}
	}
	return pmml.DataTypeInteger
}
