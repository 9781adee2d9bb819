package preprocessing

import (
	"strings"

	"sk2pmml/pkg/errors"
	"sk2pmml/pkg/pmml"
)

var dataTypes = map[string]pmml.DataType{
	"str":     pmml.DataTypeString,
	"string":  pmml.DataTypeString,
	"unicode": pmml.DataTypeString,
	"object":  pmml.DataTypeObject,
	"O":       pmml.DataTypeObject,
	"int":     pmml.DataTypeInteger,
	"integer": pmml.DataTypeInteger,
	"int8":    pmml.DataTypeInteger,
	"int16":   pmml.DataTypeInteger,
	"int32":   pmml.DataTypeInteger,
	"int64":   pmml.DataTypeInteger,
	"uint8":   pmml.DataTypeInteger,
	"uint16":  pmml.DataTypeInteger,
	"uint32":  pmml.DataTypeInteger,
	"uint64":  pmml.DataTypeInteger,
	"float16": pmml.DataTypeFloat,
	"float32": pmml.DataTypeFloat,
	"float":   pmml.DataTypeDouble,
	"float64": pmml.DataTypeDouble,
	"double":  pmml.DataTypeDouble,
	"bool":    pmml.DataTypeBoolean,
	"boolean": pmml.DataTypeBoolean,
}

// ParseDataType accepts PMML data type names as well as numpy dtype names.
// "float" is a 64 bit float in numpy and therefore maps to double.
func ParseDataType(node, dtype string) (pmml.DataType, error) {
	name := strings.TrimPrefix(dtype, "numpy.")
	if dataType, ok := dataTypes[name]; ok {
		return dataType, nil
	}
	if dataType, ok := dataTypes[strings.ToLower(name)]; ok {
		return dataType, nil
	}
	return "", errors.InvalidConfiguration(node, "unsupported dtype %q", dtype)
}
