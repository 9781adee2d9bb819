// Package categoryencoders converts the encoders of the category_encoders library.
package categoryencoders

import (
	"sk2pmml/pkg/errors"
	"sk2pmml/pkg/graph"
	"sk2pmml/pkg/model"
	"sk2pmml/pkg/pmml"
	"sk2pmml/pkg/sklearn"
)

const (
	HandleError = "error"
	HandleValue = "value"
)

// Codes category_encoders reserves for unknown and missing values.
const (
	UnknownCode = -1
	MissingCode = -2
)

// categoryEncoder holds the settings every category encoder shares.
type categoryEncoder struct {
	sklearn.BaseStep
	cols          []string
	dropInvariant bool
	dropCols      []string
	handleMissing string
	handleUnknown string
}

func newCategoryEncoder(node *graph.Node) (categoryEncoder, error) {
	base, err := sklearn.NewBaseStep(node)
	if err != nil {
		return categoryEncoder{}, err
	}
	e := categoryEncoder{BaseStep: base}
	if e.cols, err = node.Values("cols"); err != nil {
		return categoryEncoder{}, err
	}
	if e.dropInvariant, err = node.Bool("drop_invariant", false); err != nil {
		return categoryEncoder{}, err
	}
	if e.dropInvariant && node.Has("drop_cols") {
		if e.dropCols, err = node.Values("drop_cols"); err != nil {
			return categoryEncoder{}, err
		}
	}
	if e.handleMissing, err = node.String("handle_missing"); err != nil {
		return categoryEncoder{}, err
	}
	if e.handleUnknown, err = node.String("handle_unknown"); err != nil {
		return categoryEncoder{}, err
	}
	return e, nil
}

func (e *categoryEncoder) OpType() (pmml.OpType, error) {
	return pmml.OpTypeCategorical, nil
}

func (e *categoryEncoder) DataType() (pmml.DataType, error) {
	return pmml.DataTypeString, nil
}

func (e *categoryEncoder) dropped(column string) bool {
	for _, c := range e.dropCols {
		if c == column {
			return true
		}
	}
	return false
}

func checkPolicy(node, option, value string, accepted ...string) error {
	for _, a := range accepted {
		if value == a {
			return nil
		}
	}
	return errors.InvalidConfiguration(node, "unsupported %s value %q", option, value)
}

// parseMappings reads the fitted mapping of an ordinal encoder: a list of {col, mapping}
// where mapping is an ordered list of [category, code] pairs. Reserved negative codes are skipped.
func parseMappings(node *graph.Node) ([]model.OrdinalMapping, error) {
	v, ok := node.Get("mapping")
	entries, isList := v.([]interface{})
	if !ok || !isList {
		return nil, errors.InvalidConfiguration(node.Class, "attribute %q: expected a list of column mappings", "mapping")
	}
	result := make([]model.OrdinalMapping, len(entries))
	for i, entry := range entries {
		attributes, ok := entry.(map[string]interface{})
		if !ok {
			return nil, errors.InvalidConfiguration(node.Class, "mapping %d: expected a mapping, got %T", i, entry)
		}
		col, ok := graph.FormatValue(attributes["col"])
		if !ok {
			return nil, errors.InvalidConfiguration(node.Class, "mapping %d: missing column", i)
		}
		pairs, err := graph.NewNode(node.Class, attributes).Pairs("mapping")
		if err != nil {
			return nil, err
		}
		categories := model.NewCategoryMap()
		for _, pair := range pairs {
			code, ok := pair.Value.(int)
			if !ok {
				return nil, errors.InvalidConfiguration(node.Class, "mapping of column %q: code %v of %q is not an integer", col, pair.Value, pair.Key)
			}
			if code < 0 {
				continue
			}
			categories.Set(pair.Key, code)
		}
		if categories.Size() == 0 {
			return nil, errors.InvalidConfiguration(node.Class, "mapping of column %q has no categories", col)
		}
		result[i] = model.OrdinalMapping{Column: col, Categories: categories}
	}
	return result, nil
}
