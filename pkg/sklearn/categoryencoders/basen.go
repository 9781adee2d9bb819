package categoryencoders

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"sk2pmml/pkg/errors"
	"sk2pmml/pkg/graph"
	"sk2pmml/pkg/model"
	"sk2pmml/pkg/pmml"
	"sk2pmml/pkg/sklearn"
)

const BaseNEncoderClass = "category_encoders.basen.BaseNEncoder"

func init() {
	sklearn.Register(BaseNEncoderClass, func(node *graph.Node) (sklearn.Step, error) { return NewBaseNEncoder(node) })
}

var (
	_ sklearn.Transformer = &BaseNEncoder{}
	_ model.Feature       = &BaseNFeature{}
)

// BaseNEncoder replaces every categorical feature with the zero padded base-N digits of its ordinal code.
type BaseNEncoder struct {
	categoryEncoder
	base    int
	ordinal *OrdinalEncoder
}

func NewBaseNEncoder(node *graph.Node) (*BaseNEncoder, error) {
	base, err := node.Int("base")
	if err != nil {
		return nil, err
	}
	return newBaseNEncoder(node, base)
}

func newBaseNEncoder(node *graph.Node, base int) (*BaseNEncoder, error) {
	e, err := newCategoryEncoder(node)
	if err != nil {
		return nil, err
	}
	if base < 2 || base > 36 {
		return nil, &errors.Conversion{
			Kind:     errors.KindInvalidConfiguration,
			Node:     node.Class,
			Message:  "base",
			Expected: "2..36",
			Actual:   strconv.Itoa(base),
		}
	}
	if err := checkPolicy(node.Class, "handle_missing", e.handleMissing, HandleError, HandleValue); err != nil {
		return nil, err
	}
	if err := checkPolicy(node.Class, "handle_unknown", e.handleUnknown, HandleError); err != nil {
		return nil, err
	}
	ordinalNode, err := node.Child("ordinal_encoder")
	if err != nil {
		return nil, err
	}
	ordinal, err := NewOrdinalEncoder(ordinalNode)
	if err != nil {
		return nil, err
	}
	return &BaseNEncoder{categoryEncoder: e, base: base, ordinal: ordinal}, nil
}

func (e *BaseNEncoder) Base() int {
	return e.base
}

func (e *BaseNEncoder) EncodeFeatures(features model.FeatureList, encoder *model.Encoder) (model.FeatureList, error) {
	mappings := e.ordinal.Mappings()
	if err := e.checkSizes(features, mappings); err != nil {
		return nil, err
	}
	var result model.FeatureList
	for i, f := range features {
		categories := mappings[i].Categories
		digits := RequiredDigits(categories.Size(), e.base)
		encoded := EncodeValues(categories, e.base, digits)
		for _, value := range categories.Values() {
			if n := len(encoded[value]); n != digits {
				return nil, errors.InvalidConfiguration(e.ClassName(), "code of category %q needs %d base %d digits, %d available", value, n, e.base, digits)
			}
		}
		for pos := 0; pos < digits; pos++ {
			if e.dropped(fmt.Sprintf("%s_%d", e.cols[i], pos)) {
				continue
			}
			groups := map[int][]string{}
			for _, value := range categories.Values() {
				digit, err := strconv.ParseInt(encoded[value][pos:pos+1], e.base, 64)
				if err != nil {
					return nil, fmt.Errorf("error decoding digit of %q: %w", encoded[value], err)
				}
				groups[int(digit)] = append(groups[int(digit)], value)
			}
			feature, err := e.encodePosition(f, pos, groups, encoder)
			if err != nil {
				return nil, err
			}
			result = append(result, feature)
		}
	}
	return result, nil
}

func (e *BaseNEncoder) encodePosition(f model.Feature, pos int, groups map[int][]string, encoder *model.Encoder) (*BaseNFeature, error) {
	expression := pmml.NewMapValues(f.Name(), pmml.DataTypeInteger)
	digits := make([]int, 0, len(groups))
	for digit := range groups {
		digits = append(digits, digit)
	}
	sort.Ints(digits)
	values := make([]string, len(digits))
	for i, digit := range digits {
		values[i] = strconv.Itoa(digit)
		for _, category := range groups[digit] {
			expression.AddMapping(category, values[i])
		}
	}
	missing := ""
	if e.handleMissing == HandleValue {
		missing = "0"
		expression.MapMissingTo = missing
	}
	name := model.FieldName(fmt.Sprintf("base%d", e.base), f, pos)
	field, err := encoder.EnsureDerivedField(name, pmml.OpTypeCategorical, pmml.DataTypeInteger, expression)
	if err != nil {
		return nil, err
	}
	return &BaseNFeature{
		CategoricalFeature: model.NewCategoricalFeature(field.Name, pmml.DataTypeInteger, values),
		Source:             f,
		Base:               e.base,
		Position:           pos,
		Groups:             groups,
		MissingDigit:       missing,
	}, nil
}

// BaseNFeature is one digit position of a base-N encoded feature. Groups lists the categories
// of the source feature by the digit they have at Position.
type BaseNFeature struct {
	*model.CategoricalFeature
	Source       model.Feature
	Base         int
	Position     int
	Groups       map[int][]string
	MissingDigit string
}

// RequiredDigits is the number of base-N digits used for k categories, one more than needed.
func RequiredDigits(k, base int) int {
	if base == 1 {
		return k + 1
	}
	return int(math.Ceil(math.Log(float64(k))/math.Log(float64(base)))) + 1
}

// EncodeValues renders the code of every category in base, left padded with zeros to digits.
func EncodeValues(categories model.CategoryMap, base, digits int) map[string]string {
	result := make(map[string]string, categories.Size())
	for _, value := range categories.Values() {
		code, _ := categories.Code(value)
		s := strconv.FormatInt(int64(code), base)
		if len(s) < digits {
			s = strings.Repeat("0", digits-len(s)) + s
		}
		result[value] = s
	}
	return result
}
