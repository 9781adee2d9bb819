// Package graph holds the in-memory form of a persisted estimator graph.
package graph

import (
	"fmt"
	"math"
	"strconv"

	"sk2pmml/pkg/errors"
)

// ClassKey is the attribute naming the fully qualified class of a node.
const ClassKey = "class"

// Node is one estimator, transformer or helper object of the graph. Attributes hold
// scalars, lists, mappings and nested nodes (mappings with a class key).
type Node struct {
	Class      string
	Attributes map[string]interface{}
}

func NewNode(class string, attributes map[string]interface{}) *Node {
	if attributes == nil {
		attributes = map[string]interface{}{}
	}
	return &Node{Class: class, Attributes: attributes}
}

// FromMap converts a decoded mapping into a Node. The mapping must carry a class key.
func FromMap(m map[string]interface{}) (*Node, error) {
	class, ok := m[ClassKey].(string)
	if !ok || class == "" {
		return nil, errors.InvalidConfiguration("", "object without a %q attribute", ClassKey)
	}
	attributes := make(map[string]interface{}, len(m)-1)
	for k, v := range m {
		if k != ClassKey {
			attributes[k] = v
		}
	}
	return NewNode(class, attributes), nil
}

// ToMap is the inverse of FromMap.
func (n *Node) ToMap() map[string]interface{} {
	result := make(map[string]interface{}, len(n.Attributes)+1)
	for k, v := range n.Attributes {
		result[k] = v
	}
	result[ClassKey] = n.Class
	return result
}

func (n *Node) errorf(key, format string, args ...interface{}) error {
	return errors.InvalidConfiguration(n.Class, "attribute %q: %s", key, fmt.Sprintf(format, args...))
}

// Has reports whether key is present and not null.
func (n *Node) Has(key string) bool {
	v, ok := n.Attributes[key]
	return ok && v != nil
}

func (n *Node) Get(key string) (interface{}, bool) {
	v, ok := n.Attributes[key]
	return v, ok && v != nil
}

func (n *Node) Put(key string, value interface{}) {
	n.Attributes[key] = value
}

func (n *Node) required(key string) (interface{}, error) {
	v, ok := n.Get(key)
	if !ok {
		return nil, n.errorf(key, "missing")
	}
	return v, nil
}

func (n *Node) Int(key string) (int, error) {
	v, err := n.required(key)
	if err != nil {
		return 0, err
	}
	i, ok := toInt(v)
	if !ok {
		return 0, n.errorf(key, "expected an integer, got %v", v)
	}
	return i, nil
}

func (n *Node) Float(key string) (float64, error) {
	v, err := n.required(key)
	if err != nil {
		return 0, err
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, n.errorf(key, "expected a number, got %v", v)
	}
	return f, nil
}

// OptionalInt returns def when key is absent.
func (n *Node) OptionalInt(key string, def int) (int, error) {
	if !n.Has(key) {
		return def, nil
	}
	return n.Int(key)
}

func (n *Node) Bool(key string, def bool) (bool, error) {
	v, ok := n.Get(key)
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, n.errorf(key, "expected a boolean, got %v", v)
	}
	return b, nil
}

func (n *Node) String(key string) (string, error) {
	v, err := n.required(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", n.errorf(key, "expected a string, got %v", v)
	}
	return s, nil
}

func (n *Node) OptionalString(key, def string) (string, error) {
	if !n.Has(key) {
		return def, nil
	}
	return n.String(key)
}

func (n *Node) list(key string) ([]interface{}, error) {
	v, err := n.required(key)
	if err != nil {
		return nil, err
	}
	l, ok := v.([]interface{})
	if !ok {
		return nil, n.errorf(key, "expected a list, got %T", v)
	}
	return l, nil
}

func (n *Node) Floats(key string) ([]float64, error) {
	l, err := n.list(key)
	if err != nil {
		return nil, err
	}
	result := make([]float64, len(l))
	for i, v := range l {
		f, ok := toFloat(v)
		if !ok {
			return nil, n.errorf(key, "element %d: expected a number, got %v", i, v)
		}
		result[i] = f
	}
	return result, nil
}

func (n *Node) Ints(key string) ([]int, error) {
	l, err := n.list(key)
	if err != nil {
		return nil, err
	}
	result := make([]int, len(l))
	for i, v := range l {
		x, ok := toInt(v)
		if !ok {
			return nil, n.errorf(key, "element %d: expected an integer, got %v", i, v)
		}
		result[i] = x
	}
	return result, nil
}

func (n *Node) Strings(key string) ([]string, error) {
	l, err := n.list(key)
	if err != nil {
		return nil, err
	}
	result := make([]string, len(l))
	for i, v := range l {
		s, ok := v.(string)
		if !ok {
			return nil, n.errorf(key, "element %d: expected a string, got %v", i, v)
		}
		result[i] = s
	}
	return result, nil
}

// Values returns a list of scalars rendered as strings, as used for class labels and categories.
func (n *Node) Values(key string) ([]string, error) {
	l, err := n.list(key)
	if err != nil {
		return nil, err
	}
	result := make([]string, len(l))
	for i, v := range l {
		s, ok := FormatValue(v)
		if !ok {
			return nil, n.errorf(key, "element %d: expected a scalar, got %T", i, v)
		}
		result[i] = s
	}
	return result, nil
}

// ValueLists returns a list of scalar lists, one per column.
func (n *Node) ValueLists(key string) ([][]string, error) {
	l, err := n.list(key)
	if err != nil {
		return nil, err
	}
	result := make([][]string, len(l))
	for i, column := range l {
		inner := NewNode(n.Class, map[string]interface{}{key: column})
		if result[i], err = inner.Values(key); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Matrix returns a list of numeric rows.
func (n *Node) Matrix(key string) ([][]float64, error) {
	l, err := n.list(key)
	if err != nil {
		return nil, err
	}
	result := make([][]float64, len(l))
	for i, row := range l {
		values, ok := row.([]interface{})
		if !ok {
			return nil, n.errorf(key, "row %d: expected a list, got %T", i, row)
		}
		result[i] = make([]float64, len(values))
		for j, v := range values {
			f, ok := toFloat(v)
			if !ok {
				return nil, n.errorf(key, "row %d element %d: expected a number, got %v", i, j, v)
			}
			result[i][j] = f
		}
	}
	return result, nil
}

// Tensor returns a list of matrices.
func (n *Node) Tensor(key string) ([][][]float64, error) {
	l, err := n.list(key)
	if err != nil {
		return nil, err
	}
	result := make([][][]float64, len(l))
	for i, m := range l {
		inner := NewNode(n.Class, map[string]interface{}{key: m})
		result[i], err = inner.Matrix(key)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (n *Node) Dict(key string) (map[string]interface{}, error) {
	v, err := n.required(key)
	if err != nil {
		return nil, err
	}
	d, ok := v.(map[string]interface{})
	if !ok {
		return nil, n.errorf(key, "expected a mapping, got %T", v)
	}
	return d, nil
}

// Child returns the nested node stored under key.
func (n *Node) Child(key string) (*Node, error) {
	d, err := n.Dict(key)
	if err != nil {
		return nil, err
	}
	child, err := FromMap(d)
	if err != nil {
		return nil, n.errorf(key, "%s", err)
	}
	return child, nil
}

// Children returns the list of nested nodes stored under key.
func (n *Node) Children(key string) ([]*Node, error) {
	l, err := n.list(key)
	if err != nil {
		return nil, err
	}
	result := make([]*Node, len(l))
	for i, v := range l {
		d, ok := v.(map[string]interface{})
		if !ok {
			return nil, n.errorf(key, "element %d: expected an object, got %T", i, v)
		}
		if result[i], err = FromMap(d); err != nil {
			return nil, n.errorf(key, "element %d: %s", i, err)
		}
	}
	return result, nil
}

// NamedStep is one (name, step) tuple of a pipeline. Node is nil for "passthrough" and null steps.
type NamedStep struct {
	Name string
	Node *Node
}

// Steps decodes a list of [name, step] tuples.
func (n *Node) Steps(key string) ([]NamedStep, error) {
	l, err := n.list(key)
	if err != nil {
		return nil, err
	}
	result := make([]NamedStep, len(l))
	for i, v := range l {
		tuple, ok := v.([]interface{})
		if !ok || len(tuple) != 2 {
			return nil, n.errorf(key, "element %d: expected a [name, step] pair", i)
		}
		name, ok := tuple[0].(string)
		if !ok {
			return nil, n.errorf(key, "element %d: expected a string name, got %v", i, tuple[0])
		}
		result[i].Name = name
		switch step := tuple[1].(type) {
		case nil:
		case string:
			if step != "passthrough" && step != "drop" {
				return nil, n.errorf(key, "step %q: unknown shorthand %q", name, step)
			}
		case map[string]interface{}:
			if result[i].Node, err = FromMap(step); err != nil {
				return nil, n.errorf(key, "step %q: %s", name, err)
			}
		default:
			return nil, n.errorf(key, "step %q: expected an object, got %T", name, step)
		}
	}
	return result, nil
}

// Pair is one [key, value] entry of an ordered mapping. Key is rendered with FormatValue.
type Pair struct {
	Key   string
	Value interface{}
}

// Pairs decodes an ordered mapping stored as a list of [key, value] lists.
func (n *Node) Pairs(key string) ([]Pair, error) {
	l, err := n.list(key)
	if err != nil {
		return nil, err
	}
	result := make([]Pair, len(l))
	for i, v := range l {
		tuple, ok := v.([]interface{})
		if !ok || len(tuple) != 2 {
			return nil, n.errorf(key, "element %d: expected a [key, value] pair", i)
		}
		k, ok := FormatValue(tuple[0])
		if !ok {
			return nil, n.errorf(key, "element %d: expected a scalar key, got %T", i, tuple[0])
		}
		if x, ok := toInt(tuple[1]); ok {
			result[i] = Pair{Key: k, Value: x}
		} else {
			result[i] = Pair{Key: k, Value: tuple[1]}
		}
	}
	return result, nil
}

// toInt accepts integral numbers that fit an int.
func toInt(v interface{}) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		if x >= math.MinInt && x <= math.MaxInt {
			return int(x), true
		}
	case uint64:
		if x <= math.MaxInt {
			return int(x), true
		}
	case float64:
		if !math.IsInf(x, 0) && x == math.Trunc(x) && x >= math.MinInt && x < -math.MinInt {
			return int(x), true
		}
	}
	return 0, false
}

func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float64:
		return x, true
	case string:
		switch x {
		case "nan", "NaN":
			return math.NaN(), true
		case "inf", "+inf":
			return math.Inf(1), true
		case "-inf":
			return math.Inf(-1), true
		}
	}
	return 0, false
}

// FormatValue renders a scalar the way it appears in the document.
func FormatValue(v interface{}) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int, int64, uint64:
		return fmt.Sprint(x), true
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), true
	}
	return "", false
}
