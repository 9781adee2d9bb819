package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a conversion failure. Every kind is fatal to the conversion in progress.
type Kind string

const (
	// KindInvalidConfiguration indicates an option value outside of its accepted set.
	KindInvalidConfiguration Kind = "invalid-configuration"
	// KindShapeMismatch indicates two positionally corresponding sequences differ in length.
	KindShapeMismatch Kind = "shape-mismatch"
	// KindSchemaContract indicates label presence or feature count disagrees with the estimator.
	KindSchemaContract Kind = "schema-contract"
	// KindUnsupportedCapability indicates a step does not satisfy a requested role.
	KindUnsupportedCapability Kind = "unsupported-capability"
)

// Sentinels for errors.Is matching by kind.
var (
	ErrInvalidConfiguration  = &Conversion{Kind: KindInvalidConfiguration}
	ErrShapeMismatch         = &Conversion{Kind: KindShapeMismatch}
	ErrSchemaContract        = &Conversion{Kind: KindSchemaContract}
	ErrUnsupportedCapability = &Conversion{Kind: KindUnsupportedCapability}
)

// Conversion describes why a model graph could not be converted, with the offending node
// and the expected and actual values when they are known.
type Conversion struct {
	Kind     Kind
	Node     string
	Message  string
	Expected string
	Actual   string
}

func (e *Conversion) Error() string {
	if e == nil {
		return "conversion <nil>"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s]", e.Kind))
	if e.Node != "" {
		b.WriteString(fmt.Sprintf(" %s:", e.Node))
	}
	if e.Message != "" {
		b.WriteString(" " + e.Message)
	}
	if e.Expected != "" || e.Actual != "" {
		b.WriteString(fmt.Sprintf(" (expected: %s, actual: %s)", e.Expected, e.Actual))
	}
	return b.String()
}

// Is reports whether target is a Conversion of the same kind. A target without a kind matches any conversion error.
func (e *Conversion) Is(target error) bool {
	t, ok := target.(*Conversion)
	if !ok {
		return false
	}
	return t.Kind == "" || t.Kind == e.Kind
}

func InvalidConfiguration(node, format string, args ...interface{}) error {
	return &Conversion{Kind: KindInvalidConfiguration, Node: node, Message: fmt.Sprintf(format, args...)}
}

// ShapeMismatch reports that the sequence named by what has actual elements instead of expected.
func ShapeMismatch(node, what string, expected, actual int) error {
	return &Conversion{
		Kind:     KindShapeMismatch,
		Node:     node,
		Message:  what,
		Expected: fmt.Sprint(expected),
		Actual:   fmt.Sprint(actual),
	}
}

func SchemaContract(node, format string, args ...interface{}) error {
	return &Conversion{Kind: KindSchemaContract, Node: node, Message: fmt.Sprintf(format, args...)}
}

func UnsupportedCapability(node, expected, actual string) error {
	return &Conversion{
		Kind:     KindUnsupportedCapability,
		Node:     node,
		Message:  fmt.Sprintf("expected a %s, found a %s", expected, actual),
		Expected: expected,
		Actual:   actual,
	}
}

// KindOf returns the kind of the first Conversion in the error chain.
func KindOf(err error) (Kind, bool) {
	var c *Conversion
	if errors.As(err, &c) {
		return c.Kind, true
	}
	return "", false
}

// Is and As re-export the standard library helpers so callers need a single errors import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
