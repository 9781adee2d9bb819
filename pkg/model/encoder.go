package model

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/twmb/murmur3"

	"sk2pmml/pkg/errors"
	"sk2pmml/pkg/pmml"
)

const (
	// FallbackWarn uses a legacy estimator attribute when pmml_options_ lacks the option, with a warning.
	FallbackWarn = "warn"
	// FallbackStrict rejects options that are only present as legacy attributes.
	FallbackStrict = "strict"
)

// Options are the conversion scoped settings steps may consult.
type Options struct {
	OptionFallback string
}

// Importance is the importance of one feature for one model fragment.
type Importance struct {
	Feature Feature
	Value   float64
}

// Encoder is the mutable state of one conversion run. It interns derived fields,
// collects feature importances and produces the final document. It must not be shared
// between concurrent conversions.
type Encoder struct {
	options Options
	logger  zerolog.Logger

	dataFields    []*pmml.DataField
	derivedFields []*pmml.DerivedField
	fields        map[string]pmml.Field
	derivedByKey  map[uint64][]internedField
	hash          func(parts ...[]byte) uint64

	importanceModels []pmml.Model
	importances      map[pmml.Model][]Importance
}

// internedField is a derived field with the encoded content its key was computed from.
type internedField struct {
	content []byte
	field   *pmml.DerivedField
}

func NewEncoder(logger zerolog.Logger, options Options) *Encoder {
	if options.OptionFallback == "" {
		options.OptionFallback = FallbackWarn
	}
	return &Encoder{
		options:      options,
		logger:       logger,
		fields:       map[string]pmml.Field{},
		derivedByKey: map[uint64][]internedField{},
		hash:         murmurHash,
		importances:  map[pmml.Model][]Importance{},
	}
}

func (e *Encoder) Options() Options {
	return e.options
}

func (e *Encoder) Logger() *zerolog.Logger {
	return &e.logger
}

// CreateDataField declares an input column.
func (e *Encoder) CreateDataField(name string, opType pmml.OpType, dataType pmml.DataType, values ...string) (*pmml.DataField, error) {
	if _, ok := e.fields[name]; ok {
		return nil, errors.SchemaContract(name, "field is already defined")
	}
	if err := CheckTypes(name, opType, dataType); err != nil {
		return nil, err
	}
	field := &pmml.DataField{Name: name, OpType: opType, DataType: dataType}
	field.AddValues(values...)
	e.dataFields = append(e.dataFields, field)
	e.fields[name] = field
	return field, nil
}

func (e *Encoder) DataField(name string) (*pmml.DataField, bool) {
	field, ok := e.fields[name].(*pmml.DataField)
	return field, ok
}

func (e *Encoder) Field(name string) (pmml.Field, bool) {
	field, ok := e.fields[name]
	return field, ok
}

func (e *Encoder) DataFields() []*pmml.DataField {
	return e.dataFields
}

func (e *Encoder) DerivedFields() []*pmml.DerivedField {
	return e.derivedFields
}

// EnsureDerivedField registers a derived field, or returns the already registered field
// with a structurally equal expression and the same types. Deduplication is by content,
// so the returned field may carry a name other than the requested one.
func (e *Encoder) EnsureDerivedField(name string, opType pmml.OpType, dataType pmml.DataType, expression pmml.Expression) (*pmml.DerivedField, error) {
	if err := CheckTypes(name, opType, dataType); err != nil {
		return nil, err
	}
	for _, ref := range expression.FieldRefs() {
		if _, ok := e.fields[ref]; !ok {
			return nil, errors.SchemaContract(name, "expression references undefined field %q", ref)
		}
	}
	content, err := encodeContent(opType, dataType, expression)
	if err != nil {
		return nil, err
	}
	key := e.hash(content)
	for _, interned := range e.derivedByKey[key] {
		if bytes.Equal(interned.content, content) {
			return interned.field, nil
		}
	}
	if _, ok := e.fields[name]; ok {
		return nil, errors.SchemaContract(name, "field is already defined with a different expression")
	}
	field := &pmml.DerivedField{Name: name, OpType: opType, DataType: dataType, Expression: expression}
	e.derivedFields = append(e.derivedFields, field)
	e.derivedByKey[key] = append(e.derivedByKey[key], internedField{content: content, field: field})
	e.fields[name] = field
	e.logger.Debug().Str("field", name).Str("optype", string(opType)).Str("data_type", string(dataType)).Msg("Derived field")
	return field, nil
}

// encodeContent serializes the types and the expression of a derived field. Equal content
// means structurally equal fields.
func encodeContent(opType pmml.OpType, dataType pmml.DataType, expression pmml.Expression) ([]byte, error) {
	buf, err := xml.Marshal(expression)
	if err != nil {
		return nil, fmt.Errorf("error encoding expression: %w", err)
	}
	content := make([]byte, 0, len(opType)+len(dataType)+len(buf)+2)
	content = append(content, opType...)
	content = append(content, 0)
	content = append(content, dataType...)
	content = append(content, 0)
	return append(content, buf...), nil
}

func murmurHash(parts ...[]byte) uint64 {
	hash := murmur3.New64()
	for _, part := range parts {
		_, _ = hash.Write(part)
	}
	return hash.Sum64()
}

// AddFeatureImportance records the importance of feature for the model fragment m.
func (e *Encoder) AddFeatureImportance(m pmml.Model, feature Feature, value float64) {
	if _, ok := e.importances[m]; !ok {
		e.importanceModels = append(e.importanceModels, m)
	}
	e.importances[m] = append(e.importances[m], Importance{Feature: feature, Value: value})
}

func (e *Encoder) FeatureImportances(m pmml.Model) []Importance {
	return e.importances[m]
}

// Origins returns the data fields the named field is computed from.
func (e *Encoder) Origins(name string) []string {
	var result []string
	seen := map[string]bool{}
	var visit func(string)
	visit = func(n string) {
		switch field := e.fields[n].(type) {
		case *pmml.DataField:
			if !seen[n] {
				seen[n] = true
				result = append(result, n)
			}
		case *pmml.DerivedField:
			for _, ref := range field.Expression.FieldRefs() {
				visit(ref)
			}
		}
	}
	visit(name)
	return result
}

// ActivateFeatures adds the data fields behind features to the MiningSchema of m.
func (e *Encoder) ActivateFeatures(m pmml.Model, features FeatureList) {
	schema := m.Attributes().MiningSchema
	if schema == nil {
		schema = &pmml.MiningSchema{}
		m.Attributes().MiningSchema = schema
	}
	for _, f := range features {
		for _, origin := range e.Origins(f.Name()) {
			if _, ok := schema.Field(origin); ok {
				continue
			}
			schema.Fields = append(schema.Fields, &pmml.MiningField{Name: origin})
		}
	}
}

// EncodePMML finalizes the document around the top level model fragment.
func (e *Encoder) EncodePMML(version string, header *pmml.Header, m pmml.Model) (*pmml.PMML, error) {
	for _, fragment := range e.importanceModels {
		if err := e.transferImportances(fragment); err != nil {
			return nil, err
		}
	}
	dataDictionary := &pmml.DataDictionary{NumberOfFields: len(e.dataFields), Fields: e.dataFields}
	doc := pmml.New(version, header, dataDictionary, m)
	if len(e.derivedFields) > 0 {
		doc.TransformationDictionary = &pmml.TransformationDictionary{Fields: e.derivedFields}
	}
	return doc, nil
}

// transferImportances splits the importance of every feature evenly over the data fields it derives from.
func (e *Encoder) transferImportances(m pmml.Model) error {
	schema := m.Attributes().MiningSchema
	for _, importance := range e.importances[m] {
		origins := e.Origins(importance.Feature.Name())
		if len(origins) == 0 {
			return errors.SchemaContract(importance.Feature.Name(), "feature importance for an unknown field")
		}
		share := importance.Value / float64(len(origins))
		for _, origin := range origins {
			field, ok := schema.Field(origin)
			if !ok {
				field = &pmml.MiningField{Name: origin}
				schema.Fields = append(schema.Fields, field)
			}
			if field.Importance == nil {
				field.Importance = new(float64)
			}
			*field.Importance += share
		}
	}
	return nil
}
