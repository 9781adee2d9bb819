package pmml

import "encoding/xml"

// Model is a self-contained scorable fragment of the document.
type Model interface {
	Attributes() *ModelAttributes
}

var (
	_ Model = &TreeModel{}
	_ Model = &MiningModel{}
	_ Model = &RegressionModel{}
	_ Model = &ClusteringModel{}
)

// ModelAttributes holds what every model element shares. It is embedded first so that
// MiningSchema and Output precede the model specific content.
type ModelAttributes struct {
	ModelName     string         `xml:"modelName,attr,omitempty"`
	FunctionName  MiningFunction `xml:"functionName,attr"`
	AlgorithmName string         `xml:"algorithmName,attr,omitempty"`
	MiningSchema  *MiningSchema
	Output        *Output
}

func (a *ModelAttributes) Attributes() *ModelAttributes {
	return a
}

// NewModelAttributes creates attributes with a MiningSchema that declares target, if any.
func NewModelAttributes(function MiningFunction, target string) ModelAttributes {
	schema := &MiningSchema{}
	if target != "" {
		schema.Fields = append(schema.Fields, &MiningField{Name: target, UsageType: UsageTypeTarget})
	}
	return ModelAttributes{FunctionName: function, MiningSchema: schema}
}

type MiningSchema struct {
	XMLName xml.Name       `xml:"MiningSchema"`
	Fields  []*MiningField `xml:"MiningField"`
}

// Field returns the mining field called name.
func (s *MiningSchema) Field(name string) (*MiningField, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

type MiningField struct {
	XMLName    xml.Name  `xml:"MiningField"`
	Name       string    `xml:"name,attr"`
	UsageType  UsageType `xml:"usageType,attr,omitempty"`
	Importance *float64  `xml:"importance,attr,omitempty"`
}

type Output struct {
	XMLName xml.Name       `xml:"Output"`
	Fields  []*OutputField `xml:"OutputField"`
}

// AddField appends f and returns it.
func (o *Output) AddField(f *OutputField) *OutputField {
	o.Fields = append(o.Fields, f)
	return f
}

type OutputField struct {
	XMLName   xml.Name      `xml:"OutputField"`
	Name      string        `xml:"name,attr"`
	OpType    OpType        `xml:"optype,attr,omitempty"`
	DataType  DataType      `xml:"dataType,attr"`
	Feature   ResultFeature `xml:"feature,attr"`
	Value     string        `xml:"value,attr,omitempty"`
	SegmentID string        `xml:"segmentId,attr,omitempty"`
}

// EnsureOutput returns the Output of m, creating it when missing.
func EnsureOutput(m Model) *Output {
	attrs := m.Attributes()
	if attrs.Output == nil {
		attrs.Output = &Output{}
	}
	return attrs.Output
}
