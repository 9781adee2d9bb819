package model

// Schema pairs an optional label with the features an estimator consumes.
// It is never mutated; derive a new one instead.
type Schema struct {
	label    Label
	features FeatureList
	encoder  *Encoder
}

func NewSchema(encoder *Encoder, label Label, features FeatureList) *Schema {
	return &Schema{label: label, features: features, encoder: encoder}
}

// Label returns nil for unsupervised schemas.
func (s *Schema) Label() Label {
	return s.label
}

func (s *Schema) Features() FeatureList {
	return s.features
}

func (s *Schema) Encoder() *Encoder {
	return s.encoder
}

func (s *Schema) WithLabel(label Label) *Schema {
	return &Schema{label: label, features: s.features, encoder: s.encoder}
}

func (s *Schema) WithFeatures(features FeatureList) *Schema {
	return &Schema{label: s.label, features: features, encoder: s.encoder}
}

// TargetName is the label name, or empty without a label.
func (s *Schema) TargetName() string {
	if s.label == nil {
		return ""
	}
	return s.label.Name()
}
