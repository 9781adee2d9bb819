package pkg

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"sk2pmml/pkg/errors"
	"sk2pmml/pkg/graph"
	"sk2pmml/pkg/io"
	"sk2pmml/pkg/model"
	"sk2pmml/pkg/pmml"
	"sk2pmml/pkg/sklearn"

	// Step kinds register themselves with the sklearn registry.
	_ "sk2pmml/pkg/sklearn/categoryencoders"
	_ "sk2pmml/pkg/sklearn/cluster"
	_ "sk2pmml/pkg/sklearn/ensemble"
	_ "sk2pmml/pkg/sklearn/linear"
	_ "sk2pmml/pkg/sklearn/preprocessing"
	_ "sk2pmml/pkg/sklearn/tree"
)

// DefaultTarget names the target field when the graph does not.
const DefaultTarget = "y"

type ConversionParameters struct {
	InputFile  string
	PatchFile  string
	OutputFile string
	// ModelName is used when the estimator does not carry a pmml_name_.
	ModelName   string
	Options     model.Options
	Application string
	Version     string
}

// Convert reads the model graph of p.InputFile and writes its PMML document to p.OutputFile.
// Nothing is written when the conversion fails.
func Convert(p ConversionParameters) error {
	runID := uuid.New().String()
	logger := log.With().Str("component", "convert").Str("run_id", runID).Logger()

	root, err := load(p.InputFile, p.PatchFile)
	if err != nil {
		return err
	}
	logger.Info().Str("input", p.InputFile).Str("class", root.Class).Msg("Converting model graph")

	doc, err := EncodeGraph(root, p, runID, logger)
	if err != nil {
		return err
	}
	if err := io.SaveDocumentFile(doc, p.OutputFile); err != nil {
		return err
	}
	logger.Info().Str("output", p.OutputFile).Int("data_fields", doc.DataDictionary.NumberOfFields).Msg("Wrote PMML document")
	return nil
}

func load(inputFile, patchFile string) (*graph.Node, error) {
	root, err := io.LoadGraphFile(inputFile)
	if err != nil {
		return nil, err
	}
	if patchFile != "" {
		if root, err = io.ApplyPatchFile(root, patchFile); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// EncodeGraph converts the graph rooted at root with a fresh encoder.
func EncodeGraph(root *graph.Node, p ConversionParameters, runID string, logger zerolog.Logger) (*pmml.PMML, error) {
	step, err := sklearn.Build(root)
	if err != nil {
		return nil, err
	}
	estimator, err := sklearn.AsEstimator(step)
	if err != nil {
		return nil, err
	}
	encoder := model.NewEncoder(logger, p.Options)

	names, err := activeFields(estimator)
	if err != nil {
		return nil, err
	}
	features, err := declareFeatures(estimator, names, encoder)
	if err != nil {
		return nil, err
	}
	label, err := sklearn.EncodeLabel(estimator, targetField(step), encoder)
	if err != nil {
		return nil, err
	}
	logger.Debug().Strs("active_fields", names).Str("role", sklearn.RoleName(estimator)).Msg("Declared data fields")

	m, err := sklearn.Encode(estimator, model.NewSchema(encoder, label, features), p.ModelName)
	if err != nil {
		return nil, err
	}
	header := &pmml.Header{
		Application: &pmml.Application{Name: p.Application},
		Extensions:  []*pmml.Extension{{Name: "run_id", Value: runID}},
	}
	return encoder.EncodePMML(p.Version, header, m)
}

// activeFields names the input columns: the fitted names if there are any, x1..xn otherwise.
func activeFields(estimator sklearn.Estimator) ([]string, error) {
	if h, ok := estimator.(sklearn.HasFeatureNamesIn); ok {
		names, err := h.FeatureNamesIn()
		if err != nil {
			return nil, err
		}
		if names != nil {
			return names, nil
		}
	}
	n := estimator.NumberOfFeatures()
	if n == sklearn.UnknownFeatures {
		return nil, errors.InvalidConfiguration(estimator.ClassName(), "cannot determine the number of input columns, set n_features_in_ or active_fields")
	}
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("x%d", i+1)
	}
	return names, nil
}

func targetField(step sklearn.Step) string {
	if p, ok := step.(*sklearn.PMMLPipeline); ok && len(p.TargetFields()) > 0 {
		return p.TargetFields()[0]
	}
	return DefaultTarget
}

// declareFeatures creates one data field per name, typed as the head of estimator accepts them.
func declareFeatures(estimator sklearn.Estimator, names []string, encoder *model.Encoder) (model.FeatureList, error) {
	opType, err := estimator.OpType()
	if err != nil {
		return nil, err
	}
	dataType, err := estimator.DataType()
	if err != nil {
		return nil, err
	}
	features := make(model.FeatureList, len(names))
	for i, name := range names {
		field, err := encoder.CreateDataField(name, opType, dataType)
		if err != nil {
			return nil, err
		}
		features[i] = model.NewFeature(field)
	}
	return features, nil
}
