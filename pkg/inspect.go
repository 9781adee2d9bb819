package pkg

import (
	"fmt"
	gio "io"
	"strings"

	"sk2pmml/pkg/pmml"
	"sk2pmml/pkg/sklearn"
)

// Inspect describes how the model graph of inputFile would be converted.
func Inspect(inputFile, patchFile string, output gio.Writer) error {
	root, err := load(inputFile, patchFile)
	if err != nil {
		return err
	}
	step, err := sklearn.Build(root)
	if err != nil {
		return err
	}
	estimator, err := sklearn.AsEstimator(step)
	if err != nil {
		return err
	}
	names, err := activeFields(estimator)
	if err != nil {
		return err
	}

	head := sklearn.Step(estimator)
	if h, ok := estimator.(sklearn.HasHead); ok {
		head = h.Head()
	}
	opType, err := estimator.OpType()
	if err != nil {
		return err
	}
	dataType, err := estimator.DataType()
	if err != nil {
		return err
	}

	lines := []string{
		fmt.Sprintf("Class: %s", root.Class),
		fmt.Sprintf("Role: %s (%s)", sklearn.RoleName(estimator), estimator.MiningFunction()),
		fmt.Sprintf("Head: %s", head.ClassName()),
		fmt.Sprintf("Active fields: %s (%s %s)", strings.Join(names, ", "), opType, dataType),
	}
	if estimator.MiningFunction() != pmml.MiningFunctionClustering {
		lines = append(lines, fmt.Sprintf("Target field: %s", targetField(step)))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(output, line); err != nil {
			return fmt.Errorf("error writing inspection: %w", err)
		}
	}
	return nil
}
