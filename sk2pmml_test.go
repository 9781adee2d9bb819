package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"sk2pmml/pkg/config"
)

func defaults() *config.Config {
	return &config.Config{LogLevel: "error", LogFormat: "json", OptionFallback: "warn", Application: "sk2pmml", PMMLVersion: "4.4"}
}

func TestConvertCommand(t *testing.T) {
	output := filepath.Join(t.TempDir(), "model.pmml")
	cmd := RootCommand(defaults())
	cmd.SetArgs(strings.Split("convert -i testdata/binary_tree.yaml -o "+output+" --log-level error", " "))
	require.NoError(t, cmd.Execute())

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	out := string(written)
	require.True(t, strings.HasPrefix(out, "<?xml"))
	require.Contains(t, out, `<Application name="sk2pmml"></Application>`)
	require.Contains(t, out, `<TreeModel functionName="classification" algorithmName="DecisionTreeClassifier"`)
	require.Contains(t, out, `<DerivedField name="base2(color, 2)" optype="categorical" dataType="integer">`)
}

func TestConvertCommand_OptionFallback(t *testing.T) {
	dir := t.TempDir()
	patch := filepath.Join(dir, "legacy.yaml")
	require.NoError(t, os.WriteFile(patch, []byte("winner_id: true\n"), 0o644))
	output := filepath.Join(dir, "forest.pmml")

	cmd := RootCommand(defaults())
	cmd.SetArgs([]string{"convert", "-i", "testdata/forest.yaml", "-o", output, "-p", patch, "--option-fallback", "strict"})
	require.Error(t, cmd.Execute())
	_, err := os.Stat(output)
	require.True(t, os.IsNotExist(err))

	cmd = RootCommand(defaults())
	cmd.SetArgs([]string{"convert", "-i", "testdata/forest.yaml", "-o", output, "-p", patch, "--option-fallback", "ignore"})
	require.Error(t, cmd.Execute())
}

func TestInspectCommand(t *testing.T) {
	cmd := RootCommand(defaults())
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs(strings.Split("inspect -i testdata/forest.yaml", " "))
	require.NoError(t, cmd.Execute())

	out := b.String()
	require.Contains(t, out, "Role: Regressor (regression)")
	require.Contains(t, out, "Active fields: age, income (continuous float)")
	require.Contains(t, out, "Target field: y")
}

func TestRootCommand_InvalidLogging(t *testing.T) {
	for _, args := range []string{
		"inspect -i testdata/forest.yaml --log-level verbose",
		"inspect -i testdata/forest.yaml --log-format xml",
	} {
		cmd := RootCommand(defaults())
		cmd.SetArgs(strings.Split(args, " "))
		require.Error(t, cmd.Execute(), args)
	}
}
