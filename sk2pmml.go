package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"sk2pmml/pkg"
	"sk2pmml/pkg/config"
)

func ConvertCommand(cfg *config.Config) *cobra.Command {
	params := pkg.ConversionParameters{Application: cfg.Application, Version: cfg.PMMLVersion}
	optionFallback := cfg.OptionFallback

	var cmd = &cobra.Command{
		Use:   "convert -i modelGraph -o outputFile [--patch patchFile]",
		Short: "Converts a fitted model graph into a PMML document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.OptionFallback = optionFallback
			if err := cfg.Validate(); err != nil {
				return err
			}
			params.Options = cfg.EncoderOptions()
			return pkg.Convert(params)
		},
	}

	cmd.Flags().StringVarP(&params.InputFile, "input", "i", "", "name of the model graph file (YAML or JSON)")
	cmd.Flags().StringVarP(&params.OutputFile, "output", "o", "", "name of the PMML file to write")
	cmd.Flags().StringVarP(&params.PatchFile, "patch", "p", "", "JSON merge patch applied to the model graph before conversion (optional)")
	cmd.Flags().StringVarP(&params.ModelName, "name", "n", "", "model name used when the estimator sets none (optional)")
	cmd.Flags().StringVarP(&optionFallback, "option-fallback", "", optionFallback, "legacy option attributes: warn or strict")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func InspectCommand() *cobra.Command {
	var inputFile string
	var patchFile string

	var cmd = &cobra.Command{
		Use:   "inspect -i modelGraph [--patch patchFile]",
		Short: "Prints the role, head and active fields of a model graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return pkg.Inspect(inputFile, patchFile, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "name of the model graph file (YAML or JSON)")
	cmd.Flags().StringVarP(&patchFile, "patch", "p", "", "JSON merge patch applied to the model graph (optional)")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func RootCommand(cfg *config.Config) *cobra.Command {
	Main := &cobra.Command{
		Use:           "sk2pmml",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cfg)
		},
	}

	Main.PersistentFlags().StringVarP(&cfg.LogLevel, "log-level", "", cfg.LogLevel, "Logging level: error, warn, info or debug")
	Main.PersistentFlags().StringVarP(&cfg.LogFormat, "log-format", "", cfg.LogFormat, "Logging format: pretty or json")

	Main.AddCommand(ConvertCommand(cfg))
	Main.AddCommand(InspectCommand())
	return Main
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := RootCommand(cfg).Execute(); err != nil {
		log.Error().Err(err).Msg("Conversion failed")
		os.Exit(1)
	}
}

func setupLogging(cfg *config.Config) error {
	switch cfg.LogLevel {
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		return fmt.Errorf("invalid logging level %q", cfg.LogLevel)
	}

	switch cfg.LogFormat {
	case "pretty":
		setupPrettyLogging()
	case "json":
	default:
		return fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}
	return nil
}

func setupPrettyLogging() {
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	writer.FormatFieldValue = func(i interface{}) string {
		switch v := i.(type) {
		case json.Number:
			val, _ := v.Float64()
			return fmt.Sprintf("%.3f", val)
		default:
			return fmt.Sprintf("%s", i)
		}
	}
	log.Logger = log.Output(writer)
}
