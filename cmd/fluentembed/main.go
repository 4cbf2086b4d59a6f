// Command fluentembed turns a directory of locale-named subdirectories of
// ".ftl" files into Go source that registers each resource with the
// process-wide static registry at init() time, so a binary can ship its
// translations without reading them from disk.
package main

import (
	"fmt"
	"os"

	"github.com/arafato/fluentgo/internal/config"
	"github.com/arafato/fluentgo/internal/embed"
	"github.com/arafato/fluentgo/internal/observability"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	if hook, err := observability.NewSentryHook(cfg.SentryDSN, cfg.SentryEnvironment); err != nil {
		log.Warn().Err(err).Msg("sentry disabled: failed to initialize")
	} else {
		log.Logger = log.Logger.Hook(hook)
	}

	rootCmd := &cobra.Command{
		Use:   "fluentembed",
		Short: "Embed Fluent (.ftl) resources as Go source",
		Long:  "Generates a Go source file per locale directory, registering each .ftl resource with the static registry at init() time.",
	}

	rootCmd.AddCommand(generateCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func generateCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <locales-dir> <out-dir>",
		Short: "Walk a locales directory and emit an embedded Go source file per locale",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, _ := cmd.Flags().GetString("package")
			return runGenerate(args[0], args[1], pkg)
		},
	}

	cmd.Flags().String("package", cfg.OutputPackage, "Go package name for the generated files")

	return cmd
}

func runGenerate(localesDir, outDir, pkg string) error {
	written, err := embed.Generate(localesDir, outDir, pkg)
	if err != nil {
		return fmt.Errorf("generate embedded resources: %w", err)
	}

	log.Info().
		Int("files", len(written)).
		Str("package", pkg).
		Str("out", outDir).
		Msg("embedded fluent resources")

	for _, file := range written {
		log.Debug().Str("file", file).Msg("wrote embedded resource")
	}

	return nil
}
