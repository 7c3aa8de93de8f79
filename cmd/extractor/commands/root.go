// Package commands implements the extractor CLI.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"countygraph/internal/config"
	"countygraph/internal/logger"
	"countygraph/internal/validator"
)

var (
	configPath *string
	county     *string
	inputDir   *string
	outputDir  *string
	logLevel   *string
	pretty     *bool
)

var rootCmd = &cobra.Command{
	Use:           "extractor",
	Short:         "extractor turns a county property record into entity and relationship files.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runExtract,
}

func init() {
	flags := rootCmd.PersistentFlags()
	configPath = flags.String("config", "", "Path to YAML configuration file (default: $"+config.EnvConfig+" or built-in profiles)")
	county = flags.String("county", "", "County profile to use (overrides config)")
	inputDir = flags.String("input-dir", "", "Directory holding the input files (overrides config)")
	outputDir = flags.String("output-dir", "", "Directory to write entity files to (overrides config)")
	logLevel = flags.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	pretty = flags.Bool("pretty", false, "Colored log output")
}

// ExecuteContext runs the CLI and exits non-zero on failure. Schema
// violations are printed as a JSON object.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	var se *validator.SchemaError
	if errors.As(err, &se) {
		fmt.Fprintln(w, se.JSON())
		return
	}

	fmt.Fprintf(w, "❌ %v\n", err)
}

// loadConfig resolves configuration from the --config flag, the
// environment, or the embedded profiles, then applies overrides.
func loadConfig() (*config.Config, error) {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	path := *configPath
	if path == "" {
		path = strings.TrimSpace(os.Getenv(config.EnvConfig))
	}

	var (
		cfg *config.Config
		err error
	)

	if path != "" {
		cfg, err = config.LoadConfig(path)
	} else {
		cfg, err = config.Default()
	}

	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv()

	overrides := []struct {
		value  string
		target *string
	}{
		{*county, &cfg.Run.County},
		{*inputDir, &cfg.Run.InputDir},
		{*outputDir, &cfg.Run.OutputDir},
		{*logLevel, &cfg.Logging.Level},
	}

	for _, o := range overrides {
		if o.value != "" {
			*o.target = o.value
		}
	}

	if *pretty {
		cfg.Logging.Pretty = true
	}

	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *logger.Logger {
	return logger.New(logger.Options{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
		Writer: cmd.ErrOrStderr(),
	})
}
