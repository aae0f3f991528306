package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/vcftel/internal/app"
	"github.com/hyperifyio/vcftel/internal/export"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(exitCode(err))
	}
}

// exitCode maps run errors to process exit codes: 2 when nothing was
// found and the caller asked to fail on that, 1 for everything else.
func exitCode(err error) int {
	if errors.Is(err, app.ErrNoContacts) {
		return 2
	}
	return 1
}

type cliFlags struct {
	configPath  string
	envFiles    []string
	output      string
	format      string
	fields      []string
	onlyNumbers bool
	prefix      bool
	manifest    bool
	failOnEmpty bool
	verbose     bool
}

func newRootCmd() *cobra.Command {
	var f cliFlags
	formats := make([]string, 0, len(export.Formats))
	for _, fm := range export.Formats {
		formats = append(formats, string(fm))
	}

	cmd := &cobra.Command{
		Use:           "vcftel [flags] <file.vcf>...",
		Short:         "Extract phone numbers and contacts from vCard files",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, f, args)
			if err != nil {
				return err
			}
			if cfg.Verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	cmd.PersistentFlags().StringSliceVar(&f.envFiles, "env-file", []string{".env"}, "Dotenv files to load before reading VCFTEL_* variables")

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "Path to a YAML, JSON or TOML config file")
	fl.StringVarP(&f.output, "output", "o", "", "Output file (default stdout)")
	fl.StringVarP(&f.format, "format", "f", app.DefaultFormat, "Output format: "+strings.Join(formats, ", "))
	fl.StringSliceVar(&f.fields, "fields", nil, "Only keep these fields (number, firstName, email, version or a raw tag)")
	fl.BoolVar(&f.onlyNumbers, "only-numbers", false, "Output a flat list of phone numbers")
	fl.BoolVar(&f.prefix, "prefix", false, "With --only-numbers, match numbers with a leading '+'")
	fl.BoolVar(&f.manifest, "manifest", false, "Write <output>.manifest.json with input digests")
	fl.BoolVar(&f.failOnEmpty, "fail-on-empty", false, "Exit with status 2 when no contacts are found")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "Verbose logging")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vcftel %s (commit %s, built %s)\n", app.BuildVersion, app.BuildCommit, app.BuildDate)
		},
	}
}

// buildConfig layers configuration: config file, then VCFTEL_* env,
// then explicitly set flags and positional inputs, then defaults.
func buildConfig(cmd *cobra.Command, f cliFlags, args []string) (app.Config, error) {
	var cfg app.Config
	if err := app.LoadEnvFiles(f.envFiles...); err != nil {
		return cfg, fmt.Errorf("load env files: %w", err)
	}
	if strings.TrimSpace(f.configPath) != "" {
		fc, err := app.LoadConfigFile(f.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", f.configPath, err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvOverrides(&cfg)

	fl := cmd.Flags()
	if fl.Changed("output") {
		cfg.Output = f.output
	}
	if fl.Changed("format") {
		cfg.Format = f.format
	}
	if fl.Changed("fields") {
		cfg.Fields = app.SplitList(strings.Join(f.fields, ","))
	}
	if fl.Changed("only-numbers") {
		cfg.OnlyNumbers = f.onlyNumbers
	}
	if fl.Changed("prefix") {
		cfg.IncludePrefix = f.prefix
	}
	if fl.Changed("manifest") {
		cfg.Manifest = f.manifest
	}
	if fl.Changed("fail-on-empty") {
		cfg.FailOnEmpty = f.failOnEmpty
	}
	if fl.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if len(args) > 0 {
		cfg.Inputs = append([]string{}, args...)
	}
	app.ApplyDefaults(&cfg)
	return cfg, nil
}

func run(ctx context.Context, cfg app.Config, stdout io.Writer) error {
	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	a.SetStdout(stdout)
	return a.Run(ctx)
}
