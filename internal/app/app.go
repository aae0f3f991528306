package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/vcftel/internal/export"
	"github.com/hyperifyio/vcftel/internal/extract"
	"github.com/hyperifyio/vcftel/internal/loader"
)

// ErrNoContacts is returned when FailOnEmpty is set and no input yielded
// any number or contact. The CLI maps it to a distinct exit code.
var ErrNoContacts = errors.New("no contacts found")

type App struct {
	cfg    Config
	format export.Format
	read   func(path string) ([]byte, string, error)
	stdout io.Writer
	now    func() time.Time
}

func New(cfg Config) (*App, error) {
	ApplyDefaults(&cfg)
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	format, err := export.ParseFormat(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &App{
		cfg:    cfg,
		format: format,
		read:   loader.Read,
		stdout: os.Stdout,
		now:    time.Now,
	}, nil
}

// SetStdout redirects stdout output, mainly for tests and embedding.
func (a *App) SetStdout(w io.Writer) {
	a.stdout = w
}

// Run extracts from every input in order and writes one combined result.
func (a *App) Run(ctx context.Context) error {
	opts := a.cfg.Options()
	mode := extract.ModeRecords
	if opts.OnlyNumbers {
		mode = extract.ModeNumbers
	}
	log.Debug().Strs("inputs", a.cfg.Inputs).Str("mode", mode.String()).Strs("fields", opts.Fields).
		Bool("prefix", opts.IncludePrefix).Str("format", string(a.format)).Msg("starting extraction")

	merged := extract.Result{Mode: mode}
	if mode == extract.ModeNumbers {
		merged.Numbers = []string{}
	} else {
		merged.Records = []extract.Record{}
	}
	inputs := make([]manifestInput, 0, len(a.cfg.Inputs))

	for i, path := range a.cfg.Inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		var raw []byte
		ex := &extract.Extractor{Load: func(p string) (string, error) {
			b, text, err := a.read(p)
			raw = b
			return text, err
		}}
		res, err := ex.Extract(path, opts)
		if err != nil {
			return fmt.Errorf("extract %s: %w", path, err)
		}
		log.Info().Str("path", path).Str("mode", res.Mode.String()).Int("count", res.Len()).Msg("extracted")

		merged.Numbers = append(merged.Numbers, res.Numbers...)
		merged.Records = append(merged.Records, res.Records...)
		inputs = append(inputs, manifestInput{
			Index:  i + 1,
			Path:   path,
			SHA256: computeSHA256Hex(raw),
			Bytes:  len(raw),
			Count:  res.Len(),
		})
	}

	if err := a.writeOutput(merged); err != nil {
		return err
	}

	if a.cfg.Manifest {
		meta := manifestMeta{
			RunID:         uuid.NewString(),
			Version:       BuildVersion,
			Commit:        BuildCommit,
			Mode:          mode.String(),
			Format:        string(a.format),
			Fields:        opts.Fields,
			IncludePrefix: opts.IncludePrefix,
			Total:         merged.Len(),
			GeneratedAt:   a.now().UTC(),
		}
		data, err := marshalManifestJSON(meta, inputs)
		if err != nil {
			return fmt.Errorf("encode manifest: %w", err)
		}
		sidecar := deriveManifestSidecarPath(a.cfg.Output)
		if err := os.WriteFile(sidecar, data, 0o644); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
		log.Debug().Str("out", sidecar).Msg("wrote manifest")
	}

	if merged.Len() == 0 {
		log.Warn().Int("inputs", len(a.cfg.Inputs)).Msg("no contacts found")
		if a.cfg.FailOnEmpty {
			return ErrNoContacts
		}
	}
	return nil
}

func (a *App) writeOutput(res extract.Result) error {
	var buf bytes.Buffer
	if err := export.Write(&buf, a.format, res); err != nil {
		return fmt.Errorf("render %s: %w", a.format, err)
	}
	if a.cfg.ToStdout() {
		if _, err := a.stdout.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}
	if dir := filepath.Dir(a.cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir output dir: %w", err)
		}
	}
	if err := os.WriteFile(a.cfg.Output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Info().Str("out", a.cfg.Output).Str("format", string(a.format)).Int("count", res.Len()).Msg("wrote output")
	return nil
}
