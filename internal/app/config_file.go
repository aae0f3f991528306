package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
// Unknown keys are rejected so typos do not silently fall back to defaults.
type FileConfig struct {
	Inputs []string `yaml:"inputs" json:"inputs" toml:"inputs"`
	Output string   `yaml:"output" json:"output" toml:"output"`
	Format string   `yaml:"format" json:"format" toml:"format"`

	Extract struct {
		Fields      []string `yaml:"fields" json:"fields" toml:"fields"`
		OnlyNumbers bool     `yaml:"onlyNumbers" json:"onlyNumbers" toml:"onlyNumbers"`
		Prefix      bool     `yaml:"prefix" json:"prefix" toml:"prefix"`
	} `yaml:"extract" json:"extract" toml:"extract"`

	Manifest    bool `yaml:"manifest" json:"manifest" toml:"manifest"`
	FailOnEmpty bool `yaml:"failOnEmpty" json:"failOnEmpty" toml:"failOnEmpty"`
	Verbose     bool `yaml:"verbose" json:"verbose" toml:"verbose"`
}

// LoadConfigFile reads YAML, JSON or TOML into FileConfig, picked by
// extension. Files without a known extension are tried as YAML.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	case ".toml":
		md, err := toml.Decode(string(b), &fc)
		if err != nil {
			return fc, fmt.Errorf("parse toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			sort.Strings(keys)
			return fc, fmt.Errorf("parse toml: unknown keys %s", strings.Join(keys, ", "))
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// that are still unset. Run it before env and flags so those win.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if len(cfg.Inputs) == 0 && len(fc.Inputs) > 0 {
		cfg.Inputs = append([]string{}, fc.Inputs...)
	}
	if cfg.Output == "" && fc.Output != "" {
		cfg.Output = fc.Output
	}
	if cfg.Format == "" && fc.Format != "" {
		cfg.Format = fc.Format
	}
	if len(cfg.Fields) == 0 && len(fc.Extract.Fields) > 0 {
		cfg.Fields = append([]string{}, fc.Extract.Fields...)
	}
	if !cfg.OnlyNumbers && fc.Extract.OnlyNumbers {
		cfg.OnlyNumbers = true
	}
	if !cfg.IncludePrefix && fc.Extract.Prefix {
		cfg.IncludePrefix = true
	}
	if !cfg.Manifest && fc.Manifest {
		cfg.Manifest = true
	}
	if !cfg.FailOnEmpty && fc.FailOnEmpty {
		cfg.FailOnEmpty = true
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateConfig checks struct constraints and the combinations that
// struct tags cannot express.
func ValidateConfig(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config: %s failed %q check", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("config: %w", err)
	}
	if cfg.Manifest && cfg.ToStdout() {
		return errors.New("config: manifest requires an output file")
	}
	return nil
}
