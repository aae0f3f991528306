package app

import (
	"os"
	"strings"
)

// Environment variables read by ApplyEnvOverrides.
const (
	EnvOutput      = "VCFTEL_OUTPUT"
	EnvFormat      = "VCFTEL_FORMAT"
	EnvFields      = "VCFTEL_FIELDS"
	EnvOnlyNumbers = "VCFTEL_ONLY_NUMBERS"
	EnvPrefix      = "VCFTEL_PREFIX"
	EnvManifest    = "VCFTEL_MANIFEST"
	EnvFailOnEmpty = "VCFTEL_FAIL_ON_EMPTY"
	EnvVerbose     = "VCFTEL_VERBOSE"
)

// ApplyEnvOverrides forcefully overrides cfg fields with environment
// variables when they are set. This lets env take precedence over a config
// file while flags, applied afterwards, stay highest.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	if v := os.Getenv(EnvOutput); v != "" {
		cfg.Output = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvFormat)); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv(EnvFields); strings.TrimSpace(v) != "" {
		cfg.Fields = SplitList(v)
	}

	// Booleans override when env present and truthy/falsey
	setBool := func(dst *bool, envKey string) {
		if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
			switch s {
			case "1", "true", "yes", "on":
				*dst = true
			case "0", "false", "no", "off":
				*dst = false
			}
		}
	}
	setBool(&cfg.OnlyNumbers, EnvOnlyNumbers)
	setBool(&cfg.IncludePrefix, EnvPrefix)
	setBool(&cfg.Manifest, EnvManifest)
	setBool(&cfg.FailOnEmpty, EnvFailOnEmpty)
	setBool(&cfg.Verbose, EnvVerbose)
}

// SplitList parses a comma-separated list, dropping blank entries.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			list = append(list, v)
		}
	}
	return list
}
