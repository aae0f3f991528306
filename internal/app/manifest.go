package app

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// manifestInput is a compact record of a single input file.
type manifestInput struct {
	Index  int    `json:"index"`
	Path   string `json:"path"`
	SHA256 string `json:"sha256"`
	Bytes  int    `json:"bytes"`
	Count  int    `json:"count"`
}

// manifestMeta captures high-level run details that aid reproducibility.
type manifestMeta struct {
	RunID         string    `json:"run_id"`
	Version       string    `json:"version"`
	Commit        string    `json:"commit"`
	Mode          string    `json:"mode"`
	Format        string    `json:"format"`
	Fields        []string  `json:"fields"`
	IncludePrefix bool      `json:"include_prefix"`
	Total         int       `json:"total"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// computeSHA256Hex returns a lowercase hex-encoded SHA-256 of b.
func computeSHA256Hex(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

// marshalManifestJSON encodes a machine-readable sidecar manifest.
func marshalManifestJSON(meta manifestMeta, inputs []manifestInput) ([]byte, error) {
	if meta.Fields == nil {
		meta.Fields = []string{}
	}
	if inputs == nil {
		inputs = []manifestInput{}
	}
	payload := struct {
		Meta   manifestMeta    `json:"meta"`
		Inputs []manifestInput `json:"inputs"`
	}{Meta: meta, Inputs: inputs}
	return json.MarshalIndent(payload, "", "  ")
}

// deriveManifestSidecarPath returns a sidecar JSON path next to the output.
func deriveManifestSidecarPath(outputPath string) string {
	return outputPath + ".manifest.json"
}
