package report

import (
	"io"

	"gopkg.in/yaml.v3"
)

// EncodeYAML writes v as YAML, for machine-readable summaries
// (check --output yaml).
func EncodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
