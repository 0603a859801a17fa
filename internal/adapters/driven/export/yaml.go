package export

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// WriteYAML encodes v as a YAML document with two-space indentation.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
