package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reqdiff/internal/adapters/driven/export"
)

// openOutput returns the command's stdout for "" or "-", or a created file.
// The returned close function must be called when done.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, f.Close, nil
}

// writeYAMLTo writes v as YAML to path or stdout.
func writeYAMLTo(cmd *cobra.Command, path string, v any) (err error) {
	w, closeFn, err := openOutput(cmd, path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeFn(); err == nil {
			err = cerr
		}
	}()
	return export.WriteYAML(w, v)
}
