package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/reqdiff/internal/core/services"
)

var compareCmd = &cobra.Command{
	Use:   "compare [before] [after]",
	Short: "Compare the requirements of two documents",
	Long: `Parses both documents and reports requirements that were added, deleted,
modified or left unchanged, matched by requirement id.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

var (
	compareDetailed bool
	compareYAML     bool
	compareOutput   string
)

func init() {
	compareCmd.Flags().BoolVarP(&compareDetailed, "detailed", "d", false, "show a diff of every changed value")
	compareCmd.Flags().BoolVar(&compareYAML, "yaml", false, "write the full result as YAML")
	compareCmd.Flags().StringVarP(&compareOutput, "output", "o", "", "YAML output file (default stdout)")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	if comparisonService == nil {
		return errNotConfigured("comparison")
	}

	result, err := comparisonService.CompareFiles(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}

	if compareYAML {
		return writeYAMLTo(cmd, compareOutput, result)
	}
	cmd.Print(render(cmd.OutOrStdout(), services.RenderComparisonSummary(result, compareDetailed)))
	return nil
}
