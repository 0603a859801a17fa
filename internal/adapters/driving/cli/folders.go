package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
	"github.com/custodia-labs/reqdiff/internal/core/ports/driving"
	"github.com/custodia-labs/reqdiff/internal/core/services"
)

var foldersCmd = &cobra.Command{
	Use:   "folders [root-a] [root-b]",
	Short: "Compare two folders of ReqIF documents",
	Long: `Discovers documents under both roots, pairs them by relative path or by
fuzzy name similarity, and compares every pair. Files without a partner
are reported as added or deleted with their requirement counts.

Interrupting the run prints the partial result.`,
	Args: cobra.ExactArgs(2),
	RunE: runFolders,
}

var (
	folderThreshold float64
	folderMatchOnly bool
	folderYAML      bool
	folderOutput    string
	folderQuiet     bool
)

func init() {
	foldersCmd.Flags().Float64VarP(&folderThreshold, "threshold", "t", 0, "fuzzy match threshold in [0,1] (default from settings)")
	foldersCmd.Flags().BoolVar(&folderMatchOnly, "match-only", false, "pair files without parsing them")
	foldersCmd.Flags().BoolVar(&folderYAML, "yaml", false, "write the full result as YAML")
	foldersCmd.Flags().StringVarP(&folderOutput, "output", "o", "", "YAML output file (default stdout)")
	foldersCmd.Flags().BoolVarP(&folderQuiet, "quiet", "q", false, "hide progress")
	rootCmd.AddCommand(foldersCmd)
}

func runFolders(cmd *cobra.Command, args []string) error {
	if folderService == nil {
		return errNotConfigured("folder")
	}
	threshold, err := thresholdOverride(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var result *domain.FolderComparisonResult
	if folderMatchOnly {
		result, err = folderService.MatchFiles(ctx, args[0], args[1], threshold)
	} else {
		result, err = compareFolders(ctx, cmd, args[0], args[1], threshold)
	}
	if result == nil {
		return err
	}

	if folderYAML {
		if werr := writeYAMLTo(cmd, folderOutput, result); werr != nil {
			return errors.Join(err, werr)
		}
		return err
	}
	cmd.Print(render(cmd.OutOrStdout(), services.RenderFolderSummary(result)))
	return err
}

// thresholdOverride returns the --threshold value when the flag was given,
// or nil to use the configured threshold.
func thresholdOverride(cmd *cobra.Command) (*float64, error) {
	if !cmd.Flags().Changed("threshold") {
		return nil, nil
	}
	if folderThreshold < 0 || folderThreshold > 1 {
		return nil, fmt.Errorf("%w: threshold must be in [0,1], got %v", domain.ErrInvalidInput, folderThreshold)
	}
	t := folderThreshold
	return &t, nil
}

// compareFolders runs one folder comparison with progress on stderr.
func compareFolders(ctx context.Context, cmd *cobra.Command, rootA, rootB string, threshold *float64) (*domain.FolderComparisonResult, error) {
	opts := driving.FolderOptions{
		Pool:      workerPool,
		Threshold: threshold,
	}
	if !folderQuiet {
		opts.Progress = newProgressPrinter(cmd.ErrOrStderr(), progressInterval).Report
	}

	start := time.Now()
	result, err := folderService.CompareFolders(ctx, rootA, rootB, opts)
	if result != nil && result.Cancelled {
		cmd.PrintErrf("Cancelled after %s, showing partial results\n", time.Since(start).Round(time.Millisecond))
	}
	return result, err
}
