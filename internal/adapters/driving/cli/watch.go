package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
	"github.com/custodia-labs/reqdiff/internal/core/ports/driven"
	"github.com/custodia-labs/reqdiff/internal/core/services"
)

var watchCmd = &cobra.Command{
	Use:   "watch [root-a] [root-b]",
	Short: "Re-run a folder comparison whenever documents change",
	Long: `Compares two folders, then watches both for created, modified and
deleted documents and compares again after each batch of changes.
Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(2),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Float64VarP(&folderThreshold, "threshold", "t", 0, "fuzzy match threshold in [0,1] (default from settings)")
	watchCmd.Flags().BoolVarP(&folderQuiet, "quiet", "q", false, "hide progress")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if folderService == nil {
		return errNotConfigured("folder")
	}
	if connectorFactory == nil {
		return errNotConfigured("connector")
	}

	threshold, err := thresholdOverride(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	changes, stop, err := watchRoots(ctx, connectorFactory, args...)
	if err != nil {
		return err
	}
	defer stop()

	rerun := func() {
		result, err := compareFolders(ctx, cmd, args[0], args[1], threshold)
		if result != nil {
			cmd.Print(render(cmd.OutOrStdout(), services.RenderFolderSummary(result)))
		}
		if err != nil && ctx.Err() == nil {
			cmd.PrintErrf("Comparison failed: %v\n", err)
		}
	}

	rerun()
	cmd.PrintErrln("Watching for changes, press Ctrl+C to stop")
	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			cmd.PrintErrf("%s: %s\n", change.Type, change.Path)
			for _, c := range drain(changes) {
				cmd.PrintErrf("%s: %s\n", c.Type, c.Path)
			}
			rerun()
		}
	}
}

// watchRoots merges the change streams of every root. The returned stop
// function closes the connectors; the channel closes once all watchers end.
func watchRoots(ctx context.Context, factory driven.ConnectorFactory, roots ...string) (<-chan domain.FileChange, func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	var connectors []driven.Connector
	stop := func() {
		cancel()
		for _, c := range connectors {
			_ = c.Close()
		}
	}

	out := make(chan domain.FileChange)
	var wg sync.WaitGroup
	for _, root := range roots {
		c := factory(root)
		connectors = append(connectors, c)
		ch, err := c.Watch(ctx)
		if err != nil {
			stop()
			return nil, nil, fmt.Errorf("watch %s: %w", root, err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for change := range ch {
				select {
				case out <- change:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()
	return out, stop, nil
}

// drain returns the changes already waiting on ch without blocking.
func drain(ch <-chan domain.FileChange) []domain.FileChange {
	var pending []domain.FileChange
	for {
		select {
		case c, ok := <-ch:
			if !ok {
				return pending
			}
			pending = append(pending, c)
		default:
			return pending
		}
	}
}
