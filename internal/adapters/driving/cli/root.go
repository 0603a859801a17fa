// Package cli implements the reqdiff command line.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reqdiff/internal/core/ports/driven"
	"github.com/custodia-labs/reqdiff/internal/core/ports/driving"
	"github.com/custodia-labs/reqdiff/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// Services used by the commands. Set by SetServices, or replaced
// directly in tests.
var (
	documentService   driving.DocumentService
	comparisonService driving.ComparisonService
	folderService     driving.FolderService
	settingsService   driving.SettingsService
	snapshotService   driving.SnapshotService
	connectorFactory  driven.ConnectorFactory
	workerPool        driven.WorkerPool
)

// Services bundles everything the commands need.
type Services struct {
	Documents  driving.DocumentService
	Comparison driving.ComparisonService
	Folders    driving.FolderService
	Settings   driving.SettingsService
	Snapshots  driving.SnapshotService
	Connectors driven.ConnectorFactory
	Pool       driven.WorkerPool

	// Close releases stores opened by the builder. May be nil.
	Close func() error
}

// Options are the global flags.
type Options struct {
	ConfigDir string
	Workers   int
	Verbose   bool
	NoCache   bool
}

// Builder creates services once global flags are parsed.
type Builder func(opts Options) (*Services, error)

var (
	globalOpts    Options
	builder       Builder
	closeServices func() error
)

// skipServices marks commands that run without building services.
const skipServices = "skip-services"

var rootCmd = &cobra.Command{
	Use:   "reqdiff",
	Short: "Parse and compare ReqIF requirement documents",
	Long: `reqdiff parses ReqIF documents (plain .reqif or .reqifz archives) into
flat requirement records and reports what was added, deleted and modified
between two documents or two folder trees.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return shutdown()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&globalOpts.Verbose, "verbose", "v", false, "print debug logging to stderr")
	flags.StringVar(&globalOpts.ConfigDir, "config-dir", "", "configuration directory (default ~/.reqdiff)")
	flags.IntVarP(&globalOpts.Workers, "workers", "w", 0, "parallel parse workers (default from settings)")
	flags.BoolVar(&globalOpts.NoCache, "no-cache", false, "parse every file even if unchanged")
}

func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(globalOpts.Verbose)
	if builder == nil || cmd.Annotations[skipServices] == "true" {
		return nil
	}
	svc, err := builder(globalOpts)
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	SetServices(svc)
	return nil
}

func shutdown() error {
	if closeServices == nil {
		return nil
	}
	err := closeServices()
	closeServices = nil
	return err
}

// SetServices installs the services used by every command.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	documentService = s.Documents
	comparisonService = s.Comparison
	folderService = s.Folders
	settingsService = s.Settings
	snapshotService = s.Snapshots
	connectorFactory = s.Connectors
	workerPool = s.Pool
	closeServices = s.Close
}

// Execute runs the root command. b builds services after flag parsing.
func Execute(ctx context.Context, b Builder) error {
	builder = b
	err := rootCmd.ExecuteContext(ctx)
	return errors.Join(err, shutdown())
}

// errNotConfigured reports a command whose service was not wired.
func errNotConfigured(name string) error {
	return fmt.Errorf("%s service not configured", name)
}
