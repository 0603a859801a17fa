package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reqdiff/internal/core/services"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Store parsed documents and compare them later",
	Long: `Snapshots keep the requirements of a parsed document under a name, so a
later version can be compared against them without the original file.`,
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save [name] [file]",
	Short: "Parse a document and store it under a name",
	Args:  cobra.ExactArgs(2),
	RunE:  runSnapshotSave,
}

var snapshotDiffCmd = &cobra.Command{
	Use:   "diff [before] [after]",
	Short: "Compare two stored snapshots",
	Args:  cobra.ExactArgs(2),
	RunE:  runSnapshotDiff,
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots",
	Args:  cobra.NoArgs,
	RunE:  runSnapshotList,
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a stored snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotDelete,
}

var snapshotDetailed bool

func init() {
	snapshotDiffCmd.Flags().BoolVarP(&snapshotDetailed, "detailed", "d", false, "show a diff of every changed value")

	snapshotCmd.AddCommand(snapshotSaveCmd)
	snapshotCmd.AddCommand(snapshotDiffCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotDeleteCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshotSave(cmd *cobra.Command, args []string) error {
	if snapshotService == nil {
		return errNotConfigured("snapshot")
	}
	snap, err := snapshotService.Save(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	cmd.Printf("Saved snapshot %s: %d requirements from %s\n", snap.Name, snap.Requirements, snap.Source)
	return nil
}

func runSnapshotDiff(cmd *cobra.Command, args []string) error {
	if snapshotService == nil {
		return errNotConfigured("snapshot")
	}
	result, err := snapshotService.Diff(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	cmd.Print(render(cmd.OutOrStdout(), services.RenderComparisonSummary(result, snapshotDetailed)))
	return nil
}

func runSnapshotList(cmd *cobra.Command, _ []string) error {
	if snapshotService == nil {
		return errNotConfigured("snapshot")
	}
	snaps, err := snapshotService.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		cmd.Println("No snapshots stored.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tREQUIREMENTS\tCREATED\tSOURCE")
	for _, s := range snaps {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", s.Name, s.Requirements, s.CreatedAt.Local().Format(time.DateTime), s.Source)
	}
	return tw.Flush()
}

func runSnapshotDelete(cmd *cobra.Command, args []string) error {
	if snapshotService == nil {
		return errNotConfigured("snapshot")
	}
	if err := snapshotService.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	cmd.Printf("Deleted snapshot %s\n", args[0])
	return nil
}
