package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reqdiff/internal/adapters/driven/export"
	"github.com/custodia-labs/reqdiff/internal/core/domain"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a ReqIF document and list its requirements",
	Long: `Parses a .reqif document or .reqifz archive and prints the parse
diagnostics followed by one line per requirement.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Check documents without a full parse",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export a document's requirements as CSV or YAML",
	Long: `Writes the parsed requirements of a document as a flat table, one row
per requirement attribute (csv), or as YAML with its diagnostics (yaml).`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var (
	parseYAML    bool
	parseQuiet   bool
	exportFormat string
	exportOutput string
)

func init() {
	parseCmd.Flags().BoolVar(&parseYAML, "yaml", false, "print requirements and diagnostics as YAML")
	parseCmd.Flags().BoolVarP(&parseQuiet, "quiet", "q", false, "print diagnostics only")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "output format: csv or yaml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exportCmd)
}

// parsedDocument is the YAML shape of a parsed document.
type parsedDocument struct {
	Diagnostics  *domain.Diagnostics  `yaml:"diagnostics"`
	Requirements []domain.Requirement `yaml:"requirements"`
}

func runParse(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	reqs, diag, err := documentService.ParseDocument(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if parseYAML {
		return writeYAMLTo(cmd, "", parsedDocument{Diagnostics: diag, Requirements: reqs})
	}

	cmd.Print(render(cmd.OutOrStdout(), formatDiagnostics(diag)))
	if parseQuiet {
		return nil
	}
	cmd.Println()
	cmd.Printf("Requirements (%d):\n", len(reqs))
	for _, r := range reqs {
		label := r.ID
		if r.Type != "" {
			label += " [" + r.Type + "]"
		}
		cmd.Printf("  %s: %s\n", label, domain.BestTitle(r))
	}
	return nil
}

// formatDiagnostics renders parse diagnostics as plain text.
func formatDiagnostics(d *domain.Diagnostics) string {
	if d == nil {
		return ""
	}
	var b strings.Builder
	source := d.Path
	if d.Entry != "" {
		source += " (" + d.Entry + ")"
	}
	fmt.Fprintf(&b, "Document: %s\n", source)
	if d.Namespace != "" {
		fmt.Fprintf(&b, "Namespace: %s\n", d.Namespace)
	}
	if d.Header.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", d.Header.Title)
	}
	if d.Header.ReqIFToolID != "" {
		fmt.Fprintf(&b, "Tool: %s\n", d.Header.ReqIFToolID)
	}
	fmt.Fprintf(&b, "Elements: %d\n\n", d.Elements)

	b.WriteString("Catalog:\n")
	kinds := make([]string, 0, len(d.Definitions))
	for k := range d.Definitions {
		kinds = append(kinds, string(k))
	}
	slices.Sort(kinds)
	fmt.Fprintf(&b, "- Attribute definitions: %d", d.TotalDefinitions())
	if len(kinds) > 0 {
		parts := make([]string, 0, len(kinds))
		for _, k := range kinds {
			parts = append(parts, fmt.Sprintf("%s %d", k, d.Definitions[domain.AttributeKind(k)]))
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(parts, ", "))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "- Skipped definitions: %d\n", d.SkippedDefs)
	fmt.Fprintf(&b, "- Requirement types: %d\n", d.SpecObjectTypes)
	fmt.Fprintf(&b, "- Enumerations: %d (%d values)\n\n", d.Enumerations, d.EnumValues)

	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "- Found: %d\n", d.ObjectsFound)
	fmt.Fprintf(&b, "- Processed: %d\n", d.ObjectsProcessed)
	fmt.Fprintf(&b, "- With issues: %d\n", d.ObjectsFailed)
	if len(d.DuplicateIDs) > 0 {
		fmt.Fprintf(&b, "- Duplicate ids: %s\n", strings.Join(d.DuplicateIDs, ", "))
	}

	if d.IssuesTotal > 0 {
		fmt.Fprintf(&b, "\nIssues (%d):\n", d.IssuesTotal)
		for _, issue := range d.Issues {
			fmt.Fprintf(&b, "  ! %s\n", issue)
		}
		if hidden := d.IssuesTotal - len(d.Issues); hidden > 0 {
			fmt.Fprintf(&b, "  ... and %d more\n", hidden)
		}
	}
	return b.String()
}

func runValidate(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	invalid := 0
	for _, path := range args {
		report, err := documentService.Validate(cmd.Context(), path)
		if err != nil {
			return err
		}
		status := "OK"
		if !report.Valid {
			status = "INVALID"
			invalid++
		}
		line := fmt.Sprintf("%s: %s", path, status)
		if report.Format != "" {
			line += " (" + report.Format
			if report.Entry != "" {
				line += ", " + report.Entry
			}
			line += ")"
		}
		cmd.Println(line)
		for _, e := range report.Errors {
			cmd.Printf("  error: %s\n", e)
		}
		for _, w := range report.Warnings {
			cmd.Printf("  warning: %s\n", w)
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d file(s) invalid", invalid, len(args))
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	if documentService == nil {
		return errNotConfigured("document")
	}

	format := strings.ToLower(exportFormat)
	if format != "csv" && format != "yaml" {
		return fmt.Errorf("%w: unknown format %q (want csv or yaml)", domain.ErrInvalidInput, exportFormat)
	}

	reqs, diag, err := documentService.ParseDocument(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if format == "yaml" {
		return writeYAMLTo(cmd, exportOutput, parsedDocument{Diagnostics: diag, Requirements: reqs})
	}

	w, closeFn, err := openOutput(cmd, exportOutput)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeFn())
	}()
	return export.WriteTable(w, domain.Flatten(reqs))
}
