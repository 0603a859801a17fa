package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/samber/lo"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
)

// summaryLimit is how many requirements are listed per category.
const summaryLimit = 5

// RenderComparisonSummary renders a plain-text report of one comparison.
// Each category lists its first few requirements with a best-guess title.
// In detailed mode every changed value of a listed modification is shown
// as a word-level unified diff.
func RenderComparisonSummary(result *domain.ComparisonResult, detailed bool) string {
	if result == nil {
		return ""
	}
	st := result.Stats
	var b strings.Builder

	b.WriteString("Requirements Comparison Summary\n")
	b.WriteString(strings.Repeat("=", 31) + "\n\n")
	b.WriteString("File Statistics:\n")
	fmt.Fprintf(&b, "- Original file: %d requirements\n", st.TotalBefore)
	fmt.Fprintf(&b, "- Modified file: %d requirements\n", st.TotalAfter)
	fmt.Fprintf(&b, "- Total unique requirements: %d\n\n", st.TotalUnique)
	b.WriteString("Changes Detected:\n")
	fmt.Fprintf(&b, "- Added: %d requirements\n", st.Added)
	fmt.Fprintf(&b, "- Deleted: %d requirements\n", st.Deleted)
	fmt.Fprintf(&b, "- Modified: %d requirements\n", st.Modified)
	fmt.Fprintf(&b, "- Unchanged: %d requirements\n\n", st.Unchanged)
	fmt.Fprintf(&b, "Overall Change Rate: %.2f%%\n", st.ChangePercentage)

	if len(result.DuplicateIDs) > 0 {
		fmt.Fprintf(&b, "Duplicate ids (last occurrence kept): %s\n", strings.Join(result.DuplicateIDs, ", "))
	}

	writeRequirements(&b, "Added", "+", result.Added)
	writeRequirements(&b, "Deleted", "-", result.Deleted)

	if len(result.Modified) > 0 {
		fmt.Fprintf(&b, "\nModified Requirements (%d):\n", len(result.Modified))
		for _, m := range lo.Slice(result.Modified, 0, summaryLimit) {
			fields := lo.Keys(m.ChangedFields)
			slices.Sort(fields)
			fmt.Fprintf(&b, "  ~ %s: %s\n", m.After.ID, domain.BestTitle(m.After))
			fmt.Fprintf(&b, "    Changes: %d field(s) modified: %s\n", len(fields), strings.Join(fields, ", "))
			if detailed {
				for _, f := range fields {
					writeValueDiff(&b, f, m.ChangedFields[f])
				}
			}
		}
		writeRemaining(&b, len(result.Modified))
	}

	return b.String()
}

func writeRequirements(b *strings.Builder, title, marker string, reqs []domain.Requirement) {
	if len(reqs) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s Requirements (%d):\n", title, len(reqs))
	for _, r := range lo.Slice(reqs, 0, summaryLimit) {
		fmt.Fprintf(b, "  %s %s: %s\n", marker, r.ID, domain.BestTitle(r))
	}
	writeRemaining(b, len(reqs))
}

func writeRemaining(b *strings.Builder, total int) {
	if total > summaryLimit {
		fmt.Fprintf(b, "  ... and %d more\n", total-summaryLimit)
	}
}

// writeValueDiff writes a word-per-line unified diff of one changed field.
func writeValueDiff(b *strings.Builder, field string, change domain.FieldChange) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        wordLines(change.Old),
		B:        wordLines(change.New),
		FromFile: field + " (old)",
		ToFile:   field + " (new)",
		Context:  2,
	})
	if err != nil || diff == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		b.WriteString("      " + line + "\n")
	}
}

func wordLines(s string) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	return difflib.SplitLines(strings.Join(words, "\n"))
}

// RenderFolderSummary renders a plain-text report of a folder comparison
// with per-file details.
func RenderFolderSummary(result *domain.FolderComparisonResult) string {
	if result == nil {
		return ""
	}
	st := result.Stats
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	b.WriteString("Folder Comparison Summary\n")
	b.WriteString(rule + "\n\n")
	b.WriteString("Folder Paths:\n")
	fmt.Fprintf(&b, "- Original: %s\n", result.RootA)
	fmt.Fprintf(&b, "- Modified: %s\n", result.RootB)
	fmt.Fprintf(&b, "- Run: %s\n", result.RunID)
	if result.Cancelled {
		b.WriteString("- Status: cancelled, results are partial\n")
	}
	b.WriteString("\nFile-Level Changes:\n")
	fmt.Fprintf(&b, "- Files Added: %d\n", st.FilesAdded)
	fmt.Fprintf(&b, "- Files Deleted: %d\n", st.FilesDeleted)
	fmt.Fprintf(&b, "- Files Modified: %d\n", st.FilesChanged)
	fmt.Fprintf(&b, "- Files Unchanged: %d\n", st.FilesUnchanged)
	fmt.Fprintf(&b, "- Comparison Errors: %d\n", st.FilesErrored)
	fmt.Fprintf(&b, "- Matches: %d exact, %d fuzzy\n\n", st.ExactMatches, st.FuzzyMatches)
	b.WriteString("Aggregated Requirement Changes:\n")
	fmt.Fprintf(&b, "- Requirements Added: %d\n", st.RequirementsAdded)
	fmt.Fprintf(&b, "- Requirements Deleted: %d\n", st.RequirementsDeleted)
	fmt.Fprintf(&b, "- Requirements Modified: %d\n", st.RequirementsModified)
	fmt.Fprintf(&b, "- Requirements Unchanged: %d\n\n", st.RequirementsUnchanged)
	fmt.Fprintf(&b, "Overall Change Rate: %.2f%%\n", st.ChangePercentage)

	if len(result.Pairs) > 0 {
		fmt.Fprintf(&b, "\nMatched Files (%d):\n", len(result.Pairs))
		b.WriteString(strings.Repeat("-", 40) + "\n")
		for _, p := range result.Pairs {
			writePair(&b, p)
		}
	}
	writeFiles(&b, "Added", "+", result.Added)
	writeFiles(&b, "Deleted", "-", result.Deleted)

	return b.String()
}

func writePair(b *strings.Builder, p domain.PairResult) {
	name := p.Match.File1.RelativePath
	if p.Match.File2.RelativePath != name {
		name += " -> " + p.Match.File2.RelativePath
	}
	label := string(p.Match.MatchType)
	if p.Match.MatchType == domain.MatchFuzzy {
		label = fmt.Sprintf("fuzzy %.2f", p.Match.Similarity)
	}
	fmt.Fprintf(b, "%s %s (%s match)\n", pairMarker(p.Status), name, label)

	switch p.Status {
	case domain.FileError:
		fmt.Fprintf(b, "    Error: %s\n", p.Err.Err)
	case domain.FileChanged:
		st := p.Result.Stats
		var parts []string
		if st.Added > 0 {
			parts = append(parts, fmt.Sprintf("+%d", st.Added))
		}
		if st.Deleted > 0 {
			parts = append(parts, fmt.Sprintf("-%d", st.Deleted))
		}
		if st.Modified > 0 {
			parts = append(parts, fmt.Sprintf("~%d", st.Modified))
		}
		fmt.Fprintf(b, "    Changes: %s (%.2f%%)\n", strings.Join(parts, ", "), st.ChangePercentage)
	default:
		b.WriteString("    No changes detected\n")
	}
}

func pairMarker(status domain.FileStatus) string {
	switch status {
	case domain.FileChanged:
		return "~"
	case domain.FileError:
		return "!"
	default:
		return "="
	}
}

func writeFiles(b *strings.Builder, title, marker string, files []domain.FileSummary) {
	if len(files) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s Files (%d):\n", title, len(files))
	b.WriteString(strings.Repeat("-", 40) + "\n")
	for _, f := range files {
		fmt.Fprintf(b, "%s %s\n", marker, f.File.RelativePath)
		if f.Err != "" {
			fmt.Fprintf(b, "    Error: %s\n", f.Err)
			continue
		}
		fmt.Fprintf(b, "    Requirements: %d\n", f.Requirements)
	}
}
