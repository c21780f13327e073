// # internal/output/terminal.go
package output

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"codescope/internal/analyzer"
	"codescope/internal/metrics"
	"codescope/internal/parser"
)

const maxPathDisplayLen = 50

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	lowStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	mediumStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	highStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// TerminalReporter renders analysis reports as styled tables.
type TerminalReporter struct {
	w            io.Writer
	showSummary  bool
	colorEnabled bool
	basePath     string
	thresholds   metrics.RefactoringThresholds
}

// NewTerminalReporter writes to w with default thresholds.
func NewTerminalReporter(w io.Writer) *TerminalReporter {
	return &TerminalReporter{
		w:            w,
		showSummary:  true,
		colorEnabled: true,
		thresholds:   metrics.DefaultThresholds(),
	}
}

// ShowSummary toggles the project summary section.
func (r *TerminalReporter) ShowSummary(show bool) *TerminalReporter {
	r.showSummary = show
	return r
}

// ColorEnabled toggles ANSI styling.
func (r *TerminalReporter) ColorEnabled(enabled bool) *TerminalReporter {
	r.colorEnabled = enabled
	return r
}

// WithBasePath makes file paths display relative to base.
func (r *TerminalReporter) WithBasePath(base string) *TerminalReporter {
	r.basePath = base
	return r
}

// WithThresholds overrides the candidate-selection thresholds.
func (r *TerminalReporter) WithThresholds(t metrics.RefactoringThresholds) *TerminalReporter {
	r.thresholds = t
	return r
}

// severityIndicator maps a score to its priority marker.
// Score >= 10: high, >= 5: medium, otherwise low.
func severityIndicator(score float64) string {
	switch {
	case score >= 10.0:
		return "🔴"
	case score >= 5.0:
		return "🟡"
	default:
		return "🟢"
	}
}

// DisplayReport renders the full report: summary, refactoring candidates,
// file table, legend, and warnings.
func (r *TerminalReporter) DisplayReport(report *analyzer.AnalysisReport, sortBy SortBy, limit int) error {
	fmt.Fprintln(r.w, r.styled(sectionStyle, "Code Analysis Report"))
	fmt.Fprintln(r.w)

	if r.showSummary {
		if err := r.DisplayProjectSummary(&report.Summary); err != nil {
			return err
		}
		fmt.Fprintln(r.w)
	}

	candidates := metrics.IdentifyRefactoringCandidates(report.Files, r.thresholds)
	if len(candidates) > 0 {
		if err := r.DisplayRefactoringCandidates(candidates, 10); err != nil {
			return err
		}
	}

	shown := limit
	if shown <= 0 || shown > len(report.Files) {
		shown = len(report.Files)
	}
	fmt.Fprintf(r.w, "All Files (showing %d of %d, sorted by %s):\n", shown, len(report.Files), sortBy)
	if err := r.DisplayFileTable(report.Files, sortBy, limit); err != nil {
		return err
	}

	r.displayLegend()

	if len(report.Warnings) > 0 {
		fmt.Fprintln(r.w)
		r.DisplayWarnings(report.Warnings)
	}

	return nil
}

// DisplayFileTable renders the per-file metrics table.
func (r *TerminalReporter) DisplayFileTable(files []metrics.FileAnalysis, sortBy SortBy, limit int) error {
	if len(files) == 0 {
		fmt.Fprintln(r.w, "No files found matching the criteria.")
		return nil
	}

	sorted := make([]metrics.FileAnalysis, len(files))
	copy(sorted, files)
	ApplySorting(sorted, sortBy)
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	t := r.newTable("", "File", "Lang", "Lines", "Blank", "Comments", "Funcs", "Methods", "Classes", "CC", "Score")
	for _, f := range sorted {
		t.Row(
			severityIndicator(f.ComplexityScore),
			r.displayPath(f.Path),
			f.Language,
			fmt.Sprintf("%d", f.LinesOfCode),
			fmt.Sprintf("%d", f.BlankLines),
			fmt.Sprintf("%d", f.CommentLines),
			fmt.Sprintf("%d", f.Functions),
			fmt.Sprintf("%d", f.Methods),
			fmt.Sprintf("%d", f.Classes),
			r.cyclomaticCell(f.CyclomaticComplexity),
			r.scoreCell(f.ComplexityScore),
		)
	}
	fmt.Fprintln(r.w, t.Render())
	return nil
}

// DisplayCompactTable renders only the essential columns.
func (r *TerminalReporter) DisplayCompactTable(files []metrics.FileAnalysis, sortBy SortBy, limit int) {
	if len(files) == 0 {
		fmt.Fprintln(r.w, "No files found.")
		return
	}

	sorted := make([]metrics.FileAnalysis, len(files))
	copy(sorted, files)
	ApplySorting(sorted, sortBy)

	shown := sorted
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	t := r.newTable("", "File", "Lang", "Lines", "CC", "Score")
	for _, f := range shown {
		t.Row(
			severityIndicator(f.ComplexityScore),
			r.displayPath(f.Path),
			f.Language,
			fmt.Sprintf("%d", f.LinesOfCode),
			fmt.Sprintf("%d", f.CyclomaticComplexity),
			fmt.Sprintf("%.1f", f.ComplexityScore),
		)
	}
	fmt.Fprintln(r.w, t.Render())

	if len(sorted) > len(shown) {
		fmt.Fprintf(r.w, "(showing %d of %d files)\n", len(shown), len(sorted))
	}
}

// DisplayProjectSummary renders the totals tree and language breakdown.
func (r *TerminalReporter) DisplayProjectSummary(summary *analyzer.ProjectSummary) error {
	fmt.Fprintln(r.w, r.styled(headerStyle, "Project Summary:"))
	fmt.Fprintf(r.w, "├─ Files analyzed: %d\n", summary.TotalFiles)
	fmt.Fprintf(r.w, "├─ Total lines: %s\n", formatNumber(summary.TotalLines))
	fmt.Fprintf(r.w, "├─ Functions: %d\n", summary.TotalFunctions)
	fmt.Fprintf(r.w, "├─ Methods: %d\n", summary.TotalMethods)
	fmt.Fprintf(r.w, "└─ Classes: %d\n", summary.TotalClasses)

	if len(summary.LanguageBreakdown) > 0 {
		fmt.Fprintln(r.w)
		r.displayLanguageBreakdown(summary.LanguageBreakdown)
	}
	return nil
}

func (r *TerminalReporter) displayLanguageBreakdown(breakdown map[string]analyzer.LanguageStats) {
	fmt.Fprintln(r.w, r.styled(headerStyle, "Languages:"))

	type langEntry struct {
		name  string
		stats analyzer.LanguageStats
	}
	entries := make([]langEntry, 0, len(breakdown))
	totalLines := 0
	for name, stats := range breakdown {
		entries = append(entries, langEntry{name, stats})
		totalLines += stats.TotalLines
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].stats.TotalLines != entries[j].stats.TotalLines {
			return entries[i].stats.TotalLines > entries[j].stats.TotalLines
		}
		return entries[i].name < entries[j].name
	})

	for i, e := range entries {
		prefix := "├─"
		if i == len(entries)-1 {
			prefix = "└─"
		}

		percentage := 0
		if totalLines > 0 {
			percentage = e.stats.TotalLines * 100 / totalLines
		}
		barLen := percentage / 6
		if barLen < 1 {
			barLen = 1
		}
		if barLen > 16 {
			barLen = 16
		}
		bar := strings.Repeat("█", barLen)

		fmt.Fprintf(r.w, "%s %-12s %3d files  %6s lines  %-16s %2d%%\n",
			prefix, e.name, e.stats.FileCount, formatNumber(e.stats.TotalLines), bar, percentage)
	}
}

// DisplayRefactoringCandidates renders the flagged files with reasons.
func (r *TerminalReporter) DisplayRefactoringCandidates(candidates []metrics.RefactoringCandidate, limit int) error {
	if len(candidates) == 0 {
		return nil
	}

	plural := "s"
	if len(candidates) == 1 {
		plural = ""
	}
	fmt.Fprintf(r.w, "%s\n", r.styled(headerStyle,
		fmt.Sprintf("Refactoring Candidates (%d file%s need attention):", len(candidates), plural)))

	shown := candidates
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	t := r.newTable("", "File", "Lang", "Lines", "CC", "Score", "Reason")
	for _, c := range shown {
		t.Row(
			severityIndicator(c.File.ComplexityScore),
			r.displayPath(c.File.Path),
			c.File.Language,
			fmt.Sprintf("%d", c.File.LinesOfCode),
			fmt.Sprintf("%d", c.File.CyclomaticComplexity),
			r.scoreCell(c.File.ComplexityScore),
			c.ReasonsString(),
		)
	}
	fmt.Fprintln(r.w, t.Render())
	fmt.Fprintln(r.w)
	return nil
}

// DisplayWarnings lists the non-fatal warnings.
func (r *TerminalReporter) DisplayWarnings(warnings []parser.Warning) {
	fmt.Fprintf(r.w, "%s\n", r.styled(headerStyle, fmt.Sprintf("Warnings (%d):", len(warnings))))

	for _, w := range warnings {
		label := "⚠ Syntax"
		switch w.Type {
		case parser.WarningPartialParse:
			label = "⚠ Partial"
		case parser.WarningEncodingError:
			label = "⚠ Encoding"
		}
		fmt.Fprintf(r.w, "%s: %s - %s\n", label, r.displayPath(w.FilePath), w.Message)

		for i, loc := range w.Locations {
			if i >= 3 {
				break
			}
			if loc.Snippet != "" {
				fmt.Fprintf(r.w, "  at %d:%d (%s)  %s\n", loc.Line, loc.Column, loc.Kind,
					r.styled(dimStyle, loc.Snippet))
			} else {
				fmt.Fprintf(r.w, "  at %d:%d (%s)\n", loc.Line, loc.Column, loc.Kind)
			}
		}
	}
}

func (r *TerminalReporter) displayLegend() {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "Legend:")
	fmt.Fprintln(r.w, "  CC    = Cyclomatic Complexity (1-10: low, 11-20: moderate, 21+: high)")
	fmt.Fprintln(r.w, "  Score = Refactoring priority score (higher = more complex)")
	fmt.Fprintln(r.w, "  🔴 High priority (Score >= 10)  🟡 Medium (Score >= 5)  🟢 Low (Score < 5)")
}

func (r *TerminalReporter) newTable(headers ...string) *table.Table {
	styled := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = r.styled(headerStyle, h)
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(styled...)
}

func (r *TerminalReporter) styled(style lipgloss.Style, s string) string {
	if !r.colorEnabled {
		return s
	}
	return style.Render(s)
}

func (r *TerminalReporter) scoreCell(score float64) string {
	s := fmt.Sprintf("%.2f", score)
	switch {
	case score < 2.0:
		return r.styled(lowStyle, s)
	case score < 5.0:
		return r.styled(mediumStyle, s)
	default:
		return r.styled(highStyle, s)
	}
}

func (r *TerminalReporter) cyclomaticCell(cc int) string {
	s := fmt.Sprintf("%d", cc)
	switch {
	case cc <= 10:
		return r.styled(lowStyle, s)
	case cc <= 20:
		return r.styled(mediumStyle, s)
	default:
		return r.styled(highStyle, s)
	}
}

// displayPath shortens a path for table cells: relative to the base path
// when possible, left-truncated past 50 characters.
func (r *TerminalReporter) displayPath(path string) string {
	display := path
	if r.basePath != "" {
		if rel, err := filepath.Rel(r.basePath, path); err == nil && !strings.HasPrefix(rel, "..") {
			display = rel
		}
	}
	if len(display) > maxPathDisplayLen {
		display = "..." + display[len(display)-maxPathDisplayLen+3:]
	}
	return display
}

func formatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	rem := len(s) % 3
	if rem > 0 {
		b.WriteString(s[:rem])
	}
	for i := rem; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
