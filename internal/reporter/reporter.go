package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"jscheck/internal/analyzer"
)

// FileReport holds the analysis outcome for one source file.
type FileReport struct {
	File        string           `json:"file"`
	Issues      []analyzer.Issue `json:"issues"`
	ParseErrors []string         `json:"parseErrors,omitempty"`
}

// Summary holds aggregate counts over an issue list.
type Summary struct {
	Total      int           `json:"total"`
	BySeverity SeverityCount `json:"bySeverity"`
	ByKind     KindCount     `json:"byKind"`
}

type SeverityCount struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

type KindCount struct {
	Security    int `json:"security"`
	Error       int `json:"error"`
	Performance int `json:"performance"`
	Style       int `json:"style"`
	Complexity  int `json:"complexity"`
}

// FormatIssue renders one issue as
// "[<SEVERITY>] <kind>: <message> at line <line>, column <column>".
func FormatIssue(issue analyzer.Issue) string {
	return fmt.Sprintf("[%s] %s: %s at line %d, column %d",
		strings.ToUpper(string(issue.Severity)), issue.Kind, issue.Message,
		issue.Line, issue.Column)
}

// FormatIssues renders every issue on its own line, in order.
func FormatIssues(issues []analyzer.Issue) string {
	var sb strings.Builder
	for _, issue := range issues {
		sb.WriteString(FormatIssue(issue))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summarize counts issues by severity and by kind.
func Summarize(issues []analyzer.Issue) Summary {
	s := Summary{Total: len(issues)}
	for _, issue := range issues {
		switch issue.Severity {
		case analyzer.SeverityHigh:
			s.BySeverity.High++
		case analyzer.SeverityMedium:
			s.BySeverity.Medium++
		case analyzer.SeverityLow:
			s.BySeverity.Low++
		}
		switch issue.Kind {
		case analyzer.KindSecurity:
			s.ByKind.Security++
		case analyzer.KindError:
			s.ByKind.Error++
		case analyzer.KindPerformance:
			s.ByKind.Performance++
		case analyzer.KindStyle:
			s.ByKind.Style++
		case analyzer.KindComplexity:
			s.ByKind.Complexity++
		}
	}
	return s
}

// Reporter formats and outputs analysis results
type Reporter struct {
	output io.Writer
	json   bool
}

// NewReporter creates a new reporter
func NewReporter(output io.Writer, jsonOutput bool) *Reporter {
	return &Reporter{
		output: output,
		json:   jsonOutput,
	}
}

// Report outputs the findings for all analyzed files
func (r *Reporter) Report(reports []FileReport) error {
	// Sort by file for stable output; issues within a file keep
	// their traversal order.
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].File < reports[j].File
	})

	if r.json {
		return r.reportJSON(reports)
	}
	return r.reportConsole(reports)
}

func (r *Reporter) reportConsole(reports []FileReport) error {
	var all []analyzer.Issue

	for _, report := range reports {
		all = append(all, report.Issues...)
		if len(report.Issues) == 0 && len(report.ParseErrors) == 0 {
			continue
		}

		if _, err := fmt.Fprintf(r.output, "\n%s:\n", report.File); err != nil {
			return err
		}
		for _, msg := range report.ParseErrors {
			if _, err := fmt.Fprintf(r.output, "  parse error: %s\n", msg); err != nil {
				return err
			}
		}
		for _, issue := range report.Issues {
			if _, err := fmt.Fprintf(r.output, "  %s\n", FormatIssue(issue)); err != nil {
				return err
			}
		}
	}

	if len(all) == 0 {
		_, err := fmt.Fprintln(r.output, "[OK] No issues detected.")
		return err
	}

	summary := Summarize(all)
	_, err := fmt.Fprintf(r.output, "\nSummary: %d issue(s): %d high, %d medium, %d low\n",
		summary.Total, summary.BySeverity.High, summary.BySeverity.Medium, summary.BySeverity.Low)
	return err
}

func (r *Reporter) reportJSON(reports []FileReport) error {
	var all []analyzer.Issue
	for i := range reports {
		if reports[i].Issues == nil {
			reports[i].Issues = []analyzer.Issue{}
		}
		all = append(all, reports[i].Issues...)
	}
	if reports == nil {
		reports = []FileReport{}
	}

	output := struct {
		Files   []FileReport `json:"files"`
		Summary Summary      `json:"summary"`
	}{
		Files:   reports,
		Summary: Summarize(all),
	}

	encoder := json.NewEncoder(r.output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
