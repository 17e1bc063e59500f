package reviewer

import (
	"fmt"

	"github.com/nsxbet/abap-reviewer/pkg/types"
)

// Report contains the results of a batch scan.
type Report struct {
	// Units are the scanned units in input order.
	Units []*types.SourceUnit

	// Summary provides aggregate statistics about the findings.
	Summary Summary
}

// Summary provides aggregate statistics about scan findings.
type Summary struct {
	// Units is the number of units submitted.
	Units int `json:"units" yaml:"units"`

	// UnitsWithFindings is the number of units with at least one finding.
	UnitsWithFindings int `json:"units_with_findings" yaml:"units_with_findings"`

	// Findings is the total number of findings.
	Findings int `json:"findings" yaml:"findings"`

	// Errors is the count of error-severity findings.
	Errors int `json:"errors" yaml:"errors"`

	// Warnings is the count of warning-severity findings.
	Warnings int `json:"warnings" yaml:"warnings"`
}

func newReport(submitted int, units []*types.SourceUnit) *Report {
	report := &Report{
		Units:   units,
		Summary: Summary{Units: submitted},
	}
	for _, u := range units {
		if u.HasFindings() {
			report.Summary.UnitsWithFindings++
		}
		for _, f := range u.Findings {
			report.Summary.Findings++
			switch f.Severity {
			case types.Severity_ERROR:
				report.Summary.Errors++
			case types.Severity_WARNING:
				report.Summary.Warnings++
			}
		}
	}
	return report
}

// HasErrors returns true if the scan found any error-severity findings.
//
// This is useful for CI/CD pipelines that should fail on errors:
//
//	if report.HasErrors() {
//	    os.Exit(1)
//	}
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// IsClean returns true if the scan found nothing.
func (r *Report) IsClean() bool {
	return r.Summary.Findings == 0
}

// Findings returns every finding of the report, unit by unit.
func (r *Report) Findings() []*types.Finding {
	findings := make([]*types.Finding, 0, r.Summary.Findings)
	for _, u := range r.Units {
		findings = append(findings, u.Findings...)
	}
	return findings
}

// FilterByIssueType returns the findings of the given issue type.
func (r *Report) FilterByIssueType(issueType types.IssueType) []*types.Finding {
	filtered := make([]*types.Finding, 0)
	for _, f := range r.Findings() {
		if f.IssueType == issueType {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

// String returns a human-readable summary of the scan.
//
// Example output:
//
//	Scan Results: 3 finding(s) in 2 of 5 unit(s) (3 errors, 0 warnings)
func (r *Report) String() string {
	return fmt.Sprintf(
		"Scan Results: %d finding(s) in %d of %d unit(s) (%d errors, %d warnings)",
		r.Summary.Findings,
		r.Summary.UnitsWithFindings,
		r.Summary.Units,
		r.Summary.Errors,
		r.Summary.Warnings,
	)
}
