package abap

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/nsxbet/abap-reviewer/pkg/abapparser"
	"github.com/nsxbet/abap-reviewer/pkg/advisor"
	"github.com/nsxbet/abap-reviewer/pkg/types"
)

// draftTables are the billing document tables that carry a DRAFT column.
var draftTables = []string{"VBRK", "VBRP"}

// draftPredicate is the ~draft = <false literal> tail of a draft filter. The
// accepted literals are SPACE, ' ', '', "" and ABAP_FALSE.
const draftPredicate = `\s*~\s*draft\s*=\s*(?:SPACE|' '|''|""|ABAP_FALSE)`

const draftFilterMessage = "SELECT on VBRK/VBRP without draft filter per SAP Note 2768887."

// SelectDraftFilterAdvisor reports SELECT statements on VBRK/VBRP that do not
// exclude drafts for every VBRK/VBRP alias.
type SelectDraftFilterAdvisor struct{}

// Check runs the draft filter check over the unit in checkCtx.
func (*SelectDraftFilterAdvisor) Check(ctx context.Context, checkCtx advisor.Context) ([]*types.Finding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	findings := DraftFilterFindings(checkCtx.Unit)
	slog.Debug("draft filter check done",
		"program", checkCtx.Unit.ProgramName,
		"include", checkCtx.Unit.IncludeName,
		"findings", len(findings),
	)
	return findings, nil
}

// ScanUnit returns a copy of unit carrying its draft filter findings, or no
// findings at all (nil, never an empty slice) when the unit is compliant.
func ScanUnit(unit *types.SourceUnit) *types.SourceUnit {
	out := unit.Clone()
	if findings := DraftFilterFindings(unit); len(findings) > 0 {
		out.Findings = findings
	}
	return out
}

// DraftFilterFindings returns one finding per SELECT on VBRK/VBRP in unit
// that misses a draft filter, in order of appearance.
func DraftFilterFindings(unit *types.SourceUnit) []*types.Finding {
	var findings []*types.Finding
	for stmt := range abapparser.SelectsOn(unit.Code, draftTables...) {
		if !MissingDraftFilter(stmt.Text, stmt.Tables) {
			continue
		}
		slog.Debug("missing draft filter",
			"code", advisor.StatementMissingDraftFilter,
			"statement", advisor.NormalizeStatement(stmt.Text),
		)
		findings = append(findings, newDraftFilterFinding(unit, stmt))
	}
	return findings
}

// MissingDraftFilter reports whether at least one VBRK/VBRP alias of tables
// has no alias~draft = <false literal> predicate in statement. It is false
// when no VBRK/VBRP table is involved.
func MissingDraftFilter(statement string, tables []types.TableRef) bool {
	for _, t := range tables {
		if !isDraftTable(t.Table) {
			continue
		}
		if !hasDraftFilter(statement, t.Alias) {
			return true
		}
	}
	return false
}

// hasDraftFilter reports whether alias~draft = <false literal> occurs anywhere
// in statement. The alias is not anchored, so xa~draft also covers alias A.
func hasDraftFilter(statement, alias string) bool {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(alias) + draftPredicate)
	return re.MatchString(statement)
}

func isDraftTable(table string) bool {
	return slices.Contains(draftTables, table)
}

func newDraftFilterFinding(unit *types.SourceUnit, stmt *abapparser.SelectStatement) *types.Finding {
	src := unit.Code
	snippet := abapparser.LineSnippet(src, stmt.Start, stmt.End)

	// The ending line is derived from the snippet, not from the statement end.
	startingLine := unit.StartLine + abapparser.LineAt(src, stmt.Start)
	endingLine := startingLine + strings.Count(snippet, "\n") + 1

	refs := stmt.TablesNamed(draftTables...)
	tableList := make([]string, 0, len(refs))
	for _, ref := range refs {
		tableList = append(tableList, ref.String())
	}

	return &types.Finding{
		ProgramName:  unit.ProgramName,
		IncludeName:  unit.IncludeName,
		Kind:         unit.Kind,
		BlockName:    unit.BlockName,
		StartingLine: startingLine,
		EndingLine:   endingLine,
		IssueType:    types.IssueType_MISSING_DRAFT_FILTER,
		Severity:     types.Severity_ERROR,
		Message:      draftFilterMessage,
		Suggestion: fmt.Sprintf(
			"For this SELECT on %s, add draft filter condition(s) alias~draft = space for all VBRK/VBRP aliases involved.",
			strings.Join(tableList, ", "),
		),
		Snippet: abapparser.EscapeNewlines(snippet),
	}
}
