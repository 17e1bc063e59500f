// Package abapparser recognizes a small set of ABAP Open SQL statement shapes
// inside free-form source text. It is pattern based and does not build a
// syntax tree.
package abapparser

import (
	"iter"
	"regexp"
	"slices"
	"strings"

	"github.com/nsxbet/abap-reviewer/pkg/types"
)

// selectPattern matches SELECT ... FROM ... INTO <target> ... terminated by a
// period. The FROM clause ends where whitespace is followed by WHERE, INTO,
// ORDER, GROUP, HAVING or FOR ALL ENTRIES, in that precedence. RE2 has no
// lookahead, so the boundary token opens the middle group instead; INTO is
// kept optional and lazy there so the target group below can still claim it.
var selectPattern = regexp.MustCompile(`(?is)` +
	`SELECT\s+(?:SINGLE\s+)?` +
	`(?P<fields>.+?)` +
	`\s+FROM\s+(?P<from>.*?)` +
	`(?P<middle>\s+(?:(?:WHERE|ORDER|GROUP|HAVING|FOR\s+ALL\s+ENTRIES).*?|(?:INTO.*?)??))` +
	`(?:INTO\s+TABLE\s+(?P<intotab>[\w@()>-]+)|INTO\s+(?P<intowa>[\w@()>-]+))` +
	`(?P<tail>.*?)\.`)

var (
	fromGroup    = selectPattern.SubexpIndex("from")
	intoTabGroup = selectPattern.SubexpIndex("intotab")
	intoWAGroup  = selectPattern.SubexpIndex("intowa")
)

// SelectStatement is one located SELECT statement.
type SelectStatement struct {
	// Text is the statement from SELECT up to, not including, the period.
	Text string
	// Start and End delimit the whole match, period included, as byte
	// offsets into the scanned source.
	Start int
	End   int
	// FromClause is the raw text between FROM and the clause boundary.
	FromClause string
	// Target is the INTO target, e.g. "@lt_result" or "@DATA(ls_row)".
	Target string
	// IntoTable is true for INTO TABLE targets.
	IntoTable bool
	// Tables lists the tables referenced by the FROM clause in order.
	Tables []types.TableRef
}

// TablesNamed returns the references whose table is one of names.
// Names must be uppercase.
func (s *SelectStatement) TablesNamed(names ...string) []types.TableRef {
	var out []types.TableRef
	for _, t := range s.Tables {
		if slices.Contains(names, t.Table) {
			out = append(out, t)
		}
	}
	return out
}

// Selects yields every SELECT ... FROM ... INTO ... statement of src in order
// of appearance. Matches never overlap.
func Selects(src string) iter.Seq[*SelectStatement] {
	return func(yield func(*SelectStatement) bool) {
		pos := 0
		for pos < len(src) {
			loc := selectPattern.FindStringSubmatchIndex(src[pos:])
			if loc == nil {
				return
			}
			stmt := newSelectStatement(src, pos, loc)
			if !yield(stmt) {
				return
			}
			pos = stmt.End
		}
	}
}

// SelectsOn yields the statements of src whose FROM clause references at
// least one of tables. Table names are compared case-insensitively.
func SelectsOn(src string, tables ...string) iter.Seq[*SelectStatement] {
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = strings.ToUpper(t)
	}
	return func(yield func(*SelectStatement) bool) {
		for stmt := range Selects(src) {
			if len(stmt.TablesNamed(names...)) == 0 {
				continue
			}
			if !yield(stmt) {
				return
			}
		}
	}
}

// FindSelectsOn collects SelectsOn into a slice.
func FindSelectsOn(src string, tables ...string) []*SelectStatement {
	return slices.Collect(SelectsOn(src, tables...))
}

func newSelectStatement(src string, offset int, loc []int) *SelectStatement {
	group := func(i int) (string, bool) {
		if loc[2*i] < 0 {
			return "", false
		}
		return src[offset+loc[2*i] : offset+loc[2*i+1]], true
	}

	start, end := offset+loc[0], offset+loc[1]
	from, _ := group(fromGroup)
	stmt := &SelectStatement{
		// Drop the terminating period.
		Text:       src[start : end-1],
		Start:      start,
		End:        end,
		FromClause: from,
		Tables:     ExtractTables(from),
	}
	if target, ok := group(intoTabGroup); ok {
		stmt.Target, stmt.IntoTable = target, true
	} else {
		stmt.Target, _ = group(intoWAGroup)
	}
	return stmt
}
