package abapparser

import (
	"regexp"
	"strings"

	"github.com/nsxbet/abap-reviewer/pkg/types"
)

var (
	joinKeyword = regexp.MustCompile(`(?i)\bJOIN\b`)
	onKeyword   = regexp.MustCompile(`(?i)\bON\b`)
	tableAlias  = regexp.MustCompile(`(?i)^(\w+)(?:\s+(?:AS\s+)?(\w+))?`)
)

// ExtractTables resolves the tables of a FROM clause, joins included, into
// ordered table/alias pairs. Repeated tables are kept. The word after a table
// is its alias, so an unaliased table before INNER JOIN gets alias INNER.
func ExtractTables(fromClause string) []types.TableRef {
	var tables []types.TableRef
	for _, segment := range joinKeyword.Split(fromClause, -1) {
		// Drop the join condition.
		segment = onKeyword.Split(segment, 2)[0]
		for _, candidate := range strings.Split(segment, ",") {
			candidate = strings.TrimSpace(candidate)
			if candidate == "" {
				continue
			}
			m := tableAlias.FindStringSubmatch(candidate)
			if m == nil {
				continue
			}
			table := strings.ToUpper(m[1])
			alias := strings.ToUpper(m[2])
			if alias == "" {
				alias = table
			}
			tables = append(tables, types.TableRef{Table: table, Alias: alias})
		}
	}
	return tables
}
