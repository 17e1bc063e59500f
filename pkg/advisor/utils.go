package advisor

import (
	"regexp"
	"strings"
)

var (
	blankRun   = regexp.MustCompile(`[\t ]+`)
	newlineRun = regexp.MustCompile(`\n\s*`)
)

// maxStatementLogLength bounds statements written to logs.
const maxStatementLogLength = 1000

// NormalizeStatement flattens an ABAP statement for logging.
// It collapses whitespace, joins lines and truncates long statements.
func NormalizeStatement(statement string) string {
	statement = strings.TrimSpace(statement)
	statement = strings.ReplaceAll(statement, "\r\n", "\n")
	statement = newlineRun.ReplaceAllString(statement, " ")
	statement = blankRun.ReplaceAllString(statement, " ")

	if len(statement) > maxStatementLogLength {
		return statement[:maxStatementLogLength] + "..."
	}
	return statement
}
