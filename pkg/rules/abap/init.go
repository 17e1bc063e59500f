// Package abap holds the ABAP review rules. Importing it registers every rule
// with the advisor registry.
package abap

import (
	"github.com/nsxbet/abap-reviewer/pkg/advisor"
)

func init() {
	registerABAPRules()
}

// registerABAPRules registers all ABAP rule implementations
func registerABAPRules() {
	advisor.Register(advisor.Type(advisor.RuleSelectDraftFilter), &SelectDraftFilterAdvisor{})
}
