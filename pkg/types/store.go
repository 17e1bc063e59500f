package types

import (
	"encoding/json"
	"strings"
)

// IssueType identifies the kind of problem a finding reports.
type IssueType string

const (
	// IssueType_MISSING_DRAFT_FILTER is reported for a SELECT on VBRK/VBRP
	// where at least one alias lacks a draft exclusion predicate.
	IssueType_MISSING_DRAFT_FILTER IssueType = "MissingDraftFilter"
)

// Severity is the severity attached to a finding.
type Severity string

const (
	Severity_ERROR   Severity = "error"
	Severity_WARNING Severity = "warning"
)

// SourceUnit is one logical block of ABAP source: a program, an include or a
// class-method body, positioned inside its containing file by StartLine.
type SourceUnit struct {
	ProgramName         string     `json:"pgm_name" yaml:"pgm_name"`
	IncludeName         string     `json:"inc_name" yaml:"inc_name"`
	Kind                string     `json:"type" yaml:"type"`
	BlockName           string     `json:"name" yaml:"name"`
	ClassImplementation *string    `json:"class_implementation" yaml:"class_implementation,omitempty"`
	StartLine           int        `json:"start_line" yaml:"start_line"`
	EndLine             int        `json:"end_line" yaml:"end_line"`
	Code                string     `json:"code" yaml:"code"`
	Findings            []*Finding `json:"findings" yaml:"findings,omitempty"`
}

// Clone returns a copy of the unit without its findings.
func (u *SourceUnit) Clone() *SourceUnit {
	out := *u
	out.Findings = nil
	if u.ClassImplementation != nil {
		ci := *u.ClassImplementation
		out.ClassImplementation = &ci
	}
	return &out
}

// HasFindings reports whether the unit carries at least one finding.
func (u *SourceUnit) HasFindings() bool {
	return len(u.Findings) > 0
}

// Finding is one reported violation, positioned by absolute line numbers.
type Finding struct {
	ProgramName  string    `json:"prog_name" yaml:"prog_name"`
	IncludeName  string    `json:"incl_name" yaml:"incl_name"`
	Kind         string    `json:"types" yaml:"types"`
	BlockName    string    `json:"blockname" yaml:"blockname"`
	StartingLine int       `json:"starting_line" yaml:"starting_line"`
	EndingLine   int       `json:"ending_line" yaml:"ending_line"`
	IssueType    IssueType `json:"issues_type" yaml:"issues_type"`
	Severity     Severity  `json:"severity" yaml:"severity"`
	Message      string    `json:"message" yaml:"message"`
	Suggestion   string    `json:"suggestion" yaml:"suggestion"`
	Snippet      string    `json:"snippet" yaml:"snippet"`
}

// TableRef is one table reference of a FROM/JOIN chain. Both fields are
// uppercased; Alias equals Table when no alias was written.
type TableRef struct {
	Table string `json:"table" yaml:"table"`
	Alias string `json:"alias" yaml:"alias"`
}

// String renders the reference as "TABLE (ALIAS)".
func (t TableRef) String() string {
	return t.Table + " (" + t.Alias + ")"
}

// ReviewRuleLevel represents the level a rule is configured at
type ReviewRuleLevel int32

const (
	ReviewRuleLevel_LEVEL_UNSPECIFIED ReviewRuleLevel = 0
	ReviewRuleLevel_ERROR             ReviewRuleLevel = 1
	ReviewRuleLevel_WARNING           ReviewRuleLevel = 2
	ReviewRuleLevel_DISABLED          ReviewRuleLevel = 3
)

func (l ReviewRuleLevel) String() string {
	switch l {
	case ReviewRuleLevel_ERROR:
		return "ERROR"
	case ReviewRuleLevel_WARNING:
		return "WARNING"
	case ReviewRuleLevel_DISABLED:
		return "DISABLED"
	default:
		return "LEVEL_UNSPECIFIED"
	}
}

func parseReviewRuleLevel(s string) ReviewRuleLevel {
	switch strings.ToUpper(s) {
	case "ERROR":
		return ReviewRuleLevel_ERROR
	case "WARNING":
		return ReviewRuleLevel_WARNING
	case "DISABLED":
		return ReviewRuleLevel_DISABLED
	default:
		return ReviewRuleLevel_LEVEL_UNSPECIFIED
	}
}

// UnmarshalYAML implements yaml.Unmarshaler for ReviewRuleLevel
func (l *ReviewRuleLevel) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	*l = parseReviewRuleLevel(s)
	return nil
}

// MarshalYAML implements yaml.Marshaler for ReviewRuleLevel
func (l ReviewRuleLevel) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}

// UnmarshalJSON implements json.Unmarshaler for ReviewRuleLevel
func (l *ReviewRuleLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = parseReviewRuleLevel(s)
	return nil
}

// MarshalJSON implements json.Marshaler for ReviewRuleLevel
func (l ReviewRuleLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// ReviewRule represents one configured review rule
type ReviewRule struct {
	Type    string          `json:"type" yaml:"type"`
	Level   ReviewRuleLevel `json:"level" yaml:"level"`
	Comment string          `json:"comment,omitempty" yaml:"comment,omitempty"`
}
