package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/nsxbet/abap-reviewer/pkg/types"
)

// ReviewRuleType is the type of review rule.
type ReviewRuleType string

const (
	// RuleSelectDraftFilter requires every VBRK/VBRP alias of a SELECT to
	// exclude draft billing documents (SAP Note 2768887).
	RuleSelectDraftFilter ReviewRuleType = "statement.select.draft-filter"
)

// Type is the type of advisor.
type Type string

// Context is the context handed to an advisor for one source unit.
type Context struct {
	// Unit is the source unit under review. Advisors must not modify it.
	Unit *types.SourceUnit
	// Rule is the configured rule the advisor runs for.
	Rule *types.ReviewRule
}

// Advisor is the interface for advisor.
type Advisor interface {
	Check(ctx context.Context, checkCtx Context) ([]*types.Finding, error)
}

// AdvisorFunc adapts a plain function to Advisor.
type AdvisorFunc func(ctx context.Context, checkCtx Context) ([]*types.Finding, error)

// Check calls f.
func (f AdvisorFunc) Check(ctx context.Context, checkCtx Context) ([]*types.Finding, error) {
	return f(ctx, checkCtx)
}

var (
	advisorMu sync.RWMutex
	advisors  = make(map[Type]Advisor)
)

// Register makes an advisor available by the provided id.
// If Register is called twice with the same name or if advisor is nil,
// it panics.
func Register(advType Type, f Advisor) {
	advisorMu.Lock()
	defer advisorMu.Unlock()
	if f == nil {
		panic("advisor: Register advisor is nil")
	}
	if _, dup := advisors[advType]; dup {
		panic(fmt.Sprintf("advisor: Register called twice for advisor %v", advType))
	}
	advisors[advType] = f
}

// Registered returns the registered advisor types in lexical order.
func Registered() []Type {
	advisorMu.RLock()
	defer advisorMu.RUnlock()
	list := make([]Type, 0, len(advisors))
	for t := range advisors {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	return list
}

// Check runs the advisor and returns the findings.
func Check(ctx context.Context, advType Type, checkCtx Context) (findings []*types.Finding, err error) {
	defer func() {
		if r := recover(); r != nil {
			panicErr, ok := r.(error)
			if !ok {
				panicErr = errors.Errorf("%v", r)
			}
			err = errors.Errorf("advisor check PANIC RECOVER, type: %v, err: %v", advType, panicErr)
			slog.Error("advisor check PANIC RECOVER", "error", panicErr)
		}
	}()

	if checkCtx.Unit == nil {
		return nil, errors.Errorf("advisor: %v called without a source unit", advType)
	}

	advisorMu.RLock()
	f, ok := advisors[advType]
	advisorMu.RUnlock()
	if !ok {
		return nil, errors.Errorf("advisor: unknown advisor %v", advType)
	}

	return f.Check(ctx, checkCtx)
}
