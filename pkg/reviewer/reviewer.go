// Package reviewer provides a high-level API for reviewing ABAP source units.
//
// # Quick Start
//
//	r := reviewer.New()
//
//	unit := &types.SourceUnit{
//	    ProgramName: "ZBILLING",
//	    IncludeName: "ZBILLING_F01",
//	    Kind:        "PROG",
//	    Code:        "SELECT * FROM vbrk INTO TABLE @lt_vbrk.",
//	}
//	scanned, err := r.Scan(context.Background(), unit)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, f := range scanned.Findings {
//	    fmt.Printf("%d: %s\n", f.StartingLine, f.Message)
//	}
//
// # Batches
//
//	report, err := r.ScanAll(ctx, units, reviewer.WithConcurrency(4))
//	fmt.Println(report.String())
package reviewer

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/nsxbet/abap-reviewer/pkg/advisor"
	"github.com/nsxbet/abap-reviewer/pkg/config"
	"github.com/nsxbet/abap-reviewer/pkg/logger"
	_ "github.com/nsxbet/abap-reviewer/pkg/rules/abap"
	"github.com/nsxbet/abap-reviewer/pkg/types"
)

// Reviewer runs the configured rules over source units.
//
// Reviewer is safe for concurrent use by multiple goroutines once configured.
type Reviewer struct {
	config *config.Config
	log    logger.Interface
}

// New creates a Reviewer with the default configuration.
func New() *Reviewer {
	return &Reviewer{
		config: config.DefaultConfig("default"),
		log:    slog.Default(),
	}
}

// WithConfig loads rule configuration from a YAML or JSON file.
// This replaces the current configuration.
func (r *Reviewer) WithConfig(filename string) error {
	cfg, err := config.LoadFromFile(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to load config from %s", filename)
	}
	r.config = cfg
	return nil
}

// WithConfigObject sets a custom configuration object directly.
// This replaces the current configuration.
func (r *Reviewer) WithConfigObject(cfg *config.Config) *Reviewer {
	r.config = cfg
	return r
}

// WithLogger sets the logger rule failures are reported to.
func (r *Reviewer) WithLogger(l logger.Interface) *Reviewer {
	r.log = l
	return r
}

// Config returns the active configuration.
func (r *Reviewer) Config() *config.Config {
	return r.config
}

// Scan runs every enabled rule over unit and returns a copy of it carrying
// the findings in rule order. Findings is nil when nothing was found.
//
// The unit itself is never modified. A rule that fails is logged and skipped.
func (r *Reviewer) Scan(ctx context.Context, unit *types.SourceUnit) (*types.SourceUnit, error) {
	if unit == nil {
		return nil, errors.New("reviewer: nil source unit")
	}

	var findings []*types.Finding
	for _, rule := range r.config.EnabledRules() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		got, err := advisor.Check(ctx, advisor.Type(rule.Type), advisor.Context{
			Unit: unit,
			Rule: rule,
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			r.log.Warn("Rule check failed", "rule_type", rule.Type, "program", unit.ProgramName, "error", err)
			continue
		}
		findings = append(findings, got...)
	}

	out := unit.Clone()
	if len(findings) > 0 {
		out.Findings = findings
	}
	return out, nil
}

// ScanAll scans units concurrently and returns them in input order.
//
// With WithFindingsOnly the report keeps only units that have findings.
// The first error cancels the remaining work.
func (r *Reviewer) ScanAll(ctx context.Context, units []*types.SourceUnit, opts ...ScanOption) (*Report, error) {
	scanOpts := &scanOptions{concurrency: runtime.NumCPU()}
	for _, opt := range opts {
		opt(scanOpts)
	}

	results := make([]*types.SourceUnit, len(units))
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(scanOpts.concurrency, 1))
	for i, unit := range units {
		eg.Go(func() error {
			scanned, err := r.Scan(egctx, unit)
			if err != nil {
				return errors.Wrapf(err, "unit #%d", i)
			}
			results[i] = scanned
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if scanOpts.findingsOnly {
		kept := results[:0]
		for _, u := range results {
			if u.HasFindings() {
				kept = append(kept, u)
			}
		}
		results = kept
	}
	return newReport(len(units), results), nil
}
