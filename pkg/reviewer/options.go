package reviewer

// ScanOption is a functional option for customizing batch scans.
type ScanOption func(*scanOptions)

// scanOptions holds optional configuration for a batch scan.
type scanOptions struct {
	concurrency  int
	findingsOnly bool
}

// WithConcurrency bounds how many units are scanned at once.
// Values below 1 scan one unit at a time.
//
// Example:
//
//	report, err := r.ScanAll(ctx, units, WithConcurrency(8))
func WithConcurrency(n int) ScanOption {
	return func(opts *scanOptions) {
		opts.concurrency = n
	}
}

// WithFindingsOnly drops units without findings from the report.
//
// This matches the batch endpoint, which only echoes offending units.
func WithFindingsOnly() ScanOption {
	return func(opts *scanOptions) {
		opts.findingsOnly = true
	}
}
