// Package pkg provides ABAP source review functionality for Go applications.
//
// ABAP Reviewer scans ABAP source units (programs, includes and class
// methods) for SELECT statements on the billing tables VBRK and VBRP that
// do not filter out draft documents as required by SAP Note 2768887.
// It reports findings only and never rewrites code.
//
// # Package Structure
//
//   - reviewer: High-level API for scanning one unit or a batch (recommended starting point)
//   - advisor: Rule registry and execution engine
//   - rules/abap: The ABAP rule implementations
//   - abapparser: Pattern-based SELECT locator and FROM clause table extraction
//   - types: Source units, findings and rule configuration types
//   - config: Rule configuration loading
//   - source: Loading units from files, directories and storage URLs
//   - server: HTTP endpoints for remote scanning
//   - mcpserver: Model Context Protocol tool over stdio
//   - logger: Logging abstraction layer
//
// # Getting Started
//
//	import (
//	    "github.com/nsxbet/abap-reviewer/pkg/reviewer"
//	    "github.com/nsxbet/abap-reviewer/pkg/types"
//	)
//
//	func main() {
//	    r := reviewer.New()
//	    unit := &types.SourceUnit{
//	        ProgramName: "ZBILLING",
//	        IncludeName: "ZBILLING",
//	        Kind:        "PROG",
//	        Code:        "SELECT * FROM vbrk INTO TABLE @lt_vbrk.",
//	    }
//	    scanned, err := r.Scan(context.Background(), unit)
//	    // scanned.Findings holds one finding per non-compliant SELECT
//	}
//
// # Configuration
//
// Rules can be configured via YAML/JSON files or programmatically:
//
//	r := reviewer.New()
//	if err := r.WithConfig("rules.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// Reviewer instances can be shared between goroutines once configured.
// ScanAll scans units in parallel and keeps the input order.
package pkg
