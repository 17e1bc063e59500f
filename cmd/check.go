package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/nsxbet/abap-reviewer/pkg/reviewer"
	"github.com/nsxbet/abap-reviewer/pkg/source"
	"github.com/nsxbet/abap-reviewer/pkg/types"
)

// errFindingsReported makes the process exit non-zero under --fail-on-error.
var errFindingsReported = errors.New("findings reported")

var checkCmd = &cobra.Command{
	Use:   "check [flags] <path>...",
	Short: "Check ABAP source against review rules",
	Long: `Check ABAP source files against the configured review rules.

Each path is a file, a directory walked recursively, or a storage URL.
A file is either raw ABAP source, scanned as a single program unit, or a
JSON document holding one unit or an array of units in the service format
(pgm_name, inc_name, type, name, start_line, code).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Flags for check command
	checkCmd.Flags().StringP("output", "o", "text", "output format (text, table, json, yaml)")
	checkCmd.Flags().StringSlice("ext", source.DefaultExtensions, "file extensions picked up in directories")
	checkCmd.Flags().StringP("rules", "r", "", "path to rules configuration file")
	checkCmd.Flags().Int("concurrency", runtime.NumCPU(), "number of units scanned in parallel")
	checkCmd.Flags().Bool("all", false, "also print units without findings")
	checkCmd.Flags().Bool("fail-on-error", false, "exit with non-zero code if errors are found")

	// Bind flags to viper
	_ = viper.BindPFlag("output", checkCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("rules", checkCmd.Flags().Lookup("rules"))
	_ = viper.BindPFlag("ext", checkCmd.Flags().Lookup("ext"))
	_ = viper.BindPFlag("concurrency", checkCmd.Flags().Lookup("concurrency"))
	_ = viper.BindPFlag("all", checkCmd.Flags().Lookup("all"))
	_ = viper.BindPFlag("fail-on-error", checkCmd.Flags().Lookup("fail-on-error"))
}

func runCheck(cmd *cobra.Command, args []string) error {
	slog.Debug("Starting check command", "args", args)

	loader := source.NewLoader().WithExtensions(viper.GetStringSlice("ext")...)
	var units []*types.SourceUnit
	for _, path := range args {
		loaded, err := loader.Load(cmd.Context(), path)
		if err != nil {
			return err
		}
		slog.Debug("Loaded units", "file", path, "units", len(loaded))
		units = append(units, loaded...)
	}

	r := reviewer.New()
	if rulesPath := viper.GetString("rules"); rulesPath != "" {
		if err := r.WithConfig(rulesPath); err != nil {
			return err
		}
	}

	opts := []reviewer.ScanOption{reviewer.WithConcurrency(viper.GetInt("concurrency"))}
	if !viper.GetBool("all") {
		opts = append(opts, reviewer.WithFindingsOnly())
	}
	report, err := r.ScanAll(cmd.Context(), units, opts...)
	if err != nil {
		return errors.Wrap(err, "scan failed")
	}

	if err := outputResults(cmd.OutOrStdout(), report, viper.GetString("output")); err != nil {
		return err
	}

	if report.HasErrors() && viper.GetBool("fail-on-error") {
		return errFindingsReported
	}
	return nil
}

func outputResults(w io.Writer, report *reviewer.Report, format string) error {
	switch format {
	case "json":
		return outputJSON(w, report)
	case "yaml":
		return outputYAML(w, report)
	case "text":
		return outputText(w, report)
	case "table":
		return outputTable(w, report)
	default:
		return errors.Errorf("unsupported output format: %s", format)
	}
}

func outputJSON(w io.Writer, report *reviewer.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(map[string]interface{}{
		"summary": report.Summary,
		"units":   report.Units,
	})
}

func outputYAML(w io.Writer, report *reviewer.Report) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	return encoder.Encode(map[string]interface{}{
		"summary": report.Summary,
		"units":   report.Units,
	})
}

func outputText(w io.Writer, report *reviewer.Report) error {
	if report.IsClean() {
		fmt.Fprintln(w, "No issues found.")
		return nil
	}

	for _, f := range report.Findings() {
		location := f.ProgramName
		if f.IncludeName != "" && f.IncludeName != f.ProgramName {
			location += "/" + f.IncludeName
		}
		if f.BlockName != "" {
			location += " " + f.BlockName
		}

		fmt.Fprintf(w, "[%s] %s %s at lines %d-%d\n",
			strings.ToUpper(string(f.Severity)), f.IssueType, location, f.StartingLine, f.EndingLine)
		fmt.Fprintf(w, "  %s\n", f.Message)
		fmt.Fprintf(w, "  %s\n", f.Suggestion)
		fmt.Fprintf(w, "  > %s\n", f.Snippet)
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, report.String())
	return nil
}

func outputTable(w io.Writer, report *reviewer.Report) error {
	if report.IsClean() {
		fmt.Fprintln(w, "No issues found.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Severity", "Program", "Include", "Block", "Lines", "Issue"})
	for _, f := range report.Findings() {
		t.AppendRow(table.Row{
			strings.ToUpper(string(f.Severity)),
			f.ProgramName,
			f.IncludeName,
			f.BlockName,
			fmt.Sprintf("%d-%d", f.StartingLine, f.EndingLine),
			f.IssueType,
		})
	}
	t.Render()

	fmt.Fprintln(w, report.String())
	return nil
}
