package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"availc/internal/diag"
	"availc/internal/diagfmt"
	"availc/internal/driver"
	"availc/internal/version"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check [flags] <file.avl|directory>...",
		Aliases: []string{"diag"},
		Short:   "Check availability of declaration uses",
		Long:    `Check parses availc sources, resolves @available attributes for the target platform and reports uses of unavailable, deprecated and obsoleted declarations`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runCheck,
	}
	addTargetFlags(cmd)
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	cmd.Flags().Bool("preview", false, "show fix previews (implies --suggest)")
	cmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	cmd.Flags().String("path-mode", "auto", "how paths are printed (auto|absolute|relative|basename)")
	cmd.Flags().String("ui", "off", "progress view (auto|on|off)")
	return cmd
}

// runCheck executes the "check" command. It exits with status 1 when any
// error diagnostic was reported.
func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json", "sarif":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if noWarnings && warningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	preview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return fmt.Errorf("failed to get preview flag: %w", err)
	}
	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, err := parsePathMode(pathModeStr)
	if err != nil {
		return err
	}
	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiStr)
	if err != nil {
		return err
	}

	settings, err := resolveSettings(cmd, args[0])
	if err != nil {
		return err
	}
	opts := settings.Driver
	opts.Jobs = jobs
	opts.IgnoreWarnings = noWarnings
	opts.WarningsAsErrors = opts.WarningsAsErrors || warningsAsErrors
	if noWarnings {
		opts.WarningsAsErrors = false
	}
	if len(settings.Imports) > 0 {
		imports, _, err := driver.LoadImports(settings.Imports)
		if err != nil {
			return err
		}
		opts.Imports = imports
	}

	ctx := cmd.Context()
	files, err := driver.CollectSourceFiles(ctx, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var result *driver.CheckResult
	if format == "pretty" && shouldUseTUI(mode, out, len(files)) {
		title := fmt.Sprintf("checking %d files for %s", len(files), opts.Target.Describe())
		result, err = runCheckWithUI(ctx, out, title, args, files, opts)
	} else {
		result, err = driver.Check(ctx, args, opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	bag := result.Merged(0)
	showFixes := suggest || preview
	switch format {
	case "pretty":
		diagfmt.Pretty(out, bag, result.FileSet, diagfmt.PrettyOpts{
			Color:       useColor(cmd, out),
			Context:     2,
			PathMode:    pathMode,
			ShowNotes:   withNotes,
			ShowFixes:   showFixes,
			ShowPreview: preview,
		})
		if !quiet(cmd) {
			printSummary(out, bag, len(files))
		}
	case "short":
		err = diagfmt.Short(out, bag, result.FileSet, withNotes)
	case "json":
		err = diagfmt.JSON(out, bag, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
			IncludeFixes:     showFixes,
			IncludePreviews:  preview,
		})
	case "sarif":
		err = diagfmt.Sarif(out, bag, result.FileSet, diagfmt.SarifRunMeta{
			ToolName:       "availc",
			ToolVersion:    version.Version,
			InvocationArgs: args,
		})
	}
	if err != nil {
		return fmt.Errorf("failed to format diagnostics: %w", err)
	}

	if err := printTimings(cmd, result.Timing()); err != nil {
		return err
	}
	if bag.HasErrors() {
		return &exitError{code: 1}
	}
	return nil
}

func printSummary(w io.Writer, bag *diag.Bag, files int) {
	errs, warns := 0, 0
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	if errs == 0 && warns == 0 {
		fmt.Fprintf(w, "checked %s: no issues\n", plural(files, "file"))
		return
	}
	fmt.Fprintf(w, "checked %s: %s, %s\n", plural(files, "file"), plural(errs, "error"), plural(warns, "warning"))
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	if strings.HasSuffix(word, "x") {
		return fmt.Sprintf("%d %ses", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func parsePathMode(s string) (diagfmt.PathMode, error) {
	switch s {
	case "", "auto":
		return diagfmt.PathModeAuto, nil
	case "absolute":
		return diagfmt.PathModeAbsolute, nil
	case "relative":
		return diagfmt.PathModeRelative, nil
	case "basename":
		return diagfmt.PathModeBasename, nil
	default:
		return diagfmt.PathModeAuto, fmt.Errorf("invalid --path-mode %q (expected auto|absolute|relative|basename)", s)
	}
}
