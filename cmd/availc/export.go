package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"availc/internal/diagfmt"
	"availc/internal/driver"
	"availc/internal/project"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [flags] file.avl",
		Short: "Write the availability snapshot of a source file",
		Long:  `Export checks one file and writes its top-level declarations with their availability records to a .availpack snapshot that other files can import`,
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	addTargetFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "snapshot path (default: <file>"+driver.SnapshotExt+")")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	input := args[0]
	out, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + driver.SnapshotExt
	}

	settings, err := resolveSettings(cmd, input)
	if err != nil {
		return err
	}
	opts := settings.Driver
	var digests []project.Digest
	if len(settings.Imports) > 0 {
		if opts.Imports, digests, err = driver.LoadImports(settings.Imports); err != nil {
			return err
		}
	}
	res, err := driver.Export(cmd.Context(), input, out, opts, digests)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return finishExport(cmd, res, out)
}

func finishExport(cmd *cobra.Command, res *driver.ExportResult, out string) error {
	stdout := cmd.OutOrStdout()
	if res.Snapshot == nil {
		bag := res.Check.Merged(0)
		diagfmt.Pretty(stdout, bag, res.Check.FileSet, diagfmt.PrettyOpts{
			Color:   useColor(cmd, stdout),
			Context: 2,
		})
		fmt.Fprintf(cmd.ErrOrStderr(), "availc: %s not written: the file has errors\n", out)
		return &exitError{code: 1}
	}
	if !quiet(cmd) {
		fmt.Fprintf(stdout, "wrote %s (%s, module %s)\n", out, plural(len(res.Snapshot.Symbols), "symbol"), res.Snapshot.Module)
	}
	return printTimings(cmd, res.Check.Timing())
}
