package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"availc/internal/driver"
	"availc/internal/fix"
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [flags] <file.avl|directory>...",
		Short: "Apply rename fix-its to sources",
		Long:  "Run the availability check, then apply the fix-its it produced according to the chosen strategy.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runFix,
	}
	addTargetFlags(cmd)
	cmd.Flags().Bool("all", false, "apply all safe fixes")
	cmd.Flags().Bool("once", false, "apply the first available fix (default)")
	cmd.Flags().String("id", "", "apply fix with a specific identifier")
	cmd.Flags().Bool("dry-run", false, "report what would change without writing files")
	return cmd
}

func runFix(cmd *cobra.Command, args []string) error {
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	if targetID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}

	settings, err := resolveSettings(cmd, args[0])
	if err != nil {
		return err
	}
	opts := settings.Driver
	if len(settings.Imports) > 0 {
		if opts.Imports, _, err = driver.LoadImports(settings.Imports); err != nil {
			return err
		}
	}

	res, checked, applyErr := driver.Fix(cmd.Context(), args, opts, fix.ApplyOptions{
		Mode:     mode,
		TargetID: targetID,
		DryRun:   dryRun,
	})
	if res == nil && applyErr != nil {
		return fmt.Errorf("fix: %w", applyErr)
	}
	if err := reportApplyResult(cmd.OutOrStdout(), res, applyErr, quiet(cmd)); err != nil {
		return err
	}
	if checked != nil {
		return printTimings(cmd, checked.Timing())
	}
	return nil
}

func reportApplyResult(w io.Writer, res *fix.ApplyResult, applyErr error, quiet bool) error {
	if len(res.Applied) > 0 && !quiet {
		fmt.Fprintf(w, "Applied %s:\n", plural(len(res.Applied), "fix"))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(w, "  %s [%s] %s (%s, %s)\n", item.Title, item.ID, location, plural(item.EditCount, "edit"), item.Applicability)
		}
	}
	if len(res.FileChanges) > 0 {
		fmt.Fprintln(w, "Updated files:")
		for _, change := range res.FileChanges {
			fmt.Fprintf(w, "  %s (%s)\n", change.Path, plural(change.EditCount, "edit"))
		}
	}
	if len(res.Skipped) > 0 && !quiet {
		fmt.Fprintln(w, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(w, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(w, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) {
			_, err := fmt.Fprintln(w, "No applicable fixes found.")
			return err
		}
		return applyErr
	}
	return nil
}
