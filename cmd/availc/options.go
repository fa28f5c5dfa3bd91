package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"availc/internal/avail"
	"availc/internal/driver"
	"availc/internal/project"
)

// checkSettings is the merged view of avail.toml and command-line flags.
type checkSettings struct {
	Config  project.Config
	Driver  driver.Options
	Imports []string
}

// addTargetFlags registers the flags shared by check, fix and export.
func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().String("platform", "", "target platform (default from avail.toml, else macOS)")
	cmd.Flags().Bool("app-extension", false, "check as an application extension")
	cmd.Flags().String("deployment", "", "deployment target version for the platform")
	cmd.Flags().StringSlice("imports", nil, "availability snapshots to import (.availpack)")
	cmd.Flags().String("config", "", "path to avail.toml (default: search upwards from the input)")
}

// resolveSettings loads avail.toml for input and applies flag overrides.
// Flags always win over the file.
func resolveSettings(cmd *cobra.Command, input string) (checkSettings, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return checkSettings{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg project.Config
	if configPath != "" {
		cfg, err = project.LoadConfig(configPath)
	} else {
		cfg, err = project.Load(input)
	}
	if err != nil {
		return checkSettings{}, err
	}

	platformFlag, err := cmd.Flags().GetString("platform")
	if err != nil {
		return checkSettings{}, fmt.Errorf("failed to get platform flag: %w", err)
	}
	appExt, err := cmd.Flags().GetBool("app-extension")
	if err != nil {
		return checkSettings{}, fmt.Errorf("failed to get app-extension flag: %w", err)
	}
	deployment, err := cmd.Flags().GetString("deployment")
	if err != nil {
		return checkSettings{}, fmt.Errorf("failed to get deployment flag: %w", err)
	}

	target := cfg.Target()
	if platformFlag != "" {
		parsed, err := avail.ParseTarget(platformFlag, appExt, "")
		if err != nil {
			return checkSettings{}, err
		}
		target = cfg.TargetFor(parsed.Platform, parsed.AppExtension)
	} else if appExt {
		target.AppExtension = true
	}
	if deployment != "" {
		v, err := avail.ParseVersion(deployment)
		if err != nil {
			return checkSettings{}, fmt.Errorf("invalid --deployment: %w", err)
		}
		target.Deployment = v
	}

	maxDiagnostics := cfg.MaxDiagnostics
	if cmd.Flags().Changed("max-diagnostics") {
		if maxDiagnostics, err = cmd.Flags().GetInt("max-diagnostics"); err != nil {
			return checkSettings{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}

	imports := append([]string(nil), cfg.Imports...)
	extra, err := cmd.Flags().GetStringSlice("imports")
	if err != nil {
		return checkSettings{}, fmt.Errorf("failed to get imports flag: %w", err)
	}
	for _, imp := range extra {
		if imp = strings.TrimSpace(imp); imp != "" {
			imports = append(imports, imp)
		}
	}

	return checkSettings{
		Config:  cfg,
		Imports: imports,
		Driver: driver.Options{
			Target:           target,
			MaxDiagnostics:   maxDiagnostics,
			WarningsAsErrors: cfg.WarningsAsErrors,
		},
	}, nil
}
