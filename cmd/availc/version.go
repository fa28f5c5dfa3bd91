package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"availc/internal/avail"
	"availc/internal/version"
)

type versionPayload struct {
	Tool          string   `json:"tool"`
	Version       string   `json:"version"`
	GitCommit     string   `json:"git_commit,omitempty"`
	BuildDate     string   `json:"build_date,omitempty"`
	GoVersion     string   `json:"go_version"`
	DefaultTarget string   `json:"default_target"`
	Platforms     []string `json:"platforms"`
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show availc build information",
		RunE:  runVersion,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "pretty":
		fmt.Fprint(out, version.Banner())
		fmt.Fprintf(out, "target: %s (default)\n", avail.DefaultTarget().Describe())
		return nil
	case "json":
		payload := versionPayload{
			Tool:          "availc",
			Version:       version.Version,
			GitCommit:     version.GitCommit,
			BuildDate:     version.BuildDate,
			GoVersion:     runtime.Version(),
			DefaultTarget: avail.DefaultTarget().Describe(),
			Platforms:     avail.KnownPlatformNames(),
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}
