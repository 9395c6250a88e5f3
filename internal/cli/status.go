// status.go implements the "release-publisher status" command.
//
// status shows what publish would do without asking for anything or
// contacting the remote host: the declared version, the expected artifact
// paths, whether each one is present, and where it would be uploaded.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/release-publisher/internal/artifact"
	"github.com/shinji-kodama/release-publisher/internal/model"
)

// statusFlags holds the flag values for the status command.
type statusFlags struct {
	configPath string
}

// artifactStatus is the state of one expected artifact.
type artifactStatus struct {
	Kind      model.ArtifactKind `json:"kind"`
	Path      string             `json:"path"`
	Label     string             `json:"label"`
	Present   bool               `json:"present"`
	SizeBytes int64              `json:"sizeBytes,omitempty"`
}

// releaseStatus is the status command's result.
type releaseStatus struct {
	Root       string            `json:"root"`
	ConfigFile string            `json:"configFile,omitempty"`
	Version    model.VersionInfo `json:"version"`
	Tag        string            `json:"tag"`
	Transport  string            `json:"transport"`
	Endpoint   string            `json:"endpoint,omitempty"`
	Ready      bool              `json:"ready"`
	Artifacts  []artifactStatus  `json:"artifacts"`
}

// NewStatusCommand creates the "status" cobra command.
func NewStatusCommand() *cobra.Command {
	flags := &statusFlags{}

	cmd := &cobra.Command{
		Use:   "status <path>",
		Short: "Show the declared version and whether its artifacts are built",
		Long: `Show the declared version, the artifact files publish expects for it, and
whether each of them is present. Nothing is uploaded.

Examples:
  release-publisher status .
  release-publisher status --json ~/marla`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.OutOrStdout(), args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Release configuration file")

	return cmd
}

// runStatus is the main logic function for the status command.
func runStatus(out io.Writer, path string, flags *statusFlags) error {
	rel, err := loadRelease(out, path, flags.configPath)
	if err != nil || rel == nil {
		return err
	}
	info, ok, err := rel.readVersion(out)
	if err != nil || !ok {
		return err
	}

	status := buildReleaseStatus(rel, info, artifact.NewChecker())
	printStatusResult(out, status)
	return nil
}

// buildReleaseStatus collects the status of each expected artifact.
func buildReleaseStatus(rel *release, info model.VersionInfo, checker *artifact.Checker) releaseStatus {
	paths := artifact.Locate(rel.storePath(), rel.cfg, info)
	status := releaseStatus{
		Root:       rel.root,
		ConfigFile: rel.configPath,
		Version:    info,
		Tag:        info.Tag(),
		Transport:  rel.cfg.Transport.Kind,
		Endpoint:   rel.cfg.EndpointURL(),
		Ready:      true,
	}
	for _, kind := range model.ArtifactKinds {
		p := paths.For(kind)
		d := artifact.Describe(rel.cfg, kind, p, info)
		s := artifactStatus{Kind: kind, Path: p, Label: d.Label, Present: checker.IsPresent(p)}
		if s.Present {
			if fi, err := os.Stat(p); err == nil {
				s.SizeBytes = fi.Size()
			}
		} else {
			status.Ready = false
		}
		status.Artifacts = append(status.Artifacts, s)
	}
	return status
}

// printStatusResult outputs the status in text or JSON format.
func printStatusResult(out io.Writer, status releaseStatus) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(status, "", "  ")
		fmt.Fprintln(out, string(data))
		return
	}

	fmt.Fprintf(out, "Release root: %s\n", status.Root)
	if status.ConfigFile != "" {
		fmt.Fprintf(out, "Config:       %s\n", status.ConfigFile)
	}
	fmt.Fprintf(out, "Version:      %s (tag %s)\n", status.Version.Display(), status.Tag)
	if status.Endpoint != "" {
		fmt.Fprintf(out, "Upload to:    %s (%s)\n", status.Endpoint, status.Transport)
	} else {
		fmt.Fprintf(out, "Upload to:    %s\n", status.Transport)
	}
	fmt.Fprintln(out)

	for _, a := range status.Artifacts {
		if a.Present {
			okColor.Fprintf(out, "  [ok]      %-9s %s (%s)\n", a.Kind, a.Path, formatSize(a.SizeBytes))
		} else {
			failColor.Fprintf(out, "  [missing] %-9s %s\n", a.Kind, a.Path)
		}
	}
	fmt.Fprintln(out)
	if status.Ready {
		fmt.Fprintln(out, "Ready to publish.")
	} else {
		fmt.Fprintln(out, "Not ready to publish.")
	}
}
