// publish.go implements the "release-publisher publish" command.
//
// The publish command uploads the two artifacts of the declared version:
//  1. Read the declared version from the source file
//  2. Check that the installer and the archive are in the store directory
//  3. Ask for confirmation and credentials
//  4. Upload the installer, then the archive, one attempt each
//  5. Summarize which uploads were accepted
//
// Nothing is uploaded unless both artifacts are present. A rejected upload
// does not stop the other one; the command then exits with
// ExitPublishIncomplete so scripts can tell a partial release apart.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/release-publisher/internal/config"
	"github.com/shinji-kodama/release-publisher/internal/model"
	"github.com/shinji-kodama/release-publisher/internal/prompt"
	"github.com/shinji-kodama/release-publisher/internal/publish"
	"github.com/shinji-kodama/release-publisher/internal/transport"
)

// publishFlags holds the flag values for the publish command.
type publishFlags struct {
	// configPath overrides configuration discovery in the release root.
	configPath string

	// yes skips the confirmation prompt.
	yes bool

	// username is the upload account. Falls back to the environment,
	// the release root's .env file, and finally a prompt.
	username string
}

// publishDeps are the collaborators of runPublish that talk to the outside
// world: the operator and the remote host.
type publishDeps struct {
	prompter    prompt.Prompter
	newUploader func(cfg *config.Config, logger *log.Logger) (transport.Uploader, error)
}

// NewPublishCommand creates the "publish" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewPublishCommand() *cobra.Command {
	flags := &publishFlags{}

	cmd := &cobra.Command{
		Use:   "publish <path>",
		Short: "Upload the installer and archive of the declared version",
		Long: `Upload the installer and the archive for the version declared in the
product's source file.

<path> is the release root: the directory holding the source tree and the
store directory with the built artifacts. A file path selects its directory.

Both artifacts must already be built. Nothing is uploaded when either one is
missing.

Examples:
  release-publisher publish .
  release-publisher publish --yes --username alice ~/marla
  release-publisher publish --config release.yaml ~/marla`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			deps := publishDeps{prompter: prompt.New(), newUploader: transport.New}
			return runPublish(cmd.Context(), cmd.OutOrStdout(), args[0], flags, deps)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Release configuration file")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Upload without confirmation")
	cmd.Flags().StringVarP(&flags.username, "username", "u", "", "Upload account name")

	return cmd
}

// runPublish is the main logic function for the publish command.
func runPublish(ctx context.Context, out io.Writer, path string, flags *publishFlags, deps publishDeps) error {
	// Step 1: Load the release root and its configuration.
	rel, err := loadRelease(out, path, flags.configPath)
	if err != nil || rel == nil {
		return err
	}
	if !rel.hasStore() {
		fmt.Fprintf(out, "No store directory was found at %s. Build the release artifacts first.\n", rel.storePath())
		return nil
	}

	// Step 2: Read the declared version.
	info, ok, err := rel.readVersion(out)
	if err != nil || !ok {
		return err
	}

	// Step 3: Locate and verify the artifacts. Building the uploader does
	// not contact the remote host.
	uploader, err := deps.newUploader(rel.cfg, Logger())
	if err != nil {
		return err
	}
	var reporter publish.Reporter = publish.NopReporter{}
	if !IsJSONOutput() {
		reporter = &narrator{out: out}
	}
	pub := publish.New(rel.cfg, uploader,
		publish.WithReporter(reporter),
		publish.WithLogger(Logger()),
	)

	plan := pub.Prepare(rel.storePath(), info)
	if !plan.Ready() {
		printNotReady(out, plan)
		return nil
	}

	if !IsJSONOutput() {
		okColor.Fprintln(out, "ALL NECESSARY FILES IN PLACE")
		fmt.Fprintf(out, "  %s\n  %s\n", plan.Paths.Installer, plan.Paths.Archive)
		noteColor.Fprintf(out, "This only uploads the files already in %s; it does not build them.\n", rel.storePath())
	}

	// Step 4: Confirm, then collect credentials.
	if !flags.yes {
		confirmed, err := deps.prompter.Confirm(fmt.Sprintf("Upload version %s of %s?", info.Display(), rel.cfg.ProductName))
		if err != nil {
			return promptError(err)
		}
		if !confirmed {
			fmt.Fprintln(out, "Upload cancelled.")
			return nil
		}
	}

	creds, err := collectCredentials(rel.root, flags.username, deps.prompter)
	if err != nil {
		return err
	}
	VerboseLog("Uploading as %s", creds)

	// Step 5: Upload.
	if !IsJSONOutput() {
		headingColor.Fprintf(out, "::UPLOADS BEGINNING FOR v%s::\n", info.Display())
	}
	result, err := pub.Publish(ctx, plan, creds)
	if err != nil {
		return publishError(out, err)
	}

	// Step 6: Summarize.
	printPublishResult(out, result, rel.cfg)
	if !result.OverallSuccess {
		return model.NewCLIError(model.ExitPublishIncomplete,
			fmt.Sprintf("%d of %d uploads were not accepted", len(result.Failed()), len(result.Outcomes)))
	}
	return nil
}

// collectCredentials resolves the username and password. The flag wins
// over the environment and the .env file; whatever is still missing is
// asked for.
func collectCredentials(root, username string, p prompt.Prompter) (model.Credentials, error) {
	creds, err := config.LoadCredentials(root)
	if err != nil {
		return creds, model.WrapCLIError(model.ExitConfigInvalid, "cannot read credentials", err)
	}
	if username != "" {
		creds.Username = username
	}
	if creds.Username == "" {
		if creds.Username, err = p.Input("Username", ""); err != nil {
			return creds, promptError(err)
		}
	}
	if creds.Password == "" {
		if creds.Password, err = p.Password("Password"); err != nil {
			return creds, promptError(err)
		}
	}
	return creds, nil
}

// promptError converts a prompt failure into a CLIError.
func promptError(err error) error {
	if errors.Is(err, prompt.ErrCancelled) {
		return model.WrapCLIError(model.ExitUserCancelled, "operation cancelled by user", err)
	}
	return model.WrapCLIError(model.ExitGeneralError, "failed to read user input", err)
}

// publishError converts a fatal publish error into a CLIError, printing
// the diagnostic the operator needs for follow-up.
func publishError(out io.Writer, err error) error {
	var unknown *model.UnknownFailure
	var ioErr *model.ArtifactIOError
	switch {
	case errors.As(err, &unknown):
		failColor.Fprintln(out, "An unexpected error occurred during the upload.")
		fmt.Fprintf(out, "  kind:      %s\n", unknown.Kind)
		fmt.Fprintf(out, "  arguments: %v\n", unknown.Args)
		fmt.Fprintf(out, "  message:   %s\n", unknown.Error())
		fmt.Fprintln(out, "Re-run the upload, or verify the artifacts on the download page by hand.")
		return model.WrapCLIError(model.ExitUnknownFailure, "publish aborted", err)
	case errors.As(err, &ioErr):
		return model.WrapCLIError(model.ExitGeneralError,
			"an artifact changed while publishing; verify the store and the download page", err)
	default:
		return model.WrapCLIError(model.ExitGeneralError, "publish failed", err)
	}
}

// printNotReady lists the artifacts that keep the release from publishing.
func printNotReady(out io.Writer, plan *publish.Plan) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]interface{}{
			"version": plan.Version,
			"state":   plan.State,
			"ready":   false,
			"missing": plan.Missing,
		}, "", "  ")
		fmt.Fprintln(out, string(data))
		return
	}
	fmt.Fprintf(out, "Version %s is not ready to publish. Missing:\n", plan.Version.Display())
	for _, p := range plan.Missing {
		fmt.Fprintf(out, "  %s\n", p)
	}
}

// printPublishResult outputs the publish result in text or JSON format.
func printPublishResult(out io.Writer, result *model.PublishResult, cfg *config.Config) {
	if IsJSONOutput() {
		printPublishResultJSON(out, result)
	} else {
		printPublishResultText(out, result, cfg)
	}
}

// publishOutcomeJSON is the JSON form of one artifact outcome.
type publishOutcomeJSON struct {
	model.ArtifactOutcome
	Succeeded bool   `json:"succeeded"`
	Error     string `json:"error,omitempty"`
}

// printPublishResultJSON outputs the publish result as structured JSON.
func printPublishResultJSON(out io.Writer, result *model.PublishResult) {
	outcomes := make([]publishOutcomeJSON, len(result.Outcomes))
	for i, o := range result.Outcomes {
		outcomes[i] = publishOutcomeJSON{ArtifactOutcome: o, Succeeded: o.Succeeded()}
		if !o.Succeeded() {
			outcomes[i].Error = failureMessage(o)
		}
	}
	data, _ := json.MarshalIndent(map[string]interface{}{
		"version":        result.Version,
		"state":          result.State,
		"overallSuccess": result.OverallSuccess,
		"outcomes":       outcomes,
	}, "", "  ")
	fmt.Fprintln(out, string(data))
}

// printPublishResultText outputs the publish result as human-readable text.
func printPublishResultText(out io.Writer, result *model.PublishResult, cfg *config.Config) {
	if result.OverallSuccess {
		headingColor.Fprintln(out, "::UPLOADS COMPLETE::")
		okColor.Fprintf(out, "\n%s was successfully updated to v%s.\n", cfg.ProductName, result.Version.Display())
		if cfg.RevisionPageHint != "" {
			noteColor.Fprintln(out, cfg.RevisionPageHint)
		}
		return
	}

	headingColor.Fprintln(out, "::UPLOADS ATTEMPTED::")
	for _, o := range result.Failed() {
		failColor.Fprintf(out, "  %s\n", failureMessage(o))
	}
	fmt.Fprintln(out, "Check the project's download page by hand to see what was actually uploaded.")
}
