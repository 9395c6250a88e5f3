// get_version.go implements the "release-publisher get-version" command.
//
// get-version prints one field of the declared version so build scripts can
// name their outputs. The field is written without a trailing newline, and
// the minor field keeps its historical one-character form.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/release-publisher/internal/version"
)

// selectorHelp is printed when no selector is given.
const selectorHelp = `Specify which part of the version to print:
  0  major version
  1  minor version
  2  patch version
  3  pre-release label (with a leading space, empty for a final release)
`

// invalidSelection is printed for a selector outside 0..3.
const invalidSelection = "The argument specified is not a valid selection."

// getVersionFlags holds the flag values for the get-version command.
type getVersionFlags struct {
	configPath string
}

// NewGetVersionCommand creates the "get-version" cobra command.
func NewGetVersionCommand() *cobra.Command {
	flags := &getVersionFlags{}

	cmd := &cobra.Command{
		Use:   "get-version <path> [selector]",
		Short: "Print one field of the declared version",
		Long: `Print one field of the version declared in the product's source file.

Selectors:
  0  major
  1  minor (a single character)
  2  patch
  3  pre-release label

Examples:
  release-publisher get-version . 0
  release-publisher get-version ~/marla 3`,

		Args: cobra.RangeArgs(1, 2),

		RunE: func(cmd *cobra.Command, args []string) error {
			selector := ""
			if len(args) > 1 {
				selector = args[1]
			}
			return runGetVersion(cmd.OutOrStdout(), args[0], selector, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Release configuration file")

	return cmd
}

// runGetVersion is the main logic function for the get-version command.
//
// The raw declarations are used rather than the parsed version, so a
// declaration that is not a valid version is still printed as written.
func runGetVersion(out io.Writer, path, selector string, flags *getVersionFlags) error {
	if selector == "" {
		fmt.Fprint(out, selectorHelp)
		return nil
	}
	sel, err := version.ParseSelector(selector)
	if err != nil {
		VerboseLog("Rejected selector: %v", err)
		fmt.Fprintln(out, invalidSelection)
		return nil
	}

	rel, err := loadRelease(out, path, flags.configPath)
	if err != nil || rel == nil {
		return err
	}

	number, err := rel.extractor.ExtractVersionNumber(rel.sourcePath())
	if err != nil {
		fmt.Fprintf(out, "The version source %s could not be read. Is %s the release root?\n", rel.sourcePath(), rel.root)
		return nil
	}
	pre, err := rel.extractor.ExtractPreRelease(rel.sourcePath())
	if err != nil {
		fmt.Fprintf(out, "The version source %s could not be read. Is %s the release root?\n", rel.sourcePath(), rel.root)
		return nil
	}

	field, err := version.Field(number, pre, sel)
	if err != nil {
		fmt.Fprintln(out, invalidSelection)
		return nil
	}
	fmt.Fprint(out, field)
	return nil
}
