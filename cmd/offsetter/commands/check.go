package commands

import (
	"bytes"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/GraybirdSoftware/offsetter/errors"
)

// CheckResult holds the result of a generated-code check.
type CheckResult struct {
	UpToDate bool
	Stale    []string // generated files that differ from a fresh generation
	Missing  []string // generated files that do not exist yet
}

// CheckCmd checks whether generated files are up to date.
var CheckCmd = &cobra.Command{
	Use:   "check [layout files...]",
	Short: "Check that generated structs match their layout files",
	Long: `Check that committed generated files match the current layout files.

Each layout file is regenerated in memory and byte-compared against the
file on disk. Run this in CI so layout edits can never land without their
regenerated structs.

Exit codes:
  0 - Generated files are up to date
  1 - Generated files are missing or out of date

Examples:
  offsetter check device.toml
  offsetter check kernel/*.toml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts, err := genOptions(cmd)
	if err != nil {
		return err
	}

	result, err := Check(args, opts)
	if err != nil {
		return err
	}

	if result.UpToDate {
		pterm.Printf("%s Generated files are up to date\n", pterm.Green("✓"))
		return nil
	}

	pterm.Printf("%s Generated files are out of date.\n", pterm.Red("✗"))
	for _, path := range result.Missing {
		pterm.Printf("  - %s (missing)\n", path)
	}
	for _, path := range result.Stale {
		pterm.Printf("  - %s\n", path)
	}
	return errors.New("generated files are out of date - run 'offsetter gen' to update")
}

// Check regenerates every layout file in memory and compares the result with
// the generated file on disk.
func Check(paths []string, opts buildOptions) (*CheckResult, error) {
	result := &CheckResult{}

	for _, path := range paths {
		fresh, err := buildFile(path, opts)
		if err != nil {
			return nil, err
		}

		existing, err := os.ReadFile(fresh.OutPath)
		if os.IsNotExist(err) {
			result.Missing = append(result.Missing, fresh.OutPath)
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", fresh.OutPath)
		}

		if !bytes.Equal(existing, fresh.Source) {
			result.Stale = append(result.Stale, fresh.OutPath)
		}
	}

	result.UpToDate = len(result.Stale) == 0 && len(result.Missing) == 0
	return result, nil
}

func init() {
	// check honors the same config/flag merge as gen, so a repo that
	// generates with --checked also checks with it.
	CheckCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Output directory generated files were written to")
	CheckCmd.Flags().BoolVar(&genChecked, "checked", false, "Compare against checked-mode generation")
}
