package commands

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/GraybirdSoftware/offsetter/config"
	"github.com/GraybirdSoftware/offsetter/errors"
	"github.com/GraybirdSoftware/offsetter/layoutfile"
	"github.com/GraybirdSoftware/offsetter/logger"
)

var (
	genOutput  string
	genChecked bool
	genWatch   bool
)

// GenCmd generates Go source from layout files.
var GenCmd = &cobra.Command{
	Use:   "gen [layout files...]",
	Short: "Generate fixed-offset struct definitions",
	Long: `Generate Go struct definitions from declarative layout files.

Each layout file declares structs as lists of (offset, name, visibility, type)
fields, optionally pinned to an exact total size. Generation plans a gap-free
sequence of fields and explicit padding, then writes one <stem>_gen.go per
layout file.

With --checked, every plan is first verified against the target's layout
rules, and the generated file carries compile-time guards asserting each
member's real offset (and the struct size) against the declaration. A layout
the compiler cannot honor fails generation instead of producing a struct that
silently models the wrong memory.

Examples:
  offsetter gen device.toml                  # Generate device_gen.go
  offsetter gen --checked kernel/*.toml      # Generate with layout guards
  offsetter gen -o internal/abi device.toml  # Generate into a directory
  offsetter gen --watch device.toml          # Regenerate on every change`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGen,
}

func init() {
	GenCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Output directory (default: alongside each layout file)")
	GenCmd.Flags().BoolVar(&genChecked, "checked", false, "Verify offsets against the target layout and emit compile-time guards")
	GenCmd.Flags().BoolVarP(&genWatch, "watch", "w", false, "Watch layout files and regenerate on change")
}

func runGen(cmd *cobra.Command, args []string) error {
	opts, err := genOptions(cmd)
	if err != nil {
		return err
	}

	for _, path := range args {
		if err := generateFile(path, opts); err != nil {
			return err
		}
	}

	if genWatch {
		return watchAndRegenerate(args, opts)
	}
	return nil
}

// genOptions merges the config file with the flags; flags win when set.
func genOptions(cmd *cobra.Command) (buildOptions, error) {
	cfg, err := config.Load()
	if err != nil {
		return buildOptions{}, errors.Wrap(err, "loading configuration")
	}

	opts := buildOptions{
		checked:   cfg.Generate.Checked,
		outputDir: cfg.Generate.Output,
		target:    cfg.Target.Layout(),
	}
	if cmd.Flags().Changed("checked") {
		opts.checked = genChecked
	}
	if cmd.Flags().Changed("output") {
		opts.outputDir = genOutput
	}
	return opts, nil
}

func generateFile(path string, opts buildOptions) error {
	result, err := buildFile(path, opts)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(result.OutPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "creating output directory")
		}
	}
	if err := os.WriteFile(result.OutPath, result.Source, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", result.OutPath)
	}

	pterm.Printf("%s Generated %s (%d structs, package %s)\n",
		pterm.Green("✓"), result.OutPath, result.Structs, result.Package)
	return nil
}

// watchAndRegenerate blocks, regenerating changed layout files until
// interrupted. A broken layout logs the error and keeps watching so the
// user can fix the file without restarting.
func watchAndRegenerate(paths []string, opts buildOptions) error {
	watcher, err := layoutfile.NewWatcher(paths)
	if err != nil {
		return err
	}
	defer watcher.Stop()

	watcher.OnChange(func(changed []string) {
		for _, path := range changed {
			if err := generateFile(path, opts); err != nil {
				logger.Errorw("regeneration failed",
					logger.FieldFile, path,
					logger.FieldError, err)
				pterm.Printf("%s %s: %v\n", pterm.Red("✗"), path, err)
			}
		}
	})
	watcher.Start()

	pterm.Printf("Watching %d layout file(s), Ctrl-C to stop\n", len(paths))
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	return nil
}
