package commands

import (
	"path/filepath"
	"strings"

	"github.com/GraybirdSoftware/offsetter/errors"
	"github.com/GraybirdSoftware/offsetter/gen"
	"github.com/GraybirdSoftware/offsetter/layout"
	"github.com/GraybirdSoftware/offsetter/layoutfile"
	"github.com/GraybirdSoftware/offsetter/logger"
)

// buildOptions carries the effective generation settings after merging
// config file and flags.
type buildOptions struct {
	checked   bool
	outputDir string
	target    layout.Target
}

// buildResult is one fully generated file, not yet written to disk.
type buildResult struct {
	OutPath string
	Source  []byte
	Package string
	Structs int
}

// buildFile runs the whole pipeline for one layout file: decode, plan each
// struct, verify in checked mode, emit. All three consumers (type emitter,
// debug emitter, assertion emitter) read the same plans.
func buildFile(path string, opts buildOptions) (*buildResult, error) {
	file, err := layoutfile.Decode(path, opts.target)
	if err != nil {
		return nil, err
	}

	plans := make([]*layout.LayoutPlan, 0, len(file.Structs))
	for _, spec := range file.Structs {
		plan, err := layout.Plan(spec)
		if err != nil {
			return nil, err
		}

		if opts.checked {
			if err := layout.Verify(plan, opts.target); err != nil {
				return nil, errors.WithHint(err,
					"align the declared offset to the field type, or choose a narrower type")
			}
		}

		logger.Debugw("planned struct",
			logger.FieldStruct, spec.Name,
			logger.FieldSegment, len(plan.Segments),
			logger.FieldSize, plan.Size())
		plans = append(plans, plan)
	}

	source, err := gen.New(gen.Options{Checked: opts.checked}).File(file.Package, file.Imports, plans)
	if err != nil {
		return nil, errors.Wrapf(err, "emitting %s", path)
	}

	return &buildResult{
		OutPath: outputPath(path, opts.outputDir),
		Source:  source,
		Package: file.Package,
		Structs: len(plans),
	}, nil
}

// outputPath derives the generated file path for a layout file: the layout
// file's stem plus "_gen.go", in outputDir when set, otherwise next to the
// layout file. "device.toml" and "device.layout.toml" both map to
// "device_gen.go".
func outputPath(layoutPath, outputDir string) string {
	stem := strings.TrimSuffix(filepath.Base(layoutPath), filepath.Ext(layoutPath))
	stem = strings.TrimSuffix(stem, ".layout")

	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(layoutPath)
	}
	return filepath.Join(dir, stem+"_gen.go")
}
