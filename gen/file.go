package gen

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/GraybirdSoftware/offsetter/errors"
	"github.com/GraybirdSoftware/offsetter/layout"
)

// Header marks every generated file. The wording follows the convention
// recognized by go tooling ("Code generated ... DO NOT EDIT.").
const Header = "// Code generated by offsetter. DO NOT EDIT."

// File assembles the emissions for a set of plans into one generated Go
// file: header, package clause, imports, then per plan the type definition,
// the debug printer (debug mode), and the layout guards (checked mode).
// extraImports carries import paths the declared field types reference, e.g.
// "unsafe" for unsafe.Pointer fields or the package of a foreign pointee.
func (g *Generator) File(pkgName string, extraImports []string, plans []*layout.LayoutPlan) ([]byte, error) {
	if pkgName == "" {
		return nil, errors.New("generated file needs a package name")
	}

	var out strings.Builder
	out.WriteString(Header + "\n\n")
	fmt.Fprintf(&out, "package %s\n\n", pkgName)

	importSet := map[string]bool{}
	for _, path := range extraImports {
		importSet[path] = true
	}
	for _, plan := range plans {
		if needsFmt(plan) {
			importSet["fmt"] = true
		}
		if g.opts.Checked && needsUnsafe(plan) {
			importSet["unsafe"] = true
		}
	}
	writeImports(&out, importSet)

	for i, plan := range plans {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(g.Struct(plan))
		if plan.Mode == layout.ModeDebug {
			out.WriteString("\n")
			out.WriteString(g.Stringer(plan))
		}
		if g.opts.Checked {
			if guards := g.Assertions(plan); guards != "" {
				out.WriteString("\n")
				out.WriteString(guards)
			}
		}
	}

	// FormatOnly: gofmt the assembled source without resolving imports
	// against the build context, keeping output deterministic.
	formatted, err := imports.Process(pkgName+".go", []byte(out.String()), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "formatting generated source")
	}
	return formatted, nil
}

func writeImports(out *strings.Builder, importSet map[string]bool) {
	if len(importSet) == 0 {
		return
	}

	paths := make([]string, 0, len(importSet))
	for path := range importSet {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	if len(paths) == 1 {
		fmt.Fprintf(out, "import %q\n\n", paths[0])
		return
	}
	out.WriteString("import (\n")
	for _, path := range paths {
		fmt.Fprintf(out, "\t%q\n", path)
	}
	out.WriteString(")\n\n")
}
