// Package gen emits Go source from layout plans.
//
// Three independent emitters consume the same plan: Struct produces the type
// definition (real fields plus explicit blank padding members), Stringer
// produces the padding-omitting debug printer, and Assertions produces the
// checked-mode compile-time layout guards. File assembles any number of plans
// into one goimports-formatted generated file.
//
// Output is deterministic: identical plans produce byte-identical files, so
// generated code can be committed and drift-checked in CI.
package gen

import (
	"fmt"
	"strings"

	"github.com/GraybirdSoftware/offsetter/layout"
)

// Options configures emission.
type Options struct {
	// Checked enables the compile-time offset assertions in the emitted
	// file. The pipeline also runs layout.Verify before emitting, so a
	// checked generation never writes a file that cannot compile.
	Checked bool
}

// Generator emits Go code for layout plans.
type Generator struct {
	opts Options
}

// New creates a generator.
func New(opts Options) *Generator {
	return &Generator{opts: opts}
}

// Struct emits the type definition for a plan. Member order mirrors the
// plan's segments exactly: declared fields keep their declared names (cased
// for visibility), padding becomes blank [N]byte members the consumer can
// never touch.
func (g *Generator) Struct(plan *layout.LayoutPlan) string {
	var out strings.Builder

	name := ident(plan.StructName, plan.Visibility)
	if plan.DeclaredSize != nil {
		fmt.Fprintf(&out, "// %s mirrors a fixed %#x-byte memory layout.\n", name, *plan.DeclaredSize)
	} else {
		fmt.Fprintf(&out, "// %s mirrors a fixed memory layout.\n", name)
	}
	fmt.Fprintf(&out, "// Fields sit at their declared byte offsets; blank members are padding.\n")
	fmt.Fprintf(&out, "type %s struct {\n", name)

	for _, seg := range plan.Segments {
		if seg.IsPadding() {
			fmt.Fprintf(&out, "\t_ [%d]byte\n", seg.Length)
			continue
		}
		field := seg.Field
		fmt.Fprintf(&out, "\t%s %s // offset %#x\n",
			ident(field.Name, field.Visibility), field.Type.Expr, field.Offset)
	}

	out.WriteString("}\n")
	return out.String()
}

// ident is the emitter-side shorthand for layout.GoName.
func ident(name string, vis layout.Visibility) string {
	return layout.GoName(name, vis)
}
