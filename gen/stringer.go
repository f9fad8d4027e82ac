package gen

import (
	"fmt"
	"strings"

	"github.com/GraybirdSoftware/offsetter/layout"
)

// Stringer emits a hand-rolled String method listing (name, value) for every
// declared field in plan order. Padding members never appear in the output.
func (g *Generator) Stringer(plan *layout.LayoutPlan) string {
	var out strings.Builder

	name := ident(plan.StructName, plan.Visibility)
	fields := plan.RealFields()

	fmt.Fprintf(&out, "// String renders the declared fields of %s in layout order,\n", name)
	fmt.Fprintf(&out, "// omitting padding.\n")
	fmt.Fprintf(&out, "func (v %s) String() string {\n", name)

	if len(fields) == 0 {
		fmt.Fprintf(&out, "\treturn %q\n}\n", name+" {}")
		return out.String()
	}

	verbs := make([]string, 0, len(fields))
	args := make([]string, 0, len(fields))
	for _, field := range fields {
		member := ident(field.Name, field.Visibility)
		verbs = append(verbs, member+": %v")
		args = append(args, "v."+member)
	}

	fmt.Fprintf(&out, "\treturn fmt.Sprintf(%q, %s)\n",
		name+" { "+strings.Join(verbs, ", ")+" }",
		strings.Join(args, ", "))
	out.WriteString("}\n")
	return out.String()
}

// needsFmt reports whether the Stringer for the plan uses the fmt package.
func needsFmt(plan *layout.LayoutPlan) bool {
	return plan.Mode == layout.ModeDebug && len(plan.RealFields()) > 0
}
