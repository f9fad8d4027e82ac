package gen

import (
	"fmt"
	"strings"

	"github.com/GraybirdSoftware/offsetter/layout"
)

// Assertions emits compile-time layout guards for a plan. Each declared field
// gets a pair of zero-size array declarations whose lengths are
//
//	unsafe.Offsetof(member) - declared   and   declared - unsafe.Offsetof(member)
//
// Both lengths are non-negative constants only when the compiler placed the
// member at exactly its declared offset, so any divergence fails the
// consumer's build rather than silently modelling the wrong layout. A final
// pair guards unsafe.Sizeof against the declared total size when one was
// given.
func (g *Generator) Assertions(plan *layout.LayoutPlan) string {
	fields := plan.RealFields()
	if len(fields) == 0 && plan.DeclaredSize == nil {
		return ""
	}

	var out strings.Builder
	name := ident(plan.StructName, plan.Visibility)

	fmt.Fprintf(&out, "// Compile-time layout guards for %s.\n", name)
	out.WriteString("var (\n")

	for _, field := range fields {
		member := fmt.Sprintf("%s{}.%s", name, ident(field.Name, field.Visibility))
		fmt.Fprintf(&out, "\t_ [unsafe.Offsetof(%s) - %#x]struct{}\n", member, field.Offset)
		fmt.Fprintf(&out, "\t_ [%#x - unsafe.Offsetof(%s)]struct{}\n", field.Offset, member)
	}

	if plan.DeclaredSize != nil {
		fmt.Fprintf(&out, "\t_ [unsafe.Sizeof(%s{}) - %#x]struct{}\n", name, *plan.DeclaredSize)
		fmt.Fprintf(&out, "\t_ [%#x - unsafe.Sizeof(%s{})]struct{}\n", *plan.DeclaredSize, name)
	}

	out.WriteString(")\n")
	return out.String()
}

// needsUnsafe reports whether checked emission for the plan uses the unsafe
// package.
func needsUnsafe(plan *layout.LayoutPlan) bool {
	return len(plan.RealFields()) > 0 || plan.DeclaredSize != nil
}
