package layout

import (
	"strconv"
	"strings"

	"github.com/GraybirdSoftware/offsetter/errors"
)

// Target describes the layout rules of the platform the generated code will
// compile for. Fixed-offset layouts are inherently single-target; this is the
// one knob the tool exposes (configured in offsetter.toml under [target]).
type Target struct {
	// PointerSize is the byte size of pointers, uintptr, int and uint.
	PointerSize int

	// MaxAlign caps every type's natural alignment. 8 on the common 64-bit
	// targets; 4 on 386-style targets where even uint64 aligns to 4.
	MaxAlign int
}

// DefaultTarget is the common 64-bit case.
func DefaultTarget() Target {
	return Target{PointerSize: 8, MaxAlign: 8}
}

// TypeInfo is a sized type descriptor: the Go type expression exactly as it
// will be emitted, plus the size and natural alignment it has on the target.
type TypeInfo struct {
	// Expr is the emitted Go type expression, e.g. "uint32", "*Device",
	// "[16]byte".
	Expr string

	// Size in bytes on the target.
	Size uint64

	// Align is the natural alignment in bytes on the target, already
	// capped at Target.MaxAlign.
	Align int
}

// fixedTypes are the type expressions whose size and alignment do not depend
// on the target word size.
var fixedTypes = map[string]TypeInfo{
	"bool":       {Expr: "bool", Size: 1, Align: 1},
	"byte":       {Expr: "byte", Size: 1, Align: 1},
	"int8":       {Expr: "int8", Size: 1, Align: 1},
	"uint8":      {Expr: "uint8", Size: 1, Align: 1},
	"int16":      {Expr: "int16", Size: 2, Align: 2},
	"uint16":     {Expr: "uint16", Size: 2, Align: 2},
	"int32":      {Expr: "int32", Size: 4, Align: 4},
	"uint32":     {Expr: "uint32", Size: 4, Align: 4},
	"rune":       {Expr: "rune", Size: 4, Align: 4},
	"float32":    {Expr: "float32", Size: 4, Align: 4},
	"int64":      {Expr: "int64", Size: 8, Align: 8},
	"uint64":     {Expr: "uint64", Size: 8, Align: 8},
	"float64":    {Expr: "float64", Size: 8, Align: 8},
	"complex64":  {Expr: "complex64", Size: 8, Align: 4},
	"complex128": {Expr: "complex128", Size: 16, Align: 8},
}

// wordTypes take the target's pointer size.
var wordTypes = map[string]bool{
	"int":            true,
	"uint":           true,
	"uintptr":        true,
	"unsafe.Pointer": true,
}

// ResolveType resolves a declarative type expression to a sized descriptor
// under the given target. Supported forms:
//
//   - fixed-size primitives (uint8 .. uint64, float*, complex*, bool, byte, rune)
//   - word-sized types (int, uint, uintptr, unsafe.Pointer)
//   - pointers *T to anything, including qualified and not-yet-generated
//     types ("*DeviceObject", "*windows.Handle")
//   - arrays [N]T of any supported element, N decimal or 0x-hex
//
// Anything else, in particular bare named struct types whose size the tool
// cannot know, fails with ErrUnknownType.
func ResolveType(expr string, target Target) (TypeInfo, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return TypeInfo{}, errors.Wrap(errors.ErrUnknownType, "empty type expression")
	}

	if info, ok := fixedTypes[expr]; ok {
		info.Align = capAlign(info.Align, target)
		return info, nil
	}

	if wordTypes[expr] {
		return TypeInfo{
			Expr:  expr,
			Size:  uint64(target.PointerSize),
			Align: capAlign(target.PointerSize, target),
		}, nil
	}

	// Pointer to anything. The pointee does not need to be resolvable:
	// pointers to other generated structs or foreign types are word-sized
	// regardless.
	if rest, ok := strings.CutPrefix(expr, "*"); ok {
		if strings.TrimSpace(rest) == "" {
			return TypeInfo{}, errors.Wrapf(errors.ErrUnknownType, "%q: pointer with no pointee", expr)
		}
		return TypeInfo{
			Expr:  expr,
			Size:  uint64(target.PointerSize),
			Align: capAlign(target.PointerSize, target),
		}, nil
	}

	if strings.HasPrefix(expr, "[") {
		return resolveArray(expr, target)
	}

	return TypeInfo{}, errors.Wrapf(
		errors.WithHint(errors.ErrUnknownType,
			"only sized types can be placed at a fixed offset; reference nested structs through a pointer or inline their fields"),
		"%q", expr)
}

func resolveArray(expr string, target Target) (TypeInfo, error) {
	close := strings.IndexByte(expr, ']')
	if close < 0 {
		return TypeInfo{}, errors.Wrapf(errors.ErrUnknownType, "%q: malformed array type", expr)
	}

	n, err := strconv.ParseUint(strings.TrimSpace(expr[1:close]), 0, 64)
	if err != nil {
		return TypeInfo{}, errors.Wrapf(errors.ErrUnknownType, "%q: bad array length", expr)
	}

	elem, err := ResolveType(expr[close+1:], target)
	if err != nil {
		return TypeInfo{}, errors.Wrapf(err, "array %q", expr)
	}

	return TypeInfo{
		Expr:  "[" + strconv.FormatUint(n, 10) + "]" + elem.Expr,
		Size:  n * elem.Size,
		Align: elem.Align,
	}, nil
}

func capAlign(natural int, target Target) int {
	if target.MaxAlign > 0 && natural > target.MaxAlign {
		return target.MaxAlign
	}
	return natural
}
