// Package layout plans fixed-offset struct layouts.
//
// The package turns a declarative struct specification, an ordered list of
// (offset, name, visibility, type) fields with an optional total size, into
// a gap-free sequence of real and padding segments. The plan is the
// single source of truth consumed by the code emitters in package gen and by
// the checked-mode verifier.
//
// Offsets are the only authority: field order matters only through them, and
// every gap is made explicit as byte-granular padding. Impossible layouts
// (unordered offsets, overlapping fields, fields past the declared size) fail
// at plan time with an error naming the offending field.
package layout

import (
	"unicode"
	"unicode/utf8"
)

// Visibility of a struct or field in the generated code. In Go this maps to
// identifier casing: the emitter exports or unexports the declared name.
type Visibility string

const (
	Public  Visibility = "public"
	Private Visibility = "private"
)

// GoName applies the declared visibility to a name by casing its first rune,
// which is how Go spells public/private. The front-end uses it to detect
// member collisions before generation; the emitters use it for every
// identifier they write.
func GoName(name string, vis Visibility) string {
	r, width := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError && width <= 1 {
		return name
	}
	if vis == Private {
		return string(unicode.ToLower(r)) + name[width:]
	}
	return string(unicode.ToUpper(r)) + name[width:]
}

// Mode selects what gets generated for a struct.
type Mode string

const (
	// ModePlain generates the type definition only.
	ModePlain Mode = "plain"

	// ModeDebug additionally generates a String() method that lists the
	// declared fields and omits all padding.
	ModeDebug Mode = "debug"
)

// FieldSpec declares one field at a fixed byte offset. Immutable once built
// by the front-end; consumed only by Plan.
type FieldSpec struct {
	Offset     uint64
	Name       string
	Visibility Visibility
	Type       TypeInfo
}

// End returns the first byte past the field.
func (f FieldSpec) End() uint64 {
	return f.Offset + f.Type.Size
}

// StructSpec declares one struct: its fields in ascending offset order and an
// optional exact total size. The front-end supplies fields already ordered;
// Plan validates the ordering anyway and fails if it is violated.
type StructSpec struct {
	Name       string
	Visibility Visibility
	Mode       Mode
	Fields     []FieldSpec

	// TotalSize, when non-nil, pins the struct to an exact byte size.
	// Trailing padding is appended to reach it. When nil the struct simply
	// ends where the last field ends.
	TotalSize *uint64
}
