package layout

import (
	"fmt"

	"github.com/GraybirdSoftware/offsetter/errors"
)

// OffsetMismatchError reports a real field the Go compiler would place at a
// different offset than declared. Checked mode only.
type OffsetMismatchError struct {
	Struct   string
	Field    string
	Declared uint64
	Actual   uint64
}

func (e *OffsetMismatchError) Error() string {
	return fmt.Sprintf("struct %s: field %q declared at %#x but target layout places it at %#x",
		e.Struct, e.Field, e.Declared, e.Actual)
}

// Unwrap ties the structured error to the ErrOffsetMismatch kind so callers
// can match it with errors.Is.
func (e *OffsetMismatchError) Unwrap() error {
	return errors.ErrOffsetMismatch
}

// SizeMismatchError reports a struct whose size under the target's layout
// rules differs from its declared total size. Checked mode only.
type SizeMismatchError struct {
	Struct   string
	Declared uint64
	Actual   uint64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("struct %s: declared size %#x but target layout yields %#x",
		e.Struct, e.Declared, e.Actual)
}

func (e *SizeMismatchError) Unwrap() error {
	return errors.ErrSizeMismatch
}

// Verify re-derives each real field's offset within the emitted struct under
// the target's layout rules and asserts it equals the planned offset.
//
// The Go compiler never reorders struct members, but it does align each one
// to its natural alignment. The planner's gaps are byte-granular, so a field
// whose declared offset is not a multiple of its type's alignment will be
// pushed forward by compiler-inserted padding the plan knows nothing about.
// Verify simulates exactly that placement (every padding member is a byte
// array with alignment 1, every real member uses its type's capped alignment,
// and the total size rounds up to the struct's alignment) and fails with the
// first divergence it finds.
//
// The generated assertions (gen.Assertions) guard the same property inside
// the consumer's build; Verify catches it before a file is ever written.
func Verify(plan *LayoutPlan, target Target) error {
	cursor := uint64(0)
	structAlign := 1

	for _, seg := range plan.Segments {
		if seg.IsPadding() {
			// Emitted as [N]byte: alignment 1, never moves.
			cursor += seg.Length
			continue
		}

		field := seg.Field
		align := uint64(capAlign(field.Type.Align, target))
		if align == 0 {
			align = 1
		}
		if int(align) > structAlign {
			structAlign = int(align)
		}

		actual := roundUp(cursor, align)
		if actual != field.Offset {
			return &OffsetMismatchError{
				Struct:   plan.StructName,
				Field:    field.Name,
				Declared: field.Offset,
				Actual:   actual,
			}
		}
		cursor = actual + field.Type.Size
	}

	if plan.DeclaredSize != nil {
		actual := roundUp(cursor, uint64(structAlign))
		if actual != *plan.DeclaredSize {
			return &SizeMismatchError{
				Struct:   plan.StructName,
				Declared: *plan.DeclaredSize,
				Actual:   actual,
			}
		}
	}

	return nil
}

func roundUp(n, align uint64) uint64 {
	if align <= 1 {
		return n
	}
	return (n + align - 1) / align * align
}
