package layout

import (
	"github.com/GraybirdSoftware/offsetter/errors"
)

// Plan converts a struct specification into a layout plan, or fails with a
// specification error rather than producing an invalid plan.
//
// The algorithm walks the fields in declared order, trusting only their
// offsets: a leading pad is inserted when the first field does not start at
// zero, a pad covers every gap between consecutive fields, and a trailing pad
// reaches the declared total size when one was given. Negative gaps are
// overlaps; a negative trailing gap is an overflow. Both abort planning.
func Plan(spec StructSpec) (*LayoutPlan, error) {
	plan := &LayoutPlan{
		StructName:   spec.Name,
		Visibility:   spec.Visibility,
		Mode:         spec.Mode,
		DeclaredSize: spec.TotalSize,
	}
	if plan.Mode == "" {
		plan.Mode = ModePlain
	}

	cursor := uint64(0) // first unoccupied byte
	for i := range spec.Fields {
		field := spec.Fields[i]

		if i > 0 {
			prev := spec.Fields[i-1]
			if field.Offset <= prev.Offset {
				return nil, errors.Wrapf(errors.ErrUnorderedOffset,
					"struct %s: field %q at %#x follows field %q at %#x",
					spec.Name, field.Name, field.Offset, prev.Name, prev.Offset)
			}
		}

		if field.Offset < cursor {
			// The previous field's bytes extend into this one.
			return nil, errors.Wrapf(errors.ErrFieldOverlap,
				"struct %s: field %q at %#x overlaps preceding field ending at %#x",
				spec.Name, field.Name, field.Offset, cursor)
		}

		if gap := field.Offset - cursor; gap > 0 {
			plan.Segments = append(plan.Segments, Segment{Offset: cursor, Length: gap})
		}

		plan.Segments = append(plan.Segments, Segment{
			Offset: field.Offset,
			Length: field.Type.Size,
			Field:  &spec.Fields[i],
		})
		cursor = field.End()
	}

	if spec.TotalSize != nil {
		total := *spec.TotalSize
		if total < cursor {
			return nil, errors.Wrapf(errors.ErrStructOverflow,
				"struct %s: fields end at %#x, past declared size %#x",
				spec.Name, cursor, total)
		}
		if trailing := total - cursor; trailing > 0 {
			plan.Segments = append(plan.Segments, Segment{Offset: cursor, Length: trailing})
		}
	}

	return plan, nil
}
