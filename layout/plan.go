package layout

// Segment is one contiguous byte range of a planned layout: either a declared
// field or the padding between fields. Padding segments have a nil Field.
type Segment struct {
	Offset uint64
	Length uint64

	// Field is the declared field occupying this segment, nil for padding.
	Field *FieldSpec
}

// IsPadding reports whether the segment is filler rather than a declared field.
func (s Segment) IsPadding() bool {
	return s.Field == nil
}

// End returns the first byte past the segment.
func (s Segment) End() uint64 {
	return s.Offset + s.Length
}

// LayoutPlan is the ordered, gap-free sequence of segments describing a
// struct's full memory image. Derived once per struct by Plan, consumed by
// the emitters and the verifier, then discarded.
//
// Invariants (established by Plan, relied upon by all consumers):
//   - segments start at offset 0 and are contiguous: each segment begins
//     exactly where the previous one ends
//   - padding lengths are strictly positive
//   - when DeclaredSize is non-nil, the final segment ends exactly there
type LayoutPlan struct {
	StructName string
	Visibility Visibility
	Mode       Mode
	Segments   []Segment

	// DeclaredSize echoes StructSpec.TotalSize.
	DeclaredSize *uint64
}

// Size returns the total byte size of the planned layout: the declared size
// when one was given, otherwise the end of the last segment.
func (p *LayoutPlan) Size() uint64 {
	if p.DeclaredSize != nil {
		return *p.DeclaredSize
	}
	if n := len(p.Segments); n > 0 {
		return p.Segments[n-1].End()
	}
	return 0
}

// RealFields returns the declared (non-padding) fields in plan order.
func (p *LayoutPlan) RealFields() []FieldSpec {
	fields := make([]FieldSpec, 0, len(p.Segments))
	for _, seg := range p.Segments {
		if seg.Field != nil {
			fields = append(fields, *seg.Field)
		}
	}
	return fields
}
