package layout

import (
	"testing"

	"github.com/GraybirdSoftware/offsetter/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPlan(t *testing.T, spec StructSpec) *LayoutPlan {
	t.Helper()
	plan, err := Plan(spec)
	require.NoError(t, err)
	return plan
}

func TestVerifyWellAlignedLayout(t *testing.T) {
	target := DefaultTarget()
	plan := mustPlan(t, StructSpec{
		Name:      "Device",
		TotalSize: size(0x20),
		Fields: []FieldSpec{
			field(t, 0x0, "Kind", "uint16"),
			field(t, 0x8, "Next", "*Device"),
			field(t, 0x10, "Flags", "uint32"),
		},
	})

	assert.NoError(t, Verify(plan, target))
}

func TestVerifyMisalignedFieldFails(t *testing.T) {
	// A uint64 declared at offset 4: Go aligns it to 8, so the member
	// lands at 8 no matter what padding precedes it.
	target := DefaultTarget()
	plan := mustPlan(t, StructSpec{
		Name: "Misaligned",
		Fields: []FieldSpec{
			field(t, 0x0, "Head", "uint32"),
			field(t, 0x4, "Wide", "uint64"),
		},
	})

	err := Verify(plan, target)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrOffsetMismatch))

	var mismatch *OffsetMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "Wide", mismatch.Field)
	assert.Equal(t, uint64(0x4), mismatch.Declared)
	assert.Equal(t, uint64(0x8), mismatch.Actual)
	assert.Contains(t, err.Error(), "Wide")
}

func TestVerifyMisalignedFieldPassesOn32BitTarget(t *testing.T) {
	// The same layout is fine where uint64 aligns to 4.
	target := Target{PointerSize: 4, MaxAlign: 4}
	plan := mustPlan(t, StructSpec{
		Name: "Misaligned",
		Fields: []FieldSpec{
			{Offset: 0x0, Name: "Head", Type: mustResolve(t, "uint32", target)},
			{Offset: 0x4, Name: "Wide", Type: mustResolve(t, "uint64", target)},
		},
	})

	assert.NoError(t, Verify(plan, target))
}

func TestVerifySizeMismatch(t *testing.T) {
	// Declared size 0xC is not a multiple of the struct's 8-byte
	// alignment: Go rounds the type up to 0x10.
	target := DefaultTarget()
	plan := mustPlan(t, StructSpec{
		Name:      "Rounded",
		TotalSize: size(0xC),
		Fields:    []FieldSpec{field(t, 0x0, "Wide", "uint64")},
	})

	err := Verify(plan, target)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSizeMismatch))

	var mismatch *SizeMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, uint64(0xC), mismatch.Declared)
	assert.Equal(t, uint64(0x10), mismatch.Actual)
}

func TestVerifyByteGranularLayoutAlwaysPasses(t *testing.T) {
	// With only alignment-1 members the plan is exactly the emitted layout.
	target := DefaultTarget()
	plan := mustPlan(t, StructSpec{
		Name:      "Bytes",
		TotalSize: size(0x40),
		Fields: []FieldSpec{
			field(t, 0x3, "A", "byte"),
			field(t, 0x11, "B", "[7]uint8"),
			field(t, 0x2F, "C", "bool"),
		},
	})

	assert.NoError(t, Verify(plan, target))
}

func mustResolve(t *testing.T, expr string, target Target) TypeInfo {
	t.Helper()
	info, err := ResolveType(expr, target)
	require.NoError(t, err)
	return info
}
