package layout

import (
	"testing"

	"github.com/GraybirdSoftware/offsetter/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTypeFixed(t *testing.T) {
	target := DefaultTarget()

	tests := []struct {
		expr  string
		size  uint64
		align int
	}{
		{"bool", 1, 1},
		{"uint8", 1, 1},
		{"byte", 1, 1},
		{"uint16", 2, 2},
		{"int32", 4, 4},
		{"rune", 4, 4},
		{"float32", 4, 4},
		{"uint64", 8, 8},
		{"float64", 8, 8},
		{"complex64", 8, 4},
		{"complex128", 16, 8},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			info, err := ResolveType(tt.expr, target)
			require.NoError(t, err)
			assert.Equal(t, tt.expr, info.Expr)
			assert.Equal(t, tt.size, info.Size)
			assert.Equal(t, tt.align, info.Align)
		})
	}
}

func TestResolveTypeWordSized(t *testing.T) {
	for _, expr := range []string{"int", "uint", "uintptr", "unsafe.Pointer"} {
		info, err := ResolveType(expr, Target{PointerSize: 8, MaxAlign: 8})
		require.NoError(t, err)
		assert.Equal(t, uint64(8), info.Size, expr)

		info, err = ResolveType(expr, Target{PointerSize: 4, MaxAlign: 4})
		require.NoError(t, err)
		assert.Equal(t, uint64(4), info.Size, expr)
		assert.Equal(t, 4, info.Align, expr)
	}
}

func TestResolveTypePointer(t *testing.T) {
	target := DefaultTarget()

	for _, expr := range []string{"*DeviceObject", "*uint32", "*windows.Handle", "**byte"} {
		info, err := ResolveType(expr, target)
		require.NoError(t, err, expr)
		assert.Equal(t, expr, info.Expr)
		assert.Equal(t, uint64(8), info.Size)
		assert.Equal(t, 8, info.Align)
	}

	_, err := ResolveType("*", target)
	assert.True(t, errors.Is(err, errors.ErrUnknownType))
}

func TestResolveTypeArray(t *testing.T) {
	target := DefaultTarget()

	info, err := ResolveType("[16]byte", target)
	require.NoError(t, err)
	assert.Equal(t, "[16]byte", info.Expr)
	assert.Equal(t, uint64(16), info.Size)
	assert.Equal(t, 1, info.Align)

	// Hex lengths are normalized to decimal in the emitted expression.
	info, err = ResolveType("[0x10]uint32", target)
	require.NoError(t, err)
	assert.Equal(t, "[16]uint32", info.Expr)
	assert.Equal(t, uint64(64), info.Size)
	assert.Equal(t, 4, info.Align)

	// Nested arrays.
	info, err = ResolveType("[2][4]uint16", target)
	require.NoError(t, err)
	assert.Equal(t, uint64(16), info.Size)
	assert.Equal(t, 2, info.Align)

	_, err = ResolveType("[three]byte", target)
	assert.True(t, errors.Is(err, errors.ErrUnknownType))
	_, err = ResolveType("[4", target)
	assert.True(t, errors.Is(err, errors.ErrUnknownType))
}

func TestResolveTypeMaxAlignCap(t *testing.T) {
	// 386-style target: uint64 is 8 bytes but aligns to 4.
	info, err := ResolveType("uint64", Target{PointerSize: 4, MaxAlign: 4})
	require.NoError(t, err)
	assert.Equal(t, uint64(8), info.Size)
	assert.Equal(t, 4, info.Align)
}

func TestResolveTypeUnknown(t *testing.T) {
	target := DefaultTarget()

	for _, expr := range []string{"", "DeviceObject", "string", "[]byte", "map[int]int", "chan int"} {
		_, err := ResolveType(expr, target)
		assert.True(t, errors.Is(err, errors.ErrUnknownType), "expr %q gave %v", expr, err)
	}
}
