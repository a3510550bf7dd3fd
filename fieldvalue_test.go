package pointcloud2

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueAsWidening(t *testing.T) {
	t.Parallel()

	v := NewFieldValue(int16(-1200))
	f, err := ValueAs[float32](v)
	require.NoError(t, err)
	assert.Equal(t, float32(-1200), f)

	d, err := ValueAs[float64](NewFieldValue(uint32(4_000_000_000)))
	require.NoError(t, err)
	assert.Equal(t, float64(4_000_000_000), d)
}

func TestValueAsNarrowingDependsOnValue(t *testing.T) {
	t.Parallel()

	// The pairing I32 -> U8 is not lossless, but the concrete value decides.
	small, err := ValueAs[uint8](NewFieldValue(int32(7)))
	require.NoError(t, err)
	assert.Equal(t, uint8(7), small)

	_, err = ValueAs[uint8](NewFieldValue(int32(300)))
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, I32, mismatch.Stored)
	assert.Equal(t, U8, mismatch.Requested)

	_, err = ValueAs[uint8](NewFieldValue(int32(-1)))
	require.ErrorAs(t, err, &mismatch)

	// Integral floats narrow to integers when in range.
	n, err := ValueAs[int16](NewFieldValue(float64(-32768)))
	require.NoError(t, err)
	assert.Equal(t, int16(math.MinInt16), n)

	_, err = ValueAs[int16](NewFieldValue(float64(0.5)))
	require.ErrorAs(t, err, &mismatch)
}

func TestValueAsLossyTruncation(t *testing.T) {
	t.Parallel()

	// Integer narrowing wraps modulo 2^n.
	assert.Equal(t, uint8(44), ValueAsLossy[uint8](NewFieldValue(int32(300))))
	assert.Equal(t, uint8(255), ValueAsLossy[uint8](NewFieldValue(int32(-1))))
	assert.Equal(t, int8(-128), ValueAsLossy[int8](NewFieldValue(uint8(128))))

	// Floats truncate toward zero before wrapping.
	assert.Equal(t, int32(3), ValueAsLossy[int32](NewFieldValue(float32(3.9))))
	assert.Equal(t, int32(-3), ValueAsLossy[int32](NewFieldValue(float32(-3.9))))
	assert.Equal(t, int32(0), ValueAsLossy[int32](NewFieldValue(float64(math.NaN()))))

	// F64 -> F32 rounds.
	assert.Equal(t, float32(1.1), ValueAsLossy[float32](NewFieldValue(float64(1.1))))
}

func TestPackedRGB(t *testing.T) {
	t.Parallel()

	v := NewRGBValue(0x00AABBCC)
	assert.Equal(t, RGB, v.Datatype())

	packed, err := v.PackedRGB()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x00AABBCC), packed)

	// The F32 carve-out: the same bits boxed as a float still unpack.
	f := NewFieldValue(math.Float32frombits(0x00AABBCC))
	packed, err = f.PackedRGB()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x00AABBCC), packed)

	_, err = NewFieldValue(uint32(0x00AABBCC)).PackedRGB()
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestValueAsRGBRejectsNumericTargets(t *testing.T) {
	t.Parallel()

	v := NewRGBValue(0x00102030)
	_, err := ValueAs[uint32](v)
	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		// The packed color is not a number; only PackedRGB reads it.
		t.Fatalf("expected TypeMismatchError, got %v", err)
	}
}

func TestConvertValueBitReinterpretation(t *testing.T) {
	t.Parallel()

	v := convertValue(NewRGBValue(0x00FF8000), F32)
	assert.Equal(t, F32, v.Datatype())
	assert.Equal(t, math.Float32frombits(0x00FF8000), v.Float32())

	back := convertValue(v, RGB)
	packed, err := back.PackedRGB()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x00FF8000), packed)
}
