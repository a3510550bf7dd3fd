package pointcloud2

import (
	"encoding/binary"
	"math"
)

// Native is the set of Go types that map directly onto a wire datatype.
type Native interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | float32 | float64
}

// FieldValue is a small tagged box holding one decoded field value: the raw
// bytes, the datatype they encode and the byte order they were read with.
// It is the unit exchanged between the conversion engine and a point type's
// PackFields/UnpackFields methods, and doubles as the meta-value box for
// reading extra fields off a message.
type FieldValue struct {
	bytes    [8]byte
	datatype FieldDatatype
	endian   Endian
}

// NewFieldValue boxes a native value. The datatype tag is derived from the
// Go type of val.
func NewFieldValue[T Native](val T) FieldValue {
	v := FieldValue{datatype: datatypeOf[T](), endian: EndianLittle}
	switch x := any(val).(type) {
	case int8:
		v.bytes[0] = byte(x)
	case uint8:
		v.bytes[0] = x
	case int16:
		binary.LittleEndian.PutUint16(v.bytes[:2], uint16(x))
	case uint16:
		binary.LittleEndian.PutUint16(v.bytes[:2], x)
	case int32:
		binary.LittleEndian.PutUint32(v.bytes[:4], uint32(x))
	case uint32:
		binary.LittleEndian.PutUint32(v.bytes[:4], x)
	case float32:
		binary.LittleEndian.PutUint32(v.bytes[:4], math.Float32bits(x))
	case float64:
		binary.LittleEndian.PutUint64(v.bytes[:8], math.Float64bits(x))
	}
	return v
}

// NewRGBValue boxes a packed RGB color (0x00RRGGBB bit pattern). On the wire
// the value travels as the bit pattern of an F32 field.
func NewRGBValue(packed uint32) FieldValue {
	v := FieldValue{datatype: RGB, endian: EndianLittle}
	binary.LittleEndian.PutUint32(v.bytes[:4], packed)
	return v
}

// valueFromBuffer reads one field value of the given datatype at off. The
// bytes are copied as-is; decoding honors e when the value is read.
func valueFromBuffer(b []byte, off int, datatype FieldDatatype, e Endian) FieldValue {
	v := FieldValue{datatype: datatype, endian: e}
	copy(v.bytes[:datatype.Size()], b[off:])
	return v
}

func zeroValue(datatype FieldDatatype) FieldValue {
	return FieldValue{datatype: datatype, endian: EndianLittle}
}

// Datatype returns the tag describing the stored value.
func (v FieldValue) Datatype() FieldDatatype {
	return v.datatype
}

// bits loads the stored bytes as a width-sized unsigned integer, honoring
// the recorded byte order.
func (v FieldValue) bits() uint64 {
	bo := v.endian.byteOrder()
	switch v.datatype.Size() {
	case 1:
		return uint64(v.bytes[0])
	case 2:
		return uint64(bo.Uint16(v.bytes[:2]))
	case 4:
		return uint64(bo.Uint32(v.bytes[:4]))
	case 8:
		return bo.Uint64(v.bytes[:8])
	}
	return 0
}

// asF64 decodes the stored value into a float64. Every supported integer
// datatype is at most 32 bits wide, so the intermediate is always exact;
// RGB decodes as its packed float.
func (v FieldValue) asF64() float64 {
	b := v.bits()
	switch v.datatype {
	case I8:
		return float64(int8(b))
	case U8:
		return float64(uint8(b))
	case I16:
		return float64(int16(b))
	case U16:
		return float64(uint16(b))
	case I32:
		return float64(int32(b))
	case U32:
		return float64(uint32(b))
	case F32, RGB:
		return float64(math.Float32frombits(uint32(b)))
	case F64:
		return math.Float64frombits(b)
	}
	return 0
}

// writeTo encodes the stored value at b[off:] in the given byte order.
func (v FieldValue) writeTo(b []byte, off int, bo binary.ByteOrder) {
	bits := v.bits()
	switch v.datatype.Size() {
	case 1:
		b[off] = byte(bits)
	case 2:
		bo.PutUint16(b[off:], uint16(bits))
	case 4:
		bo.PutUint32(b[off:], uint32(bits))
	case 8:
		bo.PutUint64(b[off:], bits)
	}
}

// Unchecked getters for the hot decode path. The plan validates datatypes at
// construction time, so these convert with defined truncation instead of
// reporting a mismatch. Use ValueAs for checked access.

func (v FieldValue) Float32() float32 { return float32(v.asF64()) }
func (v FieldValue) Float64() float64 { return v.asF64() }
func (v FieldValue) Int8() int8       { return int8(lossyInt(v.asF64())) }
func (v FieldValue) Uint8() uint8     { return uint8(lossyInt(v.asF64())) }
func (v FieldValue) Int16() int16     { return int16(lossyInt(v.asF64())) }
func (v FieldValue) Uint16() uint16   { return uint16(lossyInt(v.asF64())) }
func (v FieldValue) Int32() int32     { return int32(lossyInt(v.asF64())) }
func (v FieldValue) Uint32() uint32   { return uint32(lossyInt(v.asF64())) }

// PackedRGB returns the packed 0x00RRGGBB color bits. Only values tagged RGB
// or F32 qualify: the F32 case is the historical wire-format carve-out where
// color travels in the bit pattern of a float field.
func (v FieldValue) PackedRGB() (uint32, error) {
	if v.datatype != RGB && v.datatype != F32 {
		return 0, &TypeMismatchError{Stored: v.datatype, Requested: RGB}
	}
	return uint32(v.bits()), nil
}

// ValueAs narrows the stored value to the requested native type, succeeding
// only when the value is exactly representable. Widening always succeeds;
// narrowing succeeds if and only if the concrete value fits (for example an
// I32 holding 7 narrows to uint8, one holding 300 does not).
func ValueAs[T Native](v FieldValue) (T, error) {
	dst := datatypeOf[T]()
	f := v.asF64()
	if !losslessConvertible(v.datatype, dst) && !representable(f, dst) {
		var zero T
		return zero, &TypeMismatchError{Stored: v.datatype, Requested: dst}
	}
	return convertF64[T](f), nil
}

// ValueAsLossy converts the stored value to the requested native type with
// defined truncation: integer conversions wrap modulo 2^n, floats truncate
// toward zero before wrapping (NaN becomes 0), and F64 to F32 rounds.
func ValueAsLossy[T Native](v FieldValue) T {
	return convertF64[T](v.asF64())
}

// representable reports whether the float64-decoded value fits the target
// datatype without loss.
func representable(f float64, dst FieldDatatype) bool {
	switch dst {
	case F64:
		return true
	case F32:
		if math.IsNaN(f) {
			return true
		}
		return float64(float32(f)) == f
	case RGB:
		return false
	}
	// Integer target: the value must be integral and in range.
	if math.IsNaN(f) || f != math.Trunc(f) {
		return false
	}
	lo, hi := intRange(dst)
	return f >= lo && f <= hi
}

func intRange(d FieldDatatype) (float64, float64) {
	switch d {
	case I8:
		return math.MinInt8, math.MaxInt8
	case U8:
		return 0, math.MaxUint8
	case I16:
		return math.MinInt16, math.MaxInt16
	case U16:
		return 0, math.MaxUint16
	case I32:
		return math.MinInt32, math.MaxInt32
	case U32:
		return 0, math.MaxUint32
	}
	return 0, 0
}

func datatypeOf[T Native]() FieldDatatype {
	var zero T
	switch any(zero).(type) {
	case int8:
		return I8
	case uint8:
		return U8
	case int16:
		return I16
	case uint16:
		return U16
	case int32:
		return I32
	case uint32:
		return U32
	case float32:
		return F32
	default:
		return F64
	}
}

func convertF64[T Native](f float64) T {
	var zero T
	switch any(zero).(type) {
	case float32, float64:
		return T(f)
	default:
		return T(lossyInt(f))
	}
}

// lossyInt truncates toward zero with saturation at the int64 range so the
// subsequent Go integer conversion wraps modulo 2^n. NaN maps to 0.
func lossyInt(f float64) int64 {
	if math.IsNaN(f) {
		return 0
	}
	t := math.Trunc(f)
	if t >= math.MaxInt64 {
		return math.MaxInt64
	}
	if t <= math.MinInt64 {
		return math.MinInt64
	}
	return int64(t)
}

// convertValue retags v as dst. RGB and F32 swap tags without touching the
// bits; any other pair converts numerically with the lossy truncation rules.
// Callers enforce the strict policy before reaching this point.
func convertValue(v FieldValue, dst FieldDatatype) FieldValue {
	if v.datatype == dst {
		return v
	}
	if (v.datatype == F32 && dst == RGB) || (v.datatype == RGB && dst == F32) {
		v.datatype = dst
		return v
	}
	switch dst {
	case I8:
		return NewFieldValue(ValueAsLossy[int8](v))
	case U8:
		return NewFieldValue(ValueAsLossy[uint8](v))
	case I16:
		return NewFieldValue(ValueAsLossy[int16](v))
	case U16:
		return NewFieldValue(ValueAsLossy[uint16](v))
	case I32:
		return NewFieldValue(ValueAsLossy[int32](v))
	case U32:
		return NewFieldValue(ValueAsLossy[uint32](v))
	case F32:
		return NewFieldValue(ValueAsLossy[float32](v))
	case F64:
		return NewFieldValue(ValueAsLossy[float64](v))
	}
	return v
}
