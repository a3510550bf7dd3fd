package pointcloud2

import "encoding/binary"

// FieldDatatype enumerates the primitive numeric kinds a PointCloud2 field
// can carry. The numeric values of the first eight constants are the
// sensor_msgs/PointField wire codes.
type FieldDatatype uint8

const (
	I8  FieldDatatype = 1
	U8  FieldDatatype = 2
	I16 FieldDatatype = 3
	U16 FieldDatatype = 4
	I32 FieldDatatype = 5
	U32 FieldDatatype = 6
	F32 FieldDatatype = 7
	F64 FieldDatatype = 8

	// RGB is the packed color alias used by PCL tooling: three color
	// channels stored in the bit pattern of an F32 field. It is never
	// produced by wire decoding and encodes as F32 on the wire. Conversions
	// between RGB and F32 are bit reinterpretations, not numeric
	// conversions.
	RGB FieldDatatype = 9
)

// DatatypeFromWire maps a sensor_msgs/PointField datatype code to a
// FieldDatatype. Codes outside 1..8 are rejected.
func DatatypeFromWire(code uint8) (FieldDatatype, error) {
	if code < uint8(I8) || code > uint8(F64) {
		return 0, &UnsupportedDatatypeError{Code: code}
	}
	return FieldDatatype(code), nil
}

// WireCode returns the sensor_msgs/PointField datatype code. RGB encodes as
// F32 on the wire.
func (d FieldDatatype) WireCode() uint8 {
	if d == RGB {
		return uint8(F32)
	}
	return uint8(d)
}

// Size returns the byte width of the datatype.
func (d FieldDatatype) Size() int {
	switch d {
	case I8, U8:
		return 1
	case I16, U16:
		return 2
	case I32, U32, F32, RGB:
		return 4
	case F64:
		return 8
	}
	return 0
}

func (d FieldDatatype) valid() bool {
	return d >= I8 && d <= RGB
}

func (d FieldDatatype) String() string {
	switch d {
	case I8:
		return "i8"
	case U8:
		return "u8"
	case I16:
		return "i16"
	case U16:
		return "u16"
	case I32:
		return "i32"
	case U32:
		return "u32"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case RGB:
		return "rgb"
	}
	return "unknown"
}

func (d FieldDatatype) isFloat() bool {
	return d == F32 || d == F64
}

func (d FieldDatatype) isSigned() bool {
	return d == I8 || d == I16 || d == I32
}

func (d FieldDatatype) isUnsigned() bool {
	return d == U8 || d == U16 || d == U32
}

// losslessConvertible reports whether every value of datatype `from` is
// exactly representable in datatype `to`. The ordering is by width, then
// signedness; integer-to-float conversions are lossless only while the float
// mantissa covers the full integer range (16-bit integers into F32, 32-bit
// integers into F64). RGB and F32 alias the same bit pattern and are always
// interchangeable.
func losslessConvertible(from, to FieldDatatype) bool {
	if from == to {
		return true
	}
	if (from == RGB && to == F32) || (from == F32 && to == RGB) {
		return true
	}
	if from == RGB || to == RGB {
		return false
	}
	switch {
	case to == F64:
		// Every other supported datatype is at most 32 bits wide and fits
		// the 53-bit mantissa exactly.
		return from != F64
	case to == F32:
		return !from.isFloat() && from.Size() <= 2
	case from.isFloat():
		// Float into integer is never lossless.
		return false
	case from.isUnsigned() && to.isUnsigned(), from.isSigned() && to.isSigned():
		return to.Size() > from.Size()
	case from.isUnsigned() && to.isSigned():
		return to.Size() > from.Size()
	default:
		// Signed into unsigned loses the sign regardless of width.
		return false
	}
}

// Endian is the byte-order hint carried by a message.
type Endian uint8

const (
	EndianLittle Endian = iota
	EndianBig
)

func (e Endian) String() string {
	if e == EndianBig {
		return "big"
	}
	return "little"
}

// byteOrder returns the encoding/binary order used for every field read and
// write against a buffer with this endianness. Centralizing the choice here
// keeps byte swapping out of the call sites.
func (e Endian) byteOrder() binary.ByteOrder {
	if e == EndianBig {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

var hostEndian = func() Endian {
	buf := make([]byte, 2)
	binary.NativeEndian.PutUint16(buf, 0x00FF)
	if buf[0] == 0xFF {
		return EndianLittle
	}
	return EndianBig
}()

// HostEndian returns the byte order of the running machine. A bulk
// reinterpretation path is only taken when the message endianness matches.
func HostEndian() Endian {
	return hostEndian
}
