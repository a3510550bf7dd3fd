package pointcloud2

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for conditions that carry no per-field detail. Errors that
// name a field or a datatype pair use the typed errors below and are matched
// with errors.As.
var (
	// ErrExhausted reports an attempt to write a value whose byte width
	// exceeds the space reserved for that field in the message. Writes never
	// silently truncate.
	ErrExhausted = errors.New("pointcloud2: value exceeds reserved wire slot")

	// ErrOffsetOverflow reports a field layout whose computed byte offsets
	// do not fit the 32-bit offset representation of the wire format.
	ErrOffsetOverflow = errors.New("pointcloud2: field offset overflows 32 bits")

	// ErrNoFields reports a message that declares no fields at all.
	ErrNoFields = errors.New("pointcloud2: message declares no fields")

	// ErrDataLengthMismatch reports a byte buffer whose length does not
	// match the length implied by point_step and the cloud dimensions.
	ErrDataLengthMismatch = errors.New("pointcloud2: data length does not match declared dimensions")

	// ErrUnsupportedFieldCount reports a field with count != 1. Only
	// single-value fields are supported for reading and writing.
	ErrUnsupportedFieldCount = errors.New("pointcloud2: only field count 1 is supported")

	// ErrInvalidFieldFormat reports a field that does not fit inside the
	// declared point_step.
	ErrInvalidFieldFormat = errors.New("pointcloud2: field does not fit declared point step")

	// ErrUnsupportedSliceView reports that a zero-copy view cannot be
	// created because the message layout, stride or endianness does not
	// match the requested point type.
	ErrUnsupportedSliceView = errors.New("pointcloud2: message layout does not permit a slice view")

	// ErrUnalignedBuffer reports a data buffer whose base address is not
	// sufficiently aligned for the requested point type.
	ErrUnalignedBuffer = errors.New("pointcloud2: buffer is not aligned for the requested point type")
)

// FieldMissingError reports target fields that have no counterpart in the
// message field set and are not marked defaultable. It is returned at plan
// construction time, before any point data is read.
type FieldMissingError struct {
	Fields []string
}

func (e *FieldMissingError) Error() string {
	return fmt.Sprintf("pointcloud2: fields not found in message: %s", strings.Join(e.Fields, ", "))
}

// TypeMismatchError reports an incompatible datatype pairing: either a
// conversion that would be lossy under strict mode, or a value that is not
// representable in the requested type.
type TypeMismatchError struct {
	Field     string // empty for value-level mismatches
	Stored    FieldDatatype
	Requested FieldDatatype
}

func (e *TypeMismatchError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("pointcloud2: stored datatype %s is not losslessly convertible to %s", e.Stored, e.Requested)
	}
	return fmt.Sprintf("pointcloud2: field %q: datatype %s is not losslessly convertible to %s", e.Field, e.Stored, e.Requested)
}

// UnsupportedDatatypeError reports a wire datatype code outside the known
// enum range. Such messages are rejected at decode, never defaulted.
type UnsupportedDatatypeError struct {
	Code uint8
}

func (e *UnsupportedDatatypeError) Error() string {
	return fmt.Sprintf("pointcloud2: unsupported wire datatype code %d", e.Code)
}
