package pointcloud2

import "math"

// LayoutField describes one entry of a point type's in-memory layout: a
// named field or an anonymous run of padding bytes. Build entries with
// Field, GeometryField and Padding; never construct the struct directly.
type LayoutField struct {
	Name        string
	Datatype    FieldDatatype
	Geometry    bool // x, y or z coordinate field
	Defaultable bool // zero-filled when the message lacks the field
	padding     int  // > 0 for padding entries; Name and Datatype unset
}

// Field declares a meta field (intensity, label, color, ...).
func Field(name string, datatype FieldDatatype) LayoutField {
	return LayoutField{Name: name, Datatype: datatype}
}

// GeometryField declares an x/y/z coordinate field. Geometry fields must be
// F32 or F64.
func GeometryField(name string, datatype FieldDatatype) LayoutField {
	return LayoutField{Name: name, Datatype: datatype, Geometry: true}
}

// Padding declares size bytes of padding, mirroring alignment holes in the
// Go struct so the declared layout matches the in-memory representation.
func Padding(size int) LayoutField {
	return LayoutField{padding: size}
}

// WithDefault marks the field defaultable: decoding a message that lacks it
// yields the zero value instead of a FieldMissingError.
func (f LayoutField) WithDefault() LayoutField {
	f.Defaultable = true
	return f
}

func (f LayoutField) isPadding() bool {
	return f.padding > 0
}

func (f LayoutField) size() int {
	if f.isPadding() {
		return f.padding
	}
	return f.Datatype.Size()
}

// Layout is the declared in-memory layout of a point type: an ordered field
// sequence with sequentially packed byte offsets and a total stride. Layouts
// are immutable; build them once per type and reuse the value.
type Layout struct {
	fields  []LayoutField
	offsets []int // parallel to fields, including padding entries
	stride  int
}

// NewLayout packs the given entries sequentially and records each field's
// byte offset. Padding entries advance the offset without declaring a field.
// The stride is the end offset of the last entry; declare trailing padding
// explicitly when the Go struct rounds up to its alignment.
func NewLayout(fields ...LayoutField) Layout {
	offsets := make([]int, len(fields))
	off := 0
	for i, f := range fields {
		offsets[i] = off
		off += f.size()
	}
	return Layout{fields: fields, offsets: offsets, stride: off}
}

// Stride returns the total byte size of one point, padding included.
func (l Layout) Stride() int {
	return l.stride
}

// Fields returns the named fields of the layout in declaration order,
// padding entries excluded.
func (l Layout) Fields() []LayoutField {
	out := make([]LayoutField, 0, len(l.fields))
	for _, f := range l.fields {
		if !f.isPadding() {
			out = append(out, f)
		}
	}
	return out
}

// NumFields returns the number of named fields.
func (l Layout) NumFields() int {
	n := 0
	for _, f := range l.fields {
		if !f.isPadding() {
			n++
		}
	}
	return n
}

// Dim reports the geometric dimensionality of the layout: 3 when a geometry
// field named "z" is declared, 2 when only x/y are, 0 when the layout has no
// geometry fields at all.
func (l Layout) Dim() int {
	dim := 0
	for _, f := range l.fields {
		if !f.Geometry {
			continue
		}
		if f.Name == "z" {
			return 3
		}
		dim = 2
	}
	return dim
}

// validate rejects layouts the wire format cannot express: unknown
// datatypes, non-float geometry fields, and offsets beyond the 32-bit range.
func (l Layout) validate() error {
	if uint64(l.stride) > math.MaxUint32 {
		return ErrOffsetOverflow
	}
	for i, f := range l.fields {
		if f.isPadding() {
			continue
		}
		if !f.Datatype.valid() {
			return &UnsupportedDatatypeError{Code: uint8(f.Datatype)}
		}
		if f.Geometry && !f.Datatype.isFloat() {
			return ErrInvalidFieldFormat
		}
		if uint64(l.offsets[i]+f.Datatype.Size()) > math.MaxUint32 {
			return ErrOffsetOverflow
		}
	}
	return nil
}

// PointConvertible is implemented by point types that declare their field
// layout and move their values through a field-value record. The layout must
// describe the type's actual in-memory representation (offsets, padding,
// stride) — it is the proof the bulk reinterpretation path relies on — and
// must never change after first use.
//
// PackFields writes the point's values into dst in layout field order;
// UnpackFields reads them back. Both records have exactly NumFields entries.
type PointConvertible interface {
	PointLayout() Layout
	PackFields(dst []FieldValue)
	UnpackFields(src []FieldValue)
}

// convertible constrains a pointer to a point type, so conversion functions
// can instantiate P values and call the interface on their addresses.
type convertible[P any] interface {
	*P
	PointConvertible
}

// layoutOf returns the declared layout for point type P.
func layoutOf[P any, CP convertible[P]]() Layout {
	var zero P
	return CP(&zero).PointLayout()
}
