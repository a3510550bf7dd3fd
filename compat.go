package pointcloud2

import "fmt"

// Compatibility classifies how a message's wire layout relates to a target
// point type's declared layout. The classification depends only on the two
// layouts, never on buffer contents, so results are deterministic and may be
// cached per (message layout, point type) pair.
type Compatibility int

const (
	// Incompatible: a required field is missing, or a conversion would be
	// lossy under strict mode. Conversion fails before any bytes are read.
	Incompatible Compatibility = iota

	// Exact: positional field types, offsets and stride all match the
	// target type's in-memory layout and the message byte order matches the
	// host. Whole-buffer reinterpretation is safe.
	Exact

	// Reordered: same field set and datatypes, but offsets, order, stride
	// or byte order differ. Per-point copying is needed, but no numeric
	// conversion.
	Reordered

	// Converted: at least one field changes datatype. Per-field numeric
	// conversion is needed, governed by the strict/lossy policy.
	Converted
)

func (c Compatibility) String() string {
	switch c {
	case Exact:
		return "exact"
	case Reordered:
		return "reordered"
	case Converted:
		return "converted"
	}
	return "incompatible"
}

// Classify compares the message layout against the point type's declared
// layout under the given options. On Incompatible the error carries the
// cause (*FieldMissingError, *TypeMismatchError, ...).
func Classify[P any, CP convertible[P]](m *Message, opts ...Option) (Compatibility, error) {
	p, err := newPlan(m, layoutOf[P, CP](), buildOptions(opts))
	if err != nil {
		return Incompatible, err
	}
	return p.class, nil
}

// planField is one resolved target field: where to read it in the message
// and what to convert it to.
type planField struct {
	name      string
	srcOffset int
	srcType   FieldDatatype // wire datatype; unset when defaulted
	dstType   FieldDatatype // target layout datatype
	defaulted bool
}

// plan is the cached outcome of matching one message layout against one
// target layout. It drives every per-point decode.
type plan struct {
	fields  []planField
	class   Compatibility
	stride  int // target layout stride
	msgStep int
	endian  Endian

	// rawCopy marks the cheap Reordered subcase: every target field sits at
	// its native offset and only the message stride is wider. One fixed-size
	// byte copy per point suffices.
	rawCopy bool
}

// newPlan resolves each target field against the message field set and
// classifies the pairing. All layout errors surface here, before any point
// data is touched.
func newPlan(m *Message, layout Layout, opt options) (*plan, error) {
	if err := layout.validate(); err != nil {
		return nil, err
	}

	targetFields := layout.Fields()
	p := &plan{
		fields:  make([]planField, 0, len(targetFields)),
		stride:  layout.Stride(),
		msgStep: int(m.PointStep),
		endian:  m.Endian,
	}

	var missing []string
	converted := false
	for _, tf := range targetFields {
		mi := fieldIndex(m.Fields, tf.Name)
		if mi < 0 {
			if tf.Defaultable {
				p.fields = append(p.fields, planField{name: tf.Name, dstType: tf.Datatype, defaulted: true})
				continue
			}
			missing = append(missing, tf.Name)
			continue
		}
		mf := m.Fields[mi]
		if uint64(mf.Offset)+uint64(mf.Datatype.Size()) > uint64(m.PointStep) {
			return nil, fmt.Errorf("field %q: %w", mf.Name, ErrInvalidFieldFormat)
		}
		if mf.Datatype.WireCode() != tf.Datatype.WireCode() {
			// The RGB alias only pairs with F32 bits; no numeric conversion
			// reaches it in either mode.
			if tf.Datatype == RGB && mf.Datatype != F32 {
				return nil, &TypeMismatchError{Field: tf.Name, Stored: mf.Datatype, Requested: tf.Datatype}
			}
			if !opt.lossy && !losslessConvertible(mf.Datatype, tf.Datatype) {
				return nil, &TypeMismatchError{Field: tf.Name, Stored: mf.Datatype, Requested: tf.Datatype}
			}
			converted = true
		}
		p.fields = append(p.fields, planField{
			name:      tf.Name,
			srcOffset: int(mf.Offset),
			srcType:   mf.Datatype,
			dstType:   tf.Datatype,
		})
	}
	if len(missing) > 0 {
		return nil, &FieldMissingError{Fields: missing}
	}

	p.class = classify(m, layout, targetFields, p.fields, converted)
	p.rawCopy = p.class == Reordered && offsetsNative(layout, targetFields, p.fields) &&
		m.Endian == HostEndian() && p.stride <= p.msgStep
	return p, nil
}

func classify(m *Message, layout Layout, targetFields []LayoutField, resolved []planField, converted bool) Compatibility {
	if converted {
		return Converted
	}
	for _, f := range resolved {
		if f.defaulted {
			return Reordered
		}
	}
	if len(m.Fields) != len(targetFields) {
		return Reordered
	}
	if int(m.PointStep) != layout.Stride() || m.Endian != HostEndian() {
		return Reordered
	}
	if !offsetsNative(layout, targetFields, resolved) {
		return Reordered
	}
	return Exact
}

// offsetsNative reports whether every resolved field reads from the same
// offset the target layout places it at.
func offsetsNative(layout Layout, targetFields []LayoutField, resolved []planField) bool {
	off := 0
	ti := 0
	for _, lf := range layout.fields {
		if lf.isPadding() {
			off += lf.padding
			continue
		}
		f := resolved[ti]
		if f.defaulted || f.srcOffset != off {
			return false
		}
		off += lf.Datatype.Size()
		ti++
	}
	return true
}

func fieldIndex(fields []PointField, name string) int {
	for i, f := range fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// decodePoint reads point idx of the message into rec, one entry per target
// field in layout order. The plan has already validated offsets and types;
// the only runtime failure is a buffer shorter than the dimensions declare.
func (p *plan) decodePoint(data []byte, idx int, rec []FieldValue) error {
	base := idx * p.msgStep
	if base+p.msgStep > len(data) {
		return fmt.Errorf("point %d: %w", idx, ErrDataLengthMismatch)
	}
	for i, f := range p.fields {
		if f.defaulted {
			rec[i] = zeroValue(f.dstType)
			continue
		}
		v := valueFromBuffer(data, base+f.srcOffset, f.srcType, p.endian)
		if f.srcType != f.dstType {
			v = convertValue(v, f.dstType)
		}
		rec[i] = v
	}
	return nil
}
