package pointcloud2

import (
	"encoding/binary"
	"fmt"
	"iter"
)

// options collects the per-conversion policy knobs.
type options struct {
	lossy   bool
	workers int
}

// Option configures a single conversion call.
type Option func(*options)

// WithLossyConversion permits narrowing numeric conversions with defined
// truncation (integers wrap modulo 2^n, floats truncate toward zero). The
// default strict mode rejects any pairing that could lose information at
// plan time, before bytes are touched.
func WithLossyConversion() Option {
	return func(o *options) { o.lossy = true }
}

// WithWorkers sets the goroutine count for the parallel strategies. Values
// below 1 select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

func buildOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// messageTemplate derives the outbound wire layout from a point type's
// declared layout: one field per named layout entry at its packed offset,
// RGB travelling as F32.
func messageTemplate(layout Layout) ([]PointField, int, error) {
	if err := layout.validate(); err != nil {
		return nil, 0, err
	}
	fields := make([]PointField, 0, layout.NumFields())
	for i, f := range layout.fields {
		if f.isPadding() {
			continue
		}
		dt := f.Datatype
		if dt == RGB {
			dt = F32
		}
		fields = append(fields, PointField{
			Name:     f.Name,
			Offset:   uint32(layout.offsets[i]),
			Datatype: dt,
			Count:    1,
		})
	}
	return fields, layout.Stride(), nil
}

// encodeField pairs one record entry with the wire slot it writes to.
type encodeField struct {
	name   string
	offset int
	slot   FieldDatatype
}

// encodeRecord writes one packed record into buf at base. A value wider
// than its wire slot is a hard error in every mode; writes never silently
// truncate.
func encodeRecord(rec []FieldValue, fields []encodeField, buf []byte, base int, bo binary.ByteOrder) error {
	for i, f := range fields {
		v := rec[i]
		if v.datatype.WireCode() != f.slot.WireCode() {
			if v.datatype.Size() > f.slot.Size() {
				return fmt.Errorf("field %q: %w", f.name, ErrExhausted)
			}
			v = convertValue(v, f.slot)
		}
		v.writeTo(buf, base+f.offset, bo)
	}
	return nil
}

// templateEncodeFields maps a template message one-to-one onto the layout.
func templateEncodeFields(fields []PointField) []encodeField {
	out := make([]encodeField, len(fields))
	for i, f := range fields {
		out[i] = encodeField{name: f.Name, offset: int(f.Offset), slot: f.Datatype}
	}
	return out
}

// FromSlice builds a message from a slice of points. The wire layout is the
// point type's declared layout, so the match is Exact by construction and
// the whole slice is written with a single bulk copy. The message byte
// order is the host order.
func FromSlice[P any, CP convertible[P]](pts []P) (*Message, error) {
	var zero P
	layout := CP(&zero).PointLayout()
	fields, stride, err := messageTemplate(layout)
	if err != nil {
		return nil, err
	}

	var data []byte
	if sizeOf[P]() == stride {
		data = make([]byte, len(pts)*stride)
		copy(data, pointBytes(pts))
	} else {
		// The declared layout disagrees with the Go struct size; keep the
		// declared layout authoritative and encode per point.
		data, err = encodeSlice[P, CP](pts, layout, fields, stride)
		if err != nil {
			return nil, err
		}
	}

	return NewMessageBuilder().
		Fields(fields...).
		PointStep(uint32(stride)).
		Width(uint32(len(pts))).
		Endian(HostEndian()).
		Data(data).
		Build()
}

func encodeSlice[P any, CP convertible[P]](pts []P, layout Layout, fields []PointField, stride int) ([]byte, error) {
	enc := templateEncodeFields(fields)
	rec := make([]FieldValue, layout.NumFields())
	bo := HostEndian().byteOrder()
	data := make([]byte, len(pts)*stride)
	for i := range pts {
		CP(&pts[i]).PackFields(rec)
		if err := encodeRecord(rec, enc, data, i*stride, bo); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// FromIter builds a message from a point sequence, encoding one point at a
// time. Use it when the points are produced on the fly; FromSlice is
// cheaper when they are already materialized.
func FromIter[P any, CP convertible[P]](seq iter.Seq[P]) (*Message, error) {
	var zero P
	layout := CP(&zero).PointLayout()
	fields, stride, err := messageTemplate(layout)
	if err != nil {
		return nil, err
	}

	enc := templateEncodeFields(fields)
	rec := make([]FieldValue, layout.NumFields())
	scratch := make([]byte, stride)
	bo := HostEndian().byteOrder()

	var data []byte
	width := 0
	for p := range seq {
		CP(&p).PackFields(rec)
		if err := encodeRecord(rec, enc, scratch, 0, bo); err != nil {
			return nil, err
		}
		data = append(data, scratch...)
		width++
	}
	if data == nil {
		data = []byte{}
	}

	return NewMessageBuilder().
		Fields(fields...).
		PointStep(uint32(stride)).
		Width(uint32(width)).
		Endian(HostEndian()).
		Data(data).
		Build()
}

// ToSlice decodes the message into an owned slice of points. The strategy
// follows the layout classification: Exact matches are one bulk copy,
// stride-only mismatches copy one record per point, and everything else
// decodes field by field. Empty messages yield an empty slice, not an
// error.
func ToSlice[P any, CP convertible[P]](m *Message, opts ...Option) ([]P, error) {
	opt := buildOptions(opts)
	p, err := newPlan(m, layoutOf[P, CP](), opt)
	if err != nil {
		return nil, err
	}

	n := m.Len()
	out := make([]P, n)
	if n == 0 {
		return out, nil
	}

	size := sizeOf[P]()
	switch {
	case p.class == Exact && size == p.stride:
		if len(m.Data) < n*size {
			return nil, ErrDataLengthMismatch
		}
		copyToPoints(out, m.Data)
	case p.rawCopy && size == p.stride:
		if len(m.Data) < (n-1)*p.msgStep+size {
			return nil, ErrDataLengthMismatch
		}
		copyStrided(out, m.Data, p.msgStep)
	default:
		rec := make([]FieldValue, len(p.fields))
		for i := 0; i < n; i++ {
			if err := p.decodePoint(m.Data, i, rec); err != nil {
				return nil, err
			}
			CP(&out[i]).UnpackFields(rec)
		}
	}
	return out, nil
}

// View returns a zero-copy slice over the message buffer. It succeeds only
// when the match is Exact, the stride equals the in-memory point size and
// the buffer is aligned for P — the conditions under which the buffer
// already is a valid []P.
//
// The view aliases the message buffer. The message must be treated as
// consumed: mutating or re-encoding it while the view is in use corrupts
// the view. Callers that need an independent copy use ToSlice.
func View[P any, CP convertible[P]](m *Message) ([]P, error) {
	p, err := newPlan(m, layoutOf[P, CP](), options{})
	if err != nil {
		return nil, err
	}
	if p.class != Exact {
		return nil, fmt.Errorf("%w: layout classified %s", ErrUnsupportedSliceView, p.class)
	}
	size := sizeOf[P]()
	if size != p.stride || p.stride != p.msgStep {
		return nil, fmt.Errorf("%w: point size %d, message stride %d", ErrUnsupportedSliceView, size, p.msgStep)
	}
	n := m.Len()
	if len(m.Data) < n*size {
		return nil, ErrDataLengthMismatch
	}
	return viewSlice[P](m.Data, n)
}

// AppendPoints encodes points onto an existing unstructured message using
// the message's own wire layout. A target field wider than its reserved
// wire slot fails with ErrExhausted in every mode; datatype changes follow
// the strict/lossy policy. Width, height and row step are updated to cover
// the appended points.
func AppendPoints[P any, CP convertible[P]](m *Message, pts []P, opts ...Option) error {
	if m.Height > 1 {
		return fmt.Errorf("pointcloud2: cannot append to organized cloud (height %d)", m.Height)
	}
	opt := buildOptions(opts)
	layout := layoutOf[P, CP]()
	if err := layout.validate(); err != nil {
		return err
	}

	targetFields := layout.Fields()
	enc := make([]encodeField, 0, len(targetFields))
	var missing []string
	exact := len(m.Fields) == len(targetFields) && int(m.PointStep) == layout.Stride()
	off := 0
	for _, tf := range targetFields {
		mi := fieldIndex(m.Fields, tf.Name)
		if mi < 0 {
			missing = append(missing, tf.Name)
			continue
		}
		mf := m.Fields[mi]
		if tf.Datatype.Size() > mf.Datatype.Size() {
			return fmt.Errorf("field %q: %w", tf.Name, ErrExhausted)
		}
		if tf.Datatype.WireCode() != mf.Datatype.WireCode() {
			if !opt.lossy && !losslessConvertible(tf.Datatype, mf.Datatype) {
				return &TypeMismatchError{Field: tf.Name, Stored: tf.Datatype, Requested: mf.Datatype}
			}
			exact = false
		}
		if int(mf.Offset) != layoutFieldOffset(layout, tf.Name) || off != int(mf.Offset) {
			exact = false
		}
		off += tf.Datatype.Size()
		enc = append(enc, encodeField{name: tf.Name, offset: int(mf.Offset), slot: mf.Datatype})
	}
	if len(missing) > 0 {
		return &FieldMissingError{Fields: missing}
	}

	step := int(m.PointStep)
	if exact && sizeOf[P]() == step && m.Endian == HostEndian() {
		m.Data = append(m.Data, pointBytes(pts)...)
	} else {
		rec := make([]FieldValue, len(targetFields))
		scratch := make([]byte, step)
		bo := m.Endian.byteOrder()
		for i := range pts {
			clear(scratch)
			CP(&pts[i]).PackFields(rec)
			if err := encodeRecord(rec, enc, scratch, 0, bo); err != nil {
				return err
			}
			m.Data = append(m.Data, scratch...)
		}
	}

	m.Width += uint32(len(pts))
	if m.Height == 0 && m.Width > 0 {
		m.Height = 1
	}
	m.RowStep = m.PointStep * m.Width
	return nil
}

func layoutFieldOffset(l Layout, name string) int {
	for i, f := range l.fields {
		if !f.isPadding() && f.Name == name {
			return l.offsets[i]
		}
	}
	return -1
}
