package pointcloud2

// Time is a ROS timestamp (UNIX epoch seconds plus nanoseconds).
type Time struct {
	Sec     uint32
	Nanosec uint32
}

// Header carries the ROS message header fields the conversion engine passes
// through untouched. The header is not interpreted by this package.
type Header struct {
	Seq     uint32
	Stamp   Time
	FrameID string
}

// PointField describes one field of the wire layout: its name, byte offset
// from the start of a point, datatype and repetition count.
type PointField struct {
	Name     string
	Offset   uint32
	Datatype FieldDatatype
	Count    uint32
}

// FieldEqual reports whether the two descriptors match by name, datatype and
// count, ignoring offsets.
func (f PointField) FieldEqual(o PointField) bool {
	return f.Name == o.Name && f.Datatype == o.Datatype && f.Count == o.Count
}

// OrderEqual reports whether the two descriptors additionally agree on the
// byte offset.
func (f PointField) OrderEqual(o PointField) bool {
	return f.FieldEqual(o) && f.Offset == o.Offset
}

// Message is the intermediate point cloud container: a raw byte buffer plus
// the wire layout describing it. A message has exactly one owner at a time;
// pass it by pointer and treat the previous holder's reference as dead. The
// engine never retains a message beyond a single conversion call.
//
// Build messages with MessageBuilder (or the From* conversion functions) so
// the layout invariants are checked once, up front.
type Message struct {
	Header    Header
	Fields    []PointField
	Width     uint32
	Height    uint32
	PointStep uint32
	RowStep   uint32
	Data      []byte
	Endian    Endian
	Dense     bool
}

// Len returns the logical point count (Width * Height).
func (m *Message) Len() int {
	return int(m.Width) * int(m.Height)
}

// MessageBuilder assembles a Message and validates it in Build. Invalid
// messages never reach the conversion engine.
type MessageBuilder struct {
	msg       Message
	heightSet bool
}

// NewMessageBuilder returns a builder for a little-endian, dense message.
func NewMessageBuilder() *MessageBuilder {
	return &MessageBuilder{msg: Message{Endian: EndianLittle, Dense: true}}
}

func (b *MessageBuilder) Header(h Header) *MessageBuilder {
	b.msg.Header = h
	return b
}

func (b *MessageBuilder) Fields(fields ...PointField) *MessageBuilder {
	b.msg.Fields = fields
	return b
}

func (b *MessageBuilder) Width(w uint32) *MessageBuilder {
	b.msg.Width = w
	return b
}

// Height sets an explicit height for structured (organized) clouds. When not
// called, Build derives height 1 for non-empty clouds and 0 for empty ones.
func (b *MessageBuilder) Height(h uint32) *MessageBuilder {
	b.msg.Height = h
	b.heightSet = true
	return b
}

func (b *MessageBuilder) PointStep(s uint32) *MessageBuilder {
	b.msg.PointStep = s
	return b
}

// RowStep sets an explicit row stride for structured clouds with row
// padding. When not called, Build derives PointStep*Width.
func (b *MessageBuilder) RowStep(s uint32) *MessageBuilder {
	b.msg.RowStep = s
	return b
}

func (b *MessageBuilder) Data(data []byte) *MessageBuilder {
	b.msg.Data = data
	return b
}

func (b *MessageBuilder) Endian(e Endian) *MessageBuilder {
	b.msg.Endian = e
	return b
}

func (b *MessageBuilder) Dense(dense bool) *MessageBuilder {
	b.msg.Dense = dense
	return b
}

// Build validates the assembled message and returns it. The checks hold the
// container invariants: a non-empty field list with count 1 everywhere,
// every field inside the point stride, and a data buffer whose length
// matches the declared dimensions.
func (b *MessageBuilder) Build() (*Message, error) {
	m := b.msg

	if len(m.Fields) == 0 {
		return nil, ErrNoFields
	}

	var fieldsSize uint32
	for _, f := range m.Fields {
		if f.Count != 1 {
			return nil, ErrUnsupportedFieldCount
		}
		if !f.Datatype.valid() || f.Datatype == RGB {
			return nil, &UnsupportedDatatypeError{Code: uint8(f.Datatype)}
		}
		size := uint32(f.Datatype.Size())
		// Compare in uint64: an offset near MaxUint32 must not wrap past
		// the stride check.
		if uint64(f.Offset)+uint64(size) > uint64(m.PointStep) {
			return nil, ErrInvalidFieldFormat
		}
		fieldsSize += size
	}
	if m.PointStep < fieldsSize {
		return nil, ErrInvalidFieldFormat
	}

	if !b.heightSet {
		if m.Width > 0 {
			m.Height = 1
		} else {
			m.Height = 0
		}
	}
	if m.RowStep == 0 {
		m.RowStep = m.PointStep * m.Width
	}

	if m.PointStep == 0 || uint64(len(m.Data))%uint64(m.PointStep) != 0 {
		return nil, ErrDataLengthMismatch
	}
	if uint64(len(m.Data)) < uint64(m.PointStep)*uint64(m.Width)*uint64(m.Height) {
		return nil, ErrDataLengthMismatch
	}

	return &m, nil
}
