package pointcloud2

import "iter"

// Iterator decodes a message one point at a time without materializing the
// whole slice. Usage follows the bufio.Scanner pattern:
//
//	it, err := pointcloud2.Iter[points.PointXYZ](msg)
//	for it.Next() {
//	    p := it.Point()
//	    ...
//	}
//	if err := it.Err(); err != nil { ... }
//
// A decode failure stops the iteration; Err reports it. Iterating past the
// last point is not an error, Next simply returns false.
type Iterator[P any] struct {
	data   []byte
	plan   *plan
	rec    []FieldValue
	unpack func([]FieldValue) P
	i, n   int
	cur    P
	err    error
}

// Iter plans the conversion up front and returns an iterator over the
// message. Layout problems (missing fields, rejected narrowing) surface
// here, before the first point is decoded.
func Iter[P any, CP convertible[P]](m *Message, opts ...Option) (*Iterator[P], error) {
	opt := buildOptions(opts)
	p, err := newPlan(m, layoutOf[P, CP](), opt)
	if err != nil {
		return nil, err
	}
	return &Iterator[P]{
		data: m.Data,
		plan: p,
		rec:  make([]FieldValue, len(p.fields)),
		n:    m.Len(),
		unpack: func(rec []FieldValue) (out P) {
			CP(&out).UnpackFields(rec)
			return out
		},
	}, nil
}

// Next advances to the next point. It returns false when the message is
// exhausted or a decode error occurred; check Err after the loop.
func (it *Iterator[P]) Next() bool {
	if it.err != nil || it.i >= it.n {
		return false
	}
	if err := it.plan.decodePoint(it.data, it.i, it.rec); err != nil {
		it.err = err
		return false
	}
	it.cur = it.unpack(it.rec)
	it.i++
	return true
}

// Point returns the point decoded by the last successful Next.
func (it *Iterator[P]) Point() P {
	return it.cur
}

// Err returns the first decode error, or nil after a clean iteration.
func (it *Iterator[P]) Err() error {
	return it.err
}

// Len returns the total number of points in the message.
func (it *Iterator[P]) Len() int {
	return it.n
}

// Points adapts the remaining points to a range-over-func sequence. Decode
// errors end the sequence early and are reported by Err.
func (it *Iterator[P]) Points() iter.Seq[P] {
	return func(yield func(P) bool) {
		for it.Next() {
			if !yield(it.cur) {
				return
			}
		}
	}
}
