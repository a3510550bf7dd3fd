package pointcloud2

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// chunkBounds splits n points into at most workers contiguous chunks and
// returns the chunk size. Chunks are disjoint, so workers write their slice
// regions without coordination.
func chunkBounds(n, workers int) (int, int) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers
	return workers, chunk
}

// ToSliceParallel decodes the message with a pool of goroutines, each
// owning a contiguous chunk of the output slice. Point order is preserved:
// out[i] always decodes from point i. All chunks run to completion even
// when some fail; the joined error reports every failed chunk.
//
// Exact matches skip the pool entirely — a single bulk copy beats any
// amount of parallel decoding.
func ToSliceParallel[P any, CP convertible[P]](m *Message, opts ...Option) ([]P, error) {
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
	if p.class == Exact && size == p.stride {
		if len(m.Data) < n*size {
			return nil, ErrDataLengthMismatch
		}
		copyToPoints(out, m.Data)
		return out, nil
	}

	workers, chunk := chunkBounds(n, opt.workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, n)
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			rec := make([]FieldValue, len(p.fields))
			for i := lo; i < hi; i++ {
				if err := p.decodePoint(m.Data, i, rec); err != nil {
					errs[w] = fmt.Errorf("points [%d,%d): %w", lo, hi, err)
					return
				}
				CP(&out[i]).UnpackFields(rec)
			}
		}(w, lo, hi)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}

// FromSliceParallel builds a message from a slice of points, encoding
// chunks concurrently. Like FromSlice the wire layout is the declared
// layout; when it matches the in-memory representation the bulk copy path
// is taken and no goroutines are spawned.
func FromSliceParallel[P any, CP convertible[P]](pts []P, opts ...Option) (*Message, error) {
	opt := buildOptions(opts)
	var zero P
	layout := CP(&zero).PointLayout()
	fields, stride, err := messageTemplate(layout)
	if err != nil {
		return nil, err
	}

	n := len(pts)
	data := make([]byte, n*stride)
	if sizeOf[P]() == stride {
		copy(data, pointBytes(pts))
	} else if n > 0 {
		enc := templateEncodeFields(fields)
		bo := HostEndian().byteOrder()
		workers, chunk := chunkBounds(n, opt.workers)
		errs := make([]error, workers)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			lo := w * chunk
			hi := min(lo+chunk, n)
			if lo >= hi {
				break
			}
			wg.Add(1)
			go func(w, lo, hi int) {
				defer wg.Done()
				rec := make([]FieldValue, layout.NumFields())
				for i := lo; i < hi; i++ {
					CP(&pts[i]).PackFields(rec)
					if err := encodeRecord(rec, enc, data, i*stride, bo); err != nil {
						errs[w] = fmt.Errorf("points [%d,%d): %w", lo, hi, err)
						return
					}
				}
			}(w, lo, hi)
		}
		wg.Wait()
		if err := errors.Join(errs...); err != nil {
			return nil, err
		}
	}

	return NewMessageBuilder().
		Fields(fields...).
		PointStep(uint32(stride)).
		Width(uint32(n)).
		Endian(HostEndian()).
		Data(data).
		Build()
}
