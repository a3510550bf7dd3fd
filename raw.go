package pointcloud2

import "unsafe"

// This file is the only place in the package that reinterprets raw memory.
// Every function here requires the caller to hold an Exact classification
// from the layout compatibility checker: the target type's declared layout
// matches the buffer's wire layout byte for byte and the buffer endianness
// matches the host. Callers outside this file never touch unsafe.

// sizeOf returns the in-memory byte size of P.
func sizeOf[P any]() int {
	var zero P
	return int(unsafe.Sizeof(zero))
}

// alignOf returns the required alignment of P.
func alignOf[P any]() int {
	var zero P
	return int(unsafe.Alignof(zero))
}

// viewSlice reinterprets data as a slice of n points without copying. The
// returned slice aliases data: it is valid only while the buffer lives and
// must not be used concurrently with writes to it.
func viewSlice[P any](data []byte, n int) ([]P, error) {
	if n == 0 {
		return []P{}, nil
	}
	ptr := unsafe.Pointer(unsafe.SliceData(data))
	if uintptr(ptr)%uintptr(alignOf[P]()) != 0 {
		return nil, ErrUnalignedBuffer
	}
	return unsafe.Slice((*P)(ptr), n), nil
}

// copyToPoints bulk-copies raw bytes into the typed slice with a single
// memmove, avoiding per-element decoding.
func copyToPoints[P any](dst []P, src []byte) {
	if len(dst) == 0 {
		return
	}
	dstBytes := unsafe.Slice((*byte)(unsafe.Pointer(&dst[0])), len(dst)*sizeOf[P]())
	copy(dstBytes, src)
}

// pointBytes reinterprets the typed slice's backing array as raw bytes. The
// result aliases src.
func pointBytes[P any](src []P) []byte {
	if len(src) == 0 {
		return []byte{}
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&src[0])), len(src)*sizeOf[P]())
}

// copyStrided copies one fixed-size record per point from a wider-strided
// source buffer into the tightly packed typed slice. Used when every field
// already sits at its native offset and only the message stride differs.
func copyStrided[P any](dst []P, src []byte, srcStep int) {
	if len(dst) == 0 {
		return
	}
	size := sizeOf[P]()
	dstBytes := unsafe.Slice((*byte)(unsafe.Pointer(&dst[0])), len(dst)*size)
	for i := range dst {
		copy(dstBytes[i*size:(i+1)*size], src[i*srcStep:i*srcStep+size])
	}
}
