package pointcloud2

import "testing"

func TestDatatypeFromWire(t *testing.T) {
	for code := uint8(1); code <= 8; code++ {
		dt, err := DatatypeFromWire(code)
		if err != nil {
			t.Fatalf("code %d: %v", code, err)
		}
		if dt.WireCode() != code {
			t.Fatalf("code %d round-tripped to %d", code, dt.WireCode())
		}
	}
	for _, code := range []uint8{0, 9, 10, 255} {
		if _, err := DatatypeFromWire(code); err == nil {
			t.Fatalf("code %d: expected rejection", code)
		}
	}
}

func TestRGBWireCode(t *testing.T) {
	if RGB.WireCode() != uint8(F32) {
		t.Fatalf("RGB wire code = %d, want %d", RGB.WireCode(), uint8(F32))
	}
	if RGB.Size() != 4 {
		t.Fatalf("RGB size = %d, want 4", RGB.Size())
	}
}

func TestDatatypeSize(t *testing.T) {
	sizes := map[FieldDatatype]int{
		I8: 1, U8: 1, I16: 2, U16: 2, I32: 4, U32: 4, F32: 4, F64: 8, RGB: 4,
	}
	for dt, want := range sizes {
		if got := dt.Size(); got != want {
			t.Errorf("%s size = %d, want %d", dt, got, want)
		}
	}
}

func TestLosslessConvertible(t *testing.T) {
	tests := []struct {
		from, to FieldDatatype
		want     bool
	}{
		{F32, F32, true},
		{I8, I16, true},
		{I8, I32, true},
		{U8, U16, true},
		{U8, I16, true},
		{U16, I32, true},
		{U32, I32, false}, // same width, sign lost at the top
		{I8, U16, false},  // sign lost
		{I16, I8, false},  // narrowing
		{I16, F32, true},
		{U16, F32, true},
		{I32, F32, false}, // mantissa too small
		{I32, F64, true},
		{U32, F64, true},
		{F32, F64, true},
		{F64, F32, false},
		{F32, I32, false}, // float into integer
		{F64, I32, false},
		{RGB, F32, true},
		{F32, RGB, true},
		{RGB, F64, false}, // the alias only pairs with F32 bits
		{U32, RGB, false},
	}
	for _, tt := range tests {
		if got := losslessConvertible(tt.from, tt.to); got != tt.want {
			t.Errorf("losslessConvertible(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestHostEndianIsFixed(t *testing.T) {
	if HostEndian() != EndianLittle && HostEndian() != EndianBig {
		t.Fatalf("host endian = %v", HostEndian())
	}
	if HostEndian().byteOrder() == nil {
		t.Fatal("nil byte order")
	}
}
