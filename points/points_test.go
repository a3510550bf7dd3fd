package points

import (
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pointcloud2"
)

// The declared layouts must describe the Go structs exactly: the bulk copy
// paths reinterpret struct memory through them.
func TestLayoutsMatchMemory(t *testing.T) {
	check := func(name string, size uintptr, c pointcloud2.PointConvertible) {
		t.Helper()
		l := c.PointLayout()
		assert.Equal(t, int(size), l.Stride(), "%s stride", name)
	}

	check("PointXYZ", unsafe.Sizeof(PointXYZ{}), &PointXYZ{})
	check("PointXYZI", unsafe.Sizeof(PointXYZI{}), &PointXYZI{})
	check("PointXYZL", unsafe.Sizeof(PointXYZL{}), &PointXYZL{})
	check("PointXYZRGB", unsafe.Sizeof(PointXYZRGB{}), &PointXYZRGB{})
	check("PointXYZRGBA", unsafe.Sizeof(PointXYZRGBA{}), &PointXYZRGBA{})
	check("PointXYZRGBL", unsafe.Sizeof(PointXYZRGBL{}), &PointXYZRGBL{})
	check("PointXYZNormal", unsafe.Sizeof(PointXYZNormal{}), &PointXYZNormal{})
	check("PointXYZINormal", unsafe.Sizeof(PointXYZINormal{}), &PointXYZINormal{})
	check("PointXYZRGBNormal", unsafe.Sizeof(PointXYZRGBNormal{}), &PointXYZRGBNormal{})
}

func TestLayoutDimensions(t *testing.T) {
	assert.Equal(t, 3, (&PointXYZ{}).PointLayout().Dim())
	assert.Equal(t, 3, (&PointXYZRGBNormal{}).PointLayout().Dim())
}

func TestRGBChannels(t *testing.T) {
	c := NewRGB(0xAA, 0xBB, 0xCC)
	assert.Equal(t, uint8(0xAA), c.R())
	assert.Equal(t, uint8(0xBB), c.G())
	assert.Equal(t, uint8(0xCC), c.B())
	assert.Equal(t, RGB(0x00AABBCC), c)
	assert.Equal(t, "#AABBCC", c.String())
}

func TestPackUnpackSymmetry(t *testing.T) {
	p := PointXYZRGBL{X: 1, Y: 2, Z: 3, RGB: NewRGB(9, 8, 7), Label: 77}
	rec := make([]pointcloud2.FieldValue, p.PointLayout().NumFields())
	p.PackFields(rec)

	var q PointXYZRGBL
	q.UnpackFields(rec)
	assert.Equal(t, p, q)
}

func TestStandardTypesRoundTrip(t *testing.T) {
	pts := []PointXYZINormal{
		{X: 1, Y: 2, Z: 3, Intensity: 0.5, NormalX: 0, NormalY: 0, NormalZ: 1},
		{X: -1, Y: -2, Z: -3, Intensity: 100, NormalX: 1, NormalY: 0, NormalZ: 0},
	}
	msg, err := pointcloud2.FromSlice(pts)
	require.NoError(t, err)

	class, err := pointcloud2.Classify[PointXYZINormal](msg)
	require.NoError(t, err)
	require.Equal(t, pointcloud2.Exact, class)

	out, err := pointcloud2.ToSlice[PointXYZINormal](msg)
	require.NoError(t, err)
	if diff := cmp.Diff(pts, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestVecAccessors(t *testing.T) {
	p := PointXYZNormal{X: 1, Y: 2, Z: 3, NormalX: 0, NormalY: 1, NormalZ: 0}
	v := p.Vec()
	assert.Equal(t, 1.0, v.X)
	assert.Equal(t, 2.0, v.Y)
	assert.Equal(t, 3.0, v.Z)

	n := p.Normal()
	assert.Equal(t, 1.0, n.Y)
}
