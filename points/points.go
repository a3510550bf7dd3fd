// Package points provides the standard PCL-style point types ready for use
// with the pointcloud2 conversion functions. Each type declares a layout
// matching its Go in-memory representation, so slices of these types take
// the bulk copy paths.
//
// Custom point types follow the same pattern: a flat struct, a cached
// Layout describing it (padding included) and PackFields/UnpackFields in
// layout field order.
package points

import (
	"fmt"

	"github.com/banshee-data/pointcloud2"
)

// RGB is a packed color in the 0x00RRGGBB bit layout. On the wire it
// travels as the bit pattern of an F32 field, a convention inherited from
// PCL.
type RGB uint32

// NewRGB packs the three channels.
func NewRGB(r, g, b uint8) RGB {
	return RGB(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func (c RGB) R() uint8 { return uint8(c >> 16) }
func (c RGB) G() uint8 { return uint8(c >> 8) }
func (c RGB) B() uint8 { return uint8(c) }

func (c RGB) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R(), c.G(), c.B())
}

// PointXYZ is a bare 3D coordinate.
type PointXYZ struct {
	X, Y, Z float32
}

var layoutXYZ = pointcloud2.NewLayout(
	pointcloud2.GeometryField("x", pointcloud2.F32),
	pointcloud2.GeometryField("y", pointcloud2.F32),
	pointcloud2.GeometryField("z", pointcloud2.F32),
)

func (p *PointXYZ) PointLayout() pointcloud2.Layout { return layoutXYZ }

func (p *PointXYZ) PackFields(dst []pointcloud2.FieldValue) {
	dst[0] = pointcloud2.NewFieldValue(p.X)
	dst[1] = pointcloud2.NewFieldValue(p.Y)
	dst[2] = pointcloud2.NewFieldValue(p.Z)
}

func (p *PointXYZ) UnpackFields(src []pointcloud2.FieldValue) {
	p.X = src[0].Float32()
	p.Y = src[1].Float32()
	p.Z = src[2].Float32()
}

// PointXYZI is a 3D coordinate with an intensity reading.
type PointXYZI struct {
	X, Y, Z   float32
	Intensity float32
}

var layoutXYZI = pointcloud2.NewLayout(
	pointcloud2.GeometryField("x", pointcloud2.F32),
	pointcloud2.GeometryField("y", pointcloud2.F32),
	pointcloud2.GeometryField("z", pointcloud2.F32),
	pointcloud2.Field("intensity", pointcloud2.F32),
)

func (p *PointXYZI) PointLayout() pointcloud2.Layout { return layoutXYZI }

func (p *PointXYZI) PackFields(dst []pointcloud2.FieldValue) {
	dst[0] = pointcloud2.NewFieldValue(p.X)
	dst[1] = pointcloud2.NewFieldValue(p.Y)
	dst[2] = pointcloud2.NewFieldValue(p.Z)
	dst[3] = pointcloud2.NewFieldValue(p.Intensity)
}

func (p *PointXYZI) UnpackFields(src []pointcloud2.FieldValue) {
	p.X = src[0].Float32()
	p.Y = src[1].Float32()
	p.Z = src[2].Float32()
	p.Intensity = src[3].Float32()
}

// PointXYZL is a 3D coordinate with a label.
type PointXYZL struct {
	X, Y, Z float32
	Label   uint32
}

var layoutXYZL = pointcloud2.NewLayout(
	pointcloud2.GeometryField("x", pointcloud2.F32),
	pointcloud2.GeometryField("y", pointcloud2.F32),
	pointcloud2.GeometryField("z", pointcloud2.F32),
	pointcloud2.Field("label", pointcloud2.U32),
)

func (p *PointXYZL) PointLayout() pointcloud2.Layout { return layoutXYZL }

func (p *PointXYZL) PackFields(dst []pointcloud2.FieldValue) {
	dst[0] = pointcloud2.NewFieldValue(p.X)
	dst[1] = pointcloud2.NewFieldValue(p.Y)
	dst[2] = pointcloud2.NewFieldValue(p.Z)
	dst[3] = pointcloud2.NewFieldValue(p.Label)
}

func (p *PointXYZL) UnpackFields(src []pointcloud2.FieldValue) {
	p.X = src[0].Float32()
	p.Y = src[1].Float32()
	p.Z = src[2].Float32()
	p.Label = src[3].Uint32()
}

// PointXYZRGB is a 3D coordinate with a packed color.
type PointXYZRGB struct {
	X, Y, Z float32
	RGB     RGB
}

var layoutXYZRGB = pointcloud2.NewLayout(
	pointcloud2.GeometryField("x", pointcloud2.F32),
	pointcloud2.GeometryField("y", pointcloud2.F32),
	pointcloud2.GeometryField("z", pointcloud2.F32),
	pointcloud2.Field("rgb", pointcloud2.RGB),
)

func (p *PointXYZRGB) PointLayout() pointcloud2.Layout { return layoutXYZRGB }

func (p *PointXYZRGB) PackFields(dst []pointcloud2.FieldValue) {
	dst[0] = pointcloud2.NewFieldValue(p.X)
	dst[1] = pointcloud2.NewFieldValue(p.Y)
	dst[2] = pointcloud2.NewFieldValue(p.Z)
	dst[3] = pointcloud2.NewRGBValue(uint32(p.RGB))
}

func (p *PointXYZRGB) UnpackFields(src []pointcloud2.FieldValue) {
	p.X = src[0].Float32()
	p.Y = src[1].Float32()
	p.Z = src[2].Float32()
	c, _ := src[3].PackedRGB()
	p.RGB = RGB(c)
}

// PointXYZRGBA is a 3D coordinate with a packed color and a separate alpha
// channel.
type PointXYZRGBA struct {
	X, Y, Z float32
	RGB     RGB
	A       uint8
}

var layoutXYZRGBA = pointcloud2.NewLayout(
	pointcloud2.GeometryField("x", pointcloud2.F32),
	pointcloud2.GeometryField("y", pointcloud2.F32),
	pointcloud2.GeometryField("z", pointcloud2.F32),
	pointcloud2.Field("rgb", pointcloud2.RGB),
	pointcloud2.Field("a", pointcloud2.U8),
	pointcloud2.Padding(3),
)

func (p *PointXYZRGBA) PointLayout() pointcloud2.Layout { return layoutXYZRGBA }

func (p *PointXYZRGBA) PackFields(dst []pointcloud2.FieldValue) {
	dst[0] = pointcloud2.NewFieldValue(p.X)
	dst[1] = pointcloud2.NewFieldValue(p.Y)
	dst[2] = pointcloud2.NewFieldValue(p.Z)
	dst[3] = pointcloud2.NewRGBValue(uint32(p.RGB))
	dst[4] = pointcloud2.NewFieldValue(p.A)
}

func (p *PointXYZRGBA) UnpackFields(src []pointcloud2.FieldValue) {
	p.X = src[0].Float32()
	p.Y = src[1].Float32()
	p.Z = src[2].Float32()
	c, _ := src[3].PackedRGB()
	p.RGB = RGB(c)
	p.A = src[4].Uint8()
}

// PointXYZRGBL is a 3D coordinate with a packed color and a label.
type PointXYZRGBL struct {
	X, Y, Z float32
	RGB     RGB
	Label   uint32
}

var layoutXYZRGBL = pointcloud2.NewLayout(
	pointcloud2.GeometryField("x", pointcloud2.F32),
	pointcloud2.GeometryField("y", pointcloud2.F32),
	pointcloud2.GeometryField("z", pointcloud2.F32),
	pointcloud2.Field("rgb", pointcloud2.RGB),
	pointcloud2.Field("label", pointcloud2.U32),
)

func (p *PointXYZRGBL) PointLayout() pointcloud2.Layout { return layoutXYZRGBL }

func (p *PointXYZRGBL) PackFields(dst []pointcloud2.FieldValue) {
	dst[0] = pointcloud2.NewFieldValue(p.X)
	dst[1] = pointcloud2.NewFieldValue(p.Y)
	dst[2] = pointcloud2.NewFieldValue(p.Z)
	dst[3] = pointcloud2.NewRGBValue(uint32(p.RGB))
	dst[4] = pointcloud2.NewFieldValue(p.Label)
}

func (p *PointXYZRGBL) UnpackFields(src []pointcloud2.FieldValue) {
	p.X = src[0].Float32()
	p.Y = src[1].Float32()
	p.Z = src[2].Float32()
	c, _ := src[3].PackedRGB()
	p.RGB = RGB(c)
	p.Label = src[4].Uint32()
}

// PointXYZNormal is a 3D coordinate with a surface normal.
type PointXYZNormal struct {
	X, Y, Z                   float32
	NormalX, NormalY, NormalZ float32
}

var layoutXYZNormal = pointcloud2.NewLayout(
	pointcloud2.GeometryField("x", pointcloud2.F32),
	pointcloud2.GeometryField("y", pointcloud2.F32),
	pointcloud2.GeometryField("z", pointcloud2.F32),
	pointcloud2.Field("normal_x", pointcloud2.F32),
	pointcloud2.Field("normal_y", pointcloud2.F32),
	pointcloud2.Field("normal_z", pointcloud2.F32),
)

func (p *PointXYZNormal) PointLayout() pointcloud2.Layout { return layoutXYZNormal }

func (p *PointXYZNormal) PackFields(dst []pointcloud2.FieldValue) {
	dst[0] = pointcloud2.NewFieldValue(p.X)
	dst[1] = pointcloud2.NewFieldValue(p.Y)
	dst[2] = pointcloud2.NewFieldValue(p.Z)
	dst[3] = pointcloud2.NewFieldValue(p.NormalX)
	dst[4] = pointcloud2.NewFieldValue(p.NormalY)
	dst[5] = pointcloud2.NewFieldValue(p.NormalZ)
}

func (p *PointXYZNormal) UnpackFields(src []pointcloud2.FieldValue) {
	p.X = src[0].Float32()
	p.Y = src[1].Float32()
	p.Z = src[2].Float32()
	p.NormalX = src[3].Float32()
	p.NormalY = src[4].Float32()
	p.NormalZ = src[5].Float32()
}

// PointXYZINormal is a 3D coordinate with an intensity reading and a
// surface normal.
type PointXYZINormal struct {
	X, Y, Z                   float32
	Intensity                 float32
	NormalX, NormalY, NormalZ float32
}

var layoutXYZINormal = pointcloud2.NewLayout(
	pointcloud2.GeometryField("x", pointcloud2.F32),
	pointcloud2.GeometryField("y", pointcloud2.F32),
	pointcloud2.GeometryField("z", pointcloud2.F32),
	pointcloud2.Field("intensity", pointcloud2.F32),
	pointcloud2.Field("normal_x", pointcloud2.F32),
	pointcloud2.Field("normal_y", pointcloud2.F32),
	pointcloud2.Field("normal_z", pointcloud2.F32),
)

func (p *PointXYZINormal) PointLayout() pointcloud2.Layout { return layoutXYZINormal }

func (p *PointXYZINormal) PackFields(dst []pointcloud2.FieldValue) {
	dst[0] = pointcloud2.NewFieldValue(p.X)
	dst[1] = pointcloud2.NewFieldValue(p.Y)
	dst[2] = pointcloud2.NewFieldValue(p.Z)
	dst[3] = pointcloud2.NewFieldValue(p.Intensity)
	dst[4] = pointcloud2.NewFieldValue(p.NormalX)
	dst[5] = pointcloud2.NewFieldValue(p.NormalY)
	dst[6] = pointcloud2.NewFieldValue(p.NormalZ)
}

func (p *PointXYZINormal) UnpackFields(src []pointcloud2.FieldValue) {
	p.X = src[0].Float32()
	p.Y = src[1].Float32()
	p.Z = src[2].Float32()
	p.Intensity = src[3].Float32()
	p.NormalX = src[4].Float32()
	p.NormalY = src[5].Float32()
	p.NormalZ = src[6].Float32()
}

// PointXYZRGBNormal is a 3D coordinate with a packed color and a surface
// normal.
type PointXYZRGBNormal struct {
	X, Y, Z                   float32
	RGB                       RGB
	NormalX, NormalY, NormalZ float32
}

var layoutXYZRGBNormal = pointcloud2.NewLayout(
	pointcloud2.GeometryField("x", pointcloud2.F32),
	pointcloud2.GeometryField("y", pointcloud2.F32),
	pointcloud2.GeometryField("z", pointcloud2.F32),
	pointcloud2.Field("rgb", pointcloud2.RGB),
	pointcloud2.Field("normal_x", pointcloud2.F32),
	pointcloud2.Field("normal_y", pointcloud2.F32),
	pointcloud2.Field("normal_z", pointcloud2.F32),
)

func (p *PointXYZRGBNormal) PointLayout() pointcloud2.Layout { return layoutXYZRGBNormal }

func (p *PointXYZRGBNormal) PackFields(dst []pointcloud2.FieldValue) {
	dst[0] = pointcloud2.NewFieldValue(p.X)
	dst[1] = pointcloud2.NewFieldValue(p.Y)
	dst[2] = pointcloud2.NewFieldValue(p.Z)
	dst[3] = pointcloud2.NewRGBValue(uint32(p.RGB))
	dst[4] = pointcloud2.NewFieldValue(p.NormalX)
	dst[5] = pointcloud2.NewFieldValue(p.NormalY)
	dst[6] = pointcloud2.NewFieldValue(p.NormalZ)
}

func (p *PointXYZRGBNormal) UnpackFields(src []pointcloud2.FieldValue) {
	p.X = src[0].Float32()
	p.Y = src[1].Float32()
	p.Z = src[2].Float32()
	c, _ := src[3].PackedRGB()
	p.RGB = RGB(c)
	p.NormalX = src[4].Float32()
	p.NormalY = src[5].Float32()
	p.NormalZ = src[6].Float32()
}
