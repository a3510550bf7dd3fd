package points

import "gonum.org/v1/gonum/spatial/r3"

// Vec accessors bridge the point types to gonum's spatial algebra. The
// float32 coordinates widen exactly to float64.

func (p PointXYZ) Vec() r3.Vec {
	return r3.Vec{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
}

func (p PointXYZI) Vec() r3.Vec {
	return r3.Vec{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
}

func (p PointXYZL) Vec() r3.Vec {
	return r3.Vec{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
}

func (p PointXYZRGB) Vec() r3.Vec {
	return r3.Vec{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
}

func (p PointXYZRGBA) Vec() r3.Vec {
	return r3.Vec{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
}

func (p PointXYZRGBL) Vec() r3.Vec {
	return r3.Vec{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
}

func (p PointXYZNormal) Vec() r3.Vec {
	return r3.Vec{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
}

func (p PointXYZINormal) Vec() r3.Vec {
	return r3.Vec{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
}

func (p PointXYZRGBNormal) Vec() r3.Vec {
	return r3.Vec{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
}

// Normal returns the surface normal as a vector.
func (p PointXYZNormal) Normal() r3.Vec {
	return r3.Vec{X: float64(p.NormalX), Y: float64(p.NormalY), Z: float64(p.NormalZ)}
}

func (p PointXYZINormal) Normal() r3.Vec {
	return r3.Vec{X: float64(p.NormalX), Y: float64(p.NormalY), Z: float64(p.NormalZ)}
}

func (p PointXYZRGBNormal) Normal() r3.Vec {
	return r3.Vec{X: float64(p.NormalX), Y: float64(p.NormalY), Z: float64(p.NormalZ)}
}
