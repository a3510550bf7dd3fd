// Package pointcloud2 converts between the sensor_msgs/PointCloud2 wire
// representation and strongly typed Go point structs without per-point
// allocation or an intermediate generic representation.
//
// The Message container owns a flat, fixed-stride byte buffer described by a
// list of named fields with byte offsets and datatypes. A point type declares
// its own in-memory layout by implementing PointConvertible. The layout
// compatibility checker compares the two layouts once per conversion and
// classifies the match:
//
//   - Exact: raw reinterpretation of the whole buffer is safe (bulk path)
//   - Reordered: same fields and datatypes, different offsets or stride
//     (per-point byte copy, no numeric conversion)
//   - Converted: at least one datatype differs (per-point numeric conversion,
//     governed by the strict/lossy policy)
//   - Incompatible: a required field is missing or a conversion would be
//     lossy under strict mode (fails before any bytes are touched)
//
// Four conversion strategies are available in each direction:
//
//	msg, err := pointcloud2.FromSlice(cloud)          // bulk encode
//	msg, err := pointcloud2.FromIter(seq)             // streaming encode
//	msg, err := pointcloud2.FromSliceParallel(cloud)  // chunked encode
//
//	pts, err := pointcloud2.ToSlice[points.PointXYZ](msg)         // owned
//	view, err := pointcloud2.View[points.PointXYZ](msg)           // zero-copy
//	it, err := pointcloud2.Iter[points.PointXYZ](msg)             // lazy
//	pts, err := pointcloud2.ToSliceParallel[points.PointXYZ](msg) // chunked
//
// All strategies preserve point order: point N of the output always
// corresponds to point N of the source buffer, row-major.
//
// Common point types (PointXYZ, PointXYZI, PointXYZRGB, ...) live in the
// points subpackage; the ros subpackage holds the wire-shaped adapter type
// for exchanging messages with ROS client libraries.
package pointcloud2
