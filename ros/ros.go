// Package ros bridges pointcloud2 messages to the wire shape of the ROS
// sensor_msgs/PointCloud2 message, field for field. Use it at the edge of a
// ROS transport: decode the serialized message into PointCloud2 with your
// client library's codec, then convert with FromMessage/ToMessage.
package ros

import (
	"fmt"

	"github.com/banshee-data/pointcloud2"
)

// Time is the ROS builtin_interfaces/Time representation.
type Time struct {
	Sec     int32
	Nanosec uint32
}

// Header is the ROS std_msgs/Header representation.
type Header struct {
	Stamp   Time
	FrameID string
}

// PointField mirrors sensor_msgs/PointField: the datatype is the raw wire
// code, not yet validated.
type PointField struct {
	Name     string
	Offset   uint32
	Datatype uint8
	Count    uint32
}

// PointCloud2 mirrors sensor_msgs/PointCloud2 exactly as it appears on the
// wire.
type PointCloud2 struct {
	Header      Header
	Height      uint32
	Width       uint32
	Fields      []PointField
	IsBigendian bool
	PointStep   uint32
	RowStep     uint32
	Data        []byte
	IsDense     bool
}

// FromMessage renders a message in the ROS wire shape. The data buffer is
// shared, not copied.
func FromMessage(m *pointcloud2.Message) *PointCloud2 {
	fields := make([]PointField, len(m.Fields))
	for i, f := range m.Fields {
		fields[i] = PointField{
			Name:     f.Name,
			Offset:   f.Offset,
			Datatype: f.Datatype.WireCode(),
			Count:    f.Count,
		}
	}
	return &PointCloud2{
		Header: Header{
			// ROS 2 stamps carry signed seconds, the container unsigned
			// ones. The conversion reinterprets the 32 bits in both
			// directions, so any stamp round-trips bit-exactly.
			Stamp:   Time{Sec: int32(m.Header.Stamp.Sec), Nanosec: m.Header.Stamp.Nanosec},
			FrameID: m.Header.FrameID,
		},
		Height:      m.Height,
		Width:       m.Width,
		Fields:      fields,
		IsBigendian: m.Endian == pointcloud2.EndianBig,
		PointStep:   m.PointStep,
		RowStep:     m.RowStep,
		Data:        m.Data,
		IsDense:     m.Dense,
	}
}

// ToMessage validates a received ROS message and converts it. Unknown
// datatype codes and inconsistent sizing are rejected here, so the
// conversion engine never sees an invalid message. The data buffer is
// shared, not copied.
func ToMessage(pc *PointCloud2) (*pointcloud2.Message, error) {
	fields := make([]pointcloud2.PointField, len(pc.Fields))
	for i, f := range pc.Fields {
		dt, err := pointcloud2.DatatypeFromWire(f.Datatype)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		fields[i] = pointcloud2.PointField{
			Name:     f.Name,
			Offset:   f.Offset,
			Datatype: dt,
			Count:    f.Count,
		}
	}

	endian := pointcloud2.EndianLittle
	if pc.IsBigendian {
		endian = pointcloud2.EndianBig
	}

	return pointcloud2.NewMessageBuilder().
		Header(pointcloud2.Header{
			// Bit-preserving counterpart of the FromMessage stamp mapping.
			Stamp:   pointcloud2.Time{Sec: uint32(pc.Header.Stamp.Sec), Nanosec: pc.Header.Stamp.Nanosec},
			FrameID: pc.Header.FrameID,
		}).
		Fields(fields...).
		Width(pc.Width).
		Height(pc.Height).
		PointStep(pc.PointStep).
		RowStep(pc.RowStep).
		Endian(endian).
		Dense(pc.IsDense).
		Data(pc.Data).
		Build()
}
