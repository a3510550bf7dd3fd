package pointcloud2_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pointcloud2"
	"github.com/banshee-data/pointcloud2/points"
)

func TestIteratorMatchesToSlice(t *testing.T) {
	t.Parallel()

	pts := samplePointsXYZ()
	msg := reorderedXYZMessage(t, pts)

	it, err := pointcloud2.Iter[points.PointXYZ](msg)
	require.NoError(t, err)
	assert.Equal(t, len(pts), it.Len())

	var got []points.PointXYZ
	for it.Next() {
		got = append(got, it.Point())
	}
	require.NoError(t, it.Err())
	if diff := cmp.Diff(pts, got); diff != "" {
		t.Errorf("iterator mismatch (-want +got):\n%s", diff)
	}

	// Exhausted iterators stay exhausted.
	assert.False(t, it.Next())
	assert.NoError(t, it.Err())
}

func TestIteratorPlansUpFront(t *testing.T) {
	t.Parallel()

	msg, err := pointcloud2.FromSlice(samplePointsXYZ())
	require.NoError(t, err)

	// The missing field surfaces at construction, not on the first Next.
	_, err = pointcloud2.Iter[points.PointXYZI](msg)
	var missing *pointcloud2.FieldMissingError
	require.ErrorAs(t, err, &missing)
}

func TestIteratorRangeFunc(t *testing.T) {
	t.Parallel()

	pts := samplePointsXYZ()
	msg, err := pointcloud2.FromSlice(pts)
	require.NoError(t, err)

	it, err := pointcloud2.Iter[points.PointXYZ](msg)
	require.NoError(t, err)

	count := 0
	for p := range it.Points() {
		assert.Equal(t, pts[count], p)
		count++
		if count == 2 {
			break // early exit must not poison the iterator
		}
	}
	assert.Equal(t, 2, count)
	require.NoError(t, it.Err())

	// The sequence resumes where the loop stopped.
	require.True(t, it.Next())
	assert.Equal(t, pts[2], it.Point())
}

func TestIteratorRoundTripThroughFromIter(t *testing.T) {
	t.Parallel()

	pts := samplePointsXYZ()
	src, err := pointcloud2.FromSlice(pts)
	require.NoError(t, err)

	it, err := pointcloud2.Iter[points.PointXYZ](src)
	require.NoError(t, err)

	dst, err := pointcloud2.FromIter(it.Points())
	require.NoError(t, err)
	require.NoError(t, it.Err())

	out, err := pointcloud2.ToSlice[points.PointXYZ](dst)
	require.NoError(t, err)
	if diff := cmp.Diff(pts, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
