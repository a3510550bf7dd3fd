package pointcloud2_test

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pointcloud2"
	"github.com/banshee-data/pointcloud2/points"
)

func randomPointsXYZ(n int) []points.PointXYZ {
	rng := rand.New(rand.NewSource(42))
	pts := make([]points.PointXYZ, n)
	for i := range pts {
		pts[i] = points.PointXYZ{
			X: rng.Float32() * 100,
			Y: rng.Float32() * 100,
			Z: rng.Float32() * 100,
		}
	}
	return pts
}

func TestParallelDecodeMatchesSequential(t *testing.T) {
	t.Parallel()

	// A reordered layout forces the per-point path through the worker pool.
	pts := randomPointsXYZ(1003)
	msg := reorderedXYZMessage(t, pts)

	want, err := pointcloud2.ToSlice[points.PointXYZ](msg)
	require.NoError(t, err)

	for _, workers := range []int{0, 1, 3, 16} {
		got, err := pointcloud2.ToSliceParallel[points.PointXYZ](msg, pointcloud2.WithWorkers(workers))
		require.NoError(t, err)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("workers=%d: mismatch (-want +got):\n%s", workers, diff)
		}
	}
}

func TestParallelDecodeExactShortcut(t *testing.T) {
	t.Parallel()

	pts := randomPointsXYZ(257)
	msg, err := pointcloud2.FromSlice(pts)
	require.NoError(t, err)

	got, err := pointcloud2.ToSliceParallel[points.PointXYZ](msg, pointcloud2.WithWorkers(4))
	require.NoError(t, err)
	if diff := cmp.Diff(pts, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParallelEncodeMatchesSequential(t *testing.T) {
	t.Parallel()

	pts := randomPointsXYZ(512)
	want, err := pointcloud2.FromSlice(pts)
	require.NoError(t, err)

	got, err := pointcloud2.FromSliceParallel(pts, pointcloud2.WithWorkers(4))
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParallelDecodeReportsEveryFailedChunk(t *testing.T) {
	t.Parallel()

	// A hand-built message lying about its width: every chunk past the real
	// buffer fails, and the joined error reports all of them.
	msg := &pointcloud2.Message{
		Fields: []pointcloud2.PointField{
			{Name: "x", Offset: 0, Datatype: pointcloud2.F32, Count: 1},
			{Name: "y", Offset: 4, Datatype: pointcloud2.F32, Count: 1},
			{Name: "z", Offset: 8, Datatype: pointcloud2.F32, Count: 1},
		},
		Width:     100,
		Height:    1,
		PointStep: 16, // wider than the point, bypassing the bulk path
		RowStep:   1600,
		Data:      make([]byte, 160), // only 10 points worth of bytes
	}

	_, err := pointcloud2.ToSliceParallel[points.PointXYZ](msg, pointcloud2.WithWorkers(4))
	require.Error(t, err)
	assert.ErrorIs(t, err, pointcloud2.ErrDataLengthMismatch)

	// The sequential path fails the same way.
	_, err = pointcloud2.ToSlice[points.PointXYZ](msg)
	assert.ErrorIs(t, err, pointcloud2.ErrDataLengthMismatch)
}
