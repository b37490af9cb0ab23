package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d-vasek/timeframe/internal/config"
	"github.com/d-vasek/timeframe/internal/container"
	"github.com/d-vasek/timeframe/internal/errors"
	"github.com/d-vasek/timeframe/internal/index"
	"github.com/d-vasek/timeframe/internal/registry"
	"github.com/d-vasek/timeframe/internal/series"
	"github.com/d-vasek/timeframe/internal/testutil"
)

func TestDetect(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	buf, err := container.NewBuffer(testutil.Ramp(0, 10), 10)
	require.NoError(t, err)
	buf3d, err := container.NewBuffer(testutil.Ramp(0, 12), 2, 2, 3)
	require.NoError(t, err)

	cases := []struct {
		name      string
		c         container.Container
		mtype     container.Mtype
		scitype   container.Scitype
		instances int
	}{
		{"buffer", buf, container.MtypeBuffer, container.ScitypeSeries, 1},
		{"buffer3d", buf3d, container.MtypeBuffer3D, container.ScitypePanel, 2},
		{"frame", testutil.IntFrame(t, 5, mem.Allocator), container.MtypeFrame, container.ScitypeSeries, 1},
		{"multi", testutil.IntPanel(t, []int{3, 4}, mem.Allocator), container.MtypeMulti, container.ScitypePanel, 2},
		{"hier", testutil.Hierarchy(t, 2, 3, 4, mem.Allocator), container.MtypeHier, container.ScitypeHierarchical, 6},
		{"nested", testutil.NestedPanel(t, []int{3, 4, 5}, mem.Allocator), container.MtypeNested, container.ScitypePanel, 3},
		{"framelist", testutil.Frames(t, []int{2, 2}, mem.Allocator), container.MtypeFrameList, container.ScitypePanel, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			md, err := registry.Detect(tc.c)
			require.NoError(t, err)
			assert.Equal(t, tc.mtype, md.Mtype)
			assert.Equal(t, tc.scitype, md.Scitype)
			assert.Equal(t, tc.instances, md.Instances)
		})
	}
}

func TestDetectRejectsUnknownValues(t *testing.T) {
	_, err := registry.Detect(nil)
	assert.True(t, errors.IsInputType(err))
}

type fakeContainer struct{}

func (fakeContainer) Mtype() container.Mtype     { return container.Mtype(99) }
func (fakeContainer) Scitype() container.Scitype { return container.ScitypeSeries }
func (fakeContainer) Len() int                   { return 1 }

func TestDetectRejectsForeignEncoding(t *testing.T) {
	_, err := registry.Detect(fakeContainer{})
	assert.True(t, errors.IsInputType(err))
}

func TestDetectStrictMode(t *testing.T) {
	original := config.GetGlobalConfig()
	defer config.SetGlobalConfig(original)

	strict := config.NewConfig()
	strict.StrictDetection = true
	config.SetGlobalConfig(strict)

	t.Run("Non-monotonic frame index rejected", func(t *testing.T) {
		f := container.NewFrame(
			index.FromInts([]int64{3, 1, 2}),
			series.New("v", []float64{1, 2, 3}, nil),
		)
		_, err := registry.Detect(f)
		assert.True(t, errors.IsInputType(err))
	})

	t.Run("Per-instance monotonicity in long format", func(t *testing.T) {
		mf := container.NewMultiFrame(
			[][]string{{"a", "a", "b", "b"}},
			index.FromInts([]int64{0, 1, 1, 0}),
			series.New("v", []float64{1, 2, 3, 4}, nil),
		)
		_, err := registry.Detect(mf)
		assert.True(t, errors.IsInputType(err))
	})

	t.Run("Valid containers still pass", func(t *testing.T) {
		mem := testutil.SetupMemoryTest(t)
		defer mem.Release()

		_, err := registry.Detect(testutil.IntPanel(t, []int{3, 4}, mem.Allocator))
		assert.NoError(t, err)
		_, err = registry.Detect(testutil.NestedPanel(t, []int{2, 3}, mem.Allocator))
		assert.NoError(t, err)
	})
}

func TestConvertIdentity(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	f := testutil.IntFrame(t, 4, mem.Allocator)
	out, err := registry.Convert(f, mem.Allocator, container.MtypeFrame, container.MtypeMulti)
	require.NoError(t, err)
	assert.Same(t, f, out)
}

func TestConvertRoundTrips(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	t.Run("Nested through long format", func(t *testing.T) {
		nf := testutil.NestedPanel(t, []int{3, 5}, mem.Allocator)
		fp := registry.Fingerprint(nf)

		long, err := registry.Convert(nf, mem.Allocator, container.MtypeMulti)
		require.NoError(t, err)
		assert.Equal(t, container.MtypeMulti, long.Mtype())
		assert.Equal(t, fp, registry.Fingerprint(long))

		back, err := registry.Convert(long, mem.Allocator, container.MtypeNested)
		require.NoError(t, err)
		assert.Equal(t, container.MtypeNested, back.Mtype())
		assert.Equal(t, fp, registry.Fingerprint(back))
	})

	t.Run("Frame list through long format", func(t *testing.T) {
		fl := testutil.Frames(t, []int{2, 4, 3}, mem.Allocator)
		fp := registry.Fingerprint(fl)

		long, err := registry.Convert(fl, mem.Allocator, container.MtypeMulti)
		require.NoError(t, err)
		assert.Equal(t, fp, registry.Fingerprint(long))

		back, err := registry.Convert(long, mem.Allocator, container.MtypeFrameList)
		require.NoError(t, err)
		require.Equal(t, container.MtypeFrameList, back.Mtype())
		assert.Equal(t, fp, registry.Fingerprint(back))
	})

	t.Run("Frame to long and back", func(t *testing.T) {
		f := testutil.TimeFrame(t, 6, mem.Allocator)
		fp := registry.Fingerprint(f)

		long, err := registry.Convert(f, mem.Allocator, container.MtypeMulti)
		require.NoError(t, err)
		assert.Equal(t, fp, registry.Fingerprint(long))

		back, err := registry.Convert(long, mem.Allocator, container.MtypeFrame)
		require.NoError(t, err)
		require.Equal(t, container.MtypeFrame, back.Mtype())
		assert.Equal(t, fp, registry.Fingerprint(back))
	})
}

func TestConvertInfeasible(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	t.Run("Buffers convert only to themselves", func(t *testing.T) {
		buf, err := container.NewBuffer(testutil.Ramp(0, 4), 4)
		require.NoError(t, err)

		_, err = registry.Convert(buf, mem.Allocator, container.MtypeFrame)
		assert.True(t, errors.IsInputType(err))
	})

	t.Run("Multi-instance panel cannot become a frame", func(t *testing.T) {
		mf := testutil.IntPanel(t, []int{2, 2}, mem.Allocator)
		_, err := registry.Convert(mf, mem.Allocator, container.MtypeFrame)
		assert.True(t, errors.IsInputType(err))
	})

	t.Run("Hierarchy cannot become nested", func(t *testing.T) {
		mf := testutil.Hierarchy(t, 2, 2, 3, mem.Allocator)
		_, err := registry.Convert(mf, mem.Allocator, container.MtypeNested)
		assert.True(t, errors.IsInputType(err))
	})

	t.Run("No targets", func(t *testing.T) {
		_, err := registry.Convert(testutil.IntFrame(t, 2, mem.Allocator), mem.Allocator)
		assert.True(t, errors.IsInputType(err))
	})
}

func TestFingerprintDistinguishesContent(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	a := testutil.IntFrame(t, 5, mem.Allocator)
	b := testutil.IntFrame(t, 6, mem.Allocator)

	assert.NotEqual(t, registry.Fingerprint(a), registry.Fingerprint(b))
	assert.Equal(t, registry.Fingerprint(a), registry.Fingerprint(testutil.IntFrame(t, 5, mem.Allocator)))
}
