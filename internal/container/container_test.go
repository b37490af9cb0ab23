package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d-vasek/timeframe/internal/container"
	"github.com/d-vasek/timeframe/internal/index"
	"github.com/d-vasek/timeframe/internal/series"
	"github.com/d-vasek/timeframe/internal/testutil"
)

func TestBufferShape(t *testing.T) {
	t.Run("One dimension", func(t *testing.T) {
		b, err := container.NewBuffer(testutil.Ramp(0, 6), 6)
		require.NoError(t, err)

		assert.Equal(t, container.MtypeBuffer, b.Mtype())
		assert.Equal(t, container.ScitypeSeries, b.Scitype())
		assert.Equal(t, 6, b.Len())
		assert.Equal(t, 6, b.TimeLen())
	})

	t.Run("Three dimensions", func(t *testing.T) {
		b, err := container.NewBuffer(testutil.Ramp(0, 12), 2, 2, 3)
		require.NoError(t, err)

		assert.Equal(t, container.MtypeBuffer3D, b.Mtype())
		assert.Equal(t, container.ScitypePanel, b.Scitype())
		assert.Equal(t, 2, b.Len())
		assert.Equal(t, 3, b.TimeLen())
		assert.InDelta(t, 11, b.At(1, 1, 2), 0)
	})

	t.Run("Shape mismatch", func(t *testing.T) {
		_, err := container.NewBuffer(testutil.Ramp(0, 5), 2, 3)
		assert.Error(t, err)

		_, err = container.NewBuffer(nil, 1, 1, 1, 1)
		assert.Error(t, err)
	})
}

func TestBufferSliceTime(t *testing.T) {
	t.Run("One dimension", func(t *testing.T) {
		b, err := container.NewBuffer([]float64{0, 1, 2, 3, 4}, 5)
		require.NoError(t, err)

		sub := b.SliceTime(2, 5)
		assert.Equal(t, []float64{2, 3, 4}, sub.Data())
		assert.Equal(t, []int{3}, sub.Shape())
	})

	t.Run("Two dimensions keeps variables", func(t *testing.T) {
		// 3 timepoints x 2 variables, row-major
		b, err := container.NewBuffer([]float64{0, 10, 1, 11, 2, 12}, 3, 2)
		require.NoError(t, err)

		sub := b.SliceTime(1, 3)
		assert.Equal(t, []int{2, 2}, sub.Shape())
		assert.Equal(t, []float64{1, 11, 2, 12}, sub.Data())
	})

	t.Run("Three dimensions slices the last axis", func(t *testing.T) {
		// 2 instances x 1 variable x 3 timepoints
		b, err := container.NewBuffer([]float64{0, 1, 2, 10, 11, 12}, 2, 1, 3)
		require.NoError(t, err)

		sub := b.SliceTime(1, 3)
		assert.Equal(t, []int{2, 1, 2}, sub.Shape())
		assert.Equal(t, []float64{1, 2, 11, 12}, sub.Data())
	})
}

func TestFrame(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	f := testutil.IntFrame(t, 4, mem.Allocator)

	assert.Equal(t, container.MtypeFrame, f.Mtype())
	assert.Equal(t, container.ScitypeSeries, f.Scitype())
	assert.Equal(t, 4, f.Len())
	assert.Equal(t, 1, f.Width())

	sub := f.SelectRows([]bool{false, true, true, false}, mem.Allocator)
	assert.Equal(t, []int64{1, 2}, sub.Index().Ints())
	assert.Equal(t, []float64{1, 2}, sub.Columns()[0].Values())
}

func TestMultiFrameInstances(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	t.Run("Single level groups in order of appearance", func(t *testing.T) {
		mf := testutil.IntPanel(t, []int{2, 3}, mem.Allocator)

		assert.Equal(t, container.MtypeMulti, mf.Mtype())
		assert.Equal(t, container.ScitypePanel, mf.Scitype())
		assert.Equal(t, 5, mf.Len())

		insts := mf.Instances()
		require.Len(t, insts, 2)
		assert.Equal(t, []string{"0"}, insts[0].Key)
		assert.Equal(t, []int{0, 1}, insts[0].Rows)
		assert.Equal(t, []string{"1"}, insts[1].Key)
		assert.Equal(t, []int{2, 3, 4}, insts[1].Rows)
	})

	t.Run("Two levels are hierarchical", func(t *testing.T) {
		mf := testutil.Hierarchy(t, 2, 2, 3, mem.Allocator)

		assert.Equal(t, container.MtypeHier, mf.Mtype())
		assert.Equal(t, container.ScitypeHierarchical, mf.Scitype())
		assert.Len(t, mf.Instances(), 4)
		assert.Equal(t, []string{"1", "0"}, mf.Instances()[2].Key)
	})

	t.Run("TimesAt projects the shared index", func(t *testing.T) {
		mf := testutil.IntPanel(t, []int{3, 3}, mem.Allocator)
		sub := mf.TimesAt(mf.Instances()[1].Rows)

		assert.Equal(t, []int64{0, 1, 2}, sub.Ints())
		assert.Equal(t, int64(1), sub.Step())
	})

	t.Run("SelectRows keeps keys aligned", func(t *testing.T) {
		mf := testutil.IntPanel(t, []int{2, 2}, mem.Allocator)
		sub := mf.SelectRows([]bool{false, true, false, true}, mem.Allocator)

		assert.Equal(t, 2, sub.Len())
		assert.Equal(t, [][]string{{"0", "1"}}, sub.Keys())
		assert.Equal(t, []int64{1, 1}, sub.Times().Ints())
	})
}

func TestNestedFrame(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	nf := testutil.NestedPanel(t, []int{3, 5}, mem.Allocator)

	assert.Equal(t, container.MtypeNested, nf.Mtype())
	assert.Equal(t, container.ScitypePanel, nf.Scitype())
	assert.Equal(t, 2, nf.Len())

	cell := nf.FirstCell()
	require.NotNil(t, cell)
	assert.Equal(t, 3, cell.Index.Len())

	empty := container.NewNestedFrame(index.NewRange(0, 0))
	assert.Nil(t, empty.FirstCell())
}

func TestFrameList(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	fl := testutil.Frames(t, []int{4, 2, 3}, mem.Allocator)

	assert.Equal(t, container.MtypeFrameList, fl.Mtype())
	assert.Equal(t, container.ScitypePanel, fl.Scitype())
	assert.Equal(t, 3, fl.Len())
}

func TestScitypeOf(t *testing.T) {
	cases := []struct {
		mtype container.Mtype
		want  container.Scitype
	}{
		{container.MtypeBuffer, container.ScitypeSeries},
		{container.MtypeFrame, container.ScitypeSeries},
		{container.MtypeBuffer3D, container.ScitypePanel},
		{container.MtypeMulti, container.ScitypePanel},
		{container.MtypeNested, container.ScitypePanel},
		{container.MtypeFrameList, container.ScitypePanel},
		{container.MtypeHier, container.ScitypeHierarchical},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, container.ScitypeOf(tc.mtype), tc.mtype.String())
	}
}

func TestNilIndexNormalized(t *testing.T) {
	f := container.NewFrame(nil)
	require.NotNil(t, f.Index())
	assert.Equal(t, 0, f.Len())

	mf := container.NewMultiFrame([][]string{nil}, nil)
	require.NotNil(t, mf.Times())
	assert.Equal(t, 0, mf.Len())
}

func TestFrameRelease(t *testing.T) {
	f := container.NewFrame(
		index.NewRange(0, 2),
		series.New("v", []float64{1, 2}, nil),
	)
	f.Release()
}
