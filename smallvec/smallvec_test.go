package smallvec

import (
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vec4 = SmallVec[int, [4]int]

func pushed(xs ...int) vec4 {
	var v vec4
	for _, x := range xs {
		v.Push(x)
	}
	return v
}

func TestZeroValue(t *testing.T) {
	var v vec4
	assert.Equal(t, 0, v.Len())
	assert.True(t, v.IsEmpty())
	assert.Equal(t, 4, v.InlineSize())
	assert.Equal(t, 4, v.Cap())
	assert.False(t, v.Spilled())
	assert.Empty(t, v.AsSlice())

	_, ok := v.Pop()
	assert.False(t, ok)
	_, ok = v.First()
	assert.False(t, ok)
}

func TestPushSpills(t *testing.T) {
	v := pushed(1, 2, 3, 4)
	assert.False(t, v.Spilled())
	assert.Equal(t, 4, v.Cap())

	v.Push(5)
	assert.True(t, v.Spilled())
	assert.Equal(t, 8, v.Cap())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, v.AsSlice())

	// inline slots are released once spilled
	assert.Equal(t, [4]int{}, v.inline)
}

func TestSizeClassGrowth(t *testing.T) {
	cases := []struct {
		n      int
		expect int
	}{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {5, 8}, {8, 8}, {9, 16}, {1000, 1024},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expect, nextPowerOfTwo(tc.n), "nextPowerOfTwo(%d)", tc.n)
	}
}

func TestConstructors(t *testing.T) {
	v := FromSlice[int, [4]int]([]int{1, 2, 9})
	assert.Equal(t, []int{1, 2, 9}, v.AsSlice())
	assert.False(t, v.Spilled())

	v = FromSlice[int, [4]int]([]int{1, 2, 3, 4, 5})
	assert.True(t, v.Spilled())
	assert.Equal(t, 5, v.Cap())

	v = FromElem[int, [4]int](7, 3)
	assert.Equal(t, []int{7, 7, 7}, v.AsSlice())

	v = FromBuf[int]([4]int{1, 2, 3, 4})
	assert.Equal(t, []int{1, 2, 3, 4}, v.AsSlice())

	v = FromBufAndLen[int]([4]int{1, 2, 3, 4}, 2)
	assert.Equal(t, []int{1, 2}, v.AsSlice())
	assert.Equal(t, [4]int{1, 2}, v.inline)

	assert.Panics(t, func() { FromBufAndLen[int]([4]int{}, 5) })

	w := WithCapacity[int, [4]int](21)
	assert.Equal(t, 21, w.Cap())
	assert.True(t, w.Spilled())
	assert.Equal(t, 0, w.Len())

	w = WithCapacity[int, [4]int](1)
	assert.Equal(t, 4, w.Cap())
}

func TestFromVecAdoptsHeap(t *testing.T) {
	s := []int{1, 2, 3, 4, 5, 6}
	v := FromVec[int, [4]int](s)
	require.True(t, v.Spilled())
	assert.Same(t, &s[0], &v.AsSlice()[0])

	v = FromVec[int, [4]int]([]int{1, 2})
	assert.False(t, v.Spilled())
	assert.Equal(t, []int{1, 2}, v.AsSlice())
}

func TestReserve(t *testing.T) {
	v := pushed(1, 3, 2, 4)
	v.Reserve(4)
	assert.GreaterOrEqual(t, v.Cap(), 8)

	v = pushed(1, 3, 2, 4)
	v.ReserveExact(4)
	assert.Equal(t, 8, v.Cap())

	v = pushed(1, 3)
	v.Reserve(1)
	assert.False(t, v.Spilled(), "room left inline")
}

func TestTryReserve(t *testing.T) {
	v := pushed(1, 2)
	require.NoError(t, v.TryReserve(3))
	assert.Equal(t, 8, v.Cap())
	require.NoError(t, v.TryReserveExact(7))
	assert.Equal(t, 9, v.Cap())

	assert.ErrorIs(t, v.TryReserve(math.MaxInt), ErrCapacityOverflow)
	assert.ErrorIs(t, v.TryReserveExact(math.MaxInt), ErrCapacityOverflow)
	assert.ErrorIs(t, v.TryReserve(math.MaxInt/2+1), ErrCapacityOverflow)
	assert.Equal(t, []int{1, 2}, v.AsSlice())
	assert.Equal(t, 9, v.Cap(), "failed reserve leaves capacity alone")

	assert.Panics(t, func() { v.Reserve(math.MaxInt) })
}

func TestGrow(t *testing.T) {
	v := pushed(1, 3)
	v.Grow(32)
	assert.Equal(t, 32, v.Cap())
	assert.Equal(t, []int{1, 3}, v.AsSlice())

	v.Grow(2)
	assert.False(t, v.Spilled(), "grow below inline size moves back inline")
	assert.Equal(t, []int{1, 3}, v.AsSlice())

	assert.Panics(t, func() { v.Grow(1) })
}

func TestShrinkToFit(t *testing.T) {
	v := pushed(1, 3, 2, 4, 5)
	require.Equal(t, 8, v.Cap())
	v.ShrinkToFit()
	assert.Equal(t, 5, v.Cap())

	_, _ = v.Pop()
	_, _ = v.Pop()
	v.ShrinkToFit()
	assert.False(t, v.Spilled())
	assert.Equal(t, []int{1, 3, 2}, v.AsSlice())
}

func TestInsertRemove(t *testing.T) {
	v := pushed(1, 3)
	v.Insert(0, 12)
	assert.Equal(t, []int{12, 1, 3}, v.AsSlice())

	v.InsertFromSlice(1, []int{3, 9})
	assert.Equal(t, []int{12, 3, 9, 1, 3}, v.AsSlice())
	assert.True(t, v.Spilled())

	v.InsertMany(5, slices.Values([]int{7, 8}))
	assert.Equal(t, []int{12, 3, 9, 1, 3, 7, 8}, v.AsSlice())

	assert.Equal(t, 12, v.Remove(0))
	assert.Equal(t, 3, v.SwapRemove(0))
	assert.Equal(t, []int{8, 9, 1, 3, 7}, v.AsSlice())

	assert.Panics(t, func() { v.Remove(5) })
	assert.Panics(t, func() { v.SwapRemove(-1) })
	assert.Panics(t, func() { v.Insert(6, 0) })
}

func TestRemoveZeroesVacatedSlot(t *testing.T) {
	v := SmallVec[*int, [2]*int]{}
	a, b := 1, 2
	v.Push(&a)
	v.Push(&b)
	v.Remove(0)
	assert.Nil(t, v.inline[1])
}

func TestExtendAndAppend(t *testing.T) {
	v := pushed(1, 2)
	v.ExtendFromSlice([]int{3, 9})
	assert.Equal(t, []int{1, 2, 3, 9}, v.AsSlice())

	v.Extend(slices.Values([]int{10, 11}))
	assert.Equal(t, []int{1, 2, 3, 9, 10, 11}, v.AsSlice())

	other := pushed(53, 12)
	v.Append(&other)
	assert.Equal(t, []int{1, 2, 3, 9, 10, 11, 53, 12}, v.AsSlice())
	assert.True(t, other.IsEmpty())
}

func TestExtendFromOwnStorage(t *testing.T) {
	type vec2 = SmallVec[int, [2]int]
	cases := []struct {
		name string
		op   func(v *vec2)
		want []int
	}{
		{"extend from slice while spilling", func(v *vec2) { v.ExtendFromSlice(v.AsSlice()) }, []int{1, 2, 1, 2}},
		{"extend from iterator while spilling", func(v *vec2) { v.Extend(v.Values()) }, []int{1, 2, 1, 2}},
		{"insert own prefix at front", func(v *vec2) { v.InsertFromSlice(0, v.AsSlice()[:1]) }, []int{1, 1, 2}},
		{"insert own tail in the middle", func(v *vec2) { v.InsertFromSlice(1, v.AsSlice()) }, []int{1, 1, 2, 2}},
		{"append to itself", func(v *vec2) { v.Append(v) }, []int{1, 2}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var v vec2
			v.Push(1)
			v.Push(2)
			c.op(&v)
			assert.Equal(t, c.want, v.AsSlice())
		})
	}

	spilled := pushed(1, 2, 3, 4, 5)
	require.True(t, spilled.Spilled())
	spilled.InsertFromSlice(2, spilled.AsSlice()[3:])
	assert.Equal(t, []int{1, 2, 4, 5, 3, 4, 5}, spilled.AsSlice())
}

func TestTruncateResize(t *testing.T) {
	v := pushed(1, 2, 3)
	v.Truncate(5)
	assert.Equal(t, 3, v.Len())
	v.Truncate(1)
	assert.Equal(t, []int{1}, v.AsSlice())
	assert.Panics(t, func() { v.Truncate(-1) })

	v.Resize(4, 12)
	assert.Equal(t, []int{1, 12, 12, 12}, v.AsSlice())
	v.Resize(2, 0)
	assert.Equal(t, []int{1, 12}, v.AsSlice())

	n := 0
	v.ResizeWith(6, func() int { n++; return n })
	assert.Equal(t, []int{1, 12, 1, 2, 3, 4}, v.AsSlice())

	v.Clear()
	assert.True(t, v.IsEmpty())
	assert.True(t, v.Spilled(), "clear keeps the allocation")
}

func TestDedup(t *testing.T) {
	v := pushed(1, 1, 4, 4, 1)
	Dedup(&v)
	assert.Equal(t, []int{1, 4, 1}, v.AsSlice())

	type pair struct{ a, b int }
	p := FromSlice[pair, [4]pair]([]pair{{1, 2}, {1, 5}, {4, 4}, {5, 4}})
	DedupByKey(&p, func(x pair) int { return x.a })
	assert.Equal(t, []pair{{1, 2}, {4, 4}, {5, 4}}, p.AsSlice())

	v = pushed(1, 2, 14, 15, 3)
	v.DedupFunc(func(a, b int) bool { return a/10 == b/10 })
	assert.Equal(t, []int{1, 14, 3}, v.AsSlice())
}

func TestIntoVec(t *testing.T) {
	v := pushed(1, 3, 2)
	assert.Equal(t, []int{1, 3, 2}, v.IntoVec())
	assert.True(t, v.IsEmpty())

	v = pushed(1, 2, 3, 4, 5)
	h := v.AsSlice()
	out := v.IntoVec()
	assert.Same(t, &h[0], &out[0])
	assert.False(t, v.Spilled())
}

func TestIntoInner(t *testing.T) {
	v := pushed(1, 3, 2)
	_, ok := v.IntoInner()
	assert.False(t, ok)
	assert.Equal(t, []int{1, 3, 2}, v.AsSlice())

	v.Push(4)
	a, ok := v.IntoInner()
	require.True(t, ok)
	assert.Equal(t, [4]int{1, 3, 2, 4}, a)
	assert.True(t, v.IsEmpty())

	// length matches even after a spill and a pop
	v = pushed(1, 2, 3, 4, 5)
	_, _ = v.Pop()
	a, ok = v.IntoInner()
	require.True(t, ok)
	assert.Equal(t, [4]int{1, 2, 3, 4}, a)
}

func TestTakeAndClone(t *testing.T) {
	v := pushed(1, 2, 3, 4, 5)
	c := v.Clone()
	c.Set(0, 99)
	assert.Equal(t, 1, v.At(0))

	moved := v.Take()
	assert.True(t, v.IsEmpty())
	assert.False(t, v.Spilled())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, moved.AsSlice())
}

func TestAsSliceCannotOverrunStorage(t *testing.T) {
	v := pushed(1, 2)
	s := append(v.AsSlice(), 3)
	s[0] = 10
	assert.Equal(t, []int{1, 2}, v.AsSlice())
}

func TestIterators(t *testing.T) {
	v := pushed(5, 6, 7)
	var idx, vals []int
	for i, x := range v.All() {
		idx = append(idx, i)
		vals = append(vals, x)
	}
	assert.Equal(t, []int{0, 1, 2}, idx)
	assert.Equal(t, []int{5, 6, 7}, vals)
	assert.Equal(t, []int{5, 6, 7}, slices.Collect(v.Values()))
}

func TestFormat(t *testing.T) {
	v := pushed(1, 2)
	assert.Equal(t, "[1 2]", v.String())
	assert.Equal(t, "[1 2]", fmt.Sprint(&v))
	assert.Equal(t, "[01 02]", fmt.Sprintf("%02d", &v))
}

func BenchmarkPush(b *testing.B) {
	for _, n := range []int{4, 64} {
		b.Run(fmt.Sprintf("Push_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				var v vec4
				for j := 0; j < n; j++ {
					v.Push(j)
				}
			}
		})
	}
}
