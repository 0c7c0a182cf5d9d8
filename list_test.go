package versioned

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/arbitrary"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultGopterParameters = gopter.DefaultTestParameters()

func mustGet[E any](t *testing.T, s ReadableSequence[E], i int) E {
	t.Helper()
	e, err := s.Get(i)
	require.NoError(t, err, "get %d", i)
	return e
}

func TestEmptyList(t *testing.T) {
	t.Parallel()
	l := EmptyList[string]()
	require.Equal(t, 0, l.Size())
	require.True(t, l.IsEmpty())
	_, err := l.Get(0)
	require.ErrorIs(t, err, ErrOutOfRange)
	require.Empty(t, l.ToSlice())
}

func TestZeroList(t *testing.T) {
	t.Parallel()
	var l List[int]
	require.Equal(t, 0, l.Size())
	_, err := l.Get(0)
	require.ErrorIs(t, err, ErrOutOfRange)
	require.False(t, l.Iterator().HasNext())

	l2 := Add(l, 7)
	require.Equal(t, 0, l.Size())
	require.Equal(t, []int{7}, l2.ToSlice())

	b := l.Builder()
	require.NoError(t, b.Add(1))
	require.Equal(t, []int{1}, b.Build().ToSlice())
}

func TestWalkthrough(t *testing.T) {
	t.Parallel()
	v0 := EmptyList[string]()
	v1 := Add(v0, "a")
	require.Equal(t, "a", mustGet[string](t, v1, 0))
	require.Equal(t, 1, v1.Size())

	builder := v1.Builder()
	require.NoError(t, builder.Add("b"))
	require.NoError(t, builder.Add("c"))
	v2 := builder.Build()
	require.Equal(t, 3, v2.Size())
	require.Equal(t, "b", mustGet[string](t, v2, 1))
	require.Equal(t, "c", mustGet[string](t, v2, 2))

	require.Equal(t, 1, v1.Size())
	require.Equal(t, 0, v0.Size())
}

func TestBranchIndependence(t *testing.T) {
	t.Parallel()
	v := ListOf(1, 2, 3)
	b1 := Add(v, 10)
	b2 := Add(v, 20)
	assert.Equal(t, []int{1, 2, 3}, v.ToSlice())
	assert.Equal(t, []int{1, 2, 3, 10}, b1.ToSlice())
	assert.Equal(t, []int{1, 2, 3, 20}, b2.ToSlice())

	// index 3 exists in the store, but not at v
	_, err := v.Get(3)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestBuildDoesNotInvalidateBuilder(t *testing.T) {
	t.Parallel()
	b := EmptyList[int]().Builder()
	require.NoError(t, b.Add(1))
	first := b.Build()
	require.NoError(t, b.Add(2))
	second := b.Build()
	_, err := b.Set(0, 100)
	require.NoError(t, err)
	third := b.Build()

	assert.Equal(t, []int{1}, first.ToSlice())
	assert.Equal(t, []int{1, 2}, second.ToSlice())
	assert.Equal(t, []int{100, 2}, third.ToSlice())
}

func TestBuilderDoesNotAffectSource(t *testing.T) {
	t.Parallel()
	v := ListOf("x", "y")
	b := v.Builder()
	prev, err := b.Set(1, "z")
	require.NoError(t, err)
	require.Equal(t, "y", prev)
	require.NoError(t, b.Add("w"))
	assert.Equal(t, []string{"x", "y"}, v.ToSlice())
	assert.Equal(t, []string{"x", "z", "w"}, b.ToSlice())
}

func TestSet(t *testing.T) {
	t.Parallel()
	b := ListOf(1, 2, 3).Builder()
	prev, err := b.Set(0, 9)
	require.NoError(t, err)
	require.Equal(t, 1, prev)
	require.Equal(t, 3, b.Size())

	_, err = b.Set(3, 4)
	require.ErrorIs(t, err, ErrOutOfRange, "set at size must not append")
	_, err = b.Set(-1, 4)
	require.ErrorIs(t, err, ErrOutOfRange)
	require.Equal(t, []int{9, 2, 3}, b.ToSlice())
}

func TestGetOutOfRange(t *testing.T) {
	t.Parallel()
	l := ListOf(1, 2)
	for _, i := range []int{-1, 2, 3, 100} {
		_, err := l.Get(i)
		require.ErrorIs(t, err, ErrOutOfRange, "index %d", i)
	}
}

func TestNilElements(t *testing.T) {
	t.Parallel()
	l := ListOf[*int](nil, nil)
	require.Equal(t, 2, l.Size())
	e, err := l.Get(1)
	require.NoError(t, err)
	require.Nil(t, e)
}

func TestListReadOnly(t *testing.T) {
	t.Parallel()
	var zero List[int]
	for _, l := range []List[int]{ListOf(1, 2, 3), zero} {
		want := l.ToSlice()
		require.ErrorIs(t, l.Add(4), ErrReadOnly)
		_, err := l.Set(0, 4)
		require.ErrorIs(t, err, ErrReadOnly)
		require.ErrorIs(t, l.Insert(0, 4), ErrReadOnly)
		_, err = l.Remove(0)
		require.ErrorIs(t, err, ErrReadOnly)
		require.ErrorIs(t, l.Clear(), ErrReadOnly)

		sub, err := l.SubList(0, l.Size())
		require.NoError(t, err)
		_, err = sub.Set(0, 4)
		require.ErrorIs(t, err, ErrReadOnly)
		require.ErrorIs(t, sub.Add(4), ErrReadOnly)

		require.Equal(t, want, l.ToSlice())
	}
}

func TestZeroListBuilder(t *testing.T) {
	t.Parallel()
	var b ListBuilder[int]
	require.ErrorIs(t, b.Add(1), ErrReadOnly)
	_, err := b.Set(0, 1)
	require.ErrorIs(t, err, ErrReadOnly)
	require.ErrorIs(t, b.Clear(), ErrReadOnly)
	require.Equal(t, 0, b.Size())
	require.Equal(t, 0, b.Build().Size())
}

func TestListBuilderUnsupported(t *testing.T) {
	t.Parallel()
	b := ListOf(1, 2, 3).Builder()
	require.ErrorIs(t, b.Insert(1, 4), ErrUnsupported)
	_, err := b.Remove(0)
	require.ErrorIs(t, err, ErrUnsupported)
	require.ErrorIs(t, b.Clear(), ErrUnsupported)
	require.Equal(t, []int{1, 2, 3}, b.ToSlice())
}

func TestListIterator(t *testing.T) {
	t.Parallel()
	it := ListOf("a", "b", "c").Iterator()
	require.False(t, it.HasPrevious())
	require.Equal(t, -1, it.PreviousIndex())

	var got []string
	for it.HasNext() {
		e, err := it.Next()
		require.NoError(t, err)
		got = append(got, e)
	}
	require.Equal(t, []string{"a", "b", "c"}, got)
	require.Equal(t, 3, it.NextIndex())
	_, err := it.Next()
	require.ErrorIs(t, err, ErrExhausted)

	e, err := it.Previous()
	require.NoError(t, err)
	require.Equal(t, "c", e)
	e, err = it.Previous()
	require.NoError(t, err)
	require.Equal(t, "b", e)
	e, err = it.Next()
	require.NoError(t, err)
	require.Equal(t, "b", e)

	require.ErrorIs(t, it.Set("x"), ErrUnsupported)
	require.ErrorIs(t, it.Add("x"), ErrUnsupported)
	require.ErrorIs(t, it.Remove(), ErrUnsupported)
}

func TestListIteratorExhaustion(t *testing.T) {
	t.Parallel()
	for _, n := range []int{0, 1, 5} {
		b := EmptyList[int]().Builder()
		for i := 0; i < n; i++ {
			require.NoError(t, b.Add(i))
		}
		it := b.Build().Iterator()
		for i := 0; i < n; i++ {
			_, err := it.Next()
			require.NoError(t, err)
		}
		_, err := it.Next()
		require.ErrorIs(t, err, ErrExhausted, "size %d", n)
		_, err = it.Next()
		require.ErrorIs(t, err, ErrExhausted, "size %d", n)
	}
	_, err := EmptyList[int]().Iterator().Previous()
	require.ErrorIs(t, err, ErrExhausted)
}

func TestIteratorSizeFixedAtCreation(t *testing.T) {
	t.Parallel()
	b := ListOf(1, 2).Builder()
	it := b.Iterator()
	require.NoError(t, b.Add(3))
	n := 0
	for it.HasNext() {
		_, err := it.Next()
		require.NoError(t, err)
		n++
	}
	require.Equal(t, 2, n)
}

func TestSubList(t *testing.T) {
	t.Parallel()
	b := ListOf(0, 1, 2, 3, 4).Builder()
	sub, err := b.SubList(1, 4)
	require.NoError(t, err)
	require.Equal(t, 3, sub.Size())
	require.Equal(t, 1, mustGet[int](t, sub, 0))
	require.Equal(t, 3, mustGet[int](t, sub, 2))
	_, err = sub.Get(3)
	require.ErrorIs(t, err, ErrOutOfRange)

	before := b.Build()
	prev, err := sub.Set(1, 20)
	require.NoError(t, err)
	require.Equal(t, 2, prev)
	require.Equal(t, []int{0, 1, 20, 3, 4}, b.ToSlice())
	require.Equal(t, []int{0, 1, 2, 3, 4}, before.ToSlice())
	require.ErrorIs(t, sub.Add(5), ErrUnsupported)

	_, err = b.SubList(-1, 2)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = b.SubList(0, 6)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = b.SubList(3, 2)
	require.ErrorIs(t, err, ErrInvalidRange)
	empty, err := b.SubList(5, 5)
	require.NoError(t, err)
	require.Equal(t, 0, empty.Size())
}

func TestListEqual(t *testing.T) {
	t.Parallel()
	a := ListOf(1, 2, 3)
	b := Add(Add(Add(EmptyList[int](), 1), 2), 3)
	c := ListOf(1, 2, 4)
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(ListOf(1, 2)))
	assert.False(t, a.Equal(nil))

	builder := a.Builder()
	assert.True(t, builder.Equal(a))
	assert.True(t, a.Equal(builder))

	// same content reached through an overwrite
	ob := ListOf(1, 2, 9).Builder()
	_, err := ob.Set(2, 3)
	require.NoError(t, err)
	assert.True(t, ob.Build().Equal(a))
}

func TestListDigest(t *testing.T) {
	t.Parallel()
	a, err := ListOf("x", "y").Digest()
	require.NoError(t, err)
	b, err := Add(ListOf("x"), "y").Digest()
	require.NoError(t, err)
	c, err := ListOf("y", "x").Digest()
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.NotEqual(t, a, c)

	_, err = ListOf(func() {}).Digest()
	require.Error(t, err)
}

func TestListRoundTrip(t *testing.T) {
	t.Parallel()
	b := ListOf("a", "b").Builder()
	require.NoError(t, b.Add("c"))
	built := b.Build()
	again := built.Builder().Build()
	require.True(t, built.Equal(again))
	require.Equal(t, built.ToSlice(), again.ToSlice())
}

func TestListIter(t *testing.T) {
	t.Parallel()
	var indexes []int
	stop := errors.New("stop")
	err := ListOf(5, 6, 7).Iter(func(i int, e int) error {
		indexes = append(indexes, i)
		if e == 6 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, []int{0, 1}, indexes)
}

func TestListLookupCache(t *testing.T) {
	t.Parallel()
	cache := NewLookupCache(100)
	cached := NewList[int](&Options{LookupCache: cache})
	plain := EmptyList[int]()
	cb, pb := cached.Builder(), plain.Builder()
	var cachedSnaps, plainSnaps []List[int]
	for i := 0; i < 50; i++ {
		require.NoError(t, cb.Add(i))
		require.NoError(t, pb.Add(i))
		if i%7 == 0 {
			_, err := cb.Set(i/2, -i)
			require.NoError(t, err)
			_, err = pb.Set(i/2, -i)
			require.NoError(t, err)
		}
		cachedSnaps = append(cachedSnaps, cb.Build())
		plainSnaps = append(plainSnaps, pb.Build())
	}
	// read twice, so the second pass comes from the cache
	for pass := 0; pass < 2; pass++ {
		for i := range cachedSnaps {
			require.Equal(t, plainSnaps[i].ToSlice(), cachedSnaps[i].ToSlice())
		}
	}

	// a shared cache keeps stores apart
	other := NewList[int](&Options{LookupCache: cache})
	other = Add(other, 1000)
	require.Equal(t, []int{1000}, other.ToSlice())
	require.Equal(t, 0, mustGet[int](t, cachedSnaps[0], 0))
}

func TestListDebug(t *testing.T) {
	t.Parallel()
	l := Add(NewList[string](&Options{Debug: true}), "traced")
	require.Equal(t, []string{"traced"}, l.ToSlice())
}

func TestAppendRecall(t *testing.T) {
	t.Parallel()
	properties := gopter.NewProperties(defaultGopterParameters)
	arbitraries := arbitrary.DefaultArbitraries()

	properties.Property("get every append",
		arbitraries.ForAll(
			func(elems []int) bool {
				b := EmptyList[int]().Builder()
				for _, e := range elems {
					if b.Add(e) != nil {
						return false
					}
				}
				l := b.Build()
				if l.Size() != len(elems) {
					return false
				}
				for i, e := range elems {
					got, err := l.Get(i)
					if err != nil || got != e {
						return false
					}
				}
				return true
			}))
	properties.TestingRun(t)
}

func TestListBranches(t *testing.T) {
	t.Parallel()
	properties := gopter.NewProperties(defaultGopterParameters)

	properties.Property("branches derived from one value do not see each other",
		prop.ForAll(
			func(base []int, x, y int) bool {
				v := ListOf(base...)
				b1 := Add(v, x)
				b2 := Add(v, y)
				want1 := append(append([]int{}, base...), x)
				want2 := append(append([]int{}, base...), y)
				return assert.ObjectsAreEqual(base, nonNil(v.ToSlice())) &&
					assert.ObjectsAreEqual(want1, b1.ToSlice()) &&
					assert.ObjectsAreEqual(want2, b2.ToSlice())
			},
			gen.SliceOf(gen.Int()).Map(nonNil[int]),
			gen.Int(),
			gen.Int(),
		))
	properties.Property("build, builder, build is structurally the same",
		prop.ForAll(
			func(base []int, more []int) bool {
				b := ListOf(base...).Builder()
				for _, e := range more {
					if b.Add(e) != nil {
						return false
					}
				}
				built := b.Build()
				return built.Builder().Build().Equal(built)
			},
			gen.SliceOf(gen.Int()),
			gen.SliceOf(gen.Int()),
		))
	properties.Property("reads have no side effects",
		prop.ForAll(
			func(base []int) bool {
				l := ListOf(base...)
				first := l.ToSlice()
				n := l.Size()
				return assert.ObjectsAreEqual(first, l.ToSlice()) && n == l.Size()
			},
			gen.SliceOf(gen.Int()),
		))
	properties.TestingRun(t)
}

func nonNil[E any](s []E) []E {
	if s == nil {
		return []E{}
	}
	return s
}
