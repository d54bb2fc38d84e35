package seq

import (
	"slices"
	"testing"
)

func isMultipleOf3Or5(v int) bool { return v%3 == 0 || v%5 == 0 }

func TestRange(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		stop int
		want []int
	}{
		{"zero stop is empty", 0, nil},
		{"negative stop is empty", -4, nil},
		{"one element", 1, []int{0}},
		{"five elements", 5, []int{0, 1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := slices.Collect(Range(tt.stop))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Range(%d) = %v, want %v", tt.stop, got, tt.want)
			}
		})
	}
}

func TestRangeFrom(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		start, stop int64
		want        []int64
	}{
		{"empty when start equals stop", 3, 3, nil},
		{"empty when start exceeds stop", 7, 2, nil},
		{"negative start", -2, 2, []int64{-2, -1, 0, 1}},
		{"one to six", 1, 6, []int64{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := slices.Collect(RangeFrom(tt.start, tt.stop))
			if !slices.Equal(got, tt.want) {
				t.Errorf("RangeFrom(%d, %d) = %v, want %v", tt.start, tt.stop, got, tt.want)
			}
		})
	}
}

func TestRange_EqualsRangeFromZero(t *testing.T) {
	t.Parallel()
	for _, stop := range []int{-3, 0, 1, 17} {
		a := slices.Collect(Range(stop))
		b := slices.Collect(RangeFrom(0, stop))
		if !slices.Equal(a, b) {
			t.Errorf("Range(%d) = %v, RangeFrom(0, %d) = %v", stop, a, stop, b)
		}
	}
}

func TestRange_UnsignedNearMax(t *testing.T) {
	t.Parallel()
	const top = ^uint8(0)
	got := slices.Collect(RangeFrom(top-2, top))
	want := []uint8{top - 2, top - 1}
	if !slices.Equal(got, want) {
		t.Errorf("RangeFrom(%d, %d) = %v, want %v", top-2, top, got, want)
	}
}

func TestSum(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"empty range", Sum(Range(0)), 0},
		{"range below 10", Sum(Range(10)), 45},
		{"multiples of 3 or 5 below 10", Sum(Filter(Range(10), isMultipleOf3Or5)), 23},
		{"multiples of 3 or 5 below 1000", Sum(Filter(Range(1000), isMultipleOf3Or5)), 233168},
		{"multiples of 3 or 5 in one period", Sum(Filter(RangeFrom(1, 16), isMultipleOf3Or5)), 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.got != tt.want {
				t.Errorf("got %d, want %d", tt.got, tt.want)
			}
		})
	}
}

func TestProduct(t *testing.T) {
	t.Parallel()
	if got := Product(RangeFrom(1, 6)); got != 120 {
		t.Errorf("Product(RangeFrom(1, 6)) = %d, want 120", got)
	}
	if got := Product(Range(0)); got != 1 {
		t.Errorf("Product of empty sequence = %d, want 1", got)
	}
	if got := Product(slices.Values([]int64{3, 5})); got != 15 {
		t.Errorf("Product([3 5]) = %d, want 15", got)
	}
}

func TestReduce_EmptyReturnsInitial(t *testing.T) {
	t.Parallel()
	called := false
	combine := func(a string, _ int) string {
		called = true
		return a + "!"
	}
	if got := Reduce(Range(0), combine, "initial"); got != "initial" {
		t.Errorf("Reduce(empty) = %q, want %q", got, "initial")
	}
	if called {
		t.Error("combine must not be called on an empty sequence")
	}
}

func TestReduce_IsLeftFold(t *testing.T) {
	t.Parallel()
	// Subtraction is not associative, so only a left fold gives ((10-1)-2)-3.
	got := Reduce(RangeFrom(1, 4), func(a, x int) int { return a - x }, 10)
	if got != 4 {
		t.Errorf("Reduce(-) = %d, want 4", got)
	}

	var order []int
	Reduce(Range(4), func(_ struct{}, x int) struct{} {
		order = append(order, x)
		return struct{}{}
	}, struct{}{})
	if !slices.Equal(order, []int{0, 1, 2, 3}) {
		t.Errorf("combine saw %v, want ascending order", order)
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	t.Parallel()
	src := slices.Values([]int{9, 2, 15, 4, 10, 3})
	got := slices.Collect(Filter(src, isMultipleOf3Or5))
	want := []int{9, 15, 10, 3}
	if !slices.Equal(got, want) {
		t.Errorf("Filter = %v, want %v", got, want)
	}
}

// TestFilter_Lazy checks that pulling the first k matches only evaluates the
// predicate on the prefix of the source that produced them.
func TestFilter_Lazy(t *testing.T) {
	t.Parallel()
	calls := 0
	pred := func(v int) bool {
		calls++
		return isMultipleOf3Or5(v)
	}

	var got []int
	for v := range Filter(RangeFrom(1, 1_000_000_000), pred) {
		got = append(got, v)
		if len(got) == 3 {
			break
		}
	}

	if !slices.Equal(got, []int{3, 5, 6}) {
		t.Fatalf("first three matches = %v, want [3 5 6]", got)
	}
	if calls != 6 {
		t.Errorf("predicate evaluated %d times, want 6", calls)
	}
}

func TestTake(t *testing.T) {
	t.Parallel()
	pulled := 0
	src := func(yield func(int) bool) {
		for v := range Range(100) {
			pulled++
			if !yield(v) {
				return
			}
		}
	}

	got := slices.Collect(Take(src, 4))
	if !slices.Equal(got, []int{0, 1, 2, 3}) {
		t.Errorf("Take(4) = %v", got)
	}
	if pulled != 4 {
		t.Errorf("source pulled %d times, want 4", pulled)
	}

	if n := Count(Take(Range(100), 0)); n != 0 {
		t.Errorf("Take(0) yielded %d elements", n)
	}
	if n := Count(Take(Range(3), 10)); n != 3 {
		t.Errorf("Take past the end yielded %d elements, want 3", n)
	}
}

func TestCount(t *testing.T) {
	t.Parallel()
	if got := Count(Filter(RangeFrom(1, 16), isMultipleOf3Or5)); got != 7 {
		t.Errorf("Count = %d, want 7", got)
	}
}

// TestIndependentSequences checks that neither repeated construction nor
// repeated iteration shares a cursor.
func TestIndependentSequences(t *testing.T) {
	t.Parallel()
	a := Filter(Range(50), isMultipleOf3Or5)
	b := Filter(Range(50), isMultipleOf3Or5)

	first := slices.Collect(a)
	if !slices.Equal(first, slices.Collect(b)) {
		t.Error("sequences built from identical arguments differ")
	}
	if !slices.Equal(first, slices.Collect(a)) {
		t.Error("second pass over the same sequence differs from the first")
	}
}

func TestPanicsPropagate(t *testing.T) {
	t.Parallel()
	defer func() {
		r := recover()
		if r != "boom" {
			t.Errorf("recovered %v, want boom", r)
		}
	}()
	Sum(Filter(Range(10), func(v int) bool {
		if v == 4 {
			panic("boom")
		}
		return true
	}))
	t.Error("expected panic from predicate")
}

func BenchmarkSumFilterRange(b *testing.B) {
	for b.Loop() {
		_ = Sum(Filter(Range(100_000), isMultipleOf3Or5))
	}
}
