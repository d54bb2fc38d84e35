package seq

import "testing"

// FuzzRangeFrom checks the element count and sum of arbitrary small ranges
// against their closed forms.
func FuzzRangeFrom(f *testing.F) {
	f.Add(int64(0), int64(10))
	f.Add(int64(5), int64(2))
	f.Add(int64(-7), int64(7))

	f.Fuzz(func(t *testing.T, start, stop int64) {
		if start < -1<<20 || start > 1<<20 || stop < -1<<20 || stop > 1<<20 {
			t.Skip()
		}
		n := stop - start
		if n < 0 {
			n = 0
		}
		if got := int64(Count(RangeFrom(start, stop))); got != n {
			t.Fatalf("Count(RangeFrom(%d, %d)) = %d, want %d", start, stop, got, n)
		}
		want := int64(0)
		if n > 0 {
			want = (start + stop - 1) * n / 2
		}
		if got := Sum(RangeFrom(start, stop)); got != want {
			t.Fatalf("Sum(RangeFrom(%d, %d)) = %d, want %d", start, stop, got, want)
		}
	})
}
