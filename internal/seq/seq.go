package seq

import "iter"

// Integer is the set of types Range can count over.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Number is the set of types Sum and Product can fold.
type Number interface {
	Integer | ~float32 | ~float64
}

// Range returns the half-open sequence 0, 1, …, stop-1.
// It is empty when stop <= 0.
func Range[T Integer](stop T) iter.Seq[T] {
	return RangeFrom(0, stop)
}

// RangeFrom returns the half-open sequence start, start+1, …, stop-1.
// It is empty when start >= stop.
func RangeFrom[T Integer](start, stop T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := start; v < stop; v++ {
			if !yield(v) {
				return
			}
		}
	}
}

// Filter returns the elements of s for which pred reports true, in source
// order. pred runs only on elements the consumer actually pulls.
func Filter[T any](s iter.Seq[T], pred func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range s {
			if pred(v) && !yield(v) {
				return
			}
		}
	}
}

// Take returns at most the first n elements of s. The source is not pulled
// past the n-th element.
func Take[T any](s iter.Seq[T], n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if n <= 0 {
			return
		}
		taken := 0
		for v := range s {
			if !yield(v) {
				return
			}
			taken++
			if taken == n {
				return
			}
		}
	}
}

// Reduce folds s from the left: combine(…combine(combine(initial, e0), e1)…, en-1).
// It returns initial unchanged when s is empty.
func Reduce[T, A any](s iter.Seq[T], combine func(A, T) A, initial A) A {
	acc := initial
	for v := range s {
		acc = combine(acc, v)
	}
	return acc
}

// Sum adds the elements of s, starting from 0.
func Sum[T Number](s iter.Seq[T]) T {
	return Reduce(s, func(a, x T) T { return a + x }, 0)
}

// Product multiplies the elements of s, starting from 1.
func Product[T Number](s iter.Seq[T]) T {
	return Reduce(s, func(a, x T) T { return a * x }, 1)
}

// Count returns the number of elements in s.
func Count[T any](s iter.Seq[T]) int {
	return Reduce(s, func(n int, _ T) int { return n + 1 }, 0)
}
