// Package seq provides lazy integer sequences and the folds used to turn them
// into aggregate values.
//
// Sequences are plain iter.Seq values. Nothing is materialized: Range and
// Filter produce one value at a time as the consumer asks for it, so a
// pipeline such as
//
//	seq.Sum(seq.Filter(seq.Range(n), isMultiple))
//
// runs in O(1) memory whatever n is, and breaking out of a range loop over a
// filtered sequence stops the predicate from being evaluated any further.
//
// Every function is a pure function of its arguments. A sequence holds no
// cursor of its own: ranging over the same sequence twice, or building it
// twice from the same arguments, yields the same values in the same order.
// Malformed bounds never fail; they simply produce an empty sequence.
// Panics raised inside caller-supplied predicates or combiners propagate
// unmodified.
package seq
