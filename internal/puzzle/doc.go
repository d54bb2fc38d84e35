// Package puzzle holds the puzzle catalog and the solvers behind it.
//
// A Puzzle turns a Params value (divisors and an exclusive upper bound) into
// an Explanation: the answer, the derivation that produced it and a running
// tally of the first matching numbers. Solvers are interchangeable strategies
// for the answer alone and are registered in a SolverFactory so that several
// of them can run concurrently and be cross-checked.
//
// Everything here is a pure function of its inputs. Only the solvers observe
// a context, between chunks of work.
package puzzle
