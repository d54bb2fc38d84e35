// Package orchestration runs puzzle solvers concurrently and cross-checks
// their answers. It decouples the solving logic from presentation via the
// ProgressReporter and ResultPresenter interfaces.
package orchestration
