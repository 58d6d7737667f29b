// Package orchestration runs one or more folding strategies concurrently on
// the same sequence and compares their outcomes. It decouples the fold
// pipeline from presentation via ProgressReporter and ResultPresenter.
package orchestration
