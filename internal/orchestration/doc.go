// Package orchestration coordinates the execution of snippets and aggregates
// their results for presentation. It decouples business logic from
// presentation via ProgressReporter and ResultPresenter interfaces.
package orchestration
