package orchestration

// ProgressAggregator tracks the progress of several concurrent runs and
// exposes their average. Both the CLI spinner and tests use it.
type ProgressAggregator struct {
	progresses []float64
	completed  int
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	// SnippetIndex is the index of the snippet that sent the update.
	SnippetIndex int
	// Value is the raw progress value from the update (0.0 to 1.0).
	Value float64
	// AverageProgress is the aggregated average across all snippets.
	AverageProgress float64
	// Completed is the number of snippets that reported 1.0.
	Completed int
}

// NewProgressAggregator creates a new aggregator for the given number
// of snippets. Returns nil if numSnippets <= 0.
func NewProgressAggregator(numSnippets int) *ProgressAggregator {
	if numSnippets <= 0 {
		return nil
	}
	return &ProgressAggregator{progresses: make([]float64, numSnippets)}
}

// Update processes a single progress update and returns the aggregated result.
// Updates for unknown indices are ignored; values are clamped to [0, 1].
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	if update.SnippetIndex >= 0 && update.SnippetIndex < len(a.progresses) {
		value := min(max(update.Value, 0), 1)
		previous := a.progresses[update.SnippetIndex]
		if previous < 1 && value == 1 {
			a.completed++
		}
		a.progresses[update.SnippetIndex] = value
	}
	return AggregatedProgress{
		SnippetIndex:    update.SnippetIndex,
		Value:           update.Value,
		AverageProgress: a.CalculateAverage(),
		Completed:       a.completed,
	}
}

// CalculateAverage returns the current average progress without updating.
func (a *ProgressAggregator) CalculateAverage() float64 {
	var total float64
	for _, p := range a.progresses {
		total += p
	}
	return total / float64(len(a.progresses))
}

// NumSnippets returns the number of snippets being tracked.
func (a *ProgressAggregator) NumSnippets() int {
	return len(a.progresses)
}

// Completed returns how many snippets have finished.
func (a *ProgressAggregator) Completed() int {
	return a.completed
}

// IsMultiSnippet returns true if tracking more than one snippet.
func (a *ProgressAggregator) IsMultiSnippet() bool {
	return len(a.progresses) > 1
}

// DrainChannel reads all updates from the channel without processing.
// Use this when numSnippets <= 0 and updates should be discarded.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
