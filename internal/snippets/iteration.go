package snippets

import (
	"context"
	"fmt"
	"io"
)

// IterationName is the registry key of the loop snippet.
const IterationName = "loop"

// iterationLimit is the exclusive upper bound of the reported range.
const iterationLimit = 5

// Square returns i*i.
func Square(i int) int {
	return i * i
}

// Classify returns "even" when i%2 == 0, else "odd".
func Classify(i int) string {
	if i%2 == 0 {
		return "even"
	}
	return "odd"
}

// ReportIterations writes three lines for every i in [0,5): the iteration
// number, its square and its parity.
func ReportIterations(out io.Writer) error {
	for i := 0; i < iterationLimit; i++ {
		if _, err := fmt.Fprintf(out, "Iteration: %d\n", i); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(out, "Square of %d is: %d\n", i, Square(i)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(out, "%d is %s\n", i, Classify(i)); err != nil {
			return err
		}
	}
	return nil
}

// NewIterationSnippet wraps ReportIterations as a Snippet.
func NewIterationSnippet() Snippet {
	return New(IterationName, "for-loop over [0,5) printing each index, its square and parity",
		func(_ context.Context, out io.Writer) error {
			return ReportIterations(out)
		})
}
