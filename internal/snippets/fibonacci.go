package snippets

import (
	"context"
	"fmt"
	"io"
)

const (
	// FibonacciName is the registry key of the fibonacci snippet.
	FibonacciName = "fibonacci"

	// DefaultFibonacciN is the index the snippet computes when none is configured.
	DefaultFibonacciN = 10

	// MaxFibonacciIndex is the largest n for which F(n) fits in an int64.
	MaxFibonacciIndex = 92
)

// Fibonacci returns the nth Fibonacci number, 1-indexed: F(1)=F(2)=1.
// Any n < 1 yields 0. The pair (a, b) holds F(i-1), F(i) at the top of
// iteration i.
func Fibonacci(n int) int {
	if n < 1 {
		return 0
	}
	a, b := 0, 1
	for i := 1; i < n; i++ {
		a, b = b, a+b
	}
	return b
}

// NewFibonacciSnippet returns a snippet printing Fibonacci(n).
func NewFibonacciSnippet(n int) Snippet {
	return New(FibonacciName, fmt.Sprintf("iterative Fibonacci, prints F(%d)", n),
		func(_ context.Context, out io.Writer) error {
			_, err := fmt.Fprintln(out, Fibonacci(n))
			return err
		})
}
