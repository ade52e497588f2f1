package snippets

import (
	"context"
	"fmt"
	"io"

	apperrors "github.com/agbru/snippets/internal/errors"
)

const (
	// FactorialName is the registry key of the factorial snippet.
	FactorialName = "factorial"

	// DefaultFactorialInput is the value the snippet uses when none is configured.
	DefaultFactorialInput = 5

	// MaxFactorialInput is the largest input whose factorial fits in an int64.
	MaxFactorialInput = 20
)

// Factorialize returns num! computed iteratively, multiplying down from
// num-1 to 1. Negative input is rejected with a ValidationError.
func Factorialize(num int) (int, error) {
	if num < 0 {
		return 0, apperrors.ValidationError{Field: "num", Message: fmt.Sprintf("factorial of negative number %d", num)}
	}
	if num == 0 || num == 1 {
		return 1, nil
	}
	acc := num
	for i := num - 1; i >= 1; i-- {
		acc *= i
	}
	return acc, nil
}

// NewFactorialSnippet returns a snippet printing Factorialize(num).
func NewFactorialSnippet(num int) Snippet {
	return New(FactorialName, fmt.Sprintf("iterative factorial, prints %d!", num),
		func(_ context.Context, out io.Writer) error {
			result, err := Factorialize(num)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, result)
			return err
		})
}
