package snippets

import (
	"context"
	"fmt"
	"io"

	apperrors "github.com/agbru/snippets/internal/errors"
)

// ShowcaseName is the registry key of the syntax showcase snippet.
const ShowcaseName = "showcase"

// ExampleSymbol is the name under which the showcase collaborator is known.
const ExampleSymbol = "exampleFunction"

// ExampleFunc is the collaborator the showcase must be able to resolve.
// The showcase never calls it.
type ExampleFunc func()

// Showcase demonstrates declarations, a conditional, a counting loop and a
// countdown loop.
type Showcase struct {
	example ExampleFunc

	// Count drives the conditional and the countdown.
	Count int
	// Flag is a declared boolean with no role in the output.
	Flag bool
	// Greeting is a declared text value with no role in the output.
	Greeting string
}

var _ Snippet = (*Showcase)(nil)

// NewShowcase binds the collaborator and declares the showcase values.
// A nil collaborator fails with a ResolutionError.
func NewShowcase(example ExampleFunc) (*Showcase, error) {
	if example == nil {
		return nil, apperrors.ResolutionError{Symbol: ExampleSymbol}
	}
	return &Showcase{
		example:  example,
		Count:    5,
		Flag:     true,
		Greeting: "Hello, world!",
	}, nil
}

// Name implements Snippet.
func (s *Showcase) Name() string { return ShowcaseName }

// Description implements Snippet.
func (s *Showcase) Description() string {
	return "variables, if/else, a counting loop and a countdown loop"
}

// Run writes the conditional message, then both loops.
func (s *Showcase) Run(ctx context.Context, out io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, s.Compare()); err != nil {
		return err
	}
	for i := 0; i < 5; i++ {
		if _, err := fmt.Fprintf(out, "Iteration: %d\n", i); err != nil {
			return err
		}
	}
	_, _, err := Countdown(out, s.Count)
	return err
}

// Compare returns the message for the value < 10 branch.
func (s *Showcase) Compare() string {
	if s.Count < 10 {
		return "a is less than 10"
	}
	return "a is greater than or equal to 10"
}

// Countdown prints "a is <v>" while v > 0, decrementing v each time. It
// returns the number of iterations and the final value.
func Countdown(out io.Writer, start int) (iterations, final int, err error) {
	a := start
	for a > 0 {
		if _, err := fmt.Fprintf(out, "a is %d\n", a); err != nil {
			return iterations, a, err
		}
		a--
		iterations++
	}
	return iterations, a, nil
}

// Sum returns x + y.
func Sum(x, y int) int {
	return x + y
}
