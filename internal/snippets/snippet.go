package snippets

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	apperrors "github.com/agbru/snippets/internal/errors"
)

// Snippet is a named, independently runnable unit that writes its output
// lines to out.
type Snippet interface {
	// Name returns the registry key of the snippet (e.g. "loop").
	Name() string
	// Description returns a one-line summary shown by --list.
	Description() string
	// Run executes the snippet start to finish.
	Run(ctx context.Context, out io.Writer) error
}

// RunFunc is the body of a snippet.
type RunFunc func(ctx context.Context, out io.Writer) error

type funcSnippet struct {
	name        string
	description string
	run         RunFunc
}

// New builds a Snippet from a plain function.
func New(name, description string, run RunFunc) Snippet {
	return &funcSnippet{name: name, description: description, run: run}
}

func (s *funcSnippet) Name() string        { return s.name }
func (s *funcSnippet) Description() string { return s.description }

// Run refuses to start once ctx is done; otherwise it delegates to the body.
func (s *funcSnippet) Run(ctx context.Context, out io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.run(ctx, out)
}

// Registry maps snippet names to snippets. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	snippets map[string]Snippet
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{snippets: make(map[string]Snippet)}
}

// Register adds s under its name. Registering the same name twice is an error.
func (r *Registry) Register(s Snippet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.snippets[s.Name()]; exists {
		return fmt.Errorf("snippet %q already registered", s.Name())
	}
	r.snippets[s.Name()] = s
	return nil
}

// Get returns the snippet registered under name.
func (r *Registry) Get(name string) (Snippet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.snippets[name]
	if !ok {
		return nil, apperrors.NewConfigError("unknown snippet %q (available: %v)", name, r.listLocked())
	}
	return s, nil
}

// MustGet is Get that panics on unknown names. Intended for tests and
// wiring code where the name is a constant.
func (r *Registry) MustGet(name string) Snippet {
	s, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return s
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked()
}

func (r *Registry) listLocked() []string {
	names := make([]string, 0, len(r.snippets))
	for name := range r.snippets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns every snippet, sorted by name.
func (r *Registry) GetAll() []Snippet {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]Snippet, 0, len(r.snippets))
	for _, name := range r.listLocked() {
		all = append(all, r.snippets[name])
	}
	return all
}

// Inputs carries the values the default snippets are built with.
type Inputs struct {
	// FibonacciN is the index passed to Fibonacci.
	FibonacciN int
	// FactorialInput is the value passed to Factorialize.
	FactorialInput int
	// Example is the collaborator the showcase depends on.
	Example ExampleFunc
}

// DefaultNames lists the names NewDefaultRegistry registers, sorted.
func DefaultNames() []string {
	return []string{FactorialName, FibonacciName, IterationName, ShowcaseName, TokensName}
}

// DefaultInputs returns fibonacci(10), factorialize(5) and the given collaborator.
func DefaultInputs(example ExampleFunc) Inputs {
	return Inputs{
		FibonacciN:     DefaultFibonacciN,
		FactorialInput: DefaultFactorialInput,
		Example:        example,
	}
}

// NewDefaultRegistry registers the built-in snippets.
// It fails when the showcase collaborator cannot be resolved.
func NewDefaultRegistry(in Inputs) (*Registry, error) {
	showcase, err := NewShowcase(in.Example)
	if err != nil {
		return nil, apperrors.SnippetError{Snippet: ShowcaseName, Cause: err}
	}
	r := NewRegistry()
	for _, s := range []Snippet{
		NewIterationSnippet(),
		NewFibonacciSnippet(in.FibonacciN),
		NewFactorialSnippet(in.FactorialInput),
		showcase,
		NewTokensSnippet(),
	} {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}
