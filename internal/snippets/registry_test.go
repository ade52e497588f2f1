package snippets

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"

	apperrors "github.com/agbru/snippets/internal/errors"
)

func TestNewDefaultRegistry(t *testing.T) {
	t.Parallel()
	r, err := NewDefaultRegistry(DefaultInputs(noop))
	if err != nil {
		t.Fatalf("NewDefaultRegistry: %v", err)
	}

	want := []string{FactorialName, FibonacciName, IterationName, ShowcaseName, TokensName}
	got := r.List()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	all := r.GetAll()
	for i, s := range all {
		if s.Name() != want[i] {
			t.Errorf("GetAll()[%d].Name() = %q, want %q", i, s.Name(), want[i])
		}
		if s.Description() == "" {
			t.Errorf("%s has an empty description", s.Name())
		}
	}
}

func TestNewDefaultRegistry_MissingCollaborator(t *testing.T) {
	t.Parallel()
	_, err := NewDefaultRegistry(Inputs{FibonacciN: 10, FactorialInput: 5})

	var resErr apperrors.ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("expected ResolutionError, got %v", err)
	}
	var snippetErr apperrors.SnippetError
	if !errors.As(err, &snippetErr) || snippetErr.Snippet != ShowcaseName {
		t.Errorf("expected the error to name the showcase, got %v", err)
	}
}

func TestRegistry_Get(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	if err := r.Register(NewIterationSnippet()); err != nil {
		t.Fatal(err)
	}

	t.Run("known name", func(t *testing.T) {
		t.Parallel()
		s, err := r.Get(IterationName)
		if err != nil || s.Name() != IterationName {
			t.Errorf("Get(%q) = %v, %v", IterationName, s, err)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()
		_, err := r.Get("quicksort")
		var configErr apperrors.ConfigError
		if !errors.As(err, &configErr) {
			t.Errorf("expected ConfigError, got %v", err)
		}
	})

	t.Run("MustGet panics on unknown name", func(t *testing.T) {
		t.Parallel()
		defer func() {
			if recover() == nil {
				t.Error("MustGet should panic")
			}
		}()
		r.MustGet("quicksort")
	})
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	s := New("dup", "duplicate", func(context.Context, io.Writer) error { return nil })
	if err := r.Register(s); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(s); err == nil {
		t.Error("expected an error when registering the same name twice")
	}
}

func TestNewDefaultRegistry_CustomInputs(t *testing.T) {
	t.Parallel()
	r, err := NewDefaultRegistry(Inputs{FibonacciN: 20, FactorialInput: 10, Example: noop})
	if err != nil {
		t.Fatal(err)
	}
	var out strings.Builder
	if err := r.MustGet(FibonacciName).Run(context.Background(), &out); err != nil {
		t.Fatal(err)
	}
	if out.String() != "6765\n" {
		t.Errorf("fibonacci snippet printed %q", out.String())
	}
	out.Reset()
	if err := r.MustGet(FactorialName).Run(context.Background(), &out); err != nil {
		t.Fatal(err)
	}
	if out.String() != "3628800\n" {
		t.Errorf("factorial snippet printed %q", out.String())
	}
}

func TestDefaultNames_MatchRegistry(t *testing.T) {
	t.Parallel()
	r, err := NewDefaultRegistry(DefaultInputs(func() {}))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(DefaultNames(), r.List()) {
		t.Errorf("DefaultNames() = %v, registry lists %v", DefaultNames(), r.List())
	}
}
