package snippets

import (
	"context"
	_ "embed"
	"fmt"
	"io"

	"github.com/agbru/snippets/internal/lexer"
)

// TokensName is the registry key of the token listing snippet.
const TokensName = "tokens"

// ShowcaseSource is the TypeScript program the showcase snippet mirrors.
//
//go:embed showcase.ts
var ShowcaseSource string

// WriteTokens lexes src and writes one line per token, illegal characters
// included, in input order. It returns the number of tokens written.
func WriteTokens(ctx context.Context, out io.Writer, src string) (int, error) {
	n := 0
	for _, tok := range lexer.Tokenize(src) {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if _, err := fmt.Fprintln(out, tok); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// NewTokensSnippet returns a snippet that lexes ShowcaseSource.
func NewTokensSnippet() Snippet {
	return New(TokensName, "lexes the showcase source and prints every token",
		func(ctx context.Context, out io.Writer) error {
			_, err := WriteTokens(ctx, out, ShowcaseSource)
			return err
		})
}
