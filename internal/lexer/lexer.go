// Package lexer splits TypeScript-like source into a small, fixed set of
// token kinds: letter-only words (some of them keywords), quoted strings,
// brackets and a handful of operators. Anything else is reported as an
// Illegal token and skipped, so lexing never stops early.
package lexer

import (
	"unicode/utf8"
)

// Lexer produces tokens from an input string.
type Lexer struct {
	input string
	pos   int
	line  int
}

// New returns a Lexer positioned at the start of input.
func New(input string) *Lexer {
	return &Lexer{input: input, line: 1}
}

// Next returns the next token. ok is false once the input is exhausted.
func (l *Lexer) Next() (tok Token, ok bool) {
	l.skipBlanks()
	if l.pos >= len(l.input) {
		return Token{}, false
	}

	start := l.pos
	ch := l.input[l.pos]
	switch ch {
	case '(':
		return l.emit(OpenParen, start, 1), true
	case ')':
		return l.emit(CloseParen, start, 1), true
	case '[':
		return l.emit(OpenBracket, start, 1), true
	case ']':
		return l.emit(CloseBracket, start, 1), true
	case '{':
		return l.emit(OpenBrace, start, 1), true
	case '}':
		return l.emit(CloseBrace, start, 1), true
	case ',':
		return l.emit(Comma, start, 1), true
	case ':':
		return l.emit(Colon, start, 1), true
	case ';':
		return l.emit(Semicolon, start, 1), true
	case '=':
		return l.emit(Equals, start, 1), true
	case '+':
		if l.peek(1) == '=' {
			return l.emit(PlusEquals, start, 2), true
		}
		return l.emit(Plus, start, 1), true
	case '-':
		if l.peek(1) == '=' {
			return l.emit(MinusEquals, start, 2), true
		}
	case '"', '\'':
		if end := l.closingQuote(ch); end > 0 {
			return l.emit(StringContent, start, end-start+1), true
		}
	default:
		if isLetter(ch) {
			end := start
			for end < len(l.input) && isLetter(l.input[end]) {
				end++
			}
			tok := l.emit(Ident, start, end-start)
			tok.Kind = LookupWord(tok.Value)
			return tok, true
		}
	}

	_, width := utf8.DecodeRuneInString(l.input[start:])
	return l.emit(Illegal, start, width), true
}

// All lexes the rest of the input, Illegal tokens included.
func (l *Lexer) All() []Token {
	var toks []Token
	for {
		tok, ok := l.Next()
		if !ok {
			return toks
		}
		toks = append(toks, tok)
	}
}

// Tokenize lexes input in one call.
func Tokenize(input string) []Token {
	return New(input).All()
}

func (l *Lexer) emit(kind Kind, start, width int) Token {
	l.pos = start + width
	return Token{Kind: kind, Value: l.input[start:l.pos], Line: l.line, Pos: start}
}

func (l *Lexer) peek(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

// closingQuote returns the index of the quote closing the string opened at
// l.pos, or -1. Strings do not span escapes.
func (l *Lexer) closingQuote(q byte) int {
	for i := l.pos + 1; i < len(l.input); i++ {
		if l.input[i] == q {
			return i
		}
	}
	return -1
}

// skipBlanks drops spaces and tabs and counts newlines.
func (l *Lexer) skipBlanks() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t':
		case '\n':
			l.line++
		default:
			return
		}
		l.pos++
	}
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
