package lexer

import (
	"fmt"
	"strings"
)

// Kind identifies the lexical category of a token.
type Kind string

const (
	// Illegal marks a character no rule matches. It is reported and skipped.
	Illegal Kind = "ILLEGAL"

	Ident         Kind = "ID"
	StringContent Kind = "STRINGCONTENT"

	OpenParen    Kind = "OPENPAREN"
	CloseParen   Kind = "CLOSEPAREN"
	OpenBracket  Kind = "OPENBRACKET"
	CloseBracket Kind = "CLOSEBRACKET"
	OpenBrace    Kind = "OPENBRACE"
	CloseBrace   Kind = "CLOSEBRACE"
	Comma        Kind = "COMMA"
	Colon        Kind = "COLON"
	Semicolon    Kind = "SEMICOLON"
	Equals       Kind = "EQUALS"
	PlusEquals   Kind = "PLUSEQUALS"
	MinusEquals  Kind = "MINUSEQUALS"
	Plus         Kind = "PLUS"

	While  Kind = "WHILE"
	Return Kind = "RETURN"
	True   Kind = "TRUE"
	Try    Kind = "TRY"
	Throw  Kind = "THROW"
	Var    Kind = "VAR"
	Let    Kind = "LET"
	With   Kind = "WITH"
	This   Kind = "THIS"
	String Kind = "STRING"
	Error  Kind = "ERROR"
)

// reserved maps lower-cased words to their keyword kind.
var reserved = map[string]Kind{
	"while":  While,
	"return": Return,
	"true":   True,
	"try":    Try,
	"throw":  Throw,
	"var":    Var,
	"let":    Let,
	"with":   With,
	"this":   This,
	"string": String,
	"error":  Error,
}

// LookupWord returns the keyword kind of word, ignoring case, or Ident.
func LookupWord(word string) Kind {
	if kind, ok := reserved[strings.ToLower(word)]; ok {
		return kind
	}
	return Ident
}

// Token is a single lexeme.
type Token struct {
	Kind  Kind
	Value string
	// Line is 1-based.
	Line int
	// Pos is the byte offset of the token in the input.
	Pos int
}

// String renders the token as LexToken(KIND,'value',line,pos), or an
// Illegal token as its diagnostic.
func (t Token) String() string {
	if t.Kind == Illegal {
		return fmt.Sprintf("Illegal character '%s'", t.Value)
	}
	return fmt.Sprintf("LexToken(%s,%s,%d,%d)", t.Kind, quote(t.Value), t.Line, t.Pos)
}

// quote wraps v in single quotes, switching to double quotes when v holds
// a single quote but no double quote.
func quote(v string) string {
	if strings.Contains(v, "'") && !strings.Contains(v, `"`) {
		return `"` + strings.ReplaceAll(v, `\`, `\\`) + `"`
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}
