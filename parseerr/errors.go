// Package parseerr defines the lexer/parser error vocabulary (spec §4.2,
// §7): an Error carrying a kind, span and message, and a List that
// implements Go's error interface over a batch of them (sorted on demand by
// Sort, not deduplicated). It is a trimmed version of cue/errors' list
// idiom: squirrel parsing reports at most one error per request, and the
// same List type also carries a lexer error promoted into a parse error.
// Lint diagnostics do not pass through it; the scope package produces
// diagnostics.Diagnostic values directly.
package parseerr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mkmarek/squirrel-lsp/diagnostics"
	"github.com/mkmarek/squirrel-lsp/token"
)

// Kind is the closed set of parser error variants (spec §4.2).
type Kind int

const (
	ExpectedStatement Kind = iota
	ExpectedExpression
	ExpectedIdentifier
	InvalidKeyword
	UnterminatedString
	UnexpectedToken
	ExpectedTokenGot
	ExpectedOneOfGot
)

func (k Kind) String() string {
	switch k {
	case ExpectedStatement:
		return "ExpectedStatement"
	case ExpectedExpression:
		return "ExpectedExpression"
	case ExpectedIdentifier:
		return "ExpectedIdentifier"
	case InvalidKeyword:
		return "InvalidKeyword"
	case UnterminatedString:
		return "UnterminatedString"
	case UnexpectedToken:
		return "UnexpectedToken"
	case ExpectedTokenGot:
		return "ExpectedTokenGot"
	case ExpectedOneOfGot:
		return "ExpectedOneOfGot"
	}
	return "UnknownKind"
}

// Error is a single parse error: a kind, a detail message and a span.
type Error struct {
	Kind         Kind
	Detail       string
	From, To     token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Position returns the primary position of the error.
func (e *Error) Position() token.Position { return e.From }

// List is a batch of Errors. The zero value is an empty list ready to
// use. List implements error.
type List []*Error

func (l *List) Add(err *Error) { *l = append(*l, err) }

// AddNewf appends a new Error built from a format string and arguments.
func (l *List) AddNewf(kind Kind, from, to token.Position, format string, args ...interface{}) {
	l.Add(&Error{Kind: kind, Detail: fmt.Sprintf(format, args...), From: from, To: to})
}

// Sort orders the list by position, ascending.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].From.Compare(l[j].From) < 0
	})
}

// Err returns l as an error, or nil if l is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	default:
		var b strings.Builder
		fmt.Fprintf(&b, "%s (and %d more errors)", l[0], len(l)-1)
		return b.String()
	}
}

// Diagnostics converts the list to the shared diagnostics vocabulary,
// each entry at Error severity (spec §7: parse errors are always fatal,
// never advisory).
func (l List) Diagnostics() []diagnostics.Diagnostic {
	out := make([]diagnostics.Diagnostic, len(l))
	for i, e := range l {
		out[i] = diagnostics.Diagnostic{
			Severity: diagnostics.Error,
			From:     e.From,
			To:       e.To,
			Message:  e.Error(),
		}
	}
	return out
}
