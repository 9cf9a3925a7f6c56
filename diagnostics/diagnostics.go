// Package diagnostics defines the shared Diagnostic/severity vocabulary
// used by the parser's error reporting (parseerr) and the scope table's
// lint checks, so that callers of the langserver service layer get one
// uniform shape regardless of which subsystem produced a finding.
package diagnostics

import "github.com/mkmarek/squirrel-lsp/token"

// Severity distinguishes a hard failure from an advisory finding.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a single standalone finding with severity, span and
// message (spec §7). Lex/parse errors surface exactly one of these per
// request; lint diagnostics from the scope table are returned wholesale.
type Diagnostic struct {
	Severity Severity
	From, To token.Position
	Message  string
}
