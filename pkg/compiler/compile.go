package compiler

import "strings"

// SyntaxErrors is returned by Compile when the parser rejected the input.
type SyntaxErrors struct {
	Diags []error
}

func (e *SyntaxErrors) Error() string   { return "syntax errors: " + joinDiags(e.Diags) }
func (e *SyntaxErrors) Unwrap() []error { return e.Diags }

// SemanticErrors is returned by Compile when declaration checking rejected
// the input.
type SemanticErrors struct {
	Diags []error
}

func (e *SemanticErrors) Error() string   { return "semantic errors: " + joinDiags(e.Diags) }
func (e *SemanticErrors) Unwrap() []error { return e.Diags }

func joinDiags(diags []error) string {
	msgs := make([]string, len(diags))
	for i, d := range diags {
		msgs[i] = d.Error()
	}
	return strings.Join(msgs, "; ")
}

// Compile runs the whole pipeline over one calc program and returns its IR
// unit. Diagnostics arrive aggregated per phase, parsing problems as
// *SyntaxErrors and declaration problems as *SemanticErrors; code generation
// only runs once both phases are clean.
func Compile(src string) (string, error) {
	p := NewParser(NewLexer(src))
	tree := p.Parse()
	if tree == nil || p.HasError() {
		return "", &SyntaxErrors{Diags: p.Errors()}
	}
	if errs := Check(tree); len(errs) > 0 {
		return "", &SemanticErrors{Diags: errs}
	}
	return Generate(tree)
}
