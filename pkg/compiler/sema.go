package compiler

import (
	"errors"
	"fmt"
)

// DuplicateDeclError reports a name that appears more than once in a with
// declaration.
type DuplicateDeclError struct {
	Name string
}

func (e *DuplicateDeclError) Error() string {
	return fmt.Sprintf("Variable %s already declared", e.Name)
}

// UndeclaredVarError reports a variable used without a declaration.
type UndeclaredVarError struct {
	Name string
}

func (e *UndeclaredVarError) Error() string {
	return fmt.Sprintf("Variable %s not declared", e.Name)
}

// ErrIncompleteTree marks a tree with structurally missing pieces, which
// only happens downstream of parser error recovery.
var ErrIncompleteTree = errors.New("incomplete expression tree")

// Check validates every declaration and variable use in the tree. It always
// walks the whole tree and reports every problem it finds, in source order.
// A nil tree checks clean; the parser has already reported why it is nil.
//
// The language has a single flat scope, so the declared names are collected
// once at the root and handed down the walk.
func Check(tree Node) []error {
	switch n := tree.(type) {
	case nil:
		return nil
	case *WithDecl:
		scope, errs := declare(n.Names)
		return append(errs, checkExpr(scope, n.Body)...)
	case Expr:
		return checkExpr(nil, n)
	default:
		return []error{ErrIncompleteTree}
	}
}

// declare builds the scope from the declared names, keeping the first
// occurrence of a duplicate so later uses still resolve.
func declare(names []string) (map[string]bool, []error) {
	scope := make(map[string]bool, len(names))
	var errs []error
	for _, name := range names {
		if scope[name] {
			errs = append(errs, &DuplicateDeclError{Name: name})
			continue
		}
		scope[name] = true
	}
	return scope, errs
}

// checkExpr walks e with the scope threaded along and returns every problem
// in the subtree. A nil scope resolves nothing, which is right for a
// program with no declarations.
func checkExpr(scope map[string]bool, e Expr) []error {
	switch e := e.(type) {
	case *Literal:
		// Nothing to validate; the lexer only forms digit runs.
		return nil
	case *VarRef:
		if !scope[e.Name] {
			return []error{&UndeclaredVarError{Name: e.Name}}
		}
		return nil
	case *BinaryExpr:
		return append(checkExpr(scope, e.Left), checkExpr(scope, e.Right)...)
	default:
		// A nil child left behind by parser error recovery.
		return []error{ErrIncompleteTree}
	}
}
