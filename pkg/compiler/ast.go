package compiler

import (
	"fmt"
	"strings"
)

// Node is implemented by every member of the syntax tree.
type Node interface {
	String() string
}

//  Expression nodes

// Expr is implemented by every node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// Literal is an unsigned decimal integer constant. The raw text is kept
// exactly as lexed; the code generator converts it when lowering.
//
//	x + 10
//	    ^^  Literal{Text: "10"}
type Literal struct {
	Text string
}

func (*Literal) exprNode()        {}
func (l *Literal) String() string { return l.Text }

// VarRef is a read of a named variable.
//
//	x + 10
//	^  VarRef{Name: "x"}
type VarRef struct {
	Name string
}

func (*VarRef) exprNode()        {}
func (v *VarRef) String() string { return v.Name }

// BinaryExpr represents a binary operation: Left Op Right.
// After parser error recovery either child may be nil; the semantic
// checker rejects such trees before they reach code generation.
//
//	x + 1
//	^ ^ ^
//	| | |
//	| | Right
//	| Op
//	Left
type BinaryExpr struct {
	Op    TokenType
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%v %v %v)", b.Left, b.Op, b.Right)
}

//  Declaration nodes

// WithDecl is the declaration prefix of a calc program together with the
// expression it scopes. It only ever appears at the root of a tree, and it
// is deliberately not an Expr, so nothing can nest it.
//
//	with a, b: a + b
//	     ^^^^  ^^^^^
//	     Names Body
type WithDecl struct {
	Names []string
	Body  Expr
}

func (w *WithDecl) String() string {
	return fmt.Sprintf("with %s: %v", strings.Join(w.Names, ", "), w.Body)
}
