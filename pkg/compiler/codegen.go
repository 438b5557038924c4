package compiler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// moduleID names the emitted IR unit. There is only ever one per run.
const moduleID = "calc.expr"

// CodeGen accumulates the text of one LLVM IR unit: the emitted lines and
// the counter behind the %N temporaries.
type CodeGen struct {
	out   strings.Builder
	temps int
}

// newTemp returns the next %N value name. LLVM numbers unnamed values in
// definition order, so the counter advances exactly once per instruction
// that produces a result.
func (cg *CodeGen) newTemp() string {
	t := "%" + strconv.Itoa(cg.temps)
	cg.temps++
	return t
}

func (cg *CodeGen) line(format string, args ...any) {
	fmt.Fprintf(&cg.out, format+"\n", args...)
}

// Generate lowers tree to the textual IR of one executable unit. The unit
// defines @main, reads every declared variable through @calc_read, and
// writes the final value through @calc_write. The tree must already have
// passed Check: anything Check would have rejected comes back as an
// internal error here, as does a literal too large for i32. The same tree
// always produces byte-identical output.
func Generate(tree Node) (string, error) {
	var names []string
	var body Expr
	switch n := tree.(type) {
	case *WithDecl:
		names, body = n.Names, n.Body
	case Expr:
		body = n
	default:
		return "", fmt.Errorf("internal error: cannot lower %T", tree)
	}
	if body == nil {
		return "", errors.New("internal error: tree has no expression body")
	}

	cg := &CodeGen{}
	cg.line("; ModuleID = '%s'", moduleID)
	cg.line("source_filename = %q", moduleID)
	cg.line("")
	for _, name := range names {
		cg.line("@%s.str = private constant [%d x i8] c\"%s\\00\"", name, len(name)+1, name)
	}
	if len(names) > 0 {
		cg.line("")
		cg.line("declare i32 @calc_read(ptr)")
	}
	cg.line("declare void @calc_write(i32)")
	cg.line("")
	cg.line("define i32 @main(i32 %%argc, ptr %%argv) {")
	cg.line("entry:")
	values := make(map[string]string, len(names))
	for _, name := range names {
		// The .in suffix keeps read registers clear of @main's own %argc
		// and %argv parameters, so names like argc stay legal.
		// Last write wins if a duplicate name ever got this far.
		values[name] = "%" + name + ".in"
		cg.line("  %%%s.in = call i32 @calc_read(ptr @%s.str)", name, name)
	}

	result, err := cg.genExpr(values, body)
	if err != nil {
		return "", err
	}
	cg.line("  call void @calc_write(i32 %s)", result)
	cg.line("  ret i32 0")
	cg.line("}")
	return cg.out.String(), nil
}

// genExpr emits the instructions for e, resolving variables through values,
// and returns the operand holding the result: a named or numbered register,
// or a plain decimal immediate.
func (cg *CodeGen) genExpr(values map[string]string, e Expr) (string, error) {
	switch e := e.(type) {
	case *Literal:
		v, err := strconv.ParseInt(e.Text, 10, 32)
		if err != nil {
			return "", fmt.Errorf("internal error: literal %q does not fit a 32-bit integer", e.Text)
		}
		return strconv.FormatInt(v, 10), nil
	case *VarRef:
		value, ok := values[e.Name]
		if !ok {
			return "", fmt.Errorf("internal error: undeclared variable %s reached lowering", e.Name)
		}
		return value, nil
	case *BinaryExpr:
		left, err := cg.genExpr(values, e.Left)
		if err != nil {
			return "", err
		}
		right, err := cg.genExpr(values, e.Right)
		if err != nil {
			return "", err
		}
		dst := cg.newTemp()
		switch e.Op {
		case PLUS:
			cg.line("  %s = add nsw i32 %s, %s", dst, left, right)
		case MINUS:
			cg.line("  %s = sub nsw i32 %s, %s", dst, left, right)
		case STAR:
			cg.line("  %s = mul nsw i32 %s, %s", dst, left, right)
		case SLASH:
			// Unguarded: a zero divisor faults at run time.
			cg.line("  %s = sdiv i32 %s, %s", dst, left, right)
		default:
			return "", fmt.Errorf("internal error: no lowering for operator %v", e.Op)
		}
		return dst, nil
	default:
		return "", fmt.Errorf("internal error: cannot lower %T", e)
	}
}
