package compiler

import (
	"strings"
	"testing"
)

// assertContains checks if the generated code contains the expected substring.
func assertContains(t *testing.T, code, expected string) {
	t.Helper()
	if !strings.Contains(code, expected) {
		t.Errorf("Expected code to contain %q, but it didn't.\nCode:\n%s", expected, code)
	}
}

func generateSrc(t *testing.T, src string) string {
	t.Helper()
	tree, p := parseSrc(src)
	if p.HasError() {
		t.Fatalf("Parse() reported errors %v for input %q", p.Errors(), src)
	}
	if errs := Check(tree); len(errs) != 0 {
		t.Fatalf("Check() = %v for input %q", errs, src)
	}
	code, err := Generate(tree)
	if err != nil {
		t.Fatalf("Generate() failed for %q: %v", src, err)
	}
	return code
}

// TestGenerateFullUnit pins down the exact text of a complete unit. The
// loader in pkg/vm consumes this format, so the whole shape matters, not
// just individual lines.
func TestGenerateFullUnit(t *testing.T) {
	code := generateSrc(t, "with a, b: a*b - a/b")
	want := `; ModuleID = 'calc.expr'
source_filename = "calc.expr"

@a.str = private constant [2 x i8] c"a\00"
@b.str = private constant [2 x i8] c"b\00"

declare i32 @calc_read(ptr)
declare void @calc_write(i32)

define i32 @main(i32 %argc, ptr %argv) {
entry:
  %a.in = call i32 @calc_read(ptr @a.str)
  %b.in = call i32 @calc_read(ptr @b.str)
  %0 = mul nsw i32 %a.in, %b.in
  %1 = sdiv i32 %a.in, %b.in
  %2 = sub nsw i32 %0, %1
  call void @calc_write(i32 %2)
  ret i32 0
}
`
	if code != want {
		t.Errorf("Generate() =\n%s\nwant:\n%s", code, want)
	}
}

// TestGenerateWithoutDeclarations verifies that a constant program neither
// declares nor calls the read primitive.
func TestGenerateWithoutDeclarations(t *testing.T) {
	code := generateSrc(t, "42")
	assertContains(t, code, "declare void @calc_write(i32)")
	assertContains(t, code, "call void @calc_write(i32 42)")
	assertContains(t, code, "ret i32 0")
	if strings.Contains(code, "calc_read") {
		t.Errorf("constant program mentions calc_read:\n%s", code)
	}
}

// TestGenerateReadsFollowDeclarationOrder verifies that reads happen in
// declaration order, not usage order.
func TestGenerateReadsFollowDeclarationOrder(t *testing.T) {
	code := generateSrc(t, "with b, a: a+b")
	readB := strings.Index(code, "%b.in = call i32 @calc_read(ptr @b.str)")
	readA := strings.Index(code, "%a.in = call i32 @calc_read(ptr @a.str)")
	if readB < 0 || readA < 0 {
		t.Fatalf("missing read calls:\n%s", code)
	}
	if readB > readA {
		t.Errorf("reads out of declaration order:\n%s", code)
	}
	if strings.Index(code, "@b.str = private constant") > strings.Index(code, "@a.str = private constant") {
		t.Errorf("globals out of declaration order:\n%s", code)
	}
}

// TestGenerateReadRegistersAvoidParameters verifies that variables named
// after @main's parameters still get their own registers. Without the .in
// suffix a read for argc would redefine the parameter.
func TestGenerateReadRegistersAvoidParameters(t *testing.T) {
	code := generateSrc(t, "with argc, argv: argc+argv")
	assertContains(t, code, "%argc.in = call i32 @calc_read(ptr @argc.str)")
	assertContains(t, code, "%argv.in = call i32 @calc_read(ptr @argv.str)")
	assertContains(t, code, "%0 = add nsw i32 %argc.in, %argv.in")
	for _, bad := range []string{"%argc = ", "%argv = "} {
		if strings.Contains(code, bad) {
			t.Errorf("unit redefines a @main parameter with %q:\n%s", bad, code)
		}
	}
}

func TestGenerateOperators(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1+2", "%0 = add nsw i32 1, 2"},
		{"1-2", "%0 = sub nsw i32 1, 2"},
		{"2*3", "%0 = mul nsw i32 2, 3"},
		{"8/2", "%0 = sdiv i32 8, 2"},
	}
	for _, tt := range tests {
		code := generateSrc(t, tt.input)
		assertContains(t, code, tt.want)
		assertContains(t, code, "call void @calc_write(i32 %0)")
	}
	if code := generateSrc(t, "8/2"); strings.Contains(code, "sdiv nsw") {
		t.Errorf("sdiv must not carry the nsw flag:\n%s", code)
	}
}

// TestGenerateOperandOrder verifies that subexpression results are wired
// into their parents by name.
func TestGenerateOperandOrder(t *testing.T) {
	code := generateSrc(t, "1+2*3")
	mul := strings.Index(code, "%0 = mul nsw i32 2, 3")
	add := strings.Index(code, "%1 = add nsw i32 1, %0")
	if mul < 0 || add < 0 || mul > add {
		t.Errorf("unexpected instruction sequence:\n%s", code)
	}
}

// TestGenerateNormalizesLiterals verifies that literal text is re-rendered
// as plain decimal, so 007 and 7 lower identically.
func TestGenerateNormalizesLiterals(t *testing.T) {
	assertContains(t, generateSrc(t, "007"), "call void @calc_write(i32 7)")
	assertContains(t, generateSrc(t, "2147483647"), "call void @calc_write(i32 2147483647)")
}

// TestGenerateParenthesesLeaveNoTrace verifies that grouping emits nothing.
func TestGenerateParenthesesLeaveNoTrace(t *testing.T) {
	code := generateSrc(t, "(((7)))")
	assertContains(t, code, "call void @calc_write(i32 7)")
	for _, op := range []string{"add", "sub", "mul", "sdiv"} {
		if strings.Contains(code, op) {
			t.Errorf("grouping emitted a %s instruction:\n%s", op, code)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	tree, _ := parseSrc("with a, b, c: a*b + b*c - 100/c")
	first, err := Generate(tree)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := Generate(tree)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("Generate() differed between runs:\n%s\nvs:\n%s", first, again)
		}
	}
}

// TestGenerateInternalErrors verifies that trees violating the checked
// invariants are refused instead of producing broken IR.
func TestGenerateInternalErrors(t *testing.T) {
	tests := []struct {
		name string
		tree Node
	}{
		{"Nil Tree", nil},
		{"Undeclared Variable", &VarRef{Name: "x"}},
		{"Literal Too Large", &Literal{Text: "9999999999"}},
		{"Literal Just Past i32", &Literal{Text: "2147483648"}},
		{"Unknown Operator", &BinaryExpr{Op: COMMA, Left: &Literal{Text: "1"}, Right: &Literal{Text: "2"}}},
		{"Missing Body", &WithDecl{Names: []string{"a"}, Body: nil}},
		{"Missing Operand", &BinaryExpr{Op: PLUS, Left: &Literal{Text: "1"}, Right: nil}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := Generate(tt.tree)
			if err == nil {
				t.Fatalf("Generate() accepted a bad tree and produced:\n%s", code)
			}
			if !strings.Contains(err.Error(), "internal error") {
				t.Errorf("error %q is not marked internal", err)
			}
		})
	}
}
