package vm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Load parses the textual IR of one compiled unit. It accepts exactly the
// subset the compiler emits: comment and header lines, private name
// constants, the two primitive declarations, and a single @main whose body
// is straight-line i32 arithmetic. Anything else is an error naming the
// offending line.
func Load(code string) (*Unit, error) {
	ld := &loader{
		globals:  make(map[string]string),
		declared: make(map[string]bool),
		defined:  make(map[string]bool),
	}
	for i, raw := range strings.Split(code, "\n") {
		if err := ld.loadLine(strings.TrimSpace(raw), i+1); err != nil {
			return nil, err
		}
	}
	if !ld.sawMain {
		return nil, errors.New("unit defines no @main")
	}
	if ld.inMain {
		return nil, errors.New("@main is never closed")
	}
	return &ld.unit, nil
}

type loader struct {
	unit     Unit
	globals  map[string]string // "@a.str" -> "a"
	declared map[string]bool   // primitives seen in declare lines
	defined  map[string]bool   // IR values defined so far in @main
	sawMain  bool
	inMain   bool
	sawRet   bool
}

func (ld *loader) emit(in Instr) {
	ld.unit.Instrs = append(ld.unit.Instrs, in)
}

func (ld *loader) loadLine(line string, lineNo int) error {
	switch {
	case line == "" || strings.HasPrefix(line, ";"):
		return nil
	case strings.HasPrefix(line, "source_filename"):
		return nil
	case strings.HasPrefix(line, "@"):
		return ld.loadGlobal(line, lineNo)
	case strings.HasPrefix(line, "declare "):
		return ld.loadDeclare(line, lineNo)
	case strings.HasPrefix(line, "define "):
		return ld.loadDefine(line, lineNo)
	case line == "entry:":
		if !ld.inMain {
			return fmt.Errorf("label outside a function on line %d", lineNo)
		}
		return nil
	case line == "}":
		if !ld.inMain {
			return fmt.Errorf("unmatched } on line %d", lineNo)
		}
		if !ld.sawRet {
			return fmt.Errorf("@main does not end in ret on line %d", lineNo)
		}
		ld.inMain = false
		return nil
	default:
		return ld.loadInstr(line, lineNo)
	}
}

func (ld *loader) loadGlobal(line string, lineNo int) error {
	if ld.inMain {
		return fmt.Errorf("global inside @main on line %d: %s", lineNo, line)
	}
	label, rest, ok := strings.Cut(line, " = ")
	if !ok || !strings.HasPrefix(rest, "private constant [") {
		return fmt.Errorf("unsupported global on line %d: %s", lineNo, line)
	}
	open := strings.Index(rest, `c"`)
	end := strings.LastIndex(rest, `\00"`)
	if open < 0 || end < open+2 {
		return fmt.Errorf("malformed name constant on line %d: %s", lineNo, line)
	}
	name := rest[open+2 : end]
	if label != "@"+name+".str" {
		return fmt.Errorf("name constant %s does not match its label on line %d", label, lineNo)
	}
	ld.globals[label] = name
	return nil
}

func (ld *loader) loadDeclare(line string, lineNo int) error {
	switch line {
	case "declare i32 @calc_read(ptr)":
		ld.declared["@calc_read"] = true
	case "declare void @calc_write(i32)":
		ld.declared["@calc_write"] = true
	default:
		return fmt.Errorf("unsupported declare on line %d: %s", lineNo, line)
	}
	return nil
}

func (ld *loader) loadDefine(line string, lineNo int) error {
	if line != "define i32 @main(i32 %argc, ptr %argv) {" {
		return fmt.Errorf("unsupported definition on line %d: %s", lineNo, line)
	}
	if ld.sawMain {
		return fmt.Errorf("duplicate @main on line %d", lineNo)
	}
	ld.sawMain = true
	ld.inMain = true
	return nil
}

func (ld *loader) loadInstr(line string, lineNo int) error {
	if !ld.inMain {
		return fmt.Errorf("instruction outside @main on line %d: %s", lineNo, line)
	}
	if ld.sawRet {
		return fmt.Errorf("instruction after ret on line %d: %s", lineNo, line)
	}
	if line == "ret i32 0" {
		ld.sawRet = true
		ld.emit(Instr{Op: OpRet})
		return nil
	}
	if strings.HasPrefix(line, "call void @calc_write(") {
		return ld.loadWrite(line, lineNo)
	}
	return ld.loadAssign(line, lineNo)
}

func (ld *loader) loadWrite(line string, lineNo int) error {
	inner, ok := strings.CutPrefix(line, "call void @calc_write(i32 ")
	if ok {
		inner, ok = strings.CutSuffix(inner, ")")
	}
	if !ok {
		return fmt.Errorf("malformed write call on line %d: %s", lineNo, line)
	}
	if !ld.declared["@calc_write"] {
		return fmt.Errorf("call to undeclared @calc_write on line %d", lineNo)
	}
	a, err := ld.operand(inner, lineNo)
	if err != nil {
		return err
	}
	ld.emit(Instr{Op: OpWrite, A: a})
	return nil
}

func (ld *loader) loadAssign(line string, lineNo int) error {
	dst, rest, ok := strings.Cut(line, " = ")
	if !ok || !strings.HasPrefix(dst, "%") || strings.ContainsAny(dst, " \t") {
		return fmt.Errorf("unsupported IR on line %d: %s", lineNo, line)
	}
	if dst == "%argc" || dst == "%argv" {
		return fmt.Errorf("parameter %s redefined on line %d", dst, lineNo)
	}
	if ld.defined[dst] {
		return fmt.Errorf("value %s redefined on line %d", dst, lineNo)
	}

	if label, isRead := strings.CutPrefix(rest, "call i32 @calc_read(ptr "); isRead {
		label, ok = strings.CutSuffix(label, ")")
		if !ok {
			return fmt.Errorf("malformed read call on line %d: %s", lineNo, line)
		}
		if !ld.declared["@calc_read"] {
			return fmt.Errorf("call to undeclared @calc_read on line %d", lineNo)
		}
		name, known := ld.globals[label]
		if !known {
			return fmt.Errorf("unknown global %s on line %d", label, lineNo)
		}
		ld.defined[dst] = true
		ld.emit(Instr{Op: OpRead, Dst: dst, Name: name})
		return nil
	}

	fields := strings.Fields(strings.ReplaceAll(rest, ",", " "))
	var op Op
	switch {
	case len(fields) == 5 && fields[0] == "add" && fields[1] == "nsw" && fields[2] == "i32":
		op = OpAdd
	case len(fields) == 5 && fields[0] == "sub" && fields[1] == "nsw" && fields[2] == "i32":
		op = OpSub
	case len(fields) == 5 && fields[0] == "mul" && fields[1] == "nsw" && fields[2] == "i32":
		op = OpMul
	case len(fields) == 4 && fields[0] == "sdiv" && fields[1] == "i32":
		op = OpDiv
	default:
		return fmt.Errorf("unsupported IR on line %d: %s", lineNo, line)
	}
	a, err := ld.operand(fields[len(fields)-2], lineNo)
	if err != nil {
		return err
	}
	b, err := ld.operand(fields[len(fields)-1], lineNo)
	if err != nil {
		return err
	}
	ld.defined[dst] = true
	ld.emit(Instr{Op: op, Dst: dst, A: a, B: b})
	return nil
}

// operand parses a register reference or a decimal i32 immediate. Register
// uses must refer to an already defined value; the body is straight-line,
// so definition order is use order.
func (ld *loader) operand(s string, lineNo int) (Operand, error) {
	if strings.HasPrefix(s, "%") {
		if !ld.defined[s] {
			return Operand{}, fmt.Errorf("use of undefined value %s on line %d", s, lineNo)
		}
		return Operand{Reg: s}, nil
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return Operand{}, fmt.Errorf("bad operand on line %d: %s", lineNo, s)
	}
	return Operand{Imm: int32(v)}, nil
}
