// Package vm loads and executes the IR units emitted by the compiler.
//
// A unit is straight-line code: reads of the declared variables, i32
// arithmetic, one write of the result. The two external calls a unit makes,
// calc_read and calc_write, are supplied by a Runtime implementation, so
// the same unit can run against a console, a preset table, or a test stub.
package vm

import "strconv"

// Op identifies one kind of Unit instruction.
type Op int

const (
	OpRead  Op = iota // Dst = calc_read(Name)
	OpAdd             // Dst = A + B, faulting on signed overflow
	OpSub             // Dst = A - B, faulting on signed overflow
	OpMul             // Dst = A * B, faulting on signed overflow
	OpDiv             // Dst = A / B, truncating signed division
	OpWrite           // calc_write(A)
	OpRet             // end of unit
)

// opNames is indexed by Op and mirrors the IR mnemonics.
var opNames = [...]string{
	OpRead:  "read",
	OpAdd:   "add",
	OpSub:   "sub",
	OpMul:   "mul",
	OpDiv:   "sdiv",
	OpWrite: "write",
	OpRet:   "ret",
}

func (op Op) String() string {
	if int(op) >= 0 && int(op) < len(opNames) {
		return opNames[op]
	}
	return "Op(" + strconv.Itoa(int(op)) + ")"
}

// Operand is either a reference to a named IR value or an immediate.
type Operand struct {
	Reg string // "%a", "%0"; empty for immediates
	Imm int32
}

func (o Operand) String() string {
	if o.Reg != "" {
		return o.Reg
	}
	return strconv.FormatInt(int64(o.Imm), 10)
}

// value resolves the operand against the register file. The loader rejects
// uses of undefined values, so a loaded unit never misses here.
func (o Operand) value(regs map[string]int32) int32 {
	if o.Reg != "" {
		return regs[o.Reg]
	}
	return o.Imm
}

// Instr is one executable step of a Unit.
type Instr struct {
	Op   Op
	Dst  string  // IR value this instruction defines, if any
	Name string  // OpRead only: the variable name passed to calc_read
	A, B Operand // operands; OpWrite uses A alone
}

// Unit is the executable body of one compiled program.
type Unit struct {
	Instrs []Instr
}

// Runtime supplies the two external primitives a unit calls.
type Runtime interface {
	// Read produces the value for a declared variable. A read error
	// aborts the unit.
	Read(name string) (int32, error)
	// Write receives the final value of the expression.
	Write(v int32)
}
