package vm

import (
	"fmt"
	"math"
)

// Run executes the unit against rt, stopping at the first fault: a failed
// read, signed overflow on an nsw instruction, or a zero divisor. The
// divide itself is deliberately not guarded; the Go runtime panic a zero
// divisor causes is caught here and surfaced as the fault.
func Run(u *Unit, rt Runtime) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("runtime fault: %v", r)
		}
	}()

	regs := make(map[string]int32)
	for _, in := range u.Instrs {
		switch in.Op {
		case OpRead:
			v, rerr := rt.Read(in.Name)
			if rerr != nil {
				return rerr
			}
			regs[in.Dst] = v
		case OpAdd, OpSub, OpMul:
			v, ok := evalNSW(in.Op, in.A.value(regs), in.B.value(regs))
			if !ok {
				return fmt.Errorf("signed overflow in %v %v, %v", in.Op, in.A, in.B)
			}
			regs[in.Dst] = v
		case OpDiv:
			// The most negative i32 divided by -1 wraps, like the
			// two's-complement hardware this mimics.
			regs[in.Dst] = in.A.value(regs) / in.B.value(regs)
		case OpWrite:
			rt.Write(in.A.value(regs))
		case OpRet:
			return nil
		}
	}
	return nil
}

// evalNSW applies one of the nsw instructions in 64-bit space and reports
// whether the result still fits an i32.
func evalNSW(op Op, a, b int32) (int32, bool) {
	var wide int64
	switch op {
	case OpAdd:
		wide = int64(a) + int64(b)
	case OpSub:
		wide = int64(a) - int64(b)
	case OpMul:
		wide = int64(a) * int64(b)
	}
	if wide < math.MinInt32 || wide > math.MaxInt32 {
		return 0, false
	}
	return int32(wide), true
}
