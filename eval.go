package calc

import (
	"math"
	"strconv"
)

// value is the result of a subexpression. It is a number unless fn is set, in
// which case it is a function named name that must be applied by a following
// argument list.
type value struct {
	x    float64
	fn   Func
	name string
	// pos is the column where the subexpression starts.
	pos int
}

// num returns v as a number, or an error if v is a function.
func (v value) num() (float64, error) {
	if v.fn != nil {
		return 0, &ParseError{Col: v.pos, Msg: v.name + " is a function, not a number"}
	}
	return v.x, nil
}

// call applies v to args. tok is the open bracket of the argument list.
func (v value) call(tok lexToken, args []float64) (value, error) {
	if v.fn == nil {
		return value{}, &ParseError{Col: tok.pos, Msg: strconv.FormatFloat(v.x, 'g', -1, 64) + " is not a function"}
	}
	if !v.fn.CanCall(len(args)) {
		return value{}, &ParseError{Col: tok.pos, Msg: "cannot call " + v.name + " with " + strconv.Itoa(len(args)) + " arguments"}
	}
	r, err := v.fn.Call(args)
	if err != nil {
		return value{}, err
	}
	return value{x: r, pos: v.pos}, nil
}

// binary applies a binary operator to two numbers.
func binary(op string, l, r float64) float64 {
	switch op {
	case "+":
		return l + r
	case "-":
		return l - r
	case "*":
		return l * r
	case "/":
		return l / r
	case "%":
		return floormod(l, r)
	case "^":
		return math.Pow(l, r)
	default:
		panic("calc: invalid binary operator " + strconv.Quote(op))
	}
}

// floormod is the remainder of l/r rounded toward negative infinity, so the
// result has the sign of r.
func floormod(l, r float64) float64 {
	m := math.Mod(l, r)
	if m != 0 && (m < 0) != (r < 0) {
		m += r
	}
	return m
}

// fold combines left and right with op, logging the step to the trace logger.
func (p *parsectx) fold(op string, left, right value) (value, error) {
	l, err := left.num()
	if err != nil {
		return value{}, err
	}
	r, err := right.num()
	if err != nil {
		return value{}, err
	}
	x := binary(op, l, r)
	if e := p.log.Debug(); e.Enabled() {
		e.Str("op", op).Float64("left", l).Float64("right", r).Float64("result", x).Msg("fold")
	}
	return value{x: x, pos: left.pos}, nil
}

// traceCall logs a function application.
func (p *parsectx) traceCall(name string, args []float64, r value) {
	if e := p.log.Debug(); e.Enabled() {
		e.Str("func", name).Floats64("args", args).Float64("result", r.x).Msg("call")
	}
}
