package calc

import (
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals.
type Func interface {
	// Call evaluates the function. args has a length for which CanCall
	// returned true. Call may modify the elements of args. Errors are
	// returned from Parse unchanged.
	Call(args []float64) (float64, error)

	// CanCall returns whether the function can be called with n arguments.
	// The parser rejects calls with any other number of arguments.
	CanCall(n int) bool
}

// constPrec is the precision in bits at which constants are derived before
// rounding to float64.
const constPrec = 256

// bigconst computes a constant at high precision and rounds it.
func bigconst(f func(out *big.Float) *big.Float) float64 {
	r := new(big.Float).SetPrec(constPrec)
	f(r)
	x, _ := r.Float64()
	return x
}

var (
	constPi = bigconst(bigfloat.Pi)
	constE  = bigconst(func(out *big.Float) *big.Float {
		one := new(big.Float).SetPrec(constPrec).SetInt64(1)
		return bigfloat.Exp(out, one)
	})
	constTau = bigconst(func(out *big.Float) *big.Float {
		bigfloat.Pi(out)
		return out.Mul(out, big.NewFloat(2))
	})
	constPhi = bigconst(func(out *big.Float) *big.Float {
		out.SetInt64(5)
		out.Sqrt(out)
		out.Add(out, big.NewFloat(1))
		return out.Quo(out, big.NewFloat(2))
	})
)

func defaultFrame() Frame {
	return Frame{
		"pi":  Number(constPi),
		"e":   Number(constE),
		"tau": Number(constTau),
		"phi": Number(constPhi),
		"inf": Number(math.Inf(1)),
		"nan": Number(math.NaN()),

		"sin":   Callable(Monadic("sin", math.Sin)),
		"cos":   Callable(Monadic("cos", math.Cos)),
		"tan":   Callable(Monadic("tan", math.Tan)),
		"asin":  Callable(Monadic("asin", math.Asin)),
		"acos":  Callable(Monadic("acos", math.Acos)),
		"atan":  Callable(Monadic("atan", math.Atan)),
		"sinh":  Callable(Monadic("sinh", math.Sinh)),
		"cosh":  Callable(Monadic("cosh", math.Cosh)),
		"tanh":  Callable(Monadic("tanh", math.Tanh)),
		"asinh": Callable(Monadic("asinh", math.Asinh)),
		"acosh": Callable(Monadic("acosh", math.Acosh)),
		"atanh": Callable(Monadic("atanh", math.Atanh)),
		"exp":   Callable(Monadic("exp", math.Exp)),
		"ln":    Callable(Monadic("ln", math.Log)),
		"sqrt":  Callable(Monadic("sqrt", math.Sqrt)),
		"abs":   Callable(Monadic("abs", math.Abs)),
		"floor": Callable(Monadic("floor", math.Floor)),
		"ceil":  Callable(Monadic("ceil", math.Ceil)),
		"round": Callable(Monadic("round", math.Round)),
		"trunc": Callable(Monadic("trunc", math.Trunc)),
		"log":   Callable(logfn{}),

		"atan2": Callable(Dyadic("atan2", math.Atan2)),
		"hypot": Callable(Dyadic("hypot", math.Hypot)),
		"pow":   Callable(Dyadic("pow", math.Pow)),
		"mod":   Callable(arith(floormod)),

		"min": Callable(Variadic(func(x []float64) float64 {
			r := x[0]
			for _, v := range x[1:] {
				r = math.Min(r, v)
			}
			return r
		})),
		"max": Callable(Variadic(func(x []float64) float64 {
			r := x[0]
			for _, v := range x[1:] {
				r = math.Max(r, v)
			}
			return r
		})),
		"sum": Callable(Variadic(sum)),
		"avg": Callable(Variadic(func(x []float64) float64 {
			return sum(x) / float64(len(x))
		})),
	}
}

// DefaultFrame returns a new Frame containing the default constants and
// functions. The caller may modify it freely.
func DefaultFrame() Frame {
	return defaultFrame()
}

// globalframe is the Env used when no other is given.
var globalframe = defaultFrame()

func sum(x []float64) float64 {
	var r float64
	for _, v := range x {
		r += v
	}
	return r
}

type monadic struct {
	name string
	f    func(float64) float64
}

func (m monadic) Call(args []float64) (float64, error) {
	x := args[0]
	r := m.f(x)
	if math.IsNaN(r) && !math.IsNaN(x) {
		return 0, DomainError{X: x, Arg: 1, Func: m.name}
	}
	return r, nil
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

// Monadic wraps a function of one variable into a Func. If f returns NaN for
// an argument that is not NaN, the call fails with a DomainError naming the
// function.
func Monadic(name string, f func(float64) float64) Func {
	return monadic{name, f}
}

type dyadic struct {
	name string
	f    func(a, b float64) float64
}

func (d dyadic) Call(args []float64) (float64, error) {
	a, b := args[0], args[1]
	r := d.f(a, b)
	if math.IsNaN(r) && !math.IsNaN(a) && !math.IsNaN(b) {
		// Blame the first argument unless only the second could be at
		// fault.
		arg, x := 1, a
		if !math.IsInf(a, 0) && math.IsInf(b, 0) || b == 0 {
			arg, x = 2, b
		}
		return 0, DomainError{X: x, Arg: arg, Func: d.name}
	}
	return r, nil
}

func (d dyadic) CanCall(n int) bool {
	return n == 2
}

// Dyadic wraps a function of two variables into a Func. Out-of-domain
// arguments are detected the same way as for Monadic.
func Dyadic(name string, f func(a, b float64) float64) Func {
	return dyadic{name, f}
}

// arith is a function of two variables with the semantics of a binary
// operator: no domain checks, so mod(1, 0) is NaN just like 1 % 0.
type arith func(a, b float64) float64

func (f arith) Call(args []float64) (float64, error) {
	return f(args[0], args[1]), nil
}

func (arith) CanCall(n int) bool {
	return n == 2
}

type variadic struct {
	f func([]float64) float64
}

func (v variadic) Call(args []float64) (float64, error) {
	return v.f(args), nil
}

func (v variadic) CanCall(n int) bool {
	return n >= 1
}

// Variadic wraps a function of one or more variables into a Func.
func Variadic(f func([]float64) float64) Func {
	return variadic{f}
}

// logfn is log(x) in base 10 or log(x, b) in base b.
type logfn struct{}

func (logfn) Call(args []float64) (float64, error) {
	x := args[0]
	if x < 0 {
		return 0, DomainError{X: x, Arg: 1, Func: "log"}
	}
	if len(args) == 1 {
		return math.Log10(x), nil
	}
	b := args[1]
	if b <= 0 || b == 1 {
		return 0, DomainError{X: b, Arg: 2, Func: "log"}
	}
	return math.Log(x) / math.Log(b), nil
}

func (logfn) CanCall(n int) bool {
	return n == 1 || n == 2
}

// DomainError is an error returned when a function is called on arguments
// outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the function.
	Func string
}

func (err DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}
