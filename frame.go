package calc

import (
	"sort"
	"strconv"
)

// Value is what an Env maps a name to: either a number or, if Func is
// non-nil, a function to be applied by a following argument list.
type Value struct {
	Num  float64
	Func Func
}

// Number creates a constant value.
func Number(x float64) Value {
	return Value{Num: x}
}

// Callable creates a function value.
func Callable(f Func) Value {
	return Value{Func: f}
}

// IsFunc returns whether v is a function rather than a number.
func (v Value) IsFunc() bool {
	return v.Func != nil
}

// Env supplies the constants and functions that identifiers refer to. The
// parser only reads from an Env.
type Env interface {
	// Lookup returns the value bound to name, or an error if there is none.
	// The parser returns the error unchanged.
	Lookup(name string) (Value, error)
}

// Frame is an Env backed by a map. A Frame is safe for concurrent lookups as
// long as nothing modifies it.
type Frame map[string]Value

// Lookup returns the value for name or a *NameError.
func (f Frame) Lookup(name string) (Value, error) {
	v, ok := f[name]
	if !ok {
		return Value{}, &NameError{Name: name}
	}
	return v, nil
}

// Names returns the frame's names in sorted order.
func (f Frame) Names() []string {
	names := make([]string, 0, len(f))
	for k := range f {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Clone returns a copy of the frame that can be modified independently.
func (f Frame) Clone() Frame {
	r := make(Frame, len(f))
	for k, v := range f {
		r[k] = v
	}
	return r
}

// layered checks its own definitions before deferring to an underlying Env.
type layered struct {
	defs Frame
	env  Env
}

func (l *layered) Lookup(name string) (Value, error) {
	if v, ok := l.defs[name]; ok {
		return v, nil
	}
	return l.env.Lookup(name)
}

// NameError is an error from a lookup for a name that is missing from a
// Frame.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined name: " + strconv.Quote(err.Name)
}
