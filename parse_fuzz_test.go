package calc_test

import (
	"testing"

	"github.com/zephyrtronium/calc"
)

func FuzzParse(f *testing.F) {
	f.Add("x")
	f.Add("1+2*3")
	f.Add("-2^3^2")
	f.Add("max(1, sin(pi))")
	f.Add("((1)")
	f.Fuzz(func(t *testing.T, s string) {
		calc.Parse(s)
		calc.Parse(s, calc.Minimal())
	})
}
