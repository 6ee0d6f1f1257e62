package calc

import (
	"errors"
	"strconv"
)

// Expr = const | id | Call | Neg | Add | Sub | Mul | Div | Mod | Pow | '(' Expr ')'
// Call = Expr '(' Expr { ',' Expr } ')'
// Neg = '-' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Mod = Expr '%' Expr
// Pow = Expr '^' Expr

// power is the binding power of an operator. Higher binds tighter.
type power int

const (
	// top accepts any operator. It is the power of a whole expression,
	// a parenthesized group, and each function argument.
	top power = 0
	// plus is the power of + and -.
	plus power = 10
	// times is the power of *, /, and %.
	times power = 20
	// pow is the power of ^ and the operand of unary -.
	pow power = 30
)

// Parse evaluates an expression. The given options are applied in order.
//
// Errors in the input are reported as *ParseError. Errors from looking up
// names or calling functions are returned unchanged.
func Parse(src string, opts ...ParseOption) (float64, error) {
	p := newparsectx(opts)
	scan := lex(src, p.matchers)
	v, err := parseMain(scan, &p, top)
	if err != nil {
		return 0, err
	}
	tok, err := scan.peek()
	if err != nil {
		return 0, err
	}
	if tok.kind != tokenEOF {
		return 0, &ParseError{Col: tok.pos, Msg: "full string not parsed: unexpected " + tok.describe()}
	}
	return v.num()
}

// parseMain parses a subexpression, folding in only operators with at least
// the given power.
func parseMain(scan *lexer, p *parsectx, min power) (value, error) {
	left, err := parseInitial(scan, p)
	if err != nil {
		return value{}, err
	}
	for {
		next, ok, err := parseConsequent(scan, p, left, min)
		if err != nil {
			return value{}, err
		}
		if !ok {
			return left, nil
		}
		left = next
	}
}

// parseConsequent folds one operator or call into left if the next token is
// one that may apply at power min. If not, the result is false and the token
// is left for the caller.
func parseConsequent(scan *lexer, p *parsectx, left value, min power) (value, bool, error) {
	tok, err := scan.peek()
	if err != nil {
		return value{}, false, err
	}
	if tok.kind != tokenPunct {
		return left, false, nil
	}
	var (
		prec power
		rhs  power
	)
	switch tok.text {
	case "+", "-":
		// 1-2+3 must not parse as 1-(2+3), so the right operand needs more
		// power.
		prec, rhs = plus, plus+1
	case "*", "/", "%":
		prec, rhs = times, times+1
	case "^":
		// 2^3^4 is 2^(3^4), so the right operand may contain another ^.
		prec, rhs = pow, pow
	case "(":
		scan.consume()
		args, err := parseCommaSepUntil(scan, p)
		if err != nil {
			return value{}, false, err
		}
		if err := scan.consumePunct(")"); err != nil {
			return value{}, false, err
		}
		r, err := left.call(tok, args)
		if err != nil {
			return value{}, false, err
		}
		p.traceCall(left.name, args, r)
		return r, true, nil
	default:
		// Not a consequent, e.g. a close bracket or separator.
		return left, false, nil
	}
	if prec < min {
		// E.g. 2*3+4 with left=3 and min=times. Leave + for the caller.
		return left, false, nil
	}
	if _, err := left.num(); err != nil {
		return value{}, false, err
	}
	scan.consume()
	right, err := parseMain(scan, p, rhs)
	if err != nil {
		return value{}, false, err
	}
	r, err := p.fold(tok.text, left, right)
	if err != nil {
		return value{}, false, err
	}
	return r, true, nil
}

// parseCommaSepUntil parses one or more comma-separated subexpressions. It
// stops at the first token after an argument that is not a comma, without
// consuming it.
func parseCommaSepUntil(scan *lexer, p *parsectx) ([]float64, error) {
	var args []float64
	for {
		v, err := parseMain(scan, p, top)
		if err != nil {
			return nil, err
		}
		x, err := v.num()
		if err != nil {
			return nil, err
		}
		args = append(args, x)
		tok, err := scan.peek()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenPunct || tok.text != "," {
			return args, nil
		}
		scan.consume()
	}
}

// parseInitial parses the first term of a subexpression.
func parseInitial(scan *lexer, p *parsectx) (value, error) {
	tok, err := scan.consume()
	if err != nil {
		return value{}, err
	}
	switch tok.kind {
	case tokenConst:
		// Literals out of range become ±Inf or 0 like any other float.
		x, err := strconv.ParseFloat(tok.text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return value{}, &ParseError{Col: tok.pos, Msg: "invalid number " + strconv.Quote(tok.text)}
		}
		return value{x: x, pos: tok.pos}, nil
	case tokenPunct:
		switch tok.text {
		case "(":
			v, err := parseMain(scan, p, top)
			if err != nil {
				return value{}, err
			}
			if err := scan.consumePunct(")"); err != nil {
				return value{}, err
			}
			v.pos = tok.pos
			return v, nil
		case "-":
			// -2^2 is -(2^2), but -2*3 is (-2)*3.
			v, err := parseMain(scan, p, pow)
			if err != nil {
				return value{}, err
			}
			x, err := v.num()
			if err != nil {
				return value{}, err
			}
			return value{x: -x, pos: tok.pos}, nil
		}
	case tokenIdent:
		v, err := p.env.Lookup(tok.text)
		if err != nil {
			return value{}, err
		}
		return value{x: v.Num, fn: v.Func, name: tok.text, pos: tok.pos}, nil
	case tokenEOF:
		return value{}, &ParseError{Col: tok.pos, Msg: "unexpected end of input"}
	}
	return value{}, &ParseError{Col: tok.pos, Msg: "invalid token here: " + tok.describe()}
}
