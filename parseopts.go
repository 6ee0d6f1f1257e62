package calc

import (
	"github.com/rs/zerolog"
)

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	envopt struct{ env Env }
	defopt struct {
		name string
		val  Value
	}
	minopt   struct{}
	traceopt struct{ log zerolog.Logger }
)

// parsectx holds general data for parsing.
type parsectx struct {
	// env resolves identifiers.
	env Env
	// defs are definitions layered over env by Define.
	defs Frame
	// matchers are the token patterns for the lexer, in priority order.
	matchers []matcher
	// log receives fold and call traces at debug level.
	log zerolog.Logger
}

func newparsectx(opts []ParseOption) parsectx {
	p := parsectx{
		env:      globalframe,
		matchers: fullMatchers,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		p = opt.parseOption(p)
	}
	if len(p.defs) != 0 {
		p.env = &layered{defs: p.defs, env: p.env}
	}
	return p
}

// WithEnv sets the environment that identifiers are looked up in. The
// default is a Frame with the same contents as DefaultFrame.
func WithEnv(env Env) ParseOption {
	return envopt{env}
}

func (o envopt) parseOption(p parsectx) parsectx {
	p.env = o.env
	return p
}

// Define binds a name for parsing, shadowing the environment. Later
// definitions of the same name replace earlier ones.
func Define(name string, val Value) ParseOption {
	return defopt{name, val}
}

func (o defopt) parseOption(p parsectx) parsectx {
	// Always make a copy so that options can be reused.
	defs := make(Frame, len(p.defs)+1)
	for k, v := range p.defs {
		defs[k] = v
	}
	defs[o.name] = o.val
	p.defs = defs
	return p
}

// Minimal restricts the grammar to numbers, parentheses, and the operators
// + - * / ^. Identifiers, commas, and % are invalid characters.
func Minimal() ParseOption {
	return minopt{}
}

func (minopt) parseOption(p parsectx) parsectx {
	p.matchers = minimalMatchers
	return p
}

// Trace logs each operator and function application at debug level.
func Trace(log zerolog.Logger) ParseOption {
	return traceopt{log}
}

func (o traceopt) parseOption(p parsectx) parsectx {
	p.log = o.log
	return p
}
