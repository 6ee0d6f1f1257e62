package calc

import "strconv"

// ParseError is the error for any input the parser rejects: an invalid
// character, a misplaced token, an unclosed group, a misused function, or
// input left over after a complete expression. It implements InputError.
type ParseError struct {
	// Col is the 1-based column, counted in runes, of the token or
	// character that caused the error.
	Col int
	// Msg describes the problem.
	Msg string
}

func (err *ParseError) Error() string {
	return errpos(err.Col, err.Msg)
}

func (err *ParseError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error the parser
// itself produces implements InputError. Errors from an Env or a Func are
// returned as they are.
type InputError interface {
	error
	// Pos returns the 1-based column of the start of the token that caused
	// the error.
	Pos() int
}

var _ InputError = (*ParseError)(nil)
