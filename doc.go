// Package calc implements a floating-point calculator.
//
// An expression is made of decimal numbers, names, parentheses, function
// calls, unary minus, and the binary operators + - * / % ^. The usual
// precedence applies, from loosest to tightest: + and -, then * / and %, then
// ^. All binary operators are left-associative except ^, so "2^3^2" is
// "2^(3^2)". Unary minus binds tighter than everything except ^ to its right:
// "-2^2" is "-(2^2)" while "-2*3" is "(-2)*3". Calls bind tightest of all and
// take one or more comma-separated arguments, as in "max(3, 5)".
//
// Expressions are evaluated as they are parsed. Names are resolved through an
// Env; by default, that is a Frame with the contents of DefaultFrame.
//
// Arithmetic follows IEEE 754, so "1/0" is +Inf rather than an error, and "%"
// is the floored remainder, taking the sign of its right operand.
package calc
