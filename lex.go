package calc

import (
	"regexp"
	"strconv"
	"unicode/utf8"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenConst is a numeric literal.
	tokenConst
	// tokenPunct is an operator, bracket, or argument separator.
	tokenPunct
	// tokenIdent is a constant or function name.
	tokenIdent
	// tokenSpace is whitespace. The lexer never returns it.
	tokenSpace
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "none"
	case tokenEOF:
		return "eof"
	case tokenConst:
		return "const"
	case tokenPunct:
		return "punct"
	case tokenIdent:
		return "id"
	case tokenSpace:
		return "space"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

type matcher struct {
	kind tokenKind
	re   *regexp.Regexp
}

// Matchers are tried in order, and the first match wins. Numbers are tried
// before punctuation. Digits and names are ASCII only, but any Unicode space
// separates tokens.
var (
	fullMatchers = []matcher{
		{tokenConst, regexp.MustCompile(`^\d+(\.\d+)?`)},
		{tokenPunct, regexp.MustCompile(`^[()+\-*/^%,]`)},
		{tokenIdent, regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*`)},
		{tokenSpace, regexp.MustCompile(`^[\s\v\x{85}\p{Z}]+`)},
	}
	minimalMatchers = []matcher{
		{tokenConst, fullMatchers[0].re},
		{tokenPunct, regexp.MustCompile(`^[()+\-*/^]`)},
		{tokenSpace, fullMatchers[3].re},
	}
)

type lexer struct {
	src string
	// index is the byte offset of the next token in src, and col is the
	// number of runes before it.
	index    int
	col      int
	peeked   lexToken
	matchers []matcher
}

func lex(src string, matchers []matcher) *lexer {
	return &lexer{
		src:      src,
		matchers: matchers,
	}
}

// peek returns the next token without consuming it. Repeated calls return the
// same token until the next consume.
func (l *lexer) peek() (lexToken, error) {
	if l.peeked.kind != tokenNone {
		return l.peeked, nil
	}
	tok, err := l.next()
	if err != nil {
		return tok, err
	}
	l.peeked = tok
	return tok, nil
}

// consume returns the next token and advances past it.
func (l *lexer) consume() (lexToken, error) {
	if l.peeked.kind != tokenNone {
		tok := l.peeked
		l.peeked = lexToken{}
		return tok, nil
	}
	return l.next()
}

// consumePunct consumes a token and requires it to be the given punctuation.
func (l *lexer) consumePunct(want string) error {
	tok, err := l.consume()
	if err != nil {
		return err
	}
	if tok.kind != tokenPunct || tok.text != want {
		return &ParseError{Col: tok.pos, Msg: "expected " + strconv.Quote(want) + " but got " + tok.describe()}
	}
	return nil
}

// next scans the token starting at the current index. Whitespace is skipped.
func (l *lexer) next() (lexToken, error) {
	for {
		if l.index >= len(l.src) {
			return lexToken{kind: tokenEOF, pos: l.col + 1}, nil
		}
		tok, ok := l.match()
		if !ok {
			r, _ := utf8.DecodeRuneInString(l.src[l.index:])
			return lexToken{}, &ParseError{
				Col: l.col + 1,
				Msg: "invalid character " + strconv.QuoteRune(r),
			}
		}
		l.index += len(tok.text)
		l.col += utf8.RuneCountInString(tok.text)
		if tok.kind != tokenSpace {
			return tok, nil
		}
	}
}

func (l *lexer) match() (lexToken, bool) {
	rest := l.src[l.index:]
	for _, m := range l.matchers {
		if s := m.re.FindString(rest); s != "" {
			return lexToken{text: s, kind: m.kind, pos: l.col + 1}, true
		}
	}
	return lexToken{}, false
}

// describe formats a token for error messages.
func (t lexToken) describe() string {
	if t.kind == tokenEOF {
		return "end of input"
	}
	return t.kind.String() + " " + strconv.Quote(t.text)
}
