package calc

import (
	"testing"
	"unicode/utf8"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []lexToken
		err    int
	}{
		// spaces
		{"", nil, 0},
		{" \t \r\n ", nil, 0},
		{"\v\u00a0\u2003\u3000\u2028", nil, 0},
		{"1\u00a0+\u3000x", []lexToken{
			{text: "1", kind: tokenConst, pos: 1},
			{text: "+", kind: tokenPunct, pos: 3},
			{text: "x", kind: tokenIdent, pos: 5},
		}, 0},
		// numbers
		{"0", []lexToken{{text: "0", kind: tokenConst, pos: 1}}, 0},
		{"9876543210", []lexToken{{text: "9876543210", kind: tokenConst, pos: 1}}, 0},
		{"1 0", []lexToken{{text: "1", kind: tokenConst, pos: 1}, {text: "0", kind: tokenConst, pos: 3}}, 0},
		{"1.0", []lexToken{{text: "1.0", kind: tokenConst, pos: 1}}, 0},
		{"-1", []lexToken{{text: "-", kind: tokenPunct, pos: 1}, {text: "1", kind: tokenConst, pos: 2}}, 0},
		{"1.", []lexToken{{text: "1", kind: tokenConst, pos: 1}}, 2},
		{".5", nil, 1},
		{"1.2.3", []lexToken{{text: "1.2", kind: tokenConst, pos: 1}}, 4},
		{"1e5", []lexToken{{text: "1", kind: tokenConst, pos: 1}, {text: "e5", kind: tokenIdent, pos: 2}}, 0},
		// identifiers
		{"e", []lexToken{{text: "e", kind: tokenIdent, pos: 1}}, 0},
		{"atan2", []lexToken{{text: "atan2", kind: tokenIdent, pos: 1}}, 0},
		{"2pi", []lexToken{{text: "2", kind: tokenConst, pos: 1}, {text: "pi", kind: tokenIdent, pos: 2}}, 0},
		{"sin(", []lexToken{{text: "sin", kind: tokenIdent, pos: 1}, {text: "(", kind: tokenPunct, pos: 4}}, 0},
		{"_x", nil, 1},
		{"π", nil, 1},
		// punctuation
		{"()+-*/^%,", []lexToken{
			{text: "(", kind: tokenPunct, pos: 1},
			{text: ")", kind: tokenPunct, pos: 2},
			{text: "+", kind: tokenPunct, pos: 3},
			{text: "-", kind: tokenPunct, pos: 4},
			{text: "*", kind: tokenPunct, pos: 5},
			{text: "/", kind: tokenPunct, pos: 6},
			{text: "^", kind: tokenPunct, pos: 7},
			{text: "%", kind: tokenPunct, pos: 8},
			{text: ",", kind: tokenPunct, pos: 9},
		}, 0},
		{"a--b", []lexToken{
			{text: "a", kind: tokenIdent, pos: 1},
			{text: "-", kind: tokenPunct, pos: 2},
			{text: "-", kind: tokenPunct, pos: 3},
			{text: "b", kind: tokenIdent, pos: 4},
		}, 0},
		// erroneous symbols
		{"$", nil, 1},
		{"a$", []lexToken{{text: "a", kind: tokenIdent, pos: 1}}, 2},
		{"1 @", []lexToken{{text: "1", kind: tokenConst, pos: 1}}, 3},
		{"[1]", nil, 1},
		{"\u00a0@", nil, 2},
		{"ππ", nil, 1},
		{"x π", []lexToken{{text: "x", kind: tokenIdent, pos: 1}}, 3},
		{"١", nil, 1},
	}

	for _, c := range cases {
		scan := lex(c.src, fullMatchers)
		for _, want := range c.tokens {
			got, err := scan.consume()
			if err != nil {
				t.Errorf("scanning %q: expected token %v but got error %v", c.src, want, err)
				break
			}
			if got != want {
				t.Errorf("scanning %q: want %v, got %v", c.src, want, got)
			}
		}
		got, err := scan.consume()
		switch {
		case c.err == 0 && err != nil:
			t.Errorf("scanning %q: unexpected error %v", c.src, err)
		case c.err == 0 && got.kind != tokenEOF:
			t.Errorf("scanning %q: extra token %v", c.src, got)
		case c.err == 0 && got.pos != utf8.RuneCountInString(c.src)+1:
			t.Errorf("scanning %q: eof at %d, want %d", c.src, got.pos, utf8.RuneCountInString(c.src)+1)
		case c.err != 0 && err == nil:
			t.Errorf("scanning %q: expected error at %d but got %v", c.src, c.err, got)
		case c.err != 0:
			perr, ok := err.(*ParseError)
			if !ok {
				t.Errorf("scanning %q: %#v is not *ParseError", c.src, err)
				continue
			}
			if perr.Col != c.err {
				t.Errorf("scanning %q: error at column %d, want %d", c.src, perr.Col, c.err)
			}
		}
	}
}

func TestLexMinimal(t *testing.T) {
	cases := []struct {
		src string
		err int
	}{
		{"1+2*(3-4)/5^6", 0},
		{"1 % 2", 3},
		{"1, 2", 2},
		{"pi", 1},
		{"2 x", 3},
	}
	for _, c := range cases {
		scan := lex(c.src, minimalMatchers)
		var err error
		for {
			var tok lexToken
			tok, err = scan.consume()
			if err != nil || tok.kind == tokenEOF {
				break
			}
		}
		if c.err == 0 {
			if err != nil {
				t.Errorf("scanning %q: unexpected error %v", c.src, err)
			}
			continue
		}
		perr, ok := err.(*ParseError)
		if !ok {
			t.Errorf("scanning %q: want *ParseError, got %#v", c.src, err)
			continue
		}
		if perr.Col != c.err {
			t.Errorf("scanning %q: error at column %d, want %d", c.src, perr.Col, c.err)
		}
	}
}

func TestPeek(t *testing.T) {
	scan := lex("12 + x", fullMatchers)
	a, err := scan.peek()
	if err != nil {
		t.Fatal(err)
	}
	b, err := scan.peek()
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("repeated peeks differ: %v then %v", a, b)
	}
	if scan.index != 2 {
		t.Errorf("index after peek is %d, want 2", scan.index)
	}
	c, err := scan.consume()
	if err != nil {
		t.Fatal(err)
	}
	if c != a {
		t.Errorf("consume after peek gave %v, want %v", c, a)
	}
	d, err := scan.peek()
	if err != nil {
		t.Fatal(err)
	}
	want := lexToken{text: "+", kind: tokenPunct, pos: 4}
	if d != want {
		t.Errorf("second peek gave %v, want %v", d, want)
	}
}

func TestConsumePunct(t *testing.T) {
	cases := []struct {
		src  string
		want string
		ok   bool
	}{
		{")", ")", true},
		{" )", ")", true},
		{"(", ")", false},
		{"x", ")", false},
		{"", ")", false},
		{",", ",", true},
	}
	for _, c := range cases {
		scan := lex(c.src, fullMatchers)
		err := scan.consumePunct(c.want)
		if c.ok && err != nil {
			t.Errorf("consuming %q from %q: %v", c.want, c.src, err)
		}
		if !c.ok && err == nil {
			t.Errorf("consuming %q from %q: no error", c.want, c.src)
		}
	}
}
