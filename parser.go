package gocalc

import (
	"fmt"
	"unicode/utf8"
)

// ============================================================
// Parser
// ============================================================
//
// Grammar, loosest binding first:
//
//	sum     = product { ("+" | "-") product }
//	product = unary { ("*" | "/") unary | power }   juxtaposition multiplies
//	unary   = ("-" | "+") unary | power
//	power   = postfix [ "^" unary ]                  right associative
//	postfix = primary { "!" | "%" | "°" | "²" | "³" }
//	primary = number | imag | ident [ "(" args ")" ] | "(" sum ")" | "√" postfix

type syntax uint8

const (
	// calculatorSyntax accepts display notation: ln, log as log10, Abs, sin⁻¹ and friends.
	calculatorSyntax syntax = iota
	// helperSyntax accepts builtin names only, as produced by Rewrite.
	helperSyntax
)

type parser struct {
	input  string
	toks   []token
	i      int
	syntax syntax
}

func parse(input string, mode syntax) (node, error) {
	p := &parser{input: input, toks: tokenize(input), syntax: mode}
	if last := p.toks[len(p.toks)-1]; last.kind == tokIllegal {
		return nil, p.errorf(last, "unexpected character")
	}
	if p.peek().kind == tokEOF {
		return nil, p.errorf(p.peek(), "empty expression")
	}
	n, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		if t.kind == tokRParen {
			return nil, p.errorf(t, "unbalanced )")
		}
		return nil, p.errorf(t, "unexpected token")
	}
	return n, nil
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) advance() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...any) error {
	tok := t.text
	if t.kind == tokEOF {
		tok = "end of input"
	}
	return newEvalError(p.input, t.pos, tok, fmt.Errorf("%w: %s", ErrParse, fmt.Sprintf(format, args...)))
}

func (p *parser) expect(k tokenKind, what string) (token, error) {
	t := p.peek()
	if t.kind != k {
		return t, p.errorf(t, "expected %s", what)
	}
	return p.advance(), nil
}

func (p *parser) parseSum() (node, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		var name string
		switch t.kind {
		case tokPlus:
			name = "add"
		case tokMinus:
			name = "sub"
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = call(name, t.pos, left, right)
	}
}

// startsOperand reports whether t can begin an implicitly multiplied factor.
func startsOperand(t token) bool {
	switch t.kind {
	case tokNumber, tokImag, tokIdent, tokLParen, tokRoot:
		return true
	}
	return false
}

func isNumeral(t token) bool { return t.kind == tokNumber || t.kind == tokImag }

func (p *parser) parseProduct() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		var right node
		switch {
		case t.kind == tokStar || t.kind == tokSlash:
			p.advance()
			right, err = p.parseUnary()
		case startsOperand(t):
			if isNumeral(t) && p.i > 0 && isNumeral(p.toks[p.i-1]) {
				return nil, p.errorf(t, "missing operator between numbers")
			}
			right, err = p.parsePower()
		default:
			return left, nil
		}
		if err != nil {
			return nil, err
		}
		name := "mul"
		if t.kind == tokSlash {
			name = "div"
		}
		left = call(name, t.pos, left, right)
	}
}

func (p *parser) parseUnary() (node, error) {
	t := p.peek()
	switch t.kind {
	case tokPlus:
		p.advance()
		return p.parseUnary()
	case tokMinus:
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if num, ok := x.(*numberNode); ok {
			return &numberNode{v: -num.v}, nil
		}
		return call("neg", t.pos, x), nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (node, error) {
	base, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind == tokCaret {
		p.advance()
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return call("pow", t.pos, base, exp), nil
	}
	return base, nil
}

func (p *parser) parsePostfix() (node, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		switch t.kind {
		case tokBang:
			x = call("factorial", t.pos, x)
		case tokPercent:
			x = call("percent", t.pos, x)
		case tokDegree:
			x = call("deg", t.pos, x)
		case tokSquare:
			x = call("pow", t.pos, x, &numberNode{v: 2})
		case tokCube:
			x = call("pow", t.pos, x, &numberNode{v: 3})
		default:
			return x, nil
		}
		p.advance()
	}
}

func (p *parser) parsePrimary() (node, error) {
	t := p.peek()
	switch t.kind {
	case tokNumber:
		p.advance()
		return &numberNode{v: t.num}, nil
	case tokImag:
		p.advance()
		return &imagNode{v: t.num}, nil
	case tokLParen:
		p.advance()
		x, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, ")"); err != nil {
			return nil, err
		}
		return x, nil
	case tokRoot:
		p.advance()
		x, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		return call("sqrt", t.pos, x), nil
	case tokIdent:
		p.advance()
		return p.parseIdent(t)
	case tokEOF:
		return nil, p.errorf(t, "unexpected end of input")
	}
	return nil, p.errorf(t, "unexpected token")
}

func (p *parser) parseIdent(t token) (node, error) {
	if t.text == "i" {
		return &imagNode{v: 1}, nil
	}
	name, isFunc := p.resolveFunc(t.text)
	if p.peek().kind != tokLParen {
		if isFunc {
			return nil, p.errorf(t, "function %s needs (", t.text)
		}
		return &identNode{name: canonicalConstant(t.text), pos: t.pos}, nil
	}
	if !isFunc {
		// x(2) and ans(3) multiply; anything longer is a misspelled call.
		if isValueName(t.text) {
			return &identNode{name: canonicalConstant(t.text), pos: t.pos}, nil
		}
		err := newEvalError(p.input, t.pos, t.text, ErrUnknownFunction)
		err.Suggestion = suggestName(t.text)
		return nil, err
	}
	p.advance()
	var args []node
	if p.peek().kind != tokRParen {
		for {
			a, err := p.parseSum()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.peek().kind != tokComma {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(tokRParen, ")"); err != nil {
		return nil, err
	}
	if want := builtins[name].arity; len(args) != want {
		return nil, newEvalError(p.input, t.pos, t.text,
			fmt.Errorf("%w: %s takes %d, got %d", ErrArity, name, want, len(args)))
	}
	return call(name, t.pos, args...), nil
}

func (p *parser) resolveFunc(name string) (string, bool) {
	if p.syntax == calculatorSyntax {
		if alias, ok := calculatorAliases[name]; ok {
			name = alias
		}
	}
	_, ok := builtins[name]
	return name, ok
}

func canonicalConstant(name string) string {
	if name == "π" {
		return "pi"
	}
	return name
}

func isValueName(name string) bool {
	switch name {
	case "pi", "π", "e", "ans":
		return true
	}
	return utf8.RuneCountInString(name) == 1
}

// AutoClose appends the ")" needed to balance trailing open parentheses.
func AutoClose(expr string) string {
	depth := 0
	for _, t := range tokenize(expr) {
		switch t.kind {
		case tokLParen:
			depth++
		case tokRParen:
			if depth > 0 {
				depth--
			}
		}
	}
	for ; depth > 0; depth-- {
		expr += ")"
	}
	return expr
}
