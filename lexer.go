package gocalc

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// ============================================================
// Lexer
// ============================================================

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIllegal
	tokNumber
	tokImag // numeral immediately followed by i, e.g. 3i
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
	tokComma
	tokEquals
	tokBang
	tokPercent
	tokDegree
	tokSquare
	tokCube
	tokRoot
)

type token struct {
	kind tokenKind
	text string
	pos  int
	num  float64
}

// inverseSuffix is the superscript "⁻¹" used for inverse trig (sin⁻¹).
const inverseSuffix = "⁻¹"

type lexer struct {
	s string
	i int
}

func (l *lexer) peekRune(at int) (rune, int) {
	if at >= len(l.s) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(l.s[at:])
}

func (l *lexer) skipSpace() {
	for l.i < len(l.s) {
		r, w := l.peekRune(l.i)
		if !unicode.IsSpace(r) {
			return
		}
		l.i += w
	}
}

func (l *lexer) next() token {
	l.skipSpace()
	if l.i >= len(l.s) {
		return token{kind: tokEOF, pos: l.i}
	}

	start := l.i
	r, w := l.peekRune(l.i)
	single := func(k tokenKind) token {
		l.i += w
		return token{kind: k, text: l.s[start:l.i], pos: start}
	}

	switch r {
	case '+':
		return single(tokPlus)
	case '-', '−':
		return single(tokMinus)
	case '*':
		if l.i+1 < len(l.s) && l.s[l.i+1] == '*' {
			l.i += 2
			return token{kind: tokCaret, text: "**", pos: start}
		}
		return single(tokStar)
	case '×', '·':
		return single(tokStar)
	case '/', '÷':
		return single(tokSlash)
	case '^':
		return single(tokCaret)
	case '(', '[':
		return single(tokLParen)
	case ')', ']':
		return single(tokRParen)
	case ',':
		return single(tokComma)
	case '=':
		return single(tokEquals)
	case '!':
		return single(tokBang)
	case '%':
		return single(tokPercent)
	case '°':
		return single(tokDegree)
	case '²':
		return single(tokSquare)
	case '³':
		return single(tokCube)
	case '√':
		return single(tokRoot)
	case 'π':
		// A constant on its own; never part of a longer name.
		return single(tokIdent)
	}

	if r == '.' || unicode.IsDigit(r) {
		l.i = scanNumber(l.s, l.i)
		if l.i == start {
			l.i += w
			return token{kind: tokIllegal, text: l.s[start:l.i], pos: start}
		}
		txt := l.s[start:l.i]
		f, err := strconv.ParseFloat(txt, 64)
		if err != nil {
			return token{kind: tokIllegal, text: txt, pos: start}
		}
		if end, ok := l.imagSuffix(l.i); ok {
			l.i = end
			return token{kind: tokImag, text: l.s[start:l.i], pos: start, num: f}
		}
		return token{kind: tokNumber, text: txt, pos: start, num: f}
	}

	if isIdentStart(r) {
		l.i += w
		for l.i < len(l.s) {
			r, w := l.peekRune(l.i)
			if !isIdentContinue(r) {
				break
			}
			l.i += w
		}
		if len(l.s)-l.i >= len(inverseSuffix) && l.s[l.i:l.i+len(inverseSuffix)] == inverseSuffix {
			l.i += len(inverseSuffix)
		}
		return token{kind: tokIdent, text: l.s[start:l.i], pos: start}
	}

	return single(tokIllegal)
}

// imagSuffix reports whether the numeral ending at i is followed (after optional
// spaces) by a standalone i, returning the offset just past it.
func (l *lexer) imagSuffix(i int) (int, bool) {
	j := i
	for j < len(l.s) {
		r, w := l.peekRune(j)
		if !unicode.IsSpace(r) {
			break
		}
		j += w
	}
	if j >= len(l.s) || l.s[j] != 'i' {
		return 0, false
	}
	if r, _ := l.peekRune(j + 1); j+1 < len(l.s) && (isIdentContinue(r) || r == '.') {
		return 0, false
	}
	return j + 1, true
}

func scanNumber(s string, i int) int {
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i-start == 1 && s[start] == '.' {
		return start
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isIdentStart(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || ('0' <= r && r <= '9')
}

// tokenize lexes the whole input, stopping after the first EOF or illegal token.
func tokenize(s string) []token {
	l := &lexer{s: s}
	var out []token
	for {
		t := l.next()
		out = append(out, t)
		if t.kind == tokEOF || t.kind == tokIllegal {
			return out
		}
	}
}
