// Package session holds calculator display state as a value. Every transition
// returns a new State; nothing here mutates shared state.
package session

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/njchilds90/gocalc"
)

const (
	Zero  = "0"
	Error = "Error"
)

var ErrMemory = errors.New("memory needs a finite real result")

type State struct {
	Expression string
	Cursor     int // rune offset into Expression
	Memory     float64
	Answer     gocalc.Value
	Angle      gocalc.AngleMode
	Precision  int // negative selects gocalc.DefaultPrecision
}

func New(angle gocalc.AngleMode, precision int) State {
	return State{Expression: Zero, Cursor: 1, Answer: gocalc.Real(0), Angle: angle, Precision: precision}
}

// Recorder receives every successful calculation.
type Recorder interface {
	Record(expression, result string) error
}

// Outcome describes one Calculate call.
type Outcome struct {
	Input   string
	Display string
	Value   gocalc.Value
	Err     error
}

func (s State) evaluator() *gocalc.Evaluator {
	ev := gocalc.NewEvaluator(gocalc.Options{Angle: s.Angle, Precision: gocalc.Places(s.precision())})
	return ev.With("ans", s.Answer)
}

func (s State) blank() bool {
	return s.Expression == Zero || s.Expression == Error || s.Expression == ""
}

func (s State) withExpression(expr string) State {
	s.Expression = expr
	s.Cursor = utf8.RuneCountInString(expr)
	return s
}

// startsWithOperator reports whether text continues a previous operand rather than
// starting a new one.
func startsWithOperator(text string) bool {
	r, _ := utf8.DecodeRuneInString(text)
	return strings.ContainsRune("+-−*×/÷^.!%²³°", r)
}

// Insert places text at the cursor. A blank display ("0" or "Error") is replaced
// unless text is an operator continuing from zero.
func (s State) Insert(text string) State {
	if s.blank() {
		if s.Expression == Error || !startsWithOperator(text) {
			return s.withExpression(text)
		}
		s = s.withExpression(Zero)
	}
	runes := []rune(s.Expression)
	c := min(max(s.Cursor, 0), len(runes))
	s.Expression = string(runes[:c]) + text + string(runes[c:])
	s.Cursor = c + utf8.RuneCountInString(text)
	return s
}

// Backspace deletes the rune before the cursor; deleting the last one leaves "0".
func (s State) Backspace() State {
	runes := []rune(s.Expression)
	c := min(max(s.Cursor, 0), len(runes))
	if s.Expression == Error || len(runes) <= 1 {
		return s.withExpression(Zero)
	}
	if c == 0 {
		return s
	}
	s.Expression = string(runes[:c-1]) + string(runes[c:])
	s.Cursor = c - 1
	return s
}

func (s State) Clear() State { return s.withExpression(Zero) }

func (s State) ToggleSign() State {
	switch {
	case strings.HasPrefix(s.Expression, "-"):
		return s.withExpression(s.Expression[1:])
	case s.blank():
		return s
	}
	return s.withExpression("-" + s.Expression)
}

func (s State) CursorLeft() State {
	if s.Cursor > 0 {
		s.Cursor--
	}
	return s
}

func (s State) CursorRight() State {
	if s.Cursor < utf8.RuneCountInString(s.Expression) {
		s.Cursor++
	}
	return s
}

func (s State) format(v gocalc.Value) string { return gocalc.FormatResult(v, s.precision()) }

func (s State) precision() int {
	if s.Precision < 0 {
		return gocalc.DefaultPrecision
	}
	return s.Precision
}

// InsertAnswer inserts the previous result.
func (s State) InsertAnswer() State { return s.Insert(s.format(s.Answer)) }

func (s State) MemoryRecall() State { return s.Insert(gocalc.FormatNumber(s.Memory)) }

func (s State) MemoryClear() State {
	s.Memory = 0
	return s
}

// realResult evaluates the display for the memory keys.
func (s State) realResult() (float64, error) {
	v, err := s.evaluator().Evaluate(gocalc.AutoClose(s.Expression))
	if err != nil {
		return 0, err
	}
	if v.IsComplex() || !v.IsFinite() {
		return 0, ErrMemory
	}
	return v.Float64(), nil
}

func (s State) MemoryStore() (State, error) {
	f, err := s.realResult()
	if err != nil {
		return s, err
	}
	s.Memory = f
	return s, nil
}

func (s State) MemoryAdd() (State, error) {
	f, err := s.realResult()
	if err != nil {
		return s, err
	}
	s.Memory += f
	return s, nil
}

func (s State) MemorySubtract() (State, error) {
	f, err := s.realResult()
	if err != nil {
		return s, err
	}
	s.Memory -= f
	return s, nil
}

// Calculate evaluates the display. Trailing open parentheses are closed first; an
// input with "=" is solved as an equation in x. On success the display shows the
// result, the answer register is updated and rec (if any) records it. Malformed
// input leaves "Error" on the display.
func (s State) Calculate(rec Recorder) (State, Outcome) {
	input := gocalc.AutoClose(s.Expression)
	out := Outcome{Input: input}
	ev := s.evaluator()

	if strings.Contains(input, "=") {
		sol := ev.SolveEquation(input)
		if sol.Kind == gocalc.KindInvalid {
			out.Err = sol.Err
			out.Display = Error
			return s.withExpression(Error), out
		}
		out.Display = sol.Format(s.precision())
		if len(sol.Roots) > 0 {
			out.Value = sol.Roots[0]
		}
	} else {
		v, err := ev.Evaluate(input)
		if err != nil {
			out.Err = err
			out.Display = Error
			return s.withExpression(Error), out
		}
		out.Value = v
		out.Display = s.format(v)
		s.Answer = v
	}

	if rec != nil {
		if err := rec.Record(input, out.Display); err != nil {
			out.Err = err
		}
	}
	return s.withExpression(out.Display), out
}
