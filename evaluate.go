package gocalc

import (
	"errors"
	"maps"
)

// ============================================================
// Evaluation
// ============================================================

// Options configures an Evaluator. The zero value evaluates in radians at
// DefaultPrecision with no variables bound.
type Options struct {
	Angle AngleMode
	// Precision is the number of decimal places results are displayed with.
	// Nil selects DefaultPrecision; zero rounds to whole numbers.
	Precision *int
	Vars      map[string]Value
}

// Places returns a pointer to n for use as Options.Precision.
func Places(n int) *int { return &n }

// Evaluator evaluates calculator expressions. It is immutable once built and safe
// for concurrent use.
type Evaluator struct {
	opts Options
}

func NewEvaluator(opts Options) *Evaluator {
	if opts.Angle == "" {
		opts.Angle = Radians
	}
	if opts.Precision == nil || *opts.Precision < 0 {
		opts.Precision = Places(DefaultPrecision)
	} else {
		opts.Precision = Places(*opts.Precision)
	}
	opts.Vars = maps.Clone(opts.Vars)
	return &Evaluator{opts: opts}
}

var defaultEvaluator = NewEvaluator(Options{})

func (ev *Evaluator) Options() Options { return ev.opts }

// With returns a copy of ev with name bound to v.
func (ev *Evaluator) With(name string, v Value) *Evaluator {
	opts := ev.opts
	opts.Vars = maps.Clone(ev.opts.Vars)
	if opts.Vars == nil {
		opts.Vars = map[string]Value{}
	}
	opts.Vars[name] = v
	return &Evaluator{opts: opts}
}

// Evaluate parses expr as calculator notation and evaluates it. Malformed input
// fails with *EvaluationError; numeric domain problems evaluate to NaN instead.
func (ev *Evaluator) Evaluate(expr string) (Value, error) {
	x, err := Compile(expr)
	if err != nil {
		return Value{}, err
	}
	return x.eval(ev.opts)
}

// EvaluateRewritten evaluates an expression in helper-call syntax, the form
// produced by Rewrite.
func (ev *Evaluator) EvaluateRewritten(expr string) (Value, error) {
	root, err := parse(expr, helperSyntax)
	if err != nil {
		return Value{}, err
	}
	return (&Expression{input: expr, root: root}).eval(ev.opts)
}

// Format renders v at the evaluator's precision.
func (ev *Evaluator) Format(v Value) string { return FormatResult(v, *ev.opts.Precision) }

func Evaluate(expr string) (Value, error)          { return defaultEvaluator.Evaluate(expr) }
func EvaluateRewritten(expr string) (Value, error) { return defaultEvaluator.EvaluateRewritten(expr) }

// Rewrite converts calculator notation into helper-call syntax: every operator and
// implicit multiplication becomes an explicit add/sub/mul/div/pow call and imaginary
// literals become Complex(re,im) constructions. "2(3+4)" rewrites to "mul(2,add(3,4))".
func Rewrite(expr string) (string, error) {
	x, err := Compile(expr)
	if err != nil {
		return "", err
	}
	return x.Rewrite(), nil
}

// Expression is a parsed calculator expression that can be evaluated repeatedly.
type Expression struct {
	input string
	root  node
}

func Compile(expr string) (*Expression, error) {
	root, err := parse(expr, calculatorSyntax)
	if err != nil {
		return nil, err
	}
	return &Expression{input: expr, root: root}, nil
}

func (x *Expression) String() string  { return x.input }
func (x *Expression) Rewrite() string { return renderNode(x.root) }

// Eval evaluates x in the given angle mode with vars bound.
func (x *Expression) Eval(angle AngleMode, vars map[string]Value) (Value, error) {
	return x.eval(Options{Angle: angle, Vars: vars})
}

func (x *Expression) eval(opts Options) (Value, error) {
	v, err := x.root.eval(&env{angle: opts.Angle, vars: opts.Vars})
	if err != nil {
		var ee *EvaluationError
		if errors.As(err, &ee) && ee.Input == "" {
			ee.Input = x.input
		}
		return Value{}, err
	}
	return v, nil
}
