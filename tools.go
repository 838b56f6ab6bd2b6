package gocalc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ============================================================
// Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// ToolSpec describes one tool: its required params and the JSON type of every param.
type ToolSpec struct {
	Name        string
	Description string
	Required    []string
	Props       map[string]string
}

const angleProp = "angle"

// ToolSpecs lists every tool HandleToolCall understands.
func ToolSpecs() []ToolSpec {
	return []ToolSpec{
		ts("evaluate", "Evaluate a calculator expression. Optional: angle (rad|deg), precision, vars", []string{"expression"}, map[string]string{"expression": "string", angleProp: "string", "precision": "integer", "vars": "object"}),
		ts("rewrite", "Rewrite calculator notation into add/sub/mul/div/pow helper calls", []string{"expression"}, map[string]string{"expression": "string"}),
		ts("solve_equation", "Solve a linear or quadratic equation in x, e.g. x^2-5x+6=0", []string{"equation"}, map[string]string{"equation": "string", angleProp: "string"}),
		ts("solve_linear", "Solve b*x+c=0", []string{"b", "c"}, map[string]string{"b": "number", "c": "number"}),
		ts("solve_quadratic", "Solve a*x²+b*x+c=0 with real or complex roots", []string{"a", "b", "c"}, map[string]string{"a": "number", "b": "number", "c": "number"}),
		ts("parse_complex", "Parse a complex literal such as 3-4i", []string{"text"}, map[string]string{"text": "string"}),
		ts("complex_op", "Apply a Complex method. op: add sub mul div pow abs arg conj exp log log10 sqrt sin cos tan asin acos atan sinh cosh tanh", []string{"op", "a"}, map[string]string{"op": "string", "a": "string", "b": "string"}),
		ts("evaluate_batch", "Evaluate several expressions concurrently", []string{"expressions"}, map[string]string{"expressions": "array", angleProp: "string"}),
		ts("to_base", "Floor of a real result in base bin, oct, hex or dec", []string{"expression", "base"}, map[string]string{"expression": "string", "base": "string"}),
		ts("statistics", "Mean and population standard deviation of comma-separated numbers", []string{"numbers"}, map[string]string{"numbers": "string"}),
		ts("to_polar", "Convert x,y to r,θ", []string{"x", "y"}, map[string]string{"x": "number", "y": "number", angleProp: "string"}),
		ts("to_rectangular", "Convert r,θ to x,y", []string{"r", "theta"}, map[string]string{"r": "number", "theta": "number", angleProp: "string"}),
		ts("to_dms", "Convert decimal degrees to degrees, minutes and seconds", []string{"degrees"}, map[string]string{"degrees": "number"}),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
}

func ts(name, description string, required []string, props map[string]string) ToolSpec {
	return ToolSpec{Name: name, Description: description, Required: required, Props: props}
}

func HandleToolCall(req ToolRequest) ToolResponse {
	return HandleToolCallContext(context.Background(), req)
}

// HandleToolCallContext is HandleToolCall with a context for the tools that fan out.
func HandleToolCallContext(ctx context.Context, req ToolRequest) ToolResponse {
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	getNumber := func(key string) (float64, error) {
		v, ok := req.Params[key]
		if !ok {
			return 0, fmt.Errorf("missing param: %s", key)
		}
		f, ok := v.(float64)
		if !ok {
			return 0, fmt.Errorf("param %s must be a number", key)
		}
		return f, nil
	}
	getStrings := func(key string) ([]string, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("param %s must be array", key)
		}
		result := make([]string, len(raw))
		for i, r := range raw {
			s, ok := r.(string)
			if !ok {
				return nil, fmt.Errorf("param %s[%d] must be string", key, i)
			}
			result[i] = s
		}
		return result, nil
	}
	getOptions := func() (Options, error) {
		var opts Options
		if v, ok := req.Params[angleProp]; ok {
			s, _ := v.(string)
			mode, err := ParseAngleMode(s)
			if err != nil {
				return opts, err
			}
			opts.Angle = mode
		}
		if v, ok := req.Params["precision"]; ok {
			f, ok := v.(float64)
			if !ok || f < 0 || f > 20 {
				return opts, fmt.Errorf("param precision must be an integer in [0, 20]")
			}
			opts.Precision = Places(int(f))
		}
		if v, ok := req.Params["vars"]; ok {
			raw, ok := v.(map[string]interface{})
			if !ok {
				return opts, fmt.Errorf("param vars must be an object")
			}
			opts.Vars = map[string]Value{}
			for name, rv := range raw {
				switch x := rv.(type) {
				case float64:
					opts.Vars[name] = Real(x)
				case string:
					opts.Vars[name] = ComplexValue(ParseComplex(x))
				default:
					return opts, fmt.Errorf("param vars.%s must be a number or complex literal", name)
				}
			}
		}
		return opts, nil
	}
	fail := func(err error) ToolResponse { return ToolResponse{Error: err.Error()} }
	respondValue := func(ev *Evaluator, v Value) ToolResponse {
		return ToolResponse{Result: v, String: ev.Format(v)}
	}
	respondSolution := func(s Solution) ToolResponse {
		resp := ToolResponse{
			Result: map[string]interface{}{
				"kind":         s.Kind,
				"status":       s.Status,
				"roots":        s.Roots,
				"coefficients": s.Coefficients,
			},
			String: s.String(),
		}
		if s.Kind == KindExpression {
			resp.Result = s.Result
		}
		if s.Err != nil {
			resp.Error = s.Err.Error()
		}
		return resp
	}

	switch req.Tool {
	case "evaluate":
		expr, err := getString("expression")
		if err != nil {
			return fail(err)
		}
		opts, err := getOptions()
		if err != nil {
			return fail(err)
		}
		ev := NewEvaluator(opts)
		v, err := ev.Evaluate(expr)
		if err != nil {
			return fail(err)
		}
		return respondValue(ev, v)

	case "rewrite":
		expr, err := getString("expression")
		if err != nil {
			return fail(err)
		}
		out, err := Rewrite(expr)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: out, String: out}

	case "solve_equation":
		eq, err := getString("equation")
		if err != nil {
			return fail(err)
		}
		opts, err := getOptions()
		if err != nil {
			return fail(err)
		}
		return respondSolution(NewEvaluator(opts).SolveEquation(eq))

	case "solve_linear":
		b, err := getNumber("b")
		if err != nil {
			return fail(err)
		}
		c, err := getNumber("c")
		if err != nil {
			return fail(err)
		}
		return respondSolution(SolveLinear(b, c))

	case "solve_quadratic":
		a, err := getNumber("a")
		if err != nil {
			return fail(err)
		}
		b, err := getNumber("b")
		if err != nil {
			return fail(err)
		}
		c, err := getNumber("c")
		if err != nil {
			return fail(err)
		}
		return respondSolution(SolveQuadratic(a, b, c))

	case "parse_complex":
		text, err := getString("text")
		if err != nil {
			return fail(err)
		}
		z := ParseComplex(text)
		return respondValue(defaultEvaluator, ComplexValue(z))

	case "complex_op":
		op, err := getString("op")
		if err != nil {
			return fail(err)
		}
		a, err := getString("a")
		if err != nil {
			return fail(err)
		}
		var b *Complex
		if s, err := getString("b"); err == nil {
			z := ParseComplex(s)
			b = &z
		}
		v, err := ComplexOp(op, ParseComplex(a), b)
		if err != nil {
			return fail(err)
		}
		return respondValue(defaultEvaluator, v)

	case "evaluate_batch":
		exprs, err := getStrings("expressions")
		if err != nil {
			return fail(err)
		}
		opts, err := getOptions()
		if err != nil {
			return fail(err)
		}
		results, err := NewEvaluator(opts).EvaluateBatch(ctx, exprs, 0)
		if err != nil {
			return fail(err)
		}
		out := make([]map[string]interface{}, len(results))
		strs := make([]string, len(results))
		for i, r := range results {
			item := map[string]interface{}{"expression": r.Expression, "string": r.Display}
			if r.Err != nil {
				item["error"] = r.Err.Error()
			} else {
				item["value"] = r.Value
			}
			out[i] = item
			strs[i] = r.Display
		}
		return ToolResponse{Result: out, String: strings.Join(strs, ", ")}

	case "to_base":
		expr, err := getString("expression")
		if err != nil {
			return fail(err)
		}
		base, err := getString("base")
		if err != nil {
			return fail(err)
		}
		v, err := Evaluate(expr)
		if err != nil {
			return fail(err)
		}
		s, err := ToBase(v, base)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: s, String: s}

	case "statistics":
		list, err := getString("numbers")
		if err != nil {
			return fail(err)
		}
		st, err := Statistics(list)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: st, String: fmt.Sprintf("mean %s, σ %s", FormatNumber(st.Mean), FormatNumber(st.StdDev))}

	case "to_polar", "to_rectangular":
		k1, k2 := "x", "y"
		if req.Tool == "to_rectangular" {
			k1, k2 = "r", "theta"
		}
		p, err := getNumber(k1)
		if err != nil {
			return fail(err)
		}
		q, err := getNumber(k2)
		if err != nil {
			return fail(err)
		}
		opts, err := getOptions()
		if err != nil {
			return fail(err)
		}
		mode := NewEvaluator(opts).Options().Angle
		var u, w float64
		if req.Tool == "to_polar" {
			u, w = ToPolar(p, q, mode)
		} else {
			u, w = ToRectangular(p, q, mode)
		}
		s := FormatNumber(u) + "," + FormatNumber(w)
		return ToolResponse{Result: []string{FormatNumber(u), FormatNumber(w)}, String: s}

	case "to_dms":
		d, err := getNumber("degrees")
		if err != nil {
			return fail(err)
		}
		s, err := ToDMS(d)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: s, String: s}

	case "mcp_spec":
		return ToolResponse{String: MCPToolSpec()}
	}
	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ComplexOp applies the named Complex method to a (and b for binary ops). Division
// goes through Complex.Div, so a zero divisor is an error here rather than NaN.
func ComplexOp(op string, a Complex, b *Complex) (Value, error) {
	binary := map[string]func(Complex, Complex) Complex{
		"add": Complex.Add,
		"sub": Complex.Sub,
		"mul": Complex.Mul,
		"pow": Complex.Pow,
	}
	unary := map[string]func(Complex) Complex{
		"conj": Complex.Conj, "exp": Complex.Exp, "log": Complex.Log, "log10": Complex.Log10,
		"sqrt": Complex.Sqrt, "sin": Complex.Sin, "cos": Complex.Cos, "tan": Complex.Tan,
		"asin": Complex.Asin, "acos": Complex.Acos, "atan": Complex.Atan,
		"sinh": Complex.Sinh, "cosh": Complex.Cosh, "tanh": Complex.Tanh,
	}
	switch op {
	case "abs":
		return Real(a.Abs()), nil
	case "arg":
		return Real(a.Arg()), nil
	case "div":
		if b == nil {
			return Value{}, fmt.Errorf("complex_op %s needs b", op)
		}
		q, err := a.Div(*b)
		if err != nil {
			return Value{}, err
		}
		return ComplexValue(q), nil
	}
	if f, ok := binary[op]; ok {
		if b == nil {
			return Value{}, fmt.Errorf("complex_op %s needs b", op)
		}
		return ComplexValue(f(a, *b)), nil
	}
	if f, ok := unary[op]; ok {
		return ComplexValue(f(a)), nil
	}
	return Value{}, fmt.Errorf("unknown complex op: %s", op)
}

// MCPToolSpec returns the tool list as a JSON schema document.
func MCPToolSpec() string {
	specs := ToolSpecs()
	tools := make([]map[string]interface{}, len(specs))
	for i, s := range specs {
		properties := map[string]interface{}{}
		for k, typ := range s.Props {
			properties[k] = map[string]interface{}{"type": typ}
		}
		tools[i] = map[string]interface{}{
			"name":        s.Name,
			"description": s.Description,
			"inputSchema": map[string]interface{}{
				"type":       "object",
				"properties": properties,
				"required":   s.Required,
			},
		}
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}
