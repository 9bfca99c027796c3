package stepcalc

import (
	"encoding/json"
	"fmt"
	"math"
)

// ============================================================
// Tool-call Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Trace  []string    `json:"trace,omitempty"`
	Error  string      `json:"error,omitempty"`
}

func HandleToolCall(req ToolRequest) ToolResponse {
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
	getInt := func(key string) (int64, error) {
		v, ok := req.Params[key]
		if !ok {
			return 0, fmt.Errorf("missing param: %s", key)
		}
		f, ok := v.(float64)
		if !ok || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
			return 0, fmt.Errorf("param %s must be an integer", key)
		}
		return int64(f), nil
	}
	// getTree accepts either expression text or a tree object.
	getTree := func(key string) (Node, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		switch val := v.(type) {
		case string:
			return Parse(val)
		case map[string]interface{}:
			return FromJSON(val)
		}
		return nil, fmt.Errorf("param %s must be a string or expression object", key)
	}
	errResp := func(err error) ToolResponse { return ToolResponse{Error: err.Error()} }

	switch req.Tool {
	case "parse":
		tree, err := getTree("expr")
		if err != nil {
			return errResp(err)
		}
		return ToolResponse{Result: TreeJSON(tree), String: tree.String(), LaTeX: tree.LaTeX()}

	case "simplify":
		tree, err := getTree("expr")
		if err != nil {
			return errResp(err)
		}
		return simplifyResponse(Simplify(tree))

	case "to_latex":
		tree, err := getTree("expr")
		if err != nil {
			return errResp(err)
		}
		return ToolResponse{LaTeX: tree.LaTeX(), String: tree.String()}

	case "compare":
		var eq *Equation
		if text, err := getString("equation"); err == nil {
			left, right, err := ParseEquation(text)
			if err != nil {
				return errResp(err)
			}
			if eq, err = CompareEquation(left, right); err != nil {
				return errResp(err)
			}
		} else {
			left, err := getString("left")
			if err != nil {
				return errResp(err)
			}
			right, err := getString("right")
			if err != nil {
				return errResp(err)
			}
			if eq, err = CompareEquation(left, right); err != nil {
				return errResp(err)
			}
		}
		return equationResponse(eq)

	case "evaluate":
		input, err := getString("input")
		if err != nil {
			return errResp(err)
		}
		out, err := Evaluate(input)
		if err != nil {
			return errResp(err)
		}
		if out.Equation != nil {
			return equationResponse(out.Equation)
		}
		return simplifyResponse(out.Expression.Result)

	case "reduce_fraction":
		num, err := getInt("num")
		if err != nil {
			return errResp(err)
		}
		den, err := getInt("den")
		if err != nil {
			return errResp(err)
		}
		if den == 0 {
			return errResp(ErrDivisionByZero)
		}
		n, d := ReduceFraction(num, den)
		return ToolResponse{Result: map[string]interface{}{"num": n, "den": d}, String: FracOf(n, d).String()}

	case "lcm":
		a, err := getInt("a")
		if err != nil {
			return errResp(err)
		}
		b, err := getInt("b")
		if err != nil {
			return errResp(err)
		}
		if a == 0 || b == 0 {
			return errResp(fmt.Errorf("lcm requires non-zero operands"))
		}
		return ToolResponse{Result: LeastCommonMultiple(a, b)}

	case "prime_factors":
		n, err := getInt("n")
		if err != nil {
			return errResp(err)
		}
		factors, err := PrimeFactors(n)
		if err != nil {
			return errResp(err)
		}
		return ToolResponse{Result: factors}

	case "tool_spec":
		var spec interface{}
		_ = json.Unmarshal([]byte(ToolSpec()), &spec)
		return ToolResponse{Result: spec}
	}
	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

func simplifyResponse(res Result) ToolResponse {
	if e, ok := res.Node.(*ErrorNode); ok {
		return ToolResponse{Error: e.msg, Trace: res.Trace}
	}
	return ToolResponse{
		Result: TreeJSON(res.Node),
		String: res.Node.String(),
		LaTeX:  res.Node.LaTeX(),
		Trace:  res.Trace,
	}
}

func equationResponse(eq *Equation) ToolResponse {
	if eq.Verdict == Undecided {
		return ToolResponse{Error: eq.ErrorMessage()}
	}
	return ToolResponse{
		Result: map[string]interface{}{
			"verdict": eq.Verdict.String(),
			"left":    eq.LeftResult.Node.String(),
			"right":   eq.RightResult.Node.String(),
		},
		String: eq.Key(),
		LaTeX:  eq.LeftResult.Node.LaTeX() + " = " + eq.RightResult.Node.LaTeX(),
	}
}

// ============================================================
// Tool schema
// ============================================================

func ToolSpec() string {
	tools := []map[string]interface{}{
		ts("parse", "Parse arithmetic text into an expression tree", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("simplify", "Reduce an expression to an integer or lowest-terms fraction with a step trace", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("to_latex", "Render an expression as LaTeX", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("compare", "Check an equation. Pass equation=\"a=b\" or left and right", []string{}, map[string]string{"equation": "string", "left": "string", "right": "string"}),
		ts("evaluate", "Simplify an expression or check an equation, like the REPL", []string{"input"}, map[string]string{"input": "string"}),
		ts("reduce_fraction", "Reduce num/den to lowest terms with a positive denominator", []string{"num", "den"}, map[string]string{"num": "integer", "den": "integer"}),
		ts("lcm", "Least common multiple of two non-zero integers", []string{"a", "b"}, map[string]string{"a": "integer", "b": "integer"}),
		ts("prime_factors", "Prime factors of a non-zero integer, with -1 first when negative", []string{"n"}, map[string]string{"n": "integer"}),
		ts("tool_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
