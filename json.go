package stepcalc

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// ============================================================
// JSON Serialization
// ============================================================

func ToJSON(n Node) (string, error) {
	b, err := json.Marshal(n.toJSON())
	return string(b), err
}

// TreeJSON returns the tree as a decoded JSON object, ready to embed in a
// larger response.
func TreeJSON(n Node) map[string]interface{} { return n.toJSON() }

func FromJSON(data map[string]interface{}) (Node, error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, fmt.Errorf("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	subObj := func(field string) (map[string]interface{}, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		return m, nil
	}

	subString := func(field string) (string, error) {
		v, ok := data[field]
		if !ok {
			return "", fmt.Errorf("%s: missing %q", typ, field)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", fmt.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	subNode := func(field string) (Node, error) {
		m, err := subObj(field)
		if err != nil {
			return nil, err
		}
		n, err := FromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", typ, field, err)
		}
		return n, nil
	}

	switch typ {
	case "num":
		val, err := subString("value")
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid num value: %s", val)
		}
		return N(v), nil

	case "var":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		if r, size := utf8.DecodeRuneInString(name); size != len(name) || r != Variable {
			return nil, fmt.Errorf("var: unknown variable %q", name)
		}
		return V(Variable), nil

	case "op":
		sym, err := subString("op")
		if err != nil {
			return nil, err
		}
		r, size := utf8.DecodeRuneInString(sym)
		op, ok := opKindOf(r)
		if !ok || size != len(sym) {
			return nil, fmt.Errorf("op: unknown operator %q", sym)
		}
		left, err := subNode("left")
		if err != nil {
			return nil, err
		}
		right, err := subNode("right")
		if err != nil {
			return nil, err
		}
		return OpOf(op, left, right), nil

	case "error":
		msg, err := subString("message")
		if err != nil {
			return nil, err
		}
		err = errors.New(msg)
		if v, ok := data["kind"]; ok {
			kind, _ := v.(string)
			sentinel, known := errorKinds[kind]
			if !known {
				return nil, fmt.Errorf("error: unknown kind %q", kind)
			}
			err = sentinel
		}
		return &ErrorNode{msg: msg, err: err}, nil
	}
	return nil, fmt.Errorf("unknown expression type: %s", typ)
}
