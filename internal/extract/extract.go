// Package extract maps a remote JSON payload onto candidates. Hosts describe
// the mapping with a CEL expression evaluated against the payload bound to
// "_"; the expression must yield a list of strings or a list of
// {label, value} maps.
package extract

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types/ref"
	celext "github.com/google/cel-go/ext"

	"github.com/aliasimkazmi/core-components/internal/candidate"
)

// DefaultExpr accepts a payload that is already a plain list of strings.
const DefaultExpr = "_"

// Extractor compiles a CEL expression once and evaluates it per payload.
type Extractor struct {
	prg  cel.Program
	expr string
}

// New compiles expr into an extractor. An empty expression compiles
// DefaultExpr.
func New(expr string) (*Extractor, error) {
	if expr == "" {
		expr = DefaultExpr
	}
	env, err := cel.NewEnv(
		cel.Variable("_", cel.DynType),
		celext.Strings(),
		celext.Lists(),
	)
	if err != nil {
		return nil, fmt.Errorf("create extraction environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile extraction expression %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build extraction program for %q: %w", expr, err)
	}
	return &Extractor{prg: prg, expr: expr}, nil
}

// Expr returns the source expression.
func (e *Extractor) Expr() string { return e.expr }

// Candidates evaluates the expression against payload and converts the
// result into a candidate list. Supported result shapes:
//   - list of strings: each string is both label and value
//   - list of maps carrying "label" (required) and "value" (optional)
func (e *Extractor) Candidates(payload interface{}) (candidate.List, error) {
	out, _, err := e.prg.Eval(map[string]interface{}{"_": payload})
	if err != nil {
		return nil, fmt.Errorf("evaluate extraction expression %q: %w", e.expr, err)
	}
	return fromResult(toGo(out))
}

func fromResult(result interface{}) (candidate.List, error) {
	items, ok := result.([]interface{})
	if !ok {
		return nil, fmt.Errorf("extraction result must be a list, got %T", result)
	}
	cands := make(candidate.List, 0, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case string:
			cands = append(cands, candidate.Candidate{Label: v})
		case map[string]interface{}:
			label, _ := v["label"].(string)
			if label == "" {
				return nil, fmt.Errorf("extraction result item %d has no label", i)
			}
			value, _ := v["value"].(string)
			cands = append(cands, candidate.Candidate{Label: label, Value: value})
		default:
			return nil, fmt.Errorf("extraction result item %d must be a string or map, got %T", i, item)
		}
	}
	return cands, nil
}

// toGo unwraps a CEL value into plain Go types, converting nested ref.Val
// elements and map keys along the way.
func toGo(val ref.Val) interface{} {
	if val == nil {
		return nil
	}
	return native(val.Value())
}

func native(v interface{}) interface{} {
	switch t := v.(type) {
	case ref.Val:
		return native(t.Value())
	case []ref.Val:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = native(e)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = native(e)
		}
		return out
	case map[ref.Val]ref.Val:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[fmt.Sprintf("%v", native(k))] = native(e)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = native(e)
		}
		return out
	default:
		return v
	}
}
