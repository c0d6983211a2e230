// Package celfilter evaluates CEL predicates against individual records.
// It backs the expression filter kind and the --where flag: an expression is
// compiled once per screen and then evaluated per row with the row bound to
// the variable "_".
package celfilter

import (
	"fmt"

	"github.com/google/cel-go/cel"
	celext "github.com/google/cel-go/ext"
)

// Predicate is a compiled row filter.
type Predicate struct {
	program cel.Program
	expr    string
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("_", cel.DynType),
		// Extensions give filters the usual string/list/math helpers
		// (contains, lowerAscii, math.greatest, ...).
		celext.Strings(),
		celext.Lists(),
		celext.Math(),
	)
}

// Compile parses and checks a CEL expression that must evaluate to a boolean
// per row. Example: `_.severity >= 3 && _.status == "OPEN"`.
func Compile(expr string) (*Predicate, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("cel environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid filter expression %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("filter expression %q: %w", expr, err)
	}
	return &Predicate{program: prg, expr: expr}, nil
}

// Expr returns the source expression.
func (p *Predicate) Expr() string {
	return p.expr
}

// Matches evaluates the predicate against one record. A non-boolean result
// is an error: filters must answer keep-or-drop, nothing else.
func (p *Predicate) Matches(record any) (bool, error) {
	out, _, err := p.program.Eval(map[string]any{"_": record})
	if err != nil {
		return false, fmt.Errorf("filter %q: %w", p.expr, err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter %q: result is %T, want bool", p.expr, out.Value())
	}
	return b, nil
}

// Filter returns the records matching the predicate, preserving input order.
// The first evaluation error aborts the whole pass.
func (p *Predicate) Filter(records []map[string]any) ([]map[string]any, error) {
	var out []map[string]any
	for i, rec := range records {
		ok, err := p.Matches(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out, nil
}
