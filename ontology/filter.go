package ontology

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// CELFilter is a RelationFilter compiled from a CEL expression. The
// expression is evaluated per relation with the variables from, to, type
// (strings) and strength (double) in scope, and must produce a bool.
//
// Example:
//
//	filter, err := ontology.NewCELFilter(`type == "related" && strength >= 0.5`)
//	if err != nil {
//	    return err
//	}
//	ids := graph.FindRelated("loops", 2, ontology.WithRelationFilter(filter.Keep))
type CELFilter struct {
	expr string
	prog cel.Program
}

// NewCELFilter compiles the expression into a relation filter.
// Returns an error if the expression does not compile or does not evaluate
// to a boolean.
func NewCELFilter(expr string) (*CELFilter, error) {
	env, err := cel.NewEnv(
		cel.Variable("from", cel.StringType),
		cel.Variable("to", cel.StringType),
		cel.Variable("type", cel.StringType),
		cel.Variable("strength", cel.DoubleType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("failed to compile relation filter %q: %w", expr, issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("relation filter %q must evaluate to bool, got %s", expr, ast.OutputType())
	}

	prog, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to build relation filter program: %w", err)
	}
	return &CELFilter{expr: expr, prog: prog}, nil
}

// Keep reports whether the relation passes the filter. Evaluation errors
// reject the relation rather than failing the traversal.
func (f *CELFilter) Keep(r Relation) bool {
	out, _, err := f.prog.Eval(map[string]any{
		"from":     r.From,
		"to":       r.To,
		"type":     r.Type,
		"strength": r.Strength,
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}

// Expression returns the source expression the filter was compiled from.
func (f *CELFilter) Expression() string {
	return f.expr
}
