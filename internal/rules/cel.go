// Package rules evaluates automation rule conditions written in CEL.
//
// A condition sees two variables: metrics, a map of engagement figures
// such as metrics.likes, and rule, the rule's own trigger configuration.
package rules

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

var ErrNotBoolean = errors.New("condition must evaluate to a bool")

// Facts is the input a condition is evaluated against.
type Facts struct {
	Metrics map[string]float64
	Rule    map[string]any
}

type Evaluator struct {
	env *cel.Env

	mu       sync.Mutex
	programs map[string]cel.Program
}

func NewEvaluator() (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("metrics", cel.MapType(cel.StringType, cel.DoubleType)),
		cel.Variable("rule", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cel environment: %w", err)
	}
	return &Evaluator{env: env, programs: make(map[string]cel.Program)}, nil
}

// Compile checks expr and caches its program.
func (e *Evaluator) Compile(expr string) error {
	_, err := e.program(expr)
	return err
}

func (e *Evaluator) program(expr string) (cel.Program, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if prg, ok := e.programs[expr]; ok {
		return prg, nil
	}

	ast, iss := e.env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("invalid condition %q: %w", expr, iss.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("invalid condition %q: %w", expr, ErrNotBoolean)
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to build program for %q: %w", expr, err)
	}
	e.programs[expr] = prg
	return prg, nil
}

// Evaluate runs expr against facts. Nil maps are treated as empty.
func (e *Evaluator) Evaluate(expr string, facts Facts) (bool, error) {
	prg, err := e.program(expr)
	if err != nil {
		return false, err
	}

	metrics := facts.Metrics
	if metrics == nil {
		metrics = map[string]float64{}
	}
	ruleCfg := facts.Rule
	if ruleCfg == nil {
		ruleCfg = map[string]any{}
	}

	out, _, err := prg.Eval(map[string]any{
		"metrics": metrics,
		"rule":    ruleCfg,
	})
	if err != nil {
		return false, fmt.Errorf("failed to evaluate %q: %w", expr, err)
	}

	matched, ok := out.Value().(bool)
	if !ok {
		return false, ErrNotBoolean
	}
	return matched, nil
}
