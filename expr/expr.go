/*
Package expr evaluates numeric expressions for the tickle interpreter.

Scripts never see expression values other than numbers: comparisons and logical
operators yield 1 or 0, arithmetic yields a float64. The interpreter substitutes
variables and commands before handing an expression to this package, so an
expression contains literals, operators and function calls only:

    21 * 2
    (3 + 4) % 5 >= 2 && 1 != 0
    max(abs(-3), sqrt(4))

Parsing is done by github.com/Knetic/govaluate. Parsed expressions are cached,
as scripts tend to evaluate the same loop condition over and over.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package expr

import (
	"fmt"
	"math"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tickle.expr'.
func tracer() tracing.Trace {
	return tracing.Select("tickle.expr")
}

// Calculator is the contract of a numeric expression evaluator.
type Calculator interface {
	Calculate(expression string) (float64, error)
}

// DefaultCacheSize is the number of parsed expressions an Evaluator keeps.
const DefaultCacheSize = 256

// Evaluator is the default Calculator. It is not safe for concurrent use.
type Evaluator struct {
	functions map[string]govaluate.ExpressionFunction
	cache     map[string]*govaluate.EvaluableExpression
	cacheSize int
}

var _ Calculator = (*Evaluator)(nil)

// New creates an expression evaluator, pre-loaded with math functions
// abs, floor, ceil, sqrt, sin, cos, pow, min and max.
func New() *Evaluator {
	ev := &Evaluator{
		functions: make(map[string]govaluate.ExpressionFunction),
		cache:     make(map[string]*govaluate.EvaluableExpression),
		cacheSize: DefaultCacheSize,
	}
	ev.Func("abs", unary(math.Abs))
	ev.Func("floor", unary(math.Floor))
	ev.Func("ceil", unary(math.Ceil))
	ev.Func("sqrt", unary(math.Sqrt))
	ev.Func("sin", unary(math.Sin))
	ev.Func("cos", unary(math.Cos))
	ev.Func("pow", binary(math.Pow))
	ev.Func("min", binary(math.Min))
	ev.Func("max", binary(math.Max))
	return ev
}

// Func adds a function to be callable from expressions. Adding a function
// invalidates the cache of parsed expressions.
func (ev *Evaluator) Func(name string, f govaluate.ExpressionFunction) {
	ev.functions[name] = f
	ev.cache = make(map[string]*govaluate.EvaluableExpression)
}

// Calculate evaluates an expression to a number.
func (ev *Evaluator) Calculate(expression string) (float64, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return 0, fmt.Errorf("empty expression")
	}
	e, err := ev.parse(expression)
	if err != nil {
		return 0, err
	}
	result, err := e.Evaluate(nil)
	if err != nil {
		tracer().Debugf("expression %q failed: %v", expression, err)
		return 0, fmt.Errorf("cannot evaluate %q: %v", expression, err)
	}
	tracer().Debugf("%s => %v", expression, result)
	switch r := result.(type) {
	case float64:
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return 0, fmt.Errorf("expression %q does not yield a finite number: %v", expression, r)
		}
		return r, nil
	case bool:
		if r {
			return 1.0, nil
		}
		return 0.0, nil
	}
	return 0, fmt.Errorf("expression %q does not yield a number: %v", expression, result)
}

func (ev *Evaluator) parse(expression string) (*govaluate.EvaluableExpression, error) {
	if e, ok := ev.cache[expression]; ok {
		return e, nil
	}
	e, err := govaluate.NewEvaluableExpressionWithFunctions(expression, ev.functions)
	if err != nil {
		return nil, fmt.Errorf("invalid expression %q: %v", expression, err)
	}
	if len(ev.cache) >= ev.cacheSize {
		ev.cache = make(map[string]*govaluate.EvaluableExpression)
	}
	ev.cache[expression] = e
	return e, nil
}

// Truthy interprets a textual number the way conditions do: it is true if
// its value is greater than zero.
func Truthy(value float64) bool {
	return value > 0.0
}

// Format converts an expression value to its textual form, using six
// decimal places.
func Format(value float64) string {
	return fmt.Sprintf("%f", value)
}

// --- Function adapters -----------------------------------------------------

func unary(f func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("function expects 1 argument, got %d", len(args))
		}
		x, err := number(args[0])
		if err != nil {
			return nil, err
		}
		return f(x), nil
	}
}

func binary(f func(float64, float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("function expects 2 arguments, got %d", len(args))
		}
		x, err := number(args[0])
		if err != nil {
			return nil, err
		}
		y, err := number(args[1])
		if err != nil {
			return nil, err
		}
		return f(x, y), nil
	}
}

func number(arg interface{}) (float64, error) {
	if x, ok := arg.(float64); ok {
		return x, nil
	}
	return 0, fmt.Errorf("not a number: %v", arg)
}
