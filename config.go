package yalisp

import (
	"io"
)

// DefaultMaxDepth bounds tuple nesting in the parser and expression depth
// plus active calls in the evaluator.
const DefaultMaxDepth = 10000

// Config carries the knobs of one parse or evaluation. The zero value has no
// depth limit and no trace.
type Config struct {
	// MaxDepth is the recursion ceiling. Zero or less means unlimited.
	MaxDepth int

	// Trace, when set, receives a line for every application and its result.
	Trace io.Writer
}

var DefaultConfig = Config{MaxDepth: DefaultMaxDepth}

func Parse(text string) (*Cell, error) {
	return DefaultConfig.Parse(text)
}

func Eval(c *Cell, s *Scope) (*Cell, error) {
	return DefaultConfig.Eval(c, s)
}

func ReadProgram(src string) ([]*Cell, error) {
	return DefaultConfig.ReadProgram(src)
}

func RunProgram(src string) ([]*Cell, error) {
	return DefaultConfig.RunProgram(src)
}

// RunProgram reads every top level expression in src and evaluates each one
// in a fresh scope. It stops at the first error and returns the results so far.
func (cfg Config) RunProgram(src string) ([]*Cell, error) {
	exprs, err := cfg.ReadProgram(src)
	if err != nil {
		return nil, err
	}

	results := make([]*Cell, 0, len(exprs))
	for _, expr := range exprs {
		r, err := cfg.Eval(expr, NewScope())
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}

func (cfg Config) tooDeep(depth int) bool {
	return cfg.MaxDepth > 0 && depth > cfg.MaxDepth
}
