package yalisp

import (
	"fmt"
)

//////////////////////////////////////////////////////////////////////////////////////////////
// This file contains the evaluator. A tuple whose head evaluates to something callable is  //
// an application of that head to the evaluated rest of the tuple. Any other tuple is data  //
// and evaluates element by element. Functions are tuples shaped (# params body) and run    //
// in the caller's scope extended with their parameters.                                    //
//////////////////////////////////////////////////////////////////////////////////////////////

const lambdaMarker = "#"

type evaluator struct {
	cfg   Config
	depth int
}

// Eval evaluates c in scope s.
func (cfg Config) Eval(c *Cell, s *Scope) (*Cell, error) {
	e := &evaluator{cfg: cfg}
	return e.eval(c, s)
}

func (e *evaluator) eval(c *Cell, s *Scope) (*Cell, error) {
	e.depth++
	defer func() { e.depth-- }()
	if e.cfg.tooDeep(e.depth) {
		return nil, depthErr(e.cfg.MaxDepth)
	}

	// Builtin names can't be shadowed
	if b := builtinFor(c); b != nil {
		return cellBuiltin(b), nil
	}

	switch c.Type {
	case CELL_TUPLE:
		return e.evalTuple(c, s)
	case CELL_SYM:
		// Unbound symbols evaluate to themselves
		if v, ok := s.Lookup(c.Sym); ok {
			return v, nil
		}
		return c, nil
	default:
		return c, nil
	}
}

func (e *evaluator) evalTuple(c *Cell, s *Scope) (*Cell, error) {
	if len(c.Cell) == 0 {
		return cellTuple(), nil
	}

	head, err := e.eval(c.Cell[0], s)
	if err != nil {
		return nil, err
	}

	if isCallable(head) {
		// The arguments are whatever the rest of the tuple evaluates to, so
		// they are an application of their own when their head is callable
		args, err := e.eval(c.rest(), s)
		if err != nil {
			return nil, err
		}
		return e.apply(head, args, s)
	}

	// Not a function application, so this is just data
	rest, err := e.evalEach(c.Cell[1:], s)
	if err != nil {
		return nil, err
	}
	return cellTuple(append([]*Cell{head}, rest...)...), nil
}

func (e *evaluator) evalEach(cells []*Cell, s *Scope) ([]*Cell, error) {
	out := make([]*Cell, len(cells))
	for i, child := range cells {
		v, err := e.eval(child, s)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// isCallable is true for builtins and for tuples shaped (# params body)
func isCallable(c *Cell) bool {
	if c.IsBuiltin() {
		return true
	}
	return c.Type == CELL_TUPLE && len(c.Cell) == 3 && c.Cell[0].IsSym(lambdaMarker)
}

func (e *evaluator) apply(fn *Cell, args *Cell, s *Scope) (*Cell, error) {
	e.tracef("applying %s to %s", PrintForm(fn), PrintForm(args))

	result, err := e.call(fn, args, s)
	if err != nil {
		return nil, err
	}

	e.tracef("result: %s", PrintForm(result))
	return result, nil
}

func (e *evaluator) call(fn *Cell, args *Cell, s *Scope) (*Cell, error) {
	//If it is a builtin function, return the result of running that function
	if fn.IsBuiltin() {
		return fn.Native.Builtin.Fn(args)
	}

	if !isCallable(fn) {
		return nil, applyErr(nil, "%s is not a function", PrintForm(fn))
	}

	params, body := fn.Cell[1], fn.Cell[2]
	inner, err := bindParameters(s, params, args)
	if err != nil {
		return nil, applyErr(err, "cannot apply %s to %s", PrintForm(fn), PrintForm(args))
	}

	return e.eval(body, inner)
}

func (e *evaluator) tracef(format string, a ...interface{}) {
	if e.cfg.Trace == nil {
		return
	}
	fmt.Fprintf(e.cfg.Trace, format+"\n", a...)
}
