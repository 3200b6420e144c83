package yalisp

//////////////////////////////////////////////////////////////////////////////////////////////
// This file contains the environment handling. A scope is a chain of single binding        //
// frames. Frames are only ever prepended, so a scope handed to a function application can  //
// never be changed by it.                                                                  //
//////////////////////////////////////////////////////////////////////////////////////////////

type Scope struct {
	Par   *Scope
	Name  string
	Value *Cell
}

// NewScope returns the root scope for one top level evaluation. It binds the
// nil name so lookups never start from an empty chain.
func NewScope() *Scope {
	return &Scope{Name: nilName, Value: cellNil()}
}

// Lookup returns the value of the nearest binding of name
func (s *Scope) Lookup(name string) (*Cell, bool) {
	for ; s != nil; s = s.Par {
		if s.Name == name {
			return s.Value, true
		}
	}
	return nil, false
}

// Extend returns a new scope with name bound in front of s
func (s *Scope) Extend(name string, value *Cell) *Scope {
	return &Scope{Par: s, Name: name, Value: value}
}

// Names lists the bound names, nearest first. Shadowed names appear once.
func (s *Scope) Names() []string {
	seen := map[string]bool{}
	var names []string
	for ; s != nil; s = s.Par {
		if !seen[s.Name] {
			seen[s.Name] = true
			names = append(names, s.Name)
		}
	}
	return names
}

// Bind each parameter symbol to the argument in the same position. Both lists
// have to run out at the same time.
func bindParameters(s *Scope, params *Cell, args *Cell) (*Scope, error) {
	if params.Type != CELL_TUPLE {
		return nil, arityErr("parameter list %s is not a tuple", PrintForm(params))
	}
	if args.Type != CELL_TUPLE {
		return nil, arityErr("argument list %s is not a tuple", PrintForm(args))
	}

	if len(params.Cell) == 0 && len(args.Cell) == 0 {
		return s, nil
	}
	if len(params.Cell) == 0 {
		return nil, arityErr("%d argument(s) left over", len(args.Cell))
	}
	if len(args.Cell) == 0 {
		return nil, arityErr("missing argument for %s", PrintForm(params.Cell[0]))
	}

	name := params.Cell[0]
	if name.Type != CELL_SYM {
		return nil, arityErr("parameter %s is not a symbol", PrintForm(name))
	}

	return bindParameters(s.Extend(name.Sym, args.Cell[0]), params.rest(), args.rest())
}
