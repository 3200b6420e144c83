package yalisp

//////////////////////////////////////////////////////////////////////////////////////////////
// This file contains the suite of builtin functions. Every builtin gets the already        //
// evaluated argument bundle and never sees the scope. The bundle is a tuple unless the     //
// arguments were an application of their own, in which case it is whatever that returned.  //
// Builtins can be added by writing a BuiltinFunc and adding it to the table in             //
// addBuiltins.                                                                             //
//////////////////////////////////////////////////////////////////////////////////////////////

type BuiltinFunc func(args *Cell) (*Cell, error)

type Builtin struct {
	Name string
	Fn   BuiltinFunc
}

var builtins = map[string]*Builtin{}

func addBuiltin(name string, f BuiltinFunc) {
	builtins[name] = &Builtin{Name: name, Fn: f}
}

func init() {
	addBuiltins()
}

// Fill the table of builtin names. These names win over any binding.
func addBuiltins() {
	addBuiltin("atom", builtinAtom)
	addBuiltin("eq", builtinEq)
	addBuiltin("first", builtinFirst)
	addBuiltin("rest", builtinRest)
	addBuiltin("if", builtinIf)
	addBuiltin("pair", builtinPair)
}

// BuiltinNames lists the names that always evaluate to a builtin
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	return names
}

// builtinFor returns the builtin named by a symbol, or nil
func builtinFor(c *Cell) *Builtin {
	if c.Type != CELL_SYM {
		return nil
	}
	return builtins[c.Sym]
}

// The single operand of a one argument builtin
func unaryArg(name string, a *Cell) (*Cell, error) {
	if a.Type != CELL_TUPLE {
		return nil, primitiveErr(name, "argument bundle %s is not a tuple", PrintForm(a))
	}
	if len(a.Cell) != 1 {
		return nil, primitiveErr(name, "expects 1 argument, got %s", PrintForm(a))
	}
	return a.Cell[0], nil
}

// atom never fails. A bundle that isn't a one element tuple is tested as it is.
func builtinAtom(a *Cell) (*Cell, error) {
	x := a
	if a.Type == CELL_TUPLE && len(a.Cell) == 1 {
		x = a.Cell[0]
	}

	if x.Type == CELL_SYM {
		return cellSym("True"), nil
	}
	return cellSym("False"), nil
}

func builtinEq(a *Cell) (*Cell, error) {
	if a.Type != CELL_TUPLE || len(a.Cell) != 2 {
		return nil, primitiveErr("eq", "expects 2 arguments, got %s", PrintForm(a))
	}

	x, y := a.Cell[0], a.Cell[1]
	if x.Type != CELL_SYM || y.Type != CELL_SYM {
		return nil, primitiveErr("eq", "can only compare symbols, got %s", PrintForm(a))
	}

	if x.Sym == y.Sym {
		return cellSym("true"), nil
	}
	return cellSym("false"), nil
}

func builtinFirst(a *Cell) (*Cell, error) {
	x, err := unaryArg("first", a)
	if err != nil {
		return nil, err
	}

	if x.Type != CELL_TUPLE {
		return nil, primitiveErr("first", "%s is not a tuple", PrintForm(x))
	}

	//First of the empty tuple is nil
	if len(x.Cell) == 0 {
		return cellNil(), nil
	}
	return x.Cell[0], nil
}

func builtinRest(a *Cell) (*Cell, error) {
	x, err := unaryArg("rest", a)
	if err != nil {
		return nil, err
	}

	if x.Type != CELL_TUPLE {
		return nil, primitiveErr("rest", "%s is not a tuple", PrintForm(x))
	}

	return x.rest(), nil
}

// The branches were evaluated along with the condition, so this only picks one
func builtinIf(a *Cell) (*Cell, error) {
	if a.Type != CELL_TUPLE || len(a.Cell) != 3 {
		return nil, primitiveErr("if", "expects 3 arguments, got %s", PrintForm(a))
	}

	switch cond := a.Cell[0]; {
	case cond.IsSym("true"):
		return a.Cell[1], nil
	case cond.IsSym("false"):
		return a.Cell[2], nil
	default:
		return nil, primitiveErr("if", "condition %s isn't a boolean", PrintForm(cond))
	}
}

func builtinPair(a *Cell) (*Cell, error) {
	if a.Type != CELL_TUPLE || len(a.Cell) != 2 {
		return nil, primitiveErr("pair", "expects 2 arguments, got %s", PrintForm(a))
	}
	return cellTuple(a.Cell[0], a.Cell[1]), nil
}
