package yalisp

import (
	"strings"
)

//////////////////////////////////////////////////////////////////////////////////////////////
// This file contains the cell type along with the functions to build, copy, compare and    //
// print cells of every kind. Cells are never changed after they are built, so trees can    //
// share children freely and copying is only needed when a caller wants its own tree.       //
//////////////////////////////////////////////////////////////////////////////////////////////

type CellType int

const (
	CELL_SYM CellType = iota
	CELL_TUPLE
	CELL_NIL
	CELL_NATIVE
)

var cellTypeNames = [...]string{
	CELL_SYM:    "symbol",
	CELL_TUPLE:  "tuple",
	CELL_NIL:    "nil",
	CELL_NATIVE: "native",
}

func (t CellType) String() string {
	if t >= 0 && int(t) < len(cellTypeNames) {
		return cellTypeNames[t]
	}
	return "unknown"
}

type Cell struct {
	// Type
	Type CellType

	// Symbol
	Sym string

	// Tuple
	Cell []*Cell

	// Native
	Native *Native
}

// Native holds a value that has no surface syntax: exactly one of Builtin
// and Integer is set.
type Native struct {
	Builtin *Builtin
	Integer *BigInt
}

// The printed form of nil, also the name the root scope binds nil to
const nilName = "$"

//Constructors for different kinds of cells

func cellSym(name string) *Cell {
	return &Cell{Type: CELL_SYM, Sym: name}
}

func cellTuple(children ...*Cell) *Cell {
	return &Cell{Type: CELL_TUPLE, Cell: children}
}

func cellNil() *Cell {
	return &Cell{Type: CELL_NIL}
}

func cellBuiltin(b *Builtin) *Cell {
	return &Cell{Type: CELL_NATIVE, Native: &Native{Builtin: b}}
}

func cellInteger(x *BigInt) *Cell {
	return &Cell{Type: CELL_NATIVE, Native: &Native{Integer: x}}
}

// Exported constructors for embedders and tests

func Symbol(name string) *Cell       { return cellSym(name) }
func Tuple(children ...*Cell) *Cell { return cellTuple(children...) }
func Nil() *Cell                    { return cellNil() }
func Integer(x *BigInt) *Cell       { return cellInteger(x) }

func (c *Cell) IsSym(name string) bool {
	return c.Type == CELL_SYM && c.Sym == name
}

func (c *Cell) IsBuiltin() bool {
	return c.Type == CELL_NATIVE && c.Native.Builtin != nil
}

func (c *Cell) IsInteger() bool {
	return c.Type == CELL_NATIVE && c.Native.Integer != nil
}

// Len is the number of children of a tuple and 0 for anything else.
func (c *Cell) Len() int {
	return len(c.Cell)
}

// rest returns the tuple of every child after the first. The children are
// shared, not copied.
func (c *Cell) rest() *Cell {
	if len(c.Cell) == 0 {
		return cellTuple()
	}
	return cellTuple(c.Cell[1:]...)
}

// Functions that aid in printing cells

// PrintForm renders a cell in the syntax Parse reads back.
func PrintForm(c *Cell) string {
	var b strings.Builder
	printCell(&b, c)
	return b.String()
}

func (c *Cell) String() string {
	return PrintForm(c)
}

func printCell(b *strings.Builder, c *Cell) {
	switch c.Type {
	case CELL_SYM:
		b.WriteString(c.Sym)
	case CELL_NIL:
		b.WriteString(nilName)
	case CELL_TUPLE:
		b.WriteByte('(')
		for i, child := range c.Cell {
			if i != 0 {
				b.WriteByte(' ')
			}
			printCell(b, child)
		}
		b.WriteByte(')')
	case CELL_NATIVE:
		if c.Native.Builtin != nil {
			b.WriteString("<builtin " + c.Native.Builtin.Name + ">")
		} else {
			b.WriteString(c.Native.Integer.String())
		}
	}
}

// Copy returns a deep copy of a cell. Builtins are shared since they carry
// no state.
func (c *Cell) Copy() *Cell {
	x := &Cell{Type: c.Type}

	switch c.Type {
	case CELL_SYM:
		x.Sym = c.Sym
	case CELL_TUPLE:
		x.Cell = make([]*Cell, len(c.Cell))
		for i, child := range c.Cell {
			x.Cell[i] = child.Copy()
		}
	case CELL_NATIVE:
		if c.Native.Builtin != nil {
			x.Native = &Native{Builtin: c.Native.Builtin}
		} else {
			x.Native = &Native{Integer: c.Native.Integer.Copy()}
		}
	}

	return x
}

// Equal reports whether two cells are structurally equal. Builtins are equal
// when they name the same primitive.
func Equal(a, b *Cell) bool {
	if a.Type != b.Type {
		return false
	}

	switch a.Type {
	case CELL_SYM:
		return a.Sym == b.Sym
	case CELL_NIL:
		return true
	case CELL_TUPLE:
		if len(a.Cell) != len(b.Cell) {
			return false
		}
		for i := range a.Cell {
			if !Equal(a.Cell[i], b.Cell[i]) {
				return false
			}
		}
		return true
	case CELL_NATIVE:
		if a.Native.Builtin != nil || b.Native.Builtin != nil {
			return a.Native.Builtin != nil && b.Native.Builtin != nil &&
				a.Native.Builtin.Name == b.Native.Builtin.Name
		}
		return a.Native.Integer.Cmp(b.Native.Integer) == 0
	}

	return false
}
