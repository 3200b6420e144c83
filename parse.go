package yalisp

import (
	"errors"

	"github.com/alecthomas/participle"
	"github.com/alecthomas/participle/lexer"
	"github.com/alecthomas/participle/lexer/ebnf"
)

//////////////////////////////////////////////////////////////////////////////////////////////
// This file contains the reader for source text. One lexer serves both Parse and           //
// ReadProgram:                                                                             //
//                                                                                          //
// expression := tuple | Number | Atom                                                      //
// tuple      := '(' expression* ')'                                                        //
//                                                                                          //
// Parse only skips spaces, so tabs and newlines come out as Break tokens and are rejected. //
// Any character outside the grammar lexes as Other, so whatever follows the first          //
// expression never stops the lexer and Parse can leave it unread.                          //
//////////////////////////////////////////////////////////////////////////////////////////////

var sourceLexer = lexer.Must(ebnf.New(`
		Atom = atomchar { atomchar } .
		Number = digit { digit } .
		Punct = "(" | ")" .
		Space = " " .
		Break = "\t" | "\n" | "\r" .
		Other = "\x00"…"\U0010FFFF" .
		atomchar = "#" | "$" | "a"…"z" .
		digit = "0"…"9" .`))

var expressionParser = participle.MustBuild(&expression{},
	participle.Lexer(sourceLexer),
	participle.Elide("Space"),
)

type expression struct {
	Tuple  *tupleNode `  @@`
	Number *string    `| @Number`
	Atom   *string    `| @Atom`
}

type tupleNode struct {
	Expressions []*expression `"(" @@* ")"`
}

// Parse reads the first expression in text. Anything after it is ignored.
func (cfg Config) Parse(text string) (*Cell, error) {
	if err := cfg.checkNesting(text, true); err != nil {
		return nil, err
	}

	node := &expression{}
	if err := expressionParser.ParseString(text, node, participle.AllowTrailing(true)); err != nil {
		return nil, syntaxFrom(err)
	}
	return readExpression(node)
}

// Participle recurses once per open tuple, so the nesting is measured before
// the text gets to it. With first set, measuring stops after the first
// expression.
func (cfg Config) checkNesting(text string, first bool) error {
	if cfg.MaxDepth <= 0 {
		return nil
	}

	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
			if depth > cfg.MaxDepth {
				return &Error{Kind: DepthError, Pos: i, Msg: depthErr(cfg.MaxDepth).Msg}
			}
		case ')':
			if depth > 0 {
				depth--
			}
			if first && depth == 0 {
				return nil
			}
		case ' ':
		default:
			if first && depth == 0 {
				return nil
			}
		}
	}
	return nil
}

// syntaxFrom turns a participle failure into a syntax error at the offending token
func syntaxFrom(err error) *Error {
	var perr participle.Error
	if !errors.As(err, &perr) {
		return &Error{Kind: SyntaxError, Pos: -1, Err: err}
	}

	tok := perr.Token()
	if tok.EOF() {
		return incompleteErr(tok.Pos.Offset, "unexpected end of input")
	}
	return syntaxErr(tok.Pos.Offset, "unexpected %q", tok.Value)
}

// Takes a parser node and turns it into a cell, going all the way down the
// nested tuples
func readExpression(node *expression) (*Cell, error) {
	switch {
	case node.Number != nil:
		// Digits are folded in one at a time as x*10 + digit
		x := NewBigInt(0)
		for i := 0; i < len(*node.Number); i++ {
			x = foldDigit(x, (*node.Number)[i])
		}
		return cellInteger(x), nil
	case node.Atom != nil:
		if *node.Atom == nilName {
			return cellNil(), nil
		}
		return cellSym(*node.Atom), nil
	case node.Tuple != nil:
		children := make([]*Cell, 0, len(node.Tuple.Expressions))
		for _, child := range node.Tuple.Expressions {
			c, err := readExpression(child)
			if err != nil {
				return nil, err
			}
			children = append(children, c)
		}
		return cellTuple(children...), nil
	}

	return nil, syntaxErr(-1, "empty expression")
}

var bigTen = NewBigInt(10)

func foldDigit(x *BigInt, ch byte) *BigInt {
	return x.Mul(bigTen).Add(NewBigInt(Word(ch - '0')))
}
