package yalisp

import (
	"github.com/alecthomas/participle"
)

//////////////////////////////////////////////////////////////////////////////////////////////
// This file reads whole programs: any number of expressions separated by spaces, tabs or   //
// newlines. It shares the lexer and grammar nodes with Parse, but unlike Parse the whole   //
// input has to be consumed.                                                                //
//////////////////////////////////////////////////////////////////////////////////////////////

var programParser = participle.MustBuild(&program{},
	participle.Lexer(sourceLexer),
	participle.Elide("Space", "Break"),
)

type program struct {
	Expressions []*expression `@@*`
}

// ReadProgram reads every top level expression in src.
func (cfg Config) ReadProgram(src string) ([]*Cell, error) {
	if err := cfg.checkNesting(src, false); err != nil {
		return nil, err
	}

	root := &program{}
	if err := programParser.ParseString(src, root); err != nil {
		return nil, syntaxFrom(err)
	}

	cells := make([]*Cell, 0, len(root.Expressions))
	for _, node := range root.Expressions {
		c, err := readExpression(node)
		if err != nil {
			return nil, err
		}
		cells = append(cells, c)
	}
	return cells, nil
}
