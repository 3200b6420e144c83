package yalisp

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func mustEval(t *testing.T, src string, s *Scope) *Cell {
	t.Helper()
	v, err := Eval(mustParse(t, src), s)
	if err != nil {
		t.Fatalf("Eval(%s) error: %v", src, err)
	}
	return v
}

func mustFailEval(t *testing.T, src string, kind error) error {
	t.Helper()
	_, err := Eval(mustParse(t, src), NewScope())
	if err == nil {
		t.Fatalf("Eval(%s) succeeded, want %v", src, kind)
	}
	if !errors.Is(err, kind) {
		t.Fatalf("Eval(%s) error = %v, want %v", src, err, kind)
	}
	return err
}

func TestEvalEndToEnd(t *testing.T) {
	cases := []struct{ src, want string }{
		{"(first (pair a b))", "a"},
		{"(rest (pair a b))", "(b)"},
		{"(if true x y)", "x"},
		{"(if false x y)", "y"},
		{"((# (x) x) a)", "a"},
		{"z", "z"},
		{"$", "$"},
		{"42", "42"},
		{"()", "()"},
		{"(first ())", "$"},
		{"(rest ())", "()"},
		{"(eq a a)", "true"},
		{"(eq a b)", "false"},
		{"(atom a)", "True"},
		{"(atom (pair a b))", "False"},
		{"(atom 7)", "False"},
		{"(if (eq a a) yes no)", "yes"},
		{"(pair 1 2)", "(1 2)"},
		{"(a b c)", "(a b c)"},
		{"((a) (b c))", "((a) (b c))"},
		{"(# (x) x)", "(# (x) x)"},
		{"((# (x y) (pair y x)) a b)", "(b a)"},
		{"((# () done))", "done"},
		{"((# (a f) (f a)) z (# (x) (pair x x)))", "(z z)"},
		{"((# (x y) (pair y x)) pair a b)", "(b a)"},
		{"(atom eq a a)", "True"},
		{"(atom pair a b)", "False"},
		{"eq", "<builtin eq>"},
	}
	for _, c := range cases {
		if got := PrintForm(mustEval(t, c.src, NewScope())); got != c.want {
			t.Errorf("Eval(%s) = %s, want %s", c.src, got, c.want)
		}
	}
}

func TestEvalBuiltinPrecedence(t *testing.T) {
	s := NewScope().Extend("eq", Symbol("shadow"))

	v := mustEval(t, "eq", s)
	if !v.IsBuiltin() || v.Native.Builtin.Name != "eq" {
		t.Fatalf("eq evaluated to %s", v)
	}

	s = NewScope().Extend("first", Symbol("shadow"))
	if got := PrintForm(mustEval(t, "(first (pair a b))", s)); got != "a" {
		t.Fatalf("got %s", got)
	}
}

func TestEvalScoping(t *testing.T) {
	outer := NewScope()
	mustEval(t, "((# (x) x) a)", outer)
	if v, ok := outer.Lookup("x"); ok {
		t.Fatalf("x leaked into the outer scope as %s", v)
	}

	outer = NewScope().Extend("x", Symbol("before"))
	if got := PrintForm(mustEval(t, "((# (x) x) a)", outer)); got != "a" {
		t.Fatalf("inner x = %s", got)
	}
	if v, _ := outer.Lookup("x"); !v.IsSym("before") {
		t.Fatalf("outer x = %s after the call", v)
	}
	if got := PrintForm(mustEval(t, "x", outer)); got != "before" {
		t.Fatalf("x = %s", got)
	}
}

func TestEvalSeesCallerScope(t *testing.T) {
	s := NewScope().Extend("y", Symbol("c"))
	if got := PrintForm(mustEval(t, "((# (x) (pair x y)) a)", s)); got != "(a c)" {
		t.Fatalf("got %s", got)
	}

	// Data tuples look their symbols up too
	s = NewScope().Extend("x", Symbol("q"))
	if got := PrintForm(mustEval(t, "(x y)", s)); got != "(q y)" {
		t.Fatalf("got %s", got)
	}
}

func TestEvalErrors(t *testing.T) {
	mustFailEval(t, "(eq a)", ErrPrimitive)
	mustFailEval(t, "(eq a b c)", ErrPrimitive)
	mustFailEval(t, "(eq (pair a b) a)", ErrPrimitive)
	mustFailEval(t, "(if maybe x y)", ErrPrimitive)
	mustFailEval(t, "(if true x)", ErrPrimitive)
	mustFailEval(t, "(first a)", ErrPrimitive)
	mustFailEval(t, "(first (pair a b) (pair c d))", ErrPrimitive)
	mustFailEval(t, "(rest a)", ErrPrimitive)
	mustFailEval(t, "(pair a)", ErrPrimitive)

	// Errors inside arguments stop evaluation
	mustFailEval(t, "(pair a (eq a))", ErrPrimitive)
	mustFailEval(t, "(x (eq a))", ErrPrimitive)

	err := mustFailEval(t, "((# (x y) x) a)", ErrApply)
	if !errors.Is(err, ErrArity) {
		t.Errorf("missing argument error %v does not wrap an arity error", err)
	}
	err = mustFailEval(t, "((# (x) x) a b)", ErrArity)
	if !strings.Contains(err.Error(), "left over") {
		t.Errorf("error %q", err)
	}
	mustFailEval(t, "((# (1) x) a)", ErrArity)
	mustFailEval(t, "((# x x) a)", ErrArity)

	// A function literal in head position is evaluated as data before it is
	// applied, so builtin calls in its body run before any parameter is bound
	mustFailEval(t, "((# (x) (first x)) (pair p q))", ErrPrimitive)

	// The arguments are one expression, so a callable head among them applies
	mustFailEval(t, "(pair eq a)", ErrPrimitive)
	mustFailEval(t, "(first eq a a)", ErrPrimitive)
	err = mustFailEval(t, "((# (x) x) eq a b)", ErrArity)
	if !strings.Contains(err.Error(), "argument list false is not a tuple") {
		t.Errorf("error %q", err)
	}
	err = mustFailEval(t, "((# (f) (f a)) (# (x) (pair x x)))", ErrApply)
	if !errors.Is(err, ErrArity) {
		t.Errorf("function argument error %v does not wrap an arity error", err)
	}
}

func TestApplyNonFunction(t *testing.T) {
	e := &evaluator{cfg: DefaultConfig}
	_, err := e.apply(Symbol("a"), Tuple(), NewScope())
	if !errors.Is(err, ErrApply) {
		t.Fatalf("error = %v, want apply error", err)
	}
	_, err = e.apply(Tuple(Symbol("#"), Tuple()), Tuple(), NewScope())
	if !errors.Is(err, ErrApply) {
		t.Fatalf("error = %v, want apply error", err)
	}
}

func TestIsCallable(t *testing.T) {
	cases := []struct {
		c    *Cell
		want bool
	}{
		{cellBuiltin(builtins["eq"]), true},
		{mustParse(t, "(# (x) x)"), true},
		{mustParse(t, "(# x y)"), true},
		{mustParse(t, "(# (x))"), false},
		{mustParse(t, "(#a (x) x)"), false},
		{mustParse(t, "(a (x) x)"), false},
		{Symbol("#"), false},
		{Integer(NewBigInt(1)), false},
		{Nil(), false},
	}
	for _, c := range cases {
		if got := isCallable(c.c); got != c.want {
			t.Errorf("isCallable(%s) = %v", c.c, got)
		}
	}
}

func TestEvalDepth(t *testing.T) {
	// Passing the function after another argument keeps it from being applied
	// while the arguments are evaluated, so this recurses forever
	loop := mustParse(t, "((# (a f) (f a f)) z (# (a f) (f a f)))")
	cfg := Config{MaxDepth: 200}
	if _, err := cfg.Eval(loop, NewScope()); !errors.Is(err, ErrDepth) {
		t.Fatalf("error = %v, want depth error", err)
	}

	nested := strings.Repeat("(pair a ", 50) + "b" + strings.Repeat(")", 50)
	c := mustParse(t, nested)
	if _, err := (Config{MaxDepth: 20}).Eval(c, NewScope()); !errors.Is(err, ErrDepth) {
		t.Fatalf("error = %v, want depth error", err)
	}
	if _, err := (Config{MaxDepth: 200}).Eval(c, NewScope()); err != nil {
		t.Fatalf("depth 200 failed: %v", err)
	}
}

func TestEvalTrace(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{Trace: &buf}
	v, err := cfg.Eval(mustParse(t, "(first (pair a b))"), NewScope())
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsSym("a") {
		t.Fatalf("got %s", v)
	}

	want := "applying <builtin pair> to (a b)\n" +
		"result: (a b)\n" +
		"applying <builtin first> to ((a b))\n" +
		"result: a\n"
	if buf.String() != want {
		t.Fatalf("trace:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestRunProgram(t *testing.T) {
	results, err := RunProgram("(first (pair a b))\n(eq a a)\n((# (x) x) 12)")
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, r := range results {
		got = append(got, PrintForm(r))
	}
	if strings.Join(got, " ") != "a true 12" {
		t.Fatalf("results = %v", got)
	}

	results, err = RunProgram("a (eq a) b")
	if !errors.Is(err, ErrPrimitive) {
		t.Fatalf("error = %v, want primitive error", err)
	}
	if len(results) != 1 || !results[0].IsSym("a") {
		t.Fatalf("results before the error = %v", results)
	}
}
