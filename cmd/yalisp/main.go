package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/samclearman/yalisp"
)

const (
	version     = "0.001"
	historyFile = ".yalisp_history"
	promptMain  = "yalisp> "
	promptCont  = "...     "
)

var (
	inputExpr = flag.String("e", "", "evaluate one expression and exit")
	inputFile = flag.String("f", "", "run every expression in a file")
	maxDepth  = flag.Int("depth", yalisp.DefaultMaxDepth, "recursion ceiling for parsing and evaluation, 0 for none")
	trace     = flag.Bool("trace", false, "print every application and its result to stderr")
	history   = flag.String("history", "", "history file (default ~/"+historyFile+")")
	verbose   = flag.Bool("v", false, "echo the parsed input before each result")
)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	flag.Parse()

	cfg := yalisp.Config{MaxDepth: *maxDepth}
	if *trace {
		cfg.Trace = os.Stderr
	}

	switch {
	case *inputFile != "":
		os.Exit(runFile(cfg, *inputFile))
	case *inputExpr != "":
		os.Exit(runExpr(cfg, *inputExpr, false))
	default:
		os.Exit(repl(cfg))
	}
}

func runFile(cfg yalisp.Config, path string) int {
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	results, err := cfg.RunProgram(string(buf))
	for _, r := range results {
		fmt.Println(yalisp.PrintForm(r))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// runExpr parses and evaluates one expression in a fresh scope. Colors are
// only used at the interactive prompt.
func runExpr(cfg yalisp.Config, src string, color bool) int {
	paint := func(f func(string) string, s string) string {
		if color {
			return f(s)
		}
		return s
	}

	c, err := cfg.Parse(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, paint(red, "parse error: "+err.Error()))
		return 1
	}

	result, err := cfg.Eval(c, yalisp.NewScope())
	if err != nil {
		fmt.Fprintln(os.Stderr, paint(red, err.Error()))
		return 1
	}

	if *verbose {
		fmt.Println("input: " + yalisp.PrintForm(c))
	}
	fmt.Println(paint(blue, yalisp.PrintForm(result)))
	return 0
}

func repl(cfg yalisp.Config) int {
	fmt.Println("yalisp " + version)
	fmt.Println("Ctrl+C cancels input, Ctrl+D exits. Type :help for commands.")

	histPath, err := historyPath(*history, os.UserHomeDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, red("history disabled: "+err.Error()))
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer saveHistory(ln, histPath)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go waitForSignal(sigc, func() {
		saveHistory(ln, histPath)
		ln.Close()
	}, os.Exit)

	for {
		code, ok := readExpression(ln, cfg)
		if !ok {
			fmt.Println()
			return 0
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			if quit := command(trimmed); quit {
				return 0
			}
			continue
		}

		runExpr(cfg, code, true)
	}
}

// historyPath picks the history file. On error there is no history file.
func historyPath(flagValue string, homeDir func() (string, error)) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	home, err := homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, historyFile), nil
}

type historyWriter interface {
	WriteHistory(w io.Writer) (int, error)
}

// os.Exit skips deferred calls, so cleanup has to run here first
func waitForSignal(sigc <-chan os.Signal, cleanup func(), exit func(int)) {
	<-sigc
	cleanup()
	exit(130)
}

func saveHistory(ln historyWriter, path string) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, red("saving history: "+err.Error()))
		return
	}
	defer f.Close()
	if _, err := ln.WriteHistory(f); err != nil {
		fmt.Fprintln(os.Stderr, red("saving history: "+err.Error()))
	}
}

// readExpression keeps prompting while the input so far is an unfinished
// expression. The core parser only treats ' ' as whitespace, so the lines
// are joined with spaces.
func readExpression(ln *liner.State, cfg yalisp.Config) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strings.ReplaceAll(line, "\t", " "))

		src := b.String()
		if strings.TrimSpace(src) == "" {
			return src, true
		}
		if _, err := cfg.Parse(src); yalisp.IsIncomplete(err) {
			continue
		}
		return src, true
	}
}

func command(cmd string) (quit bool) {
	switch strings.ToLower(cmd) {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Println(`REPL commands:
  :builtins  List the builtin names
  :env       List the names bound in a fresh scope
  :quit      Exit the REPL`)
	case ":builtins":
		names := yalisp.BuiltinNames()
		sort.Strings(names)
		fmt.Println(strings.Join(names, " "))
	case ":env":
		fmt.Println(strings.Join(yalisp.NewScope().Names(), " "))
	default:
		fmt.Println("unknown command. Type :help for commands.")
	}
	return false
}
