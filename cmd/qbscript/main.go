package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jpschroeder/qbscript"
)

const (
	exitFailure = 1
	exitFault   = 2
)

type exprList []string

func (l *exprList) String() string {
	return strings.Join(*l, " ")
}

func (l *exprList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

var stdout io.Writer = os.Stdout

var (
	exprs       exprList
	interactive = flag.Bool("i", false, "start the REPL after running files and expressions")
	verbose     = flag.Bool("v", false, "log each evaluated form")
	historyPath = flag.String("history", defaultHistoryPath(), "REPL history file")
)

func main() {
	flag.Var(&exprs, "e", "evaluate an expression (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: qbscript [flags] [file ...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("qbscript: ")

	os.Exit(run(flag.Args()))
}

func run(files []string) int {
	session := qbscript.NewSession()

	for _, expr := range exprs {
		if err := runSource(session, "-e", expr); err != nil {
			return report(err)
		}
	}
	for _, file := range files {
		src, err := readSource(file)
		if err != nil {
			return report(err)
		}
		if err := runSource(session, file, src); err != nil {
			return report(err)
		}
	}

	ran := len(exprs) > 0 || len(files) > 0
	if stdinIsProgram(ran, *interactive, isInputRedirected()) {
		src, err := readSource("-")
		if err != nil {
			return report(err)
		}
		if err := runSource(session, "stdin", src); err != nil {
			return report(err)
		}
		return 0
	}

	if !ran || *interactive {
		if err := readEvalPrintLoop(session); err != nil {
			return report(err)
		}
	}
	return 0
}

// stdinIsProgram reports whether redirected stdin should run as a program
// rather than feed the REPL. -i keeps it for the REPL.
func stdinIsProgram(ran, interactive, redirected bool) bool {
	return !ran && !interactive && redirected
}

func report(err error) int {
	var fault *qbscript.Fault
	if errors.As(err, &fault) {
		log.Printf("fatal: %v", err)
		return exitFault
	}
	log.Print(err)
	return exitFailure
}

func readSource(name string) (string, error) {
	if name == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// runSource evaluates every form in src and prints each result on its own line.
func runSource(session *qbscript.Session, name, src string) error {
	err := guard(func() error {
		_, err := session.Run(src, func(val qbscript.Elem) {
			if *verbose {
				log.Printf("%s: evaluated to %v (%d bindings)", name, val, session.Env.Len())
			}
			fmt.Fprintln(stdout, val)
		})
		if err != nil {
			return fmt.Errorf("%s: parse: %w", name, err)
		}
		return nil
	})
	var fault *qbscript.Fault
	if errors.As(err, &fault) {
		return fmt.Errorf("%s: %w", name, fault)
	}
	return err
}

// guard turns a Fault panic into an error so the caller can restore the
// terminal and exit. The run is over either way.
func guard(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fault, ok := r.(*qbscript.Fault)
			if !ok {
				panic(r)
			}
			err = fault
		}
	}()
	return f()
}

func readEvalPrintLoop(session *qbscript.Session) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(input string) []string {
		return complete(session, input)
	})
	loadHistory(line)
	defer saveHistory(line)

	pending := ""
	for {
		text, err := line.Prompt(prompt(pending))
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(stdout)
			reportPending(os.Stderr, pending)
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			pending = ""
			continue
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}
		if strings.TrimSpace(text) != "" {
			line.AppendHistory(text)
		}

		rest, err := evalEntry(session, pending+text+"\n")
		switch {
		case qbscript.IsIncomplete(err):
			pending = rest
		case err != nil:
			var fault *qbscript.Fault
			if errors.As(err, &fault) {
				return err
			}
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			pending = ""
		default:
			pending = ""
		}
	}
}

// reportPending warns that input ended inside an open call or list.
func reportPending(w io.Writer, pending string) {
	if strings.TrimSpace(pending) != "" {
		fmt.Fprintln(w, "error: unterminated input")
	}
}

func evalEntry(session *qbscript.Session, src string) (rest string, err error) {
	err = guard(func() error {
		var rerr error
		rest, rerr = session.Run(src, func(val qbscript.Elem) {
			fmt.Fprintln(stdout, val)
		})
		return rerr
	})
	return rest, err
}

func prompt(pending string) string {
	if pending != "" {
		return "... "
	}
	return "qb> "
}

// complete offers built-in and bound names for the word under the cursor.
func complete(session *qbscript.Session, input string) []string {
	start := strings.LastIndexAny(input, " \t\n([#") + 1
	prefix, word := input[:start], input[start:]
	if word == "" {
		return nil
	}

	var out []string
	for _, names := range [][]string{qbscript.Builtins(), session.Env.Names()} {
		for _, name := range names {
			if strings.HasPrefix(name, word) {
				out = append(out, prefix+name)
			}
		}
	}
	return out
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".qbscript_history")
}

func loadHistory(line *liner.State) {
	if *historyPath == "" {
		return
	}
	f, err := os.Open(*historyPath)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := line.ReadHistory(f); err != nil {
		log.Printf("history: %v", err)
	}
}

func saveHistory(line *liner.State) {
	if *historyPath == "" {
		return
	}
	f, err := os.Create(*historyPath)
	if err != nil {
		log.Printf("history: %v", err)
		return
	}
	defer f.Close()
	if _, err := line.WriteHistory(f); err != nil {
		log.Printf("history: %v", err)
	}
}

func isInputRedirected() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) == 0
}
