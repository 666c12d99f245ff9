// Package cli implements the typed command: a REPL over dispatch tables
// declared in YAML definition files, with optional SQLite call tracing.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/typed/internal/config"
	"github.com/funvibe/typed/internal/defset"
	"github.com/funvibe/typed/internal/trace"
	"github.com/funvibe/typed/pkg/typed"
)

const (
	colorReset = "\x1b[0m"
	colorGreen = "\x1b[32m"
	colorRed   = "\x1b[31m"
	colorDim   = "\x1b[2m"
)

// Session evaluates REPL lines against the callables built from one
// definition file.
type Session struct {
	Engine    *typed.Engine
	Callables map[string]*typed.Callable
	Out       io.Writer
	Colored   bool

	store     *trace.Store
	sessionID string
}

// NewSession builds the engine and callables for a definition file.
func NewSession(file *defset.File, out io.Writer, colored bool) (*Session, error) {
	engine := typed.New()
	callables, err := file.Build(engine)
	if err != nil {
		return nil, err
	}
	return &Session{
		Engine:    engine,
		Callables: callables,
		Out:       out,
		Colored:   colored,
	}, nil
}

// EnableTrace attaches a trace store and begins a fresh session in it;
// every subsequent dispatched call records its outcome under that session
// id. Commands, parse errors and unknown function names are not recorded.
func (s *Session) EnableTrace(store *trace.Store, label string) error {
	id, err := store.BeginSession(label)
	if err != nil {
		return err
	}
	s.store = store
	s.sessionID = id
	return nil
}

func (s *Session) paint(color, text string) string {
	if !s.Colored {
		return text
	}
	return color + text + colorReset
}

// Eval handles one REPL line: a :command or a call expression. It reports
// whether the session should keep running.
func (s *Session) Eval(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	if strings.HasPrefix(line, ":") {
		return s.command(line)
	}

	call, err := ParseCall(line)
	if err != nil {
		fmt.Fprintf(s.Out, "%s\n", s.paint(colorRed, "parse error: "+err.Error()))
		return true
	}
	c, ok := s.Callables[call.Name]
	if !ok {
		fmt.Fprintf(s.Out, "%s\n", s.paint(colorRed, fmt.Sprintf("unknown function %q", call.Name)))
		return true
	}

	result, err := c.Call(call.Args...)
	s.record(call, err)
	if err != nil {
		fmt.Fprintf(s.Out, "%s\n", s.paint(colorRed, err.Error()))
		if callErr, ok := err.(*typed.CallError); ok {
			fmt.Fprintf(s.Out, "%s\n", s.paint(colorDim, describeCallError(callErr)))
		}
		return true
	}
	fmt.Fprintf(s.Out, "%s\n", s.paint(colorGreen, formatValue(result)))
	return true
}

func (s *Session) record(call *CallExpr, callErr error) {
	if s.store == nil {
		return
	}
	types := make([]string, len(call.Args))
	for i, arg := range call.Args {
		name, err := s.Engine.FindType(arg)
		if err != nil {
			name = "unknown"
		}
		types[i] = name
	}
	rec := trace.Call{
		SessionID: s.sessionID,
		Fn:        call.Name,
		ArgTypes:  strings.Join(types, ","),
		OK:        callErr == nil,
	}
	if callErr != nil {
		rec.Error = callErr.Error()
	}
	if err := s.store.Record(rec); err != nil {
		fmt.Fprintf(s.Out, "%s\n", s.paint(colorDim, "trace: "+err.Error()))
	}
}

func (s *Session) command(line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q":
		return false
	case ":funcs":
		names := make([]string, 0, len(s.Callables))
		for name := range s.Callables {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(s.Out, "%s\n", name)
		}
	case ":sigs":
		if len(fields) < 2 {
			fmt.Fprintf(s.Out, "usage: :sigs <function>\n")
			return true
		}
		c, ok := s.Callables[fields[1]]
		if !ok {
			fmt.Fprintf(s.Out, "%s\n", s.paint(colorRed, fmt.Sprintf("unknown function %q", fields[1])))
			return true
		}
		for _, key := range c.SignatureKeys() {
			fmt.Fprintf(s.Out, "%s(%s)\n", fields[1], key)
		}
	default:
		fmt.Fprintf(s.Out, "unknown command %s (try :funcs, :sigs, :quit)\n", fields[0])
	}
	return true
}

// describeCallError renders the structured data of a dispatch failure.
func describeCallError(e *typed.CallError) string {
	switch e.Category {
	case typed.CategoryWrongType:
		return fmt.Sprintf("  category=%s index=%d actual=%s expected=%s",
			e.Category, e.Index, e.ActualType, strings.Join(e.ExpectedTypes, "|"))
	case typed.CategoryTooFewArgs:
		return fmt.Sprintf("  category=%s index=%d expected=%s",
			e.Category, e.Index, strings.Join(e.ExpectedTypes, "|"))
	case typed.CategoryTooManyArgs:
		return fmt.Sprintf("  category=%s actual=%d expectedLength=%d",
			e.Category, e.ActualLength, e.ExpectedLength)
	default:
		return fmt.Sprintf("  category=%s actual=%s",
			e.Category, strings.Join(e.ActualTypes, ","))
	}
}

// formatValue renders a dispatch result for the terminal.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", val)
	case []any:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = formatValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(val)
	}
}

// RunREPL reads call expressions from in until EOF or :quit.
func (s *Session) RunREPL(in io.Reader, prompt string) {
	scanner := bufio.NewScanner(in)
	for {
		if prompt != "" {
			fmt.Fprint(s.Out, prompt)
		}
		if !scanner.Scan() {
			return
		}
		if !s.Eval(scanner.Text()) {
			return
		}
	}
}

// Entry runs the typed command and returns its exit code.
//
//	typed <defs.yaml> [--trace <db>]   start a REPL over a definition file
//	typed trace <db>                   list recorded sessions and calls
func Entry(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: typed <defs.yaml> [--trace <db>] | typed trace <db>")
		return 1
	}

	if args[0] == "trace" {
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: typed trace <db>")
			return 1
		}
		return printTrace(args[1])
	}

	defPath := args[0]
	if !isDefFile(defPath) {
		fmt.Fprintf(os.Stderr, "Error: %s is not a definition file (expected %s)\n",
			defPath, strings.Join(config.DefFileExtensions, " or "))
		return 1
	}
	tracePath := ""
	for i := 1; i < len(args); i++ {
		if args[i] != "--trace" {
			continue
		}
		if i+1 < len(args) {
			tracePath = args[i+1]
			i++
		} else {
			tracePath = config.TraceDBName
		}
	}

	file, err := defset.Load(defPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	isTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	session, err := NewSession(file, os.Stdout, isTTY)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	if tracePath != "" {
		store, err := trace.Open(tracePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			return 1
		}
		defer store.Close()
		if err := session.EnableTrace(store, defPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			return 1
		}
	}

	prompt := ""
	if isTTY {
		prompt = "typed> "
	}
	session.RunREPL(os.Stdin, prompt)
	return 0
}

// isDefFile checks if a path has a recognized definition file extension.
func isDefFile(path string) bool {
	for _, ext := range config.DefFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func printTrace(path string) int {
	store, err := trace.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	defer store.Close()

	sessions, err := store.Sessions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	for _, sess := range sessions {
		fmt.Printf("session %s (%s, %s)\n", sess.ID, sess.Label,
			sess.StartedAt.Format("2006-01-02 15:04:05"))
		calls, err := store.Calls(sess.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			return 1
		}
		for _, c := range calls {
			status := "ok"
			if !c.OK {
				status = "error: " + c.Error
			}
			fmt.Printf("  %s(%s) -> %s\n", c.Fn, c.ArgTypes, status)
		}
	}
	return 0
}
