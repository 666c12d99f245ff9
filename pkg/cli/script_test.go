package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/funvibe/typed/internal/defset"
	"github.com/funvibe/typed/internal/trace"
)

// TestScripts replays recorded REPL sessions: each testdata archive holds a
// definition file, the lines typed into the session and the exact expected
// output.
func TestScripts(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.txt"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no script archives under testdata")
	}

	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			archive, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatalf("ParseFile: %v", err)
			}
			files := make(map[string]string, len(archive.Files))
			for _, f := range archive.Files {
				files[f.Name] = string(f.Data)
			}
			for _, required := range []string{"defs.yaml", "session", "output"} {
				if _, ok := files[required]; !ok {
					t.Fatalf("archive %s is missing %q", path, required)
				}
			}

			file, err := defset.Parse([]byte(files["defs.yaml"]))
			if err != nil {
				t.Fatalf("defset.Parse: %v", err)
			}

			var out bytes.Buffer
			session, err := NewSession(file, &out, false)
			if err != nil {
				t.Fatalf("NewSession: %v", err)
			}
			session.RunREPL(strings.NewReader(files["session"]), "")

			got := strings.TrimRight(out.String(), "\n")
			want := strings.TrimRight(files["output"], "\n")
			if got != want {
				t.Errorf("session output mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
			}
		})
	}
}

func TestScriptTraceRecords(t *testing.T) {
	file, err := defset.Parse([]byte(calcDefs))
	if err != nil {
		t.Fatalf("defset.Parse: %v", err)
	}
	var out bytes.Buffer
	session, err := NewSession(file, &out, false)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	store := openTraceStore(t)
	if err := session.EnableTrace(store, "calc"); err != nil {
		t.Fatalf("EnableTrace: %v", err)
	}

	session.Eval("add(1, 2)")
	session.Eval("add(true)")

	sessions, err := store.Sessions()
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	calls, err := store.Calls(sessions[0].ID)
	if err != nil {
		t.Fatalf("Calls: %v", err)
	}
	if len(calls) != 2 {
		t.Fatalf("got %d calls, want 2", len(calls))
	}
	if !calls[0].OK || calls[0].ArgTypes != "number,number" {
		t.Errorf("first call = %+v, want ok number,number", calls[0])
	}
	if calls[1].OK {
		t.Errorf("second call = %+v, want recorded failure", calls[1])
	}
}

const calcDefs = `
name: calc
functions:
  add:
    "number, number": add
`

func openTraceStore(t *testing.T) *trace.Store {
	t.Helper()
	s, err := trace.Open(filepath.Join(t.TempDir(), "trace.db"))
	if err != nil {
		t.Fatalf("trace.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
