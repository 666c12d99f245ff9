package trace

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "trace.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionAndCalls(t *testing.T) {
	s := openTestStore(t)

	id, err := s.BeginSession("calc.yaml")
	if err != nil {
		t.Fatalf("BeginSession: %v", err)
	}
	if id == "" {
		t.Fatalf("session id is empty")
	}

	calls := []Call{
		{SessionID: id, Fn: "add", ArgTypes: "number,number", OK: true},
		{SessionID: id, Fn: "add", ArgTypes: "boolean", OK: false, Error: "unexpected type"},
	}
	for _, c := range calls {
		if err := s.Record(c); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	sessions, err := s.Sessions()
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != id || sessions[0].Label != "calc.yaml" {
		t.Fatalf("sessions = %+v, want one with id %s", sessions, id)
	}

	got, err := s.Calls(id)
	if err != nil {
		t.Fatalf("Calls: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d calls, want 2", len(got))
	}
	if got[0].Fn != "add" || !got[0].OK {
		t.Errorf("first call = %+v, want successful add", got[0])
	}
	if got[1].OK || got[1].Error == "" {
		t.Errorf("second call = %+v, want recorded failure", got[1])
	}
}

func TestSessionsAreDistinct(t *testing.T) {
	s := openTestStore(t)
	a, err := s.BeginSession("a")
	if err != nil {
		t.Fatalf("BeginSession: %v", err)
	}
	b, err := s.BeginSession("b")
	if err != nil {
		t.Fatalf("BeginSession: %v", err)
	}
	if a == b {
		t.Errorf("session ids must be unique")
	}

	if err := s.Record(Call{SessionID: a, Fn: "f", ArgTypes: "number", OK: true}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	calls, err := s.Calls(b)
	if err != nil {
		t.Fatalf("Calls: %v", err)
	}
	if len(calls) != 0 {
		t.Errorf("session b has %d calls, want 0", len(calls))
	}
}
