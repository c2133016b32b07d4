package lispobj

import (
	"errors"
	"testing"
)

func TestListCars(t *testing.T) {
	rt := newTestRuntime(t, LSBTag)
	items, err := rt.ListCars(rt.List(rt.MakeFixnum(1), rt.MakeFixnum(2)))
	if err != nil || len(items) != 2 {
		t.Fatalf("ListCars = %v, %v", items, err)
	}
	if items, err := rt.ListCars(rt.Nil()); err != nil || len(items) != 0 {
		t.Errorf("nil list: %v, %v", items, err)
	}

	var wt *WrongTypeError
	if _, err := rt.ListCars(rt.Cons(rt.MakeFixnum(1), rt.MakeFixnum(2))); !errors.As(err, &wt) || wt.PredicateName != "listp" {
		t.Errorf("Expected listp for dotted list, got %v", err)
	}

	loop := rt.List(rt.MakeFixnum(1))
	cell, _ := rt.AsCons(loop)
	cell.SetCdr(loop)
	if _, err := rt.ListCars(loop); !errors.Is(err, ErrCircularList) {
		t.Errorf("Expected circular-list, got %v", err)
	}
}

func TestLiveBuffers(t *testing.T) {
	rt := newTestRuntime(t, LSBTag)
	scratch := rt.MakeBuffer("*scratch*")
	messages := rt.MakeBuffer("*Messages*")

	buffers, err := rt.LiveBuffers()
	if err != nil {
		t.Fatal(err)
	}
	if len(buffers) != 2 {
		t.Fatalf("Expected 2 buffers, got %d", len(buffers))
	}
	name, _ := rt.AsString(buffers[1].Name())
	if name.String() != "*Messages*" {
		t.Errorf("Expected *Messages* second, got %s", name.String())
	}

	if err := rt.KillBuffer(scratch); err != nil {
		t.Fatal(err)
	}
	buffers, _ = rt.LiveBuffers()
	if len(buffers) != 1 || buffers[0].Deref() != mustBuffer(t, rt, messages) {
		t.Errorf("Expected only *Messages* after kill, got %d buffers", len(buffers))
	}
	if b, _ := rt.AsBuffer(scratch); b.IsLive() {
		t.Error("Killed buffer still live")
	}
}

func mustBuffer(t *testing.T, rt *Runtime, o Object) *Buffer {
	t.Helper()
	b, ok := rt.AsBuffer(o)
	if !ok {
		t.Fatalf("%s is not a buffer", rt.Inspect(o))
	}
	return b.Deref()
}

func TestProcesses(t *testing.T) {
	rt := newTestRuntime(t, MSBTag)
	rt.MakeProcess("shell", rt.MakeString("/bin/sh"))

	procs, err := rt.Processes()
	if err != nil {
		t.Fatal(err)
	}
	if len(procs) != 1 {
		t.Fatalf("Expected 1 process, got %d", len(procs))
	}
	cmd, err := rt.ListCars(procs[0].Deref().Command)
	if err != nil || len(cmd) != 1 {
		t.Errorf("Unexpected command %v, %v", cmd, err)
	}
}

func TestFromStrings(t *testing.T) {
	rt := newTestRuntime(t, LSBTag)
	list := rt.FromStrings("a", "b")
	if got := rt.Inspect(list); got != `'("a" "b")` {
		t.Errorf("Unexpected %s", got)
	}
	if rt.FromOptional(rt.MakeFixnum(1), false) != rt.Nil() {
		t.Error("FromOptional(false) should be nil")
	}
}
