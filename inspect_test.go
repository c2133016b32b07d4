package lispobj

import (
	"fmt"
	"strings"
	"testing"
)

func TestInspect(t *testing.T) {
	rt := newTestRuntime(t, LSBTag)
	n := rt.MakeFixnum

	tests := []struct {
		name string
		obj  Object
		want string
	}{
		{"nil", rt.Nil(), "nil"},
		{"symbol", rt.Intern("foo"), "'foo"},
		{"fixnum", n(-42), "-42"},
		{"float", rt.MakeFloat(3.14), "3.14"},
		{"string", rt.MakeString("a\"b"), `"a\"b"`},
		{"list", rt.List(rt.Intern("a"), n(1)), "'(a 1)"},
		{"dotted", rt.Cons(n(1), n(2)), "'(1 . 2)"},
		{"nested", rt.List(rt.List(rt.Intern("x")), rt.Nil()), "'((x) nil)"},
		{"vector", rt.MakeVector(n(1), rt.MakeString("s")), `[1 "s"]`},
		{"empty vector", rt.MakeVector(), "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rt.Inspect(tt.obj); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestInspectOpaqueObjects(t *testing.T) {
	rt := newTestRuntime(t, LSBTag)

	marker := rt.MakeMarker(nil, 1, 1)
	want := fmt.Sprintf("#<MISC @ 0x%X: VAL(0x%X)>", uint64(rt.Address(marker)), uint64(marker))
	if got := rt.Inspect(marker); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	buf := rt.MakeBuffer("b")
	if got := rt.Inspect(buf); !strings.HasPrefix(got, "#<VECTOR-LIKE @ 0x") {
		t.Errorf("Unexpected buffer rendering %s", got)
	}
}

func TestInspectInvalidTag(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TagBits = 4
	rt := New(cfg)

	w := Object(0x2000 | 15)
	got := rt.Inspect(w)
	if !strings.HasPrefix(got, "#<INVALID-OBJECT @ 0x") || !strings.Contains(got, "VAL(0x200F)") {
		t.Errorf("Unexpected rendering %s", got)
	}
}

func TestInspectTruncatesCycles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PrintLength = 5
	rt := New(cfg)

	list := rt.List(rt.MakeFixnum(1), rt.MakeFixnum(2))
	cell, _ := rt.AsCons(list)
	next, _ := rt.AsCons(cell.Cdr())
	next.SetCdr(list)

	if got := rt.Inspect(list); got != "'(1 2 1 2 1 ...)" {
		t.Errorf("Unexpected rendering %s", got)
	}
}

func TestInspectTruncatesDepth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PrintDepth = 2
	rt := New(cfg)

	o := rt.MakeFixnum(0)
	for i := 0; i < 5; i++ {
		o = rt.List(o)
	}
	if got := rt.Inspect(o); got != "'(((...)))" {
		t.Errorf("Unexpected rendering %s", got)
	}
}

func TestPrinterStringer(t *testing.T) {
	rt := newTestRuntime(t, MSBTag)
	p := rt.Printer(rt.List(rt.MakeFixnum(1)))
	if got := fmt.Sprintf("%v", p); got != "'(1)" {
		t.Errorf("Expected '(1), got %s", got)
	}
}
