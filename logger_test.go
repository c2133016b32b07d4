package lispobj

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerCategories(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewLogger(true)
	l.SetOutput(&out, &errOut)

	l.DebugCat(CatEqual, "hidden %d", 1)
	if out.Len() != 0 {
		t.Errorf("Disabled category logged: %q", out.String())
	}

	l.EnableCategory(CatEqual)
	l.DebugCat(CatEqual, "shown %d", 2)
	if got := out.String(); !strings.Contains(got, "[DEBUG:equal] shown 2") {
		t.Errorf("Unexpected debug output %q", got)
	}

	l.WarnCat(CatCodec, "careful")
	if got := errOut.String(); !strings.Contains(got, "[lispobj:codec WARN] careful") {
		t.Errorf("Unexpected warning output %q", got)
	}

	l.DisableCategory(CatEqual)
	if l.IsCategoryEnabled(CatEqual) {
		t.Error("Category still enabled")
	}
	l.EnableAllCategories()
	for _, cat := range AllCategories {
		if !l.IsCategoryEnabled(cat) {
			t.Errorf("%s not enabled", cat)
		}
	}
}

func TestLoggerDisabled(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewLogger(false)
	l.SetOutput(&out, &errOut)
	l.EnableAllCategories()

	l.TraceCat(CatHeap, "trace")
	l.DebugCat(CatHeap, "debug")
	if out.Len() != 0 {
		t.Errorf("Disabled logger wrote %q", out.String())
	}
	l.Notice("always")
	if !strings.Contains(errOut.String(), "[lispobj NOTICE] always") {
		t.Errorf("Notice missing: %q", errOut.String())
	}

	var nilLogger *Logger
	nilLogger.DebugCat(CatHeap, "no panic")
	nilLogger.Log(LevelError, CatNone, "no panic")
}

func TestRuntimeDebugLogging(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Debug = true
	cfg.LogCategories = []LogCategory{CatDispatch}
	rt := New(cfg)

	var out bytes.Buffer
	rt.Logger().SetOutput(&out, &out)
	_, _ = rt.AsConsOrError(rt.MakeFixnum(3))
	if !strings.Contains(out.String(), "wrong type: consp, 3") {
		t.Errorf("Expected wrong-type debug line, got %q", out.String())
	}
}
