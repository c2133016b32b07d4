package lispobj

import (
	"errors"
	"testing"

	"github.com/phroun/lispobj/pkg/lisptime"
)

func TestTimeToList(t *testing.T) {
	rt := newTestRuntime(t, MSBTag)
	tm := lisptime.New(0, 1, 0, 1)

	tests := []struct {
		n    int
		want string
	}{
		{4, "'(0 1 0 1)"},
		{3, "'(0 1 0)"},
		{2, "'(0 1)"},
		{1, "nil"},
	}
	for _, tt := range tests {
		if got := rt.Inspect(rt.TimeToList(tm, tt.n)); got != tt.want {
			t.Errorf("TimeToList(%d) = %s, expected %s", tt.n, got, tt.want)
		}
	}
}

func TestListToTime(t *testing.T) {
	rt := newTestRuntime(t, LSBTag)
	n := rt.MakeFixnum

	tm, err := rt.ListToTime(rt.List(n(0), n(0), n(999999), n(1000001)))
	if err != nil {
		t.Fatal(err)
	}
	if tm != lisptime.New(0, 1, 0, 1) {
		t.Errorf("Expected (0 1 0 1), got %s", tm)
	}

	back, err := rt.ListToTime(rt.TimeToList(lisptime.New(7, 8, 9, 10), 4))
	if err != nil || back != lisptime.New(7, 8, 9, 10) {
		t.Errorf("Round trip gave %s, %v", back, err)
	}

	var wt *WrongTypeError
	if _, err := rt.ListToTime(rt.List(n(0), rt.MakeString("x"))); !errors.As(err, &wt) || wt.PredicateName != "integerp" {
		t.Errorf("Expected integerp, got %v", err)
	}
	var se *SignalError
	if _, err := rt.ListToTime(rt.List(n(0))); !errors.As(err, &se) || se.Symbol != "error" {
		t.Errorf("Expected signal for one limb, got %v", err)
	}
}
