package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/phroun/lispobj"
)

func newRuntime(mode lispobj.TagMode) *lispobj.Runtime {
	cfg := lispobj.DefaultConfig()
	cfg.TagMode = mode
	return lispobj.New(cfg)
}

func TestRunCommands(t *testing.T) {
	tests := []struct {
		name string
		mode lispobj.TagMode
		args []string
		want []string
	}{
		{"decode cons", lispobj.LSBTag, []string{"decode", "0x1003"},
			[]string{"tag:     cons (raw 3)", "address: 0x1000"}},
		{"decode fixnum", lispobj.LSBTag, []string{"decode", "0x16"},
			[]string{"fixnum:  5"}},
		{"encode", lispobj.LSBTag, []string{"encode", "cons", "0x1000"},
			[]string{"0x1003"}},
		{"fixnum", lispobj.LSBTag, []string{"fixnum", "5"},
			[]string{"0x16"}},
		{"time add", lispobj.LSBTag, []string{"time", "add", "0,0,999999,999999", "0,0,0,2"},
			[]string{"'(0 1 0 1)"}},
		{"time sub", lispobj.MSBTag, []string{"time", "sub", "0,1,0,0", "0,0,0,1"},
			[]string{"'(0 0 999999 999999)"}},
		{"time cmp", lispobj.LSBTag, []string{"time", "cmp", "1,0", "0,65535"},
			[]string{"1"}},
		{"demo", lispobj.MSBTag, []string{"demo"},
			[]string{"eq 3.14 3.14:  false", "eql 3.14 3.14: true", "equal lists:   true", "fill-column in *scratch*: 70"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			if code := run(newRuntime(tt.mode), tt.args, &out, &errOut); code != 0 {
				t.Fatalf("exit %d: %s", code, errOut.String())
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("Expected %q in output:\n%s", w, out.String())
				}
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown command", []string{"frobnicate"}},
		{"missing args", []string{"decode"}},
		{"bad word", []string{"decode", "xyz"}},
		{"bad type", []string{"encode", "widget", "0x1000"}},
		{"unaligned", []string{"encode", "cons", "0x1001"}},
		{"fixnum range", []string{"fixnum", "0x7fffffffffffffff"}},
		{"bad limb", []string{"time", "add", "0,x", "0,0"}},
		{"one limb", []string{"time", "add", "0", "0,0"}},
		{"bad op", []string{"time", "mul", "0,0", "0,0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			if code := run(newRuntime(lispobj.LSBTag), tt.args, &out, &errOut); code != 1 {
				t.Errorf("Expected exit 1, got %d", code)
			}
			if !strings.HasPrefix(errOut.String(), "error:") {
				t.Errorf("Expected error message, got %q", errOut.String())
			}
		})
	}
}
