package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"github.com/phroun/lispobj"
	"github.com/phroun/lispobj/pkg/lisptime"
	"golang.org/x/term"
)

var version = "dev" // set via -ldflags at build time

// ANSI color codes for terminal output
const (
	colorYellow = "\x1b[93m"
	colorRed    = "\x1b[91m"
	colorReset  = "\x1b[0m"
)

const historyFile = ".lispobj_history"

func main() {
	msbFlag := flag.Bool("msb", false, "Use high-bits tagging")
	tagBitsFlag := flag.Uint("tagbits", lispobj.DefaultTagBits, "Tag field width (3-8)")
	debugFlag := flag.Bool("debug", false, "Enable debug output")
	flag.BoolVar(debugFlag, "d", false, "Enable debug output (short)")
	versionFlag := flag.Bool("version", false, "Show version")

	flag.Usage = showUsage
	flag.Parse()

	if *versionFlag {
		fmt.Println("lispobj", version)
		os.Exit(0)
	}

	mode := lispobj.LSBTag
	if env := os.Getenv("LISPOBJ_TAG_MODE"); env != "" {
		m, err := lispobj.ParseTagMode(env)
		if err != nil {
			fmt.Fprintf(os.Stderr, "LISPOBJ_TAG_MODE: %v\n", err)
			os.Exit(2)
		}
		mode = m
	}
	if *msbFlag {
		mode = lispobj.MSBTag
	}

	cfg := lispobj.DefaultConfig()
	cfg.TagMode = mode
	cfg.TagBits = *tagBitsFlag
	cfg.Debug = *debugFlag
	if *debugFlag {
		cfg.LogCategories = lispobj.AllCategories
	}
	rt := lispobj.New(cfg)

	args := flag.Args()
	if len(args) == 0 {
		showUsage()
		os.Exit(2)
	}
	if args[0] == "repl" {
		os.Exit(cmdRepl(rt))
	}
	os.Exit(run(rt, args, os.Stdout, os.Stderr))
}

func showUsage() {
	usage := `Usage: lispobj [options] <command> [args...]

Inspect tagged Lisp words and four-limb timestamps.

Options:
  -msb                Use high-bits tagging (default: low bits)
  -tagbits N          Tag field width, 3 to 8 (default: 3)
  -d, -debug          Enable debug output
  -version            Show version and exit

Commands:
  decode WORD         Show the type, tag and payload of WORD
  encode TYPE ADDR    Tag ADDR as TYPE (symbol, misc, string, vectorlike, cons, float)
  fixnum N            Encode N as a fixnum
  time add A B        Add two timestamps written HI,LO,US,PS
  time sub A B        Subtract B from A
  time cmp A B        Compare A and B (-1, 0 or 1)
  demo                Build sample objects and print them
  repl                Read commands interactively

Environment Variables:
  LISPOBJ_TAG_MODE    "lsb" or "msb"; -msb takes precedence
`
	fmt.Fprint(os.Stderr, usage)
}

// run executes one command and returns the exit status
func run(rt *lispobj.Runtime, args []string, out, errOut io.Writer) int {
	if err := dispatch(rt, args, out); err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	return 0
}

func dispatch(rt *lispobj.Runtime, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("missing command")
	}
	switch args[0] {
	case "decode":
		if len(args) != 2 {
			return errors.New("usage: decode WORD")
		}
		return cmdDecode(rt, args[1], out)
	case "encode":
		if len(args) != 3 {
			return errors.New("usage: encode TYPE ADDR")
		}
		return cmdEncode(rt, args[1], args[2], out)
	case "fixnum":
		if len(args) != 2 {
			return errors.New("usage: fixnum N")
		}
		return cmdFixnum(rt, args[1], out)
	case "time":
		if len(args) != 4 {
			return errors.New("usage: time add|sub|cmp A B")
		}
		return cmdTime(rt, args[1], args[2], args[3], out)
	case "demo":
		return cmdDemo(rt, out)
	}
	return fmt.Errorf("unknown command %q", args[0])
}

func parseWord(s string) (lispobj.Object, error) {
	if u, err := strconv.ParseUint(s, 0, 64); err == nil {
		return lispobj.Object(u), nil
	}
	n, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("bad word %q", s)
	}
	return lispobj.Object(n), nil
}

func cmdDecode(rt *lispobj.Runtime, s string, out io.Writer) error {
	w, err := parseWord(s)
	if err != nil {
		return err
	}
	c := rt.Codec()
	t := c.DecodeTag(w)
	fmt.Fprintf(out, "word:    %#x\n", uint64(w))
	fmt.Fprintf(out, "mode:    %s/%d\n", c.Mode(), c.TagBits())
	fmt.Fprintf(out, "tag:     %s (raw %d)\n", t, c.RawTag(w))
	if t.IsFixnum() {
		fmt.Fprintf(out, "fixnum:  %d\n", c.FixnumValue(w))
		return nil
	}
	fmt.Fprintf(out, "address: %#x\n", uint64(c.StripTag(w)))
	return nil
}

func cmdEncode(rt *lispobj.Runtime, typeName, addrText string, out io.Writer) error {
	t := lispobj.TypeFromString(typeName)
	if !t.Valid() {
		return fmt.Errorf("unknown type %q", typeName)
	}
	addr, err := strconv.ParseUint(addrText, 0, 64)
	if err != nil {
		return fmt.Errorf("bad address %q", addrText)
	}
	w, err := rt.TagPointer(lispobj.Address(addr), t)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%#x\n", uint64(w))
	return nil
}

func cmdFixnum(rt *lispobj.Runtime, s string, out io.Writer) error {
	n, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return fmt.Errorf("bad integer %q", s)
	}
	w, err := lispobj.FromSigned(rt, n)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%#x\n", uint64(w))
	return nil
}

func parseTime(s string) (lisptime.Time, error) {
	parts := strings.Split(s, ",")
	limbs := make([]int64, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return lisptime.Time{}, fmt.Errorf("bad time limb %q", p)
		}
		limbs[i] = n
	}
	if len(limbs) < 2 || len(limbs) > 4 {
		return lisptime.Time{}, fmt.Errorf("time %q needs 2 to 4 limbs", s)
	}
	t := lisptime.Time{Hi: limbs[0], Lo: int(limbs[1])}
	if len(limbs) > 2 {
		t.Us = int(limbs[2])
	}
	if len(limbs) > 3 {
		t.Ps = int(limbs[3])
	}
	return t, nil
}

func cmdTime(rt *lispobj.Runtime, op, a, b string, out io.Writer) error {
	ta, err := parseTime(a)
	if err != nil {
		return err
	}
	tb, err := parseTime(b)
	if err != nil {
		return err
	}
	switch op {
	case "add":
		fmt.Fprintln(out, rt.Inspect(rt.TimeToList(ta.Add(tb), 4)))
	case "sub":
		fmt.Fprintln(out, rt.Inspect(rt.TimeToList(ta.Sub(tb), 4)))
	case "cmp":
		fmt.Fprintln(out, ta.Compare(tb))
	default:
		return fmt.Errorf("unknown time operation %q", op)
	}
	return nil
}

func cmdDemo(rt *lispobj.Runtime, out io.Writer) error {
	rt.InstallSubrs(lispobj.BuiltinSubrs())

	pi1, pi2 := rt.MakeFloat(3.14), rt.MakeFloat(3.14)
	list := rt.List(rt.Intern("a"), rt.MakeFixnum(1), rt.MakeString("two"), pi1)
	vec := rt.MakeVector(rt.MakeFixnum(1), rt.MakeFixnum(2), rt.MakeFixnum(3))
	buf := rt.MakeBuffer("*scratch*")
	marker := rt.MakeMarker(nil, 1, 1)

	for _, o := range []lispobj.Object{rt.Nil(), rt.T(), list, rt.Cons(rt.MakeFixnum(1), rt.MakeFixnum(2)), vec, buf, marker} {
		fmt.Fprintf(out, "%-12s %#018x %s\n", rt.TypeName(o), uint64(o), rt.Printer(o))
	}

	equal, err := rt.Equal(list, rt.List(rt.Intern("a"), rt.MakeFixnum(1), rt.MakeString("two"), pi2))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "eq 3.14 3.14:  %v\n", rt.Eq(pi1, pi2))
	fmt.Fprintf(out, "eql 3.14 3.14: %v\n", rt.Eql(pi1, pi2))
	fmt.Fprintf(out, "equal lists:   %v\n", equal)

	res, err := rt.Funcall(rt.Intern("type-of"), vec)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "(type-of %s) => %s\n", rt.Inspect(vec), rt.Inspect(res))

	fillColumn, err := rt.DefvarPerBuffer("fill-column", "FillColumn", rt.Intern("integerp"))
	if err != nil {
		return err
	}
	b, _ := rt.AsBuffer(buf)
	v, err := rt.SymbolValue(fillColumn, b.Deref(), nil)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "fill-column in *scratch*: %s\n", rt.Inspect(v))
	return nil
}

func promptColor() (string, string) {
	if term.IsTerminal(int(os.Stdout.Fd())) && os.Getenv("NO_COLOR") == "" {
		return colorYellow, colorReset
	}
	return "", ""
}

func cmdRepl(rt *lispobj.Runtime) int {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	// liner measures the prompt width itself, so only the banner is colored.
	start, reset := promptColor()
	fmt.Printf("%slispobj %s%s (%s/%d). Type :quit to exit.\n", start, version, reset, rt.Codec().Mode(), rt.Codec().TagBits())

	for {
		line, err := ln.Prompt("lispobj> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return 0
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if line == ":quit" {
			return 0
		}
		if err := dispatch(rt, strings.Fields(line), os.Stdout); err != nil {
			if start != "" {
				fmt.Fprintf(os.Stderr, "%s%v%s\n", colorRed, err, colorReset)
			} else {
				fmt.Fprintln(os.Stderr, err)
			}
		}
	}
}
