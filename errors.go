package lispobj

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrWrongType      = errors.New("wrong-type-argument")
	ErrArgsOutOfRange = errors.New("args-out-of-range")
	ErrInvalidTag     = errors.New("invalid tag")
	ErrCircularList   = errors.New("circular-list")
	ErrEqualDepth     = errors.New("stack overflow in equal")
	ErrQuit           = errors.New("quit")
	ErrSetting        = errors.New("setting-constant")
	ErrVoidVariable   = errors.New("void-variable")
	ErrNoRecord       = errors.New("no record for forwarded variable")
	ErrArity          = errors.New("wrong-number-of-arguments")
)

// WrongTypeError is signalled when a value has the wrong variant
type WrongTypeError struct {
	Predicate     Object
	PredicateName string
	Value         Object
	valueText     string
}

func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("Wrong type argument: %s, %s", e.PredicateName, e.valueText)
}

func (e *WrongTypeError) Unwrap() error { return ErrWrongType }

// ArgsOutOfRangeError is signalled when an integer does not fit the
// requested native type. It belongs to the wrong-type class.
type ArgsOutOfRangeError struct {
	Value    string
	Min, Max string
	Target   string
}

func (e *ArgsOutOfRangeError) Error() string {
	return fmt.Sprintf("Args out of range: %s not in [%s, %s] for %s", e.Value, e.Min, e.Max, e.Target)
}

func (e *ArgsOutOfRangeError) Is(target error) bool {
	return target == ErrArgsOutOfRange || target == ErrWrongType
}

// SignalError is a generic Lisp signal with a condition symbol and data
type SignalError struct {
	Symbol string
	Data   []string
	err    error
}

func (e *SignalError) Error() string {
	if len(e.Data) == 0 {
		return e.Symbol
	}
	return fmt.Sprintf("%s: %s", e.Symbol, strings.Join(e.Data, ", "))
}

func (e *SignalError) Unwrap() error { return e.err }

func (rt *Runtime) wrongType(predicate string, o Object) error {
	rt.logger.DebugCat(CatDispatch, "wrong type: %s, %s", predicate, rt.Inspect(o))
	return &WrongTypeError{
		Predicate:     rt.Intern(predicate),
		PredicateName: predicate,
		Value:         o,
		valueText:     rt.Inspect(o),
	}
}

func (rt *Runtime) signal(base error, symbol string, data ...Object) error {
	texts := make([]string, len(data))
	for i, d := range data {
		texts[i] = rt.Inspect(d)
	}
	return &SignalError{Symbol: symbol, Data: texts, err: base}
}
