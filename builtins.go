package lispobj

// BuiltinSubrs returns a fresh table of the primitives this package can
// run without an evaluator
func BuiltinSubrs() *SubrTable {
	t, err := NewSubrTable(
		&Subr{SymbolName: "car", MinArgs: 1, MaxArgs: 1, Function: subrCar,
			Doc: "Return the car of LIST."},
		&Subr{SymbolName: "cdr", MinArgs: 1, MaxArgs: 1, Function: subrCdr,
			Doc: "Return the cdr of LIST."},
		&Subr{SymbolName: "cons", MinArgs: 2, MaxArgs: 2, Function: subrCons,
			Doc: "Create a new cons, give it CAR and CDR as components."},
		&Subr{SymbolName: "list", MinArgs: 0, MaxArgs: Many, Function: subrList,
			Doc: "Return a newly created list with specified arguments as elements."},
		&Subr{SymbolName: "eq", MinArgs: 2, MaxArgs: 2, Function: subrEq,
			Doc: "Return t if the two args are the same Lisp object."},
		&Subr{SymbolName: "eql", MinArgs: 2, MaxArgs: 2, Function: subrEql,
			Doc: "Return t if the two args are eq or are indistinguishable numbers."},
		&Subr{SymbolName: "equal", MinArgs: 2, MaxArgs: 2, Function: subrEqual,
			Doc: "Return t if two Lisp objects have similar structure and contents."},
		&Subr{SymbolName: "type-of", MinArgs: 1, MaxArgs: 1, Function: subrTypeOf,
			Doc: "Return a symbol representing the type of OBJECT."},
		&Subr{SymbolName: "quote", MinArgs: 1, MaxArgs: Unevalled, Function: subrQuote,
			Doc: "Return the argument, without evaluating it."},
	)
	if err != nil {
		panic(err)
	}
	return t
}

func subrCar(rt *Runtime, args []Object) (Object, error) {
	if rt.IsNil(args[0]) {
		return rt.nilObj, nil
	}
	cell, err := rt.AsConsOrError(args[0])
	if err != nil {
		return rt.nilObj, rt.wrongType("listp", args[0])
	}
	return cell.Car(), nil
}

func subrCdr(rt *Runtime, args []Object) (Object, error) {
	if rt.IsNil(args[0]) {
		return rt.nilObj, nil
	}
	cell, err := rt.AsConsOrError(args[0])
	if err != nil {
		return rt.nilObj, rt.wrongType("listp", args[0])
	}
	return cell.Cdr(), nil
}

func subrCons(rt *Runtime, args []Object) (Object, error) {
	return rt.Cons(args[0], args[1]), nil
}

func subrList(rt *Runtime, args []Object) (Object, error) {
	return rt.List(args...), nil
}

func subrEq(rt *Runtime, args []Object) (Object, error) {
	return rt.FromBool(rt.Eq(args[0], args[1])), nil
}

func subrEql(rt *Runtime, args []Object) (Object, error) {
	return rt.FromBool(rt.Eql(args[0], args[1])), nil
}

func subrEqual(rt *Runtime, args []Object) (Object, error) {
	equal, err := rt.Equal(args[0], args[1])
	if err != nil {
		return rt.nilObj, err
	}
	return rt.FromBool(equal), nil
}

func subrTypeOf(rt *Runtime, args []Object) (Object, error) {
	return rt.Intern(rt.TypeName(args[0])), nil
}

func subrQuote(rt *Runtime, args []Object) (Object, error) {
	return args[0], nil
}
