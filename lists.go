package lispobj

// ListCars collects the elements of a proper list. A dotted tail signals
// wrong-type listp; a cycle signals circular-list.
func (rt *Runtime) ListCars(list Object) ([]Object, error) {
	var cars []Object
	tortoise := list
	for n := 0; ; n++ {
		if rt.IsNil(list) {
			return cars, nil
		}
		cell, ok := rt.AsCons(list)
		if !ok {
			return nil, rt.wrongType("listp", list)
		}
		cars = append(cars, cell.Car())
		list = cell.Cdr()
		if n%2 == 1 {
			tc, _ := rt.AsCons(tortoise)
			tortoise = tc.Cdr()
		}
		if list == tortoise && rt.IsCons(list) {
			return nil, rt.signal(ErrCircularList, "circular-list", list)
		}
	}
}

// AlistValues returns the cdr of every cons entry of alist, skipping
// entries that are not conses.
func (rt *Runtime) AlistValues(alist Object) ([]Object, error) {
	entries, err := rt.ListCars(alist)
	if err != nil {
		return nil, err
	}
	values := make([]Object, 0, len(entries))
	for _, e := range entries {
		if cell, ok := rt.AsCons(e); ok {
			values = append(values, cell.Cdr())
		}
	}
	return values, nil
}

// LiveBuffers returns every buffer on the buffer alist
func (rt *Runtime) LiveBuffers() ([]BufferRef, error) {
	values, err := rt.AlistValues(rt.bufferAlist)
	if err != nil {
		return nil, err
	}
	buffers := make([]BufferRef, 0, len(values))
	for _, v := range values {
		if b, ok := rt.AsBuffer(v); ok {
			buffers = append(buffers, b)
		}
	}
	return buffers, nil
}

// Processes returns every process on the process alist
func (rt *Runtime) Processes() ([]ExternalPtr[Process], error) {
	values, err := rt.AlistValues(rt.processAlist)
	if err != nil {
		return nil, err
	}
	procs := make([]ExternalPtr[Process], 0, len(values))
	for _, v := range values {
		vl, ok := rt.AsVectorlike(v)
		if !ok {
			continue
		}
		if p, ok := vl.AsProcess(); ok {
			procs = append(procs, p)
		}
	}
	return procs, nil
}

// BufferAlist returns the (NAME . BUFFER) alist
func (rt *Runtime) BufferAlist() Object { return rt.bufferAlist }
