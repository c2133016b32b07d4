package lispobj

import (
	"github.com/phroun/lispobj/pkg/lisptime"
)

// TimeToList materializes the first n limbs of t as a list of fixnums
func (rt *Runtime) TimeToList(t lisptime.Time, n int) Object {
	limbs := t.IntoSlice(n)
	items := make([]Object, len(limbs))
	for i, v := range limbs {
		items[i] = rt.codec.MakeFixnum(v)
	}
	rt.logger.TraceCat(CatTime, "time %s as %d limbs", t, len(limbs))
	return rt.List(items...)
}

// ListToTime decodes (HI LO [US [PS]]). Every element must be an integer.
func (rt *Runtime) ListToTime(o Object) (lisptime.Time, error) {
	items, err := rt.ListCars(o)
	if err != nil {
		return lisptime.Time{}, err
	}
	limbs := make([]int64, len(items))
	for i, item := range items {
		n, ok := rt.AsFixnum(item)
		if !ok {
			return lisptime.Time{}, rt.wrongType("integerp", item)
		}
		limbs[i] = n
	}
	t, err := lisptime.FromSlice(limbs)
	if err != nil {
		return lisptime.Time{}, rt.signal(err, "error", rt.MakeString(err.Error()), o)
	}
	return t, nil
}
