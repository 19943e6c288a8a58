package sparsecs

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// View calls fn for every entity holding an A component.
func View[A any](r *Registry, fn func(Entity, *A)) {
	pa := PoolOf[A](r)
	if pa == nil {
		return
	}
	for i := 0; i < pa.Len(); i++ {
		fn(pa.packed[i], &pa.data[i])
	}
}

// View2 calls fn for every entity holding both an A and a B component. The
// pool of A leads the iteration, so list the rarest type first. Callbacks may
// modify component values but must not add or remove components of the
// listed types.
func View2[A, B any](r *Registry, fn func(Entity, *A, *B)) {
	checkDistinct(reflect.TypeFor[A](), reflect.TypeFor[B]())
	pa, pb := PoolOf[A](r), PoolOf[B](r)
	if pa == nil || pb == nil {
		return
	}
	for i := 0; i < pa.Len(); i++ {
		e := pa.packed[i]
		rb := pb.row(e.Slot())
		if rb == absentRow {
			continue
		}
		fn(e, &pa.data[i], &pb.data[rb])
	}
}

// View3 is View2 for three component types.
func View3[A, B, C any](r *Registry, fn func(Entity, *A, *B, *C)) {
	checkDistinct(reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]())
	pa, pb, pc := PoolOf[A](r), PoolOf[B](r), PoolOf[C](r)
	if pa == nil || pb == nil || pc == nil {
		return
	}
	for i := 0; i < pa.Len(); i++ {
		e := pa.packed[i]
		slot := e.Slot()
		rb := pb.row(slot)
		if rb == absentRow {
			continue
		}
		rc := pc.row(slot)
		if rc == absentRow {
			continue
		}
		fn(e, &pa.data[i], &pb.data[rb], &pc.data[rc])
	}
}

// View4 is View2 for four component types.
func View4[A, B, C, D any](r *Registry, fn func(Entity, *A, *B, *C, *D)) {
	checkDistinct(reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D]())
	pa, pb, pc, pd := PoolOf[A](r), PoolOf[B](r), PoolOf[C](r), PoolOf[D](r)
	if pa == nil || pb == nil || pc == nil || pd == nil {
		return
	}
	for i := 0; i < pa.Len(); i++ {
		e := pa.packed[i]
		slot := e.Slot()
		rb := pb.row(slot)
		if rb == absentRow {
			continue
		}
		rc := pc.row(slot)
		if rc == absentRow {
			continue
		}
		rd := pd.row(slot)
		if rd == absentRow {
			continue
		}
		fn(e, &pa.data[i], &pb.data[rb], &pc.data[rc], &pd.data[rd])
	}
}

// Count2 returns the number of entities holding both an A and a B component,
// i.e. how many times View2 would call its callback.
func Count2[A, B any](r *Registry) int {
	n := 0
	View2(r, func(Entity, *A, *B) { n++ })
	return n
}

func checkDistinct(types ...reflect.Type) {
	for i := 1; i < len(types); i++ {
		for j := 0; j < i; j++ {
			if types[i] == types[j] {
				panic(eris.Wrapf(ErrDuplicateComponentType, "%s listed twice", types[i]))
			}
		}
	}
}
