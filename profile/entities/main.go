// Profiling:
// go build ./profile/entities
// go tool pprof -http=":8000" -nodefraction=0.001 ./entities mem.pprof

package main

import (
	"github.com/edwinsyarief/sparsecs"
	"github.com/pkg/profile"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

type mover struct {
	sparsecs.System
}

func main() {
	count := 50
	iters := 1000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(count, iters, entities)
	p.Stop()
}

// run churns entities through create, activate, iterate and kill.
func run(rounds, iters, numEntities int) {
	for range rounds {
		r := sparsecs.NewRegistry()
		m := sparsecs.AddSystem(r, &mover{})
		sparsecs.RequireComponent[comp1](&m.System)
		sparsecs.RequireComponent[comp2](&m.System)
		builder := sparsecs.NewBuilder2[comp1, comp2](r)

		for range iters {
			for range numEntities {
				builder.NewEntity(comp1{}, comp2{V: 1, W: 1})
			}
			r.Update()
			for _, e := range m.GetSystemEntities() {
				c1, c2 := builder.Get(e)
				c1.V += c2.V
				c1.W += c2.W
				r.KillEntity(e)
			}
			r.Update()
		}
	}
}
