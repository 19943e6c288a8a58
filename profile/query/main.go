// Profiling:
// go build ./profile/query
// go tool pprof -http=":8000" -nodefraction=0.001 ./query cpu.pprof

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

type comp3 struct {
	V int64
	W int64
}

type comp4 struct {
	V int64
	W int64
}

func main() {
	count := 50
	iters := 1000
	entities := 100000
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	run(count, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for range rounds {
		r := sparsecs.NewRegistry()
		for i := range numEntities {
			e := r.CreateEntity()
			sparsecs.AddComponent(r, e, comp1{})
			sparsecs.AddComponent(r, e, comp2{V: 1, W: 1})
			sparsecs.AddComponent(r, e, comp3{})
			// every other entity lacks comp4, so the view has to skip rows
			if i%2 == 0 {
				sparsecs.AddComponent(r, e, comp4{})
			}
		}
		r.Update()

		for range iters {
			sparsecs.View4(r, func(_ sparsecs.Entity, c4 *comp4, c1 *comp1, c2 *comp2, _ *comp3) {
				c1.V += c2.V
				c1.W += c2.W
				c4.V++
			})
		}
	}
}
