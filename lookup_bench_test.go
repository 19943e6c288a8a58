package sparsecs

import (
	"strconv"
	"testing"
)

type benchSystemA struct{ System }
type benchSystemB struct{ System }
type benchSystemC struct{ System }

func BenchmarkSystemLookup(b *testing.B) {
	r := NewRegistry()
	AddSystem(r, &benchSystemA{})
	AddSystem(r, &benchSystemB{})
	AddSystem(r, &benchSystemC{})
	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		_ = GetSystem[*benchSystemB](r)
	}
}

func BenchmarkGetEntityByTag(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(benchName(size), func(b *testing.B) {
			r := NewRegistry()
			tags := make([]string, size)
			for i := range size {
				tags[i] = "entity-" + strconv.Itoa(i)
				r.TagEntity(r.CreateEntity(), tags[i])
			}
			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				for _, tag := range tags {
					_, _ = r.GetEntityByTag(tag)
				}
			}
		})
	}
}

func BenchmarkGroupEntity(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(benchName(size), func(b *testing.B) {
			for b.Loop() {
				b.StopTimer()
				r := NewRegistry()
				entities := make([]Entity, size)
				for i := range entities {
					entities[i] = r.CreateEntity()
				}
				b.StartTimer()
				for _, e := range entities {
					r.GroupEntity(e, "crowd")
				}
			}
			b.ReportAllocs()
		})
	}
}
