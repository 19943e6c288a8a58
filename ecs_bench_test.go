package sparsecs

import (
	"fmt"
	"testing"
)

var benchSizes = []int{1000, 10000, 100000, 1000000}

func benchName(size int) string {
	if size == 1000000 {
		return "1M"
	}
	return fmt.Sprintf("%dK", size/1000)
}

// Registry Creation Benchmarks
func BenchmarkNewRegistry(b *testing.B) {
	for b.Loop() {
		_ = NewRegistry()
	}
	b.ReportAllocs()
}

// Entity Creation Benchmarks
func BenchmarkRegistryCreateEntity(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(benchName(size), func(b *testing.B) {
			for b.Loop() {
				b.StopTimer()
				r := NewRegistry()
				b.StartTimer()
				for range size {
					r.CreateEntity()
				}
				r.Update()
			}
			b.ReportAllocs()
		})
	}
}

func BenchmarkRegistryCreateEntityRecycled(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(benchName(size), func(b *testing.B) {
			r := NewRegistry()
			entities := make([]Entity, size)
			for b.Loop() {
				for i := range size {
					entities[i] = r.CreateEntity()
				}
				r.Update()
				for _, e := range entities {
					r.KillEntity(e)
				}
				r.Update()
			}
			b.ReportAllocs()
		})
	}
}

func BenchmarkBuilderNewEntity(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(benchName(size), func(b *testing.B) {
			for b.Loop() {
				b.StopTimer()
				r := NewRegistry()
				builder := NewBuilder[Position](r)
				b.StartTimer()
				for range size {
					builder.NewEntity(Position{})
				}
			}
			b.ReportAllocs()
		})
	}
}

func BenchmarkBuilder2NewEntity(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(benchName(size), func(b *testing.B) {
			for b.Loop() {
				b.StopTimer()
				r := NewRegistry()
				builder := NewBuilder2[Position, Velocity](r)
				b.StartTimer()
				for range size {
					builder.NewEntity(Position{}, Velocity{1, 1})
				}
			}
			b.ReportAllocs()
		})
	}
}

// Component Benchmarks
func BenchmarkAddComponent(b *testing.B) {
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
					AddComponent(r, e, Position{1, 2})
				}
			}
			b.ReportAllocs()
		})
	}
}

func BenchmarkGetComponent(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(benchName(size), func(b *testing.B) {
			r := NewRegistry()
			builder := NewBuilder[Position](r)
			entities := builder.NewEntities(size, Position{})
			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				for _, e := range entities {
					GetComponent[Position](r, e).X++
				}
			}
		})
	}
}

func BenchmarkBuilderGet(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(benchName(size), func(b *testing.B) {
			r := NewRegistry()
			builder := NewBuilder[Position](r)
			entities := builder.NewEntities(size, Position{})
			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				for _, e := range entities {
					builder.Get(e).X++
				}
			}
		})
	}
}

func BenchmarkRemoveComponent(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(benchName(size), func(b *testing.B) {
			for b.Loop() {
				b.StopTimer()
				r := NewRegistry()
				entities := NewBuilder2[Position, Velocity](r)
				list := make([]Entity, size)
				for i := range list {
					list[i] = entities.NewEntity(Position{}, Velocity{})
				}
				b.StartTimer()
				for _, e := range list {
					RemoveComponent[Position](r, e)
				}
			}
			b.ReportAllocs()
		})
	}
}

// Kill Benchmarks
func BenchmarkRegistryKillEntity(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(benchName(size), func(b *testing.B) {
			for b.Loop() {
				b.StopTimer()
				r := NewRegistry()
				AddSystem(r, &movementSystem{})
				builder := NewBuilder2[Position, Velocity](r)
				entities := make([]Entity, size)
				for i := range entities {
					entities[i] = builder.NewEntity(Position{}, Velocity{})
				}
				r.Update()
				b.StartTimer()
				for _, e := range entities {
					r.KillEntity(e)
				}
				r.Update()
			}
			b.ReportAllocs()
		})
	}
}

func BenchmarkRegistryReset(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(benchName(size), func(b *testing.B) {
			for b.Loop() {
				b.StopTimer()
				r := NewRegistry()
				NewBuilder2[Position, Velocity](r).NewEntity(Position{}, Velocity{})
				NewBuilder[Position](r).NewEntities(size-1, Position{})
				b.StartTimer()
				r.Reset()
			}
			b.ReportAllocs()
		})
	}
}

// View Benchmarks
func BenchmarkViewIterate(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(benchName(size), func(b *testing.B) {
			r := NewRegistry()
			NewBuilder[Position](r).NewEntities(size, Position{})
			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				View(r, func(_ Entity, p *Position) {
					p.X++
				})
			}
		})
	}
}

func BenchmarkView2Iterate(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(benchName(size), func(b *testing.B) {
			r := NewRegistry()
			builder := NewBuilder2[Position, Velocity](r)
			for range size {
				builder.NewEntity(Position{}, Velocity{1, 1})
			}
			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				View2(r, func(_ Entity, p *Position, v *Velocity) {
					p.X += v.DX
					p.Y += v.DY
				})
			}
		})
	}
}

// BenchmarkView2IterateSparse leads with the rarer pool, which is how views
// are meant to be ordered.
func BenchmarkView2IterateSparse(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(benchName(size), func(b *testing.B) {
			r := NewRegistry()
			for i := range size {
				e := r.CreateEntity()
				AddComponent(r, e, Position{})
				if i%10 == 0 {
					AddComponent(r, e, Velocity{1, 1})
				}
			}
			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				View2(r, func(_ Entity, v *Velocity, p *Position) {
					p.X += v.DX
				})
			}
		})
	}
}

func BenchmarkView4Iterate(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(benchName(size), func(b *testing.B) {
			r := NewRegistry()
			for range size {
				e := r.CreateEntity()
				AddComponent(r, e, Position{})
				AddComponent(r, e, Velocity{1, 1})
				AddComponent(r, e, Health{})
				AddComponent(r, e, Sprite{})
			}
			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				View4(r, func(_ Entity, p *Position, v *Velocity, h *Health, _ *Sprite) {
					p.X += v.DX
					h.HP++
				})
			}
		})
	}
}

func BenchmarkSystemIterate(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(benchName(size), func(b *testing.B) {
			r := NewRegistry()
			m := AddSystem(r, &movementSystem{})
			RequireComponent[Position](&m.System)
			RequireComponent[Velocity](&m.System)
			builder := NewBuilder2[Position, Velocity](r)
			for range size {
				builder.NewEntity(Position{}, Velocity{1, 1})
			}
			r.Update()
			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				for _, e := range m.GetSystemEntities() {
					p, v := builder.Get(e)
					p.X += v.DX
				}
			}
		})
	}
}
