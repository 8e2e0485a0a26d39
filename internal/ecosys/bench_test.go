package ecosys

import "testing"

func BenchmarkTick_64x64(b *testing.B) {
	p := Params{
		Predators: 400, Prey: 1200, Obstacles: 200,
		Rows: 64, Cols: 64,
		PredatorOffspringInterval: 8, PredatorHungerLimit: 6, PreyOffspringInterval: 4,
		IterationLimit: 1 << 30,
	}
	g, err := New(p, NewRand(1))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if g.Finished() {
			b.StopTimer()
			g, _ = New(p, NewRand(int64(i)))
			b.StartTimer()
		}
		g.Tick()
	}
}
