package ecosys

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Grid", func() {
	Describe("construction", func() {
		It("scatters the requested agents without overlap", func() {
			g, err := New(Params{
				Predators: 10, Prey: 20, Obstacles: 5,
				Rows: 8, Cols: 6,
				PredatorOffspringInterval: 5, PredatorHungerLimit: 4, PreyOffspringInterval: 3,
				IterationLimit: 10,
			}, NewRand(3))
			Expect(err).NotTo(HaveOccurred())

			census := g.Census()
			Expect(census[PredatorKind]).To(Equal(10))
			Expect(census[PreyKind]).To(Equal(20))
			Expect(census[ObstacleKind]).To(Equal(5))
			Expect(g.Predators()).To(Equal(10))
			Expect(g.Prey()).To(Equal(20))
			Expect(g.Step()).To(BeZero())
		})

		It("fills a grid to exact capacity", func() {
			g, err := New(Params{Predators: 3, Prey: 3, Obstacles: 3, Rows: 3, Cols: 3}, NewRand(11))
			Expect(err).NotTo(HaveOccurred())
			Expect(g.Census()[Empty]).To(BeZero())
		})

		It("rejects more agents than cells", func() {
			_, err := New(Params{Predators: 5, Prey: 5, Rows: 3, Cols: 3}, NewRand(1))
			Expect(err).To(MatchError(ErrCapacity))
		})

		It("rejects degenerate dimensions and negative values", func() {
			_, err := New(Params{Rows: 0, Cols: 4}, NewRand(1))
			Expect(err).To(MatchError(ErrInvalidParams))

			_, err = New(Params{Rows: 2, Cols: 2, PredatorHungerLimit: -1}, NewRand(1))
			Expect(err).To(MatchError(ErrInvalidParams))
		})

		It("is reproducible for a given seed", func() {
			p := Params{
				Predators: 15, Prey: 40, Obstacles: 10, Rows: 12, Cols: 12,
				PredatorOffspringInterval: 6, PredatorHungerLimit: 5, PreyOffspringInterval: 4,
				IterationLimit: 50,
			}
			a, err := New(p, NewRand(99))
			Expect(err).NotTo(HaveOccurred())
			b, err := New(p, NewRand(99))
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 20; i++ {
				a.Tick()
				b.Tick()
				Expect(a.Sample()).To(Equal(b.Sample()))
			}
		})
	})

	Describe("movement conflicts", func() {
		It("lets the first claimant win a contested cell", func() {
			g := emptyGrid(3, 3, moves(1, 1, 1, -1))
			first := g.NewCreature(PredatorKind)
			second := g.NewCreature(PredatorKind)
			Expect(g.Place(0, 0, first)).To(Succeed())
			Expect(g.Place(0, 2, second)).To(Succeed())

			g.Tick()

			Expect(g.Cell(1, 1).Occupant()).To(BeIdenticalTo(first))
			Expect(g.Cell(0, 2).Occupant()).To(BeIdenticalTo(second))
			Expect(g.Cell(0, 0).Kind()).To(Equal(Empty))
			Expect(g.Predators()).To(Equal(2))
		})

		It("keeps a creature in place when it targets its own kind", func() {
			g := emptyGrid(1, 3, moves(0, 1, 0, 0))
			left := g.NewCreature(PreyKind)
			right := g.NewCreature(PreyKind)
			Expect(g.Place(0, 0, left)).To(Succeed())
			Expect(g.Place(0, 1, right)).To(Succeed())

			g.Tick()

			Expect(g.Cell(0, 0).Occupant()).To(BeIdenticalTo(left))
			Expect(g.Cell(0, 1).Occupant()).To(BeIdenticalTo(right))
		})

		It("never lets a creature enter an obstacle", func() {
			g := emptyGrid(1, 2, moves(0, 1))
			pred := g.NewCreature(PredatorKind)
			Expect(g.Place(0, 0, pred)).To(Succeed())
			Expect(g.Place(0, 1, Obstacle{})).To(Succeed())

			g.Tick()

			Expect(g.Cell(0, 0).Occupant()).To(BeIdenticalTo(pred))
			Expect(g.Cell(0, 1).Kind()).To(Equal(ObstacleKind))
		})
	})

	Describe("feeding", func() {
		It("consumes the prey when a predator moves onto it", func() {
			g := emptyGrid(1, 3, moves(0, 1, 0, 0, 0, 0))
			pred := NewPredator(100, 100)
			pred.ticksSinceFed = 5
			victim := g.NewCreature(PreyKind)
			other := g.NewCreature(PreyKind)
			Expect(g.Place(0, 0, pred)).To(Succeed())
			Expect(g.Place(0, 1, victim)).To(Succeed())
			Expect(g.Place(0, 2, other)).To(Succeed())

			g.Tick()

			Expect(g.Cell(0, 1).Occupant()).To(BeIdenticalTo(pred))
			// reset at commit, then the commit's own tick
			Expect(pred.TicksSinceFed()).To(Equal(1))
			Expect(pred.TicksAlive()).To(Equal(1))
			Expect(g.Predators()).To(Equal(1))
			Expect(g.Prey()).To(Equal(1))
			Expect(g.Cell(0, 2).Occupant()).To(BeIdenticalTo(other))
		})

		It("lets the prey escape when it moves first out of the target cell", func() {
			// prey at (0,1) is scanned after the predator claims it, and
			// moves forward into (0,2) before its own cell commits
			g := emptyGrid(1, 4, moves(0, 1, 0, 1))
			pred := NewPredator(100, 100)
			pred.ticksSinceFed = 5
			prey := g.NewCreature(PreyKind)
			Expect(g.Place(0, 0, pred)).To(Succeed())
			Expect(g.Place(0, 1, prey)).To(Succeed())

			g.Tick()

			Expect(g.Cell(0, 1).Occupant()).To(BeIdenticalTo(pred))
			Expect(g.Cell(0, 2).Occupant()).To(BeIdenticalTo(prey))
			Expect(pred.TicksSinceFed()).To(Equal(6))
			Expect(g.Prey()).To(Equal(1))
		})
	})

	Describe("starvation", func() {
		It("removes a predator whose hunger reaches the limit", func() {
			g := emptyGrid(1, 1, moves())
			pred := NewPredator(100, 3)
			pred.ticksSinceFed = 2
			Expect(g.Place(0, 0, pred)).To(Succeed())

			g.Tick()

			Expect(g.Cell(0, 0).Kind()).To(Equal(Empty))
			Expect(g.Predators()).To(BeZero())
		})

		It("keeps a predator below the limit", func() {
			g := emptyGrid(1, 1, moves())
			pred := NewPredator(100, 3)
			pred.ticksSinceFed = 1
			Expect(g.Place(0, 0, pred)).To(Succeed())

			g.Tick()

			Expect(g.Cell(0, 0).Occupant()).To(BeIdenticalTo(pred))
			Expect(pred.TicksSinceFed()).To(Equal(2))
			Expect(g.Predators()).To(Equal(1))
		})
	})

	Describe("reproduction", func() {
		It("spawns an offspring next to a parent that stays put", func() {
			g := emptyGrid(1, 3, moves(0, 1))
			parent := NewPrey(2)
			parent.ticksSinceOffspring = 2
			Expect(g.Place(0, 0, parent)).To(Succeed())

			g.Tick()

			Expect(g.Cell(0, 0).Occupant()).To(BeIdenticalTo(parent))
			child, ok := g.Cell(0, 1).Occupant().(*Prey)
			Expect(ok).To(BeTrue())
			Expect(child).NotTo(BeIdenticalTo(parent))
			Expect(child.TicksSinceOffspring()).To(Equal(1))
			Expect(parent.TicksSinceOffspring()).To(Equal(1))
			Expect(g.Prey()).To(Equal(2))
		})

		It("loses a rejected offspring but still resets the parent", func() {
			g := emptyGrid(1, 3, moves(0, 0))
			parent := NewPredator(2, 100)
			parent.ticksSinceOffspring = 2
			Expect(g.Place(0, 0, parent)).To(Succeed())

			g.Tick()

			Expect(g.Cell(0, 0).Occupant()).To(BeIdenticalTo(parent))
			Expect(parent.TicksSinceOffspring()).To(Equal(1))
			Expect(g.Predators()).To(Equal(1))
			Expect(g.Census()[PredatorKind]).To(Equal(1))
		})
	})

	Describe("toroidal addressing", func() {
		It("wraps forward moves past the last row and column to cell (0,0)", func() {
			g := emptyGrid(3, 3, moves(1, 1))
			pred := g.NewCreature(PredatorKind)
			Expect(g.Place(2, 2, pred)).To(Succeed())

			g.Tick()

			// (0,0) committed earlier in the scan, so the claim waits
			Expect(g.Cell(0, 0).Kind()).To(Equal(Empty))
			Expect(g.Cell(0, 0).Pending(PredatorKind)).To(BeIdenticalTo(pred))
			Expect(g.Predators()).To(BeZero())

			g.Tick()

			Expect(g.Cell(0, 0).Occupant()).To(BeIdenticalTo(pred))
			Expect(g.Predators()).To(Equal(1))
		})

		It("wraps backward moves at row and column 0 to the far corner", func() {
			g := emptyGrid(3, 3, moves(-1, -1))
			pred := g.NewCreature(PredatorKind)
			Expect(g.Place(0, 0, pred)).To(Succeed())

			g.Tick()

			Expect(g.Cell(2, 2).Occupant()).To(BeIdenticalTo(pred))
			Expect(g.Cell(0, 0).Kind()).To(Equal(Empty))
			Expect(g.Predators()).To(Equal(1))
		})
	})

	Describe("termination", func() {
		It("ends in a draw at the iteration limit", func() {
			g, err := New(Params{
				Rows: 1, Cols: 4,
				PredatorOffspringInterval: 100, PredatorHungerLimit: 100, PreyOffspringInterval: 100,
				IterationLimit: 5,
			}, NewRand(5))
			Expect(err).NotTo(HaveOccurred())
			Expect(g.Place(0, 0, g.NewCreature(PredatorKind))).To(Succeed())
			Expect(g.Place(0, 1, Obstacle{})).To(Succeed())
			Expect(g.Place(0, 2, g.NewCreature(PreyKind))).To(Succeed())
			Expect(g.Place(0, 3, Obstacle{})).To(Succeed())

			for i := 0; i < 5; i++ {
				Expect(g.Finished()).To(BeFalse())
				g.Tick()
			}

			Expect(g.Finished()).To(BeTrue())
			Expect(g.Step()).To(Equal(5))
			st := g.Status()
			Expect(st.Outcome).To(Equal(Draw))
			Expect(st.String()).To(Equal("DRAW"))
		})
	})

	Describe("invariants", func() {
		It("keeps counters equal to the census and obstacles fixed", func() {
			g, err := New(Params{
				Predators: 30, Prey: 80, Obstacles: 40,
				Rows: 20, Cols: 20,
				PredatorOffspringInterval: 8, PredatorHungerLimit: 5, PreyOffspringInterval: 4,
				IterationLimit: 300,
			}, NewRand(7))
			Expect(err).NotTo(HaveOccurred())

			obstacles := map[[2]int]bool{}
			g.each(func(c *Cell) {
				if c.Kind() == ObstacleKind {
					obstacles[[2]int{c.Row(), c.Col()}] = true
				}
			})
			Expect(obstacles).To(HaveLen(40))

			for !g.Finished() {
				g.Tick()

				census := g.Census()
				Expect(census[PredatorKind]).To(Equal(g.Predators()), "step %d", g.Step())
				Expect(census[PreyKind]).To(Equal(g.Prey()), "step %d", g.Step())
				Expect(census[ObstacleKind]).To(Equal(len(obstacles)))
				for pos := range obstacles {
					Expect(g.Cell(pos[0], pos[1]).Kind()).To(Equal(ObstacleKind))
				}
			}
		})
	})
})
