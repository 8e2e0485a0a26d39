// Package ecosys implements the predator/prey grid engine.
//
// A [Grid] is a toroidal array of [Cell] values. Each cell owns at most one
// [Creature]: a [Predator], a [Prey] or an [Obstacle]. One call to
// [Grid.Tick] scans the cells row by row and, for every cell:
//
//   - asks the resident creature for a [Decision]
//   - offers the creature (or its offspring) to the destination cell
//   - commits the scanned cell's staged arrivals into its occupant
//
// Because every cell commits right after its own resolution, a claim made on
// a cell that was already scanned in the same tick only becomes visible at
// that cell's next commit.
//
// # Example
//
//	g, err := ecosys.New(params, ecosys.NewRand(42))
//	for err == nil && !g.Finished() {
//		g.Tick()
//	}
//	fmt.Println(g.Status())
//
// # Thread Safety
//
// Grid is NOT thread-safe. Readers must only inspect it between ticks.
package ecosys
