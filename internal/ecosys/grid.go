package ecosys

import "fmt"

// placementAttemptsPerCell bounds rejection sampling before placement falls
// back to picking among the remaining free cells.
const placementAttemptsPerCell = 64

// Params is the construction input of a Grid.
type Params struct {
	Predators int
	Prey      int
	Obstacles int

	Rows int
	Cols int

	PredatorOffspringInterval int
	PredatorHungerLimit       int
	PreyOffspringInterval     int

	IterationLimit int
}

func (p Params) Validate() error {
	if p.Rows <= 0 || p.Cols <= 0 {
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidParams, p.Rows, p.Cols)
	}
	values := []struct {
		name string
		v    int
	}{
		{"predators", p.Predators},
		{"prey", p.Prey},
		{"obstacles", p.Obstacles},
		{"predator offspring interval", p.PredatorOffspringInterval},
		{"predator hunger limit", p.PredatorHungerLimit},
		{"prey offspring interval", p.PreyOffspringInterval},
		{"iteration limit", p.IterationLimit},
	}
	for _, v := range values {
		if v.v < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %d", ErrInvalidParams, v.name, v.v)
		}
	}
	if total, cells := p.Predators+p.Prey+p.Obstacles, p.Rows*p.Cols; total > cells {
		return fmt.Errorf("%w: %d agents for %d cells", ErrCapacity, total, cells)
	}
	return nil
}

// Sample is the per-tick population record handed to chart consumers.
type Sample struct {
	Step      int `json:"step"`
	Predators int `json:"predators"`
	Prey      int `json:"prey"`
}

type Grid struct {
	params Params
	rng    Rand
	cells  [][]*Cell

	predators int
	prey      int
	step      int
}

// New builds a grid and scatters predators, then prey, then obstacles on
// random free cells.
func New(p Params, rng Rand) (*Grid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	g := &Grid{
		params: p,
		rng:    rng,
		cells:  make([][]*Cell, p.Rows),
	}
	for r := range g.cells {
		g.cells[r] = make([]*Cell, p.Cols)
		for c := range g.cells[r] {
			g.cells[r][c] = newCell(r, c)
		}
	}

	placements := []struct {
		kind Kind
		n    int
	}{
		{PredatorKind, p.Predators},
		{PreyKind, p.Prey},
		{ObstacleKind, p.Obstacles},
	}
	for _, pl := range placements {
		if err := g.scatter(pl.kind, pl.n); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Grid) scatter(k Kind, n int) error {
	maxAttempts := placementAttemptsPerCell * g.params.Rows * g.params.Cols
	for i := 0; i < n; i++ {
		cr := g.NewCreature(k)

		placed := false
		for attempt := 0; attempt < maxAttempts && !placed; attempt++ {
			col := g.rng.IntN(g.params.Cols)
			row := g.rng.IntN(g.params.Rows)
			placed = g.put(g.cells[row][col], cr)
		}
		if placed {
			continue
		}

		free := g.freeCells()
		if len(free) == 0 {
			return fmt.Errorf("%w: no room for %s #%d", ErrCapacity, k, i+1)
		}
		g.put(free[g.rng.IntN(len(free))], cr)
	}
	return nil
}

func (g *Grid) freeCells() []*Cell {
	var free []*Cell
	g.each(func(c *Cell) {
		if c.occupant == nil {
			free = append(free, c)
		}
	})
	return free
}

// NewCreature returns a fresh creature of kind k built from the grid limits.
func (g *Grid) NewCreature(k Kind) Creature {
	switch k {
	case PredatorKind:
		return NewPredator(g.params.PredatorOffspringInterval, g.params.PredatorHungerLimit)
	case PreyKind:
		return NewPrey(g.params.PreyOffspringInterval)
	case ObstacleKind:
		return Obstacle{}
	default:
		panic(fmt.Sprintf("ecosys: cannot create %s", k))
	}
}

// Place puts a creature on an empty cell outside of a tick.
func (g *Grid) Place(row, col int, cr Creature) error {
	if row < 0 || row >= g.params.Rows || col < 0 || col >= g.params.Cols {
		return fmt.Errorf("%w: cell (%d,%d) outside %dx%d grid", ErrInvalidParams, row, col, g.params.Rows, g.params.Cols)
	}
	if !g.put(g.cells[row][col], cr) {
		return fmt.Errorf("%w: cell (%d,%d) is occupied", ErrCapacity, row, col)
	}
	return nil
}

func (g *Grid) put(c *Cell, cr Creature) bool {
	if !c.place(cr) {
		return false
	}
	g.reconcile(Empty, cr.Kind())
	return true
}

// Tick advances the simulation by one step.
func (g *Grid) Tick() {
	for _, row := range g.cells {
		for _, c := range row {
			if d, ok := g.decide(c); ok {
				g.resolve(c, d)
			}
			g.reconcile(c.commit())
		}
	}
	g.step++
}

func (g *Grid) decide(c *Cell) (Decision, bool) {
	if c.occupant == nil {
		return Decision{}, false
	}
	return c.occupant.Decide(g.rng)
}

func (g *Grid) resolve(from *Cell, d Decision) {
	to := g.Cell(from.row+d.DRow, from.col+d.DCol)

	if d.Reproduce {
		from.stay()
		to.Offer(d.Self.Spawn())
		return
	}
	if !to.Offer(d.Self) {
		from.stay()
	}
}

// reconcile keeps the population counters equal to the occupant census.
func (g *Grid) reconcile(before, after Kind) {
	if before == after {
		return
	}
	switch before {
	case PredatorKind:
		g.predators--
	case PreyKind:
		g.prey--
	}
	switch after {
	case PredatorKind:
		g.predators++
	case PreyKind:
		g.prey++
	}
}

// Cell returns the cell at (row, col) with toroidal wraparound.
func (g *Grid) Cell(row, col int) *Cell {
	return g.cells[wrap(row, g.params.Rows)][wrap(col, g.params.Cols)]
}

func (g *Grid) each(fn func(c *Cell)) {
	for _, row := range g.cells {
		for _, c := range row {
			fn(c)
		}
	}
}

// Census counts occupants directly instead of trusting the counters.
func (g *Grid) Census() map[Kind]int {
	counts := make(map[Kind]int, 4)
	g.each(func(c *Cell) { counts[c.Kind()]++ })
	return counts
}

func (g *Grid) Finished() bool {
	return g.step >= g.params.IterationLimit || g.predators <= 0 || g.prey <= 0
}

func (g *Grid) Sample() Sample {
	return Sample{Step: g.step, Predators: g.predators, Prey: g.prey}
}

func (g *Grid) Params() Params { return g.params }
func (g *Grid) Rows() int      { return g.params.Rows }
func (g *Grid) Cols() int      { return g.params.Cols }
func (g *Grid) Step() int      { return g.step }
func (g *Grid) Predators() int { return g.predators }
func (g *Grid) Prey() int      { return g.prey }

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
