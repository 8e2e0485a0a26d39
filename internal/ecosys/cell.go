package ecosys

import "fmt"

// Cell is one grid position. Its pending slots hold the creatures that
// claimed the cell since its last commit, at most one per agent kind.
type Cell struct {
	row, col int
	occupant Creature
	pending  [2]Creature
}

// feeder is implemented by creatures that eat the prey they share a commit
// with.
type feeder interface {
	Feed()
}

func newCell(row, col int) *Cell {
	return &Cell{row: row, col: col}
}

func (c *Cell) Row() int { return c.row }
func (c *Cell) Col() int { return c.col }

// Occupant returns the live creature, or nil.
func (c *Cell) Occupant() Creature { return c.occupant }

func (c *Cell) Kind() Kind {
	if c.occupant == nil {
		return Empty
	}
	return c.occupant.Kind()
}

func (c *Cell) Color() string {
	switch c.Kind() {
	case PredatorKind:
		return ColorPredator
	case PreyKind:
		return ColorPrey
	case ObstacleKind:
		return ColorObstacle
	default:
		return ColorEmpty
	}
}

// Pending returns the staged claim for k, or nil.
func (c *Cell) Pending(k Kind) Creature {
	return c.pending[slot(k)]
}

// Offer stages newcomer as a claim on the cell. The claim is rejected when
// the occupant is an obstacle or has the newcomer's kind, or when the kind
// was already claimed.
func (c *Cell) Offer(newcomer Creature) bool {
	k := newcomer.Kind()
	if !k.Agent() {
		return false
	}
	if occ := c.Kind(); occ == ObstacleKind || occ == k {
		return false
	}
	if c.pending[slot(k)] != nil {
		return false
	}
	c.pending[slot(k)] = newcomer
	return true
}

// stay re-stages the occupant in its own cell.
func (c *Cell) stay() {
	k := c.occupant.Kind()
	if c.pending[slot(k)] != nil {
		panic(fmt.Sprintf("ecosys: cell (%d,%d) already holds a %s claim", c.row, c.col, k))
	}
	c.pending[slot(k)] = c.occupant
}

// commit turns the staged claims into the occupant, runs the occupant's tick
// and returns the occupant kind before and after.
func (c *Cell) commit() (before, after Kind) {
	before = c.Kind()
	if before != ObstacleKind {
		predator, prey := c.pending[slot(PredatorKind)], c.pending[slot(PreyKind)]
		switch {
		case predator != nil:
			c.occupant = predator
			if prey != nil {
				predator.(feeder).Feed()
			}
		case prey != nil:
			c.occupant = prey
		default:
			c.occupant = nil
		}
		c.pending = [2]Creature{}
	}

	if c.occupant != nil {
		c.occupant.Tick(c)
	}
	return before, c.Kind()
}

func (c *Cell) place(cr Creature) bool {
	if c.occupant != nil {
		return false
	}
	c.occupant = cr
	return true
}

func (c *Cell) removeOccupant() { c.occupant = nil }

func slot(k Kind) int {
	switch k {
	case PredatorKind:
		return 0
	case PreyKind:
		return 1
	default:
		panic(fmt.Sprintf("ecosys: no pending slot for %s", k))
	}
}
