package ecosys

import "fmt"

type Kind uint8

const (
	Empty Kind = iota
	PredatorKind
	PreyKind
	ObstacleKind
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case PredatorKind:
		return "predator"
	case PreyKind:
		return "prey"
	case ObstacleKind:
		return "obstacle"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Agent reports whether creatures of this kind move and compete for cells.
func (k Kind) Agent() bool {
	return k == PredatorKind || k == PreyKind
}

// Palette used by renderers.
const (
	ColorEmpty    = "#0047D6"
	ColorPredator = "#990033"
	ColorPrey     = "#00991A"
	ColorObstacle = "#000000"
)

// Decision is what an acting creature wants to do this tick.
type Decision struct {
	DRow, DCol int
	Self       Creature
	Reproduce  bool
}

// Creature is the behaviour shared by every grid resident.
type Creature interface {
	Kind() Kind
	// Decide returns false when the creature does not act.
	Decide(rng Rand) (Decision, bool)
	// Tick runs once per step for the occupant a commit leaves in c.
	Tick(c *Cell)
	// Spawn returns a fresh creature of the same kind with zeroed counters.
	Spawn() Creature
}

type Predator struct {
	ticksAlive          int
	ticksSinceFed       int
	ticksSinceOffspring int
	hungerLimit         int
	offspringInterval   int
}

func NewPredator(offspringInterval, hungerLimit int) *Predator {
	return &Predator{
		hungerLimit:       hungerLimit,
		offspringInterval: offspringInterval,
	}
}

func (p *Predator) Kind() Kind { return PredatorKind }

func (p *Predator) Decide(rng Rand) (Decision, bool) {
	return decide(p, &p.ticksSinceOffspring, p.offspringInterval, rng), true
}

func (p *Predator) Tick(c *Cell) {
	p.ticksAlive++
	p.ticksSinceFed++
	p.ticksSinceOffspring++

	if p.ticksSinceFed == p.hungerLimit {
		c.removeOccupant()
	}
}

func (p *Predator) Spawn() Creature { return NewPredator(p.offspringInterval, p.hungerLimit) }

// Feed resets hunger after the predator shares a commit with a prey.
func (p *Predator) Feed() { p.ticksSinceFed = 0 }

func (p *Predator) TicksAlive() int          { return p.ticksAlive }
func (p *Predator) TicksSinceFed() int       { return p.ticksSinceFed }
func (p *Predator) TicksSinceOffspring() int { return p.ticksSinceOffspring }

type Prey struct {
	ticksSinceOffspring int
	offspringInterval   int
}

func NewPrey(offspringInterval int) *Prey {
	return &Prey{offspringInterval: offspringInterval}
}

func (p *Prey) Kind() Kind { return PreyKind }

func (p *Prey) Decide(rng Rand) (Decision, bool) {
	return decide(p, &p.ticksSinceOffspring, p.offspringInterval, rng), true
}

func (p *Prey) Tick(c *Cell) { p.ticksSinceOffspring++ }

func (p *Prey) Spawn() Creature { return NewPrey(p.offspringInterval) }

func (p *Prey) TicksSinceOffspring() int { return p.ticksSinceOffspring }

// Obstacle never acts.
type Obstacle struct{}

func (Obstacle) Kind() Kind                   { return ObstacleKind }
func (Obstacle) Decide(Rand) (Decision, bool) { return Decision{}, false }
func (Obstacle) Tick(*Cell)                   {}
func (o Obstacle) Spawn() Creature            { return o }

// decide resets the offspring counter before drawing the move, so the reset
// holds even when the offspring is later rejected.
func decide(self Creature, sinceOffspring *int, interval int, rng Rand) Decision {
	reproduce := false
	if *sinceOffspring == interval {
		*sinceOffspring = 0
		reproduce = true
	}
	dRow := rng.IntN(3) - 1
	dCol := rng.IntN(3) - 1
	return Decision{DRow: dRow, DCol: dCol, Self: self, Reproduce: reproduce}
}
