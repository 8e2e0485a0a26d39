package ecosys

import "fmt"

type Outcome uint8

const (
	Running Outcome = iota
	Draw
	PredatorsWin
	PreyWin
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "running"
	case Draw:
		return "draw"
	case PredatorsWin:
		return "predators win"
	case PreyWin:
		return "prey wins"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(o))
	}
}

type Status struct {
	Step      int
	Predators int
	Prey      int
	Finished  bool
	Outcome   Outcome
}

func (g *Grid) Status() Status {
	s := Status{Step: g.step, Predators: g.predators, Prey: g.prey, Finished: g.Finished()}
	switch {
	case !s.Finished:
		s.Outcome = Running
	case s.Predators != 0 && s.Prey != 0:
		// only reachable through the iteration limit
		s.Outcome = Draw
	case s.Predators > s.Prey:
		s.Outcome = PredatorsWin
	default:
		s.Outcome = PreyWin
	}
	return s
}

func (s Status) String() string {
	switch s.Outcome {
	case Draw:
		return "DRAW"
	case PredatorsWin:
		return "PREDATORS WIN"
	case PreyWin:
		return "PREY WINS"
	default:
		return fmt.Sprintf("step #%d\npredator number: %d\nprey number: %d", s.Step, s.Predators, s.Prey)
	}
}
