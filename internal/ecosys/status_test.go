package ecosys

import "testing"

func TestGrid_Status(t *testing.T) {
	tests := []struct {
		name      string
		step      int
		predators int
		prey      int
		outcome   Outcome
		text      string
	}{
		{"running", 3, 4, 9, Running, "step #3\npredator number: 4\nprey number: 9"},
		{"draw at limit", 10, 4, 9, Draw, "DRAW"},
		{"prey extinct", 6, 5, 0, PredatorsWin, "PREDATORS WIN"},
		{"predators extinct", 6, 0, 5, PreyWin, "PREY WINS"},
		{"both extinct", 6, 0, 0, PreyWin, "PREY WINS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Grid{
				params:    Params{IterationLimit: 10},
				step:      tt.step,
				predators: tt.predators,
				prey:      tt.prey,
			}
			st := g.Status()
			if st.Outcome != tt.outcome {
				t.Errorf("outcome = %s, want %s", st.Outcome, tt.outcome)
			}
			if st.String() != tt.text {
				t.Errorf("String() = %q, want %q", st.String(), tt.text)
			}
			if st.Finished != (tt.outcome != Running) {
				t.Errorf("Finished = %v", st.Finished)
			}
		})
	}
}
