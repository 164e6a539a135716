package encoder

import "testing"

// scriptedPins replays a fixed sequence of pin levels, one per poll,
// then holds the last one.
type scriptedPins struct {
	levels [][2]bool
	i      int
}

func (p *scriptedPins) Levels() (bool, bool) {
	if len(p.levels) == 0 {
		return true, true
	}
	l := p.levels[p.i]
	if p.i < len(p.levels)-1 {
		p.i++
	}
	return l[0], l[1]
}

func newScripted(levels ...[2]bool) *scriptedPins {
	// First level is consumed by New as the idle state.
	return &scriptedPins{levels: append([][2]bool{{true, true}}, levels...)}
}

func run(levels [][2]bool) (*Tracker, []int) {
	tr := New(newScripted(levels...))
	steps := make([]int, 0, len(levels))
	for range levels {
		steps = append(steps, tr.Update())
	}
	return tr, steps
}

func TestTrackerDirection(t *testing.T) {
	tests := []struct {
		name     string
		levels   [][2]bool
		expected int
	}{
		{
			name:     "clockwise detent",
			levels:   [][2]bool{{false, true}, {true, true}},
			expected: 1,
		},
		{
			name:     "counter-clockwise detent",
			levels:   [][2]bool{{false, false}, {true, false}},
			expected: -1,
		},
		{
			name:     "rising edge only",
			levels:   [][2]bool{{true, false}, {true, true}},
			expected: 0,
		},
		{
			name:     "clock held low counts once",
			levels:   [][2]bool{{false, true}, {false, true}, {false, false}},
			expected: 1,
		},
		{
			name: "three clockwise one back",
			levels: [][2]bool{
				{false, true}, {true, true},
				{false, true}, {true, true},
				{false, true}, {true, true},
				{false, false}, {true, false},
			},
			expected: 2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr, _ := run(tc.levels)
			if tr.Position() != tc.expected {
				t.Errorf("Position() = %d, expected %d", tr.Position(), tc.expected)
			}
		})
	}
}

func TestTrackerOneStepPerFallingEdge(t *testing.T) {
	levels := [][2]bool{
		{false, true}, {true, false}, {false, false}, {true, true},
		{false, true}, {false, true}, {true, true}, {false, false},
	}
	_, steps := run(levels)

	falling := 0
	moved := 0
	prev := true
	for i, l := range levels {
		if prev && !l[0] {
			falling++
			if steps[i] != 1 && steps[i] != -1 {
				t.Errorf("poll %d: falling edge produced step %d", i, steps[i])
			}
		} else if steps[i] != 0 {
			t.Errorf("poll %d: non-falling transition produced step %d", i, steps[i])
		}
		if steps[i] != 0 {
			moved++
		}
		prev = l[0]
	}
	if moved != falling {
		t.Errorf("moved %d times for %d falling edges", moved, falling)
	}
}

func TestTrackerDeterminism(t *testing.T) {
	levels := [][2]bool{
		{false, true}, {true, true}, {false, false}, {true, false},
		{false, true}, {true, false}, {false, true}, {true, true},
	}

	tr1, _ := run(levels)
	tr2, _ := run(levels)

	if tr1.Position() != tr2.Position() {
		t.Errorf("Determinism failed: Run1=%d, Run2=%d", tr1.Position(), tr2.Position())
	}
}

func TestTrackerIndexWraps(t *testing.T) {
	tr := New(newScripted())
	tr.SetPosition(-1)
	if tr.Index(3) != 2 {
		t.Errorf("Index(3) at -1 = %d, expected 2", tr.Index(3))
	}
	tr.SetPosition(27)
	if tr.Index(26) != 1 {
		t.Errorf("Index(26) at 27 = %d, expected 1", tr.Index(26))
	}
}
