package game

import (
	"errors"
	"time"

	"github.com/vovakirdan/reflex/internal/gesture"
)

// RoundRecord describes one finished round.
type RoundRecord struct {
	RunID      string
	Player     string
	Level      int
	Difficulty string
	Target     gesture.Kind
	Detected   gesture.Kind
	Elapsed    time.Duration
	At         time.Time
}

// Success reports whether the detected gesture matched the target.
func (r RoundRecord) Success() bool {
	return r.Detected != gesture.None && r.Detected == r.Target
}

// RunRecord describes one finished run, from the menu to the board.
type RunRecord struct {
	ID         string
	Player     string
	Name       string // initials entered at the end of the run
	Difficulty string
	Score      int
	Won        bool
	Rounds     int
	Rank       int // board place taken, -1 when not eligible
	Started    time.Time
	Finished   time.Time
}

// Result returns "WIN" or "GAMEOVER".
func (r RunRecord) Result() string {
	if r.Won {
		return StateWin.String()
	}
	return StateGameOver.String()
}

// Recorder receives finished rounds and runs. Recording is best effort;
// a Machine logs errors and keeps playing.
type Recorder interface {
	RoundFinished(r RoundRecord) error
	RunFinished(r RunRecord) error
}

// Recorders fans records out to several recorders.
type Recorders []Recorder

// RoundFinished forwards r to every recorder.
func (rs Recorders) RoundFinished(r RoundRecord) error {
	var errs []error
	for _, rec := range rs {
		if err := rec.RoundFinished(r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RunFinished forwards r to every recorder.
func (rs Recorders) RunFinished(r RunRecord) error {
	var errs []error
	for _, rec := range rs {
		if err := rec.RunFinished(r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type nopRecorder struct{}

func (nopRecorder) RoundFinished(RoundRecord) error { return nil }
func (nopRecorder) RunFinished(RunRecord) error     { return nil }
