package game

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/reflex/internal/core"
	"github.com/vovakirdan/reflex/internal/device"
	"github.com/vovakirdan/reflex/internal/encoder"
	"github.com/vovakirdan/reflex/internal/gesture"
	"github.com/vovakirdan/reflex/internal/highscore"
	"github.com/vovakirdan/reflex/internal/round"
)

// Options controls session pacing and the end-of-run flow.
type Options struct {
	WinLevel     int           // the run is won when the level exceeds it
	Letters      string        // alphabet for initials
	NameLength   int           // initials collected per run
	Tick         time.Duration // pause between idle polls
	Intro        bool          // play the logo animation on boot
	ResultPause  time.Duration // NICE!/WRONG! display time
	FinalPause   time.Duration // GAME OVER/YOU WIN! display time
	Debounce     time.Duration // pause after button edges
	NameDebounce time.Duration // pause after button edges during name entry
	Player       string        // recorded with every run; empty for local play
}

// DefaultOptions returns the pacing of the reference handheld.
func DefaultOptions() Options {
	return Options{
		WinLevel:     10,
		Letters:      "ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		NameLength:   3,
		Tick:         10 * time.Millisecond,
		Intro:        true,
		ResultPause:  time.Second,
		FinalPause:   2 * time.Second,
		Debounce:     200 * time.Millisecond,
		NameDebounce: 300 * time.Millisecond,
	}
}

// Setup collects everything Assemble needs besides the device and ledger.
type Setup struct {
	Options        Options
	Round          round.Config
	Thresholds     gesture.Thresholds
	SampleInterval time.Duration
	Seed           int64 // 0 seeds from the clock
	Clock          core.Clock
	Logger         *log.Logger
	Recorder       Recorder
}

// Machine is the session state machine. One Machine serves one device;
// several machines may share a Ledger.
type Machine struct {
	dev      device.Device
	enc      *encoder.Tracker
	rounds   *round.Controller
	ledger   *highscore.Ledger
	recorder Recorder
	opts     Options
	clock    core.Clock
	logger   *log.Logger

	sess       Session
	prevButton bool
	runStarted time.Time
	newID      func() string
}

// Assemble wires an encoder tracker, gesture detector and round controller
// for dev and returns a machine driving them.
func Assemble(dev device.Device, ledger *highscore.Ledger, s Setup) *Machine {
	if s.Clock == nil {
		s.Clock = core.SystemClock{}
	}
	if s.Logger == nil {
		s.Logger = log.New(io.Discard)
	}
	seed := s.Seed
	if seed == 0 {
		seed = s.Clock.Now().UnixNano()
	}

	enc := encoder.New(dev.Encoder)
	det := gesture.NewDetector(gesture.Inputs{
		Button:  dev.Button,
		Encoder: enc,
		Accel:   dev.Accel,
	}, s.Thresholds, s.SampleInterval, s.Clock, s.Logger)
	rounds := round.New(det, dev, s.Round, rand.New(rand.NewSource(seed)), s.Clock, s.Logger)

	return NewMachine(dev, enc, rounds, ledger, s.Recorder, s.Options, s.Clock, s.Logger)
}

// NewMachine creates a machine from already wired parts. enc must be the
// tracker the round controller's detector polls.
func NewMachine(dev device.Device, enc *encoder.Tracker, rounds *round.Controller, ledger *highscore.Ledger,
	rec Recorder, opts Options, clock core.Clock, logger *log.Logger) *Machine {
	if ledger == nil {
		ledger = highscore.NewMemory()
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	if clock == nil {
		clock = core.SystemClock{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Letters == "" {
		opts.Letters = DefaultOptions().Letters
	}
	if opts.NameLength <= 0 {
		opts.NameLength = highscore.NameLength
	}
	if opts.WinLevel <= 0 {
		opts.WinLevel = DefaultOptions().WinLevel
	}
	if opts.Tick <= 0 {
		opts.Tick = DefaultOptions().Tick
	}
	return &Machine{
		dev:      dev,
		enc:      enc,
		rounds:   rounds,
		ledger:   ledger,
		recorder: rec,
		opts:     opts,
		clock:    clock,
		logger:   logger,
		sess:     NewSession(),
		newID:    func() string { return uuid.NewString() },
	}
}

// Session returns a copy of the current session.
func (m *Machine) Session() Session {
	return m.sess
}

// Run steps the machine until ctx is cancelled.
func (m *Machine) Run(ctx context.Context) error {
	for {
		if err := m.Step(ctx); err != nil {
			return err
		}
	}
}

// Step advances the session by one state. It returns ctx.Err() when the
// context is cancelled between steps or while waiting for the player.
// A round in progress always runs to detection or deadline.
func (m *Machine) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch m.sess.State {
	case StateBoot:
		return m.boot(ctx)
	case StateMenu:
		return m.menu(ctx)
	case StatePlay:
		m.play()
		return nil
	case StateGameOver:
		return m.finish(ctx, false)
	case StateWin:
		return m.finish(ctx, true)
	}
	return nil
}

func (m *Machine) boot(ctx context.Context) error {
	if m.opts.Intro {
		for scale := 1; scale <= 4; scale++ {
			m.dev.Display.Render(introFrame(scale))
			if err := m.sleep(ctx, 200*time.Millisecond); err != nil {
				return err
			}
		}
		if err := m.sleep(ctx, 500*time.Millisecond); err != nil {
			return err
		}
		m.dev.Display.Render(centered(core.ScreenIntro, "Let's play!", 1))
		if err := m.sleep(ctx, 2500*time.Millisecond); err != nil {
			return err
		}
	}
	m.sess.State = StateMenu
	m.logger.Debug("booted")
	return nil
}

// menu polls the encoder for the difficulty and starts a run on a new
// button press.
func (m *Machine) menu(ctx context.Context) error {
	m.enc.Update()
	m.dev.Indicator.SetColor(core.ColorMenu)

	diffs := m.rounds.Difficulties()
	m.sess.Difficulty = m.enc.Index(len(diffs))
	if m.sess.Difficulty != m.sess.LastDifficulty {
		m.dev.Display.Render(menuFrame(diffs, m.sess.Difficulty))
		m.sess.LastDifficulty = m.sess.Difficulty
	}

	pressed := m.dev.Button.Pressed()
	edge := pressed && !m.prevButton
	m.prevButton = pressed
	if !edge {
		m.clock.Sleep(m.opts.Tick)
		return nil
	}

	m.clock.Sleep(m.opts.Debounce)
	// A press still held when the round starts would count as PRESS.
	if err := m.waitButton(ctx, false); err != nil {
		return err
	}
	m.prevButton = false

	m.sess.State = StatePlay
	m.sess.Level = 1
	m.sess.Rounds = 0
	m.sess.RunID = m.newID()
	m.runStarted = m.clock.Now()
	m.logger.Info("run started",
		"run", m.sess.RunID,
		"difficulty", diffs[m.sess.Difficulty].Name,
		"player", m.opts.Player,
	)
	return nil
}

// play runs one round and moves the session on according to its outcome.
func (m *Machine) play() {
	res := m.rounds.Play(m.sess.Difficulty, m.sess.Level)
	m.sess.Rounds++

	rec := RoundRecord{
		RunID:      m.sess.RunID,
		Player:     m.opts.Player,
		Level:      res.Level,
		Difficulty: m.difficultyName(),
		Target:     res.Target,
		Detected:   res.Detected,
		Elapsed:    res.Elapsed,
		At:         m.clock.Now(),
	}
	if err := m.recorder.RoundFinished(rec); err != nil {
		m.logger.Warn("could not record round", "run", m.sess.RunID, "error", err)
	}

	if res.Success() {
		m.dev.Indicator.SetColor(core.ColorSuccess)
		m.dev.Display.Render(resultFrame(true))
		m.clock.Sleep(m.opts.ResultPause)
		m.sess.Level++
		if m.sess.Level > m.opts.WinLevel {
			m.sess.State = StateWin
		}
		return
	}

	m.dev.Indicator.SetColor(core.ColorFailure)
	m.dev.Display.Render(resultFrame(false))
	m.clock.Sleep(m.opts.ResultPause)
	m.sess.State = StateGameOver
}

// finish shows the final score, collects initials, updates the board and
// returns to the menu once the player acknowledges the board.
func (m *Machine) finish(ctx context.Context, won bool) error {
	score := m.sess.Score()

	m.dev.Display.Render(finalFrame(won, score))
	if err := m.sleep(ctx, m.opts.FinalPause); err != nil {
		return err
	}

	m.dev.Display.Render(namePromptFrame(score))
	if err := m.waitClick(ctx, m.opts.NameDebounce); err != nil {
		return err
	}

	name, err := m.enterName(ctx)
	if err != nil {
		return err
	}

	rank, ok, err := m.ledger.Submit(highscore.Entry{Name: name, Score: score})
	if err != nil {
		m.logger.Warn("could not save high score", "error", err)
	}
	if !ok {
		rank = -1
	}

	run := RunRecord{
		ID:         m.sess.RunID,
		Player:     m.opts.Player,
		Name:       highscore.NormalizeName(name),
		Difficulty: m.difficultyName(),
		Score:      score,
		Won:        won,
		Rounds:     m.sess.Rounds,
		Rank:       rank,
		Started:    m.runStarted,
		Finished:   m.clock.Now(),
	}
	if err := m.recorder.RunFinished(run); err != nil {
		m.logger.Warn("could not record run", "run", run.ID, "error", err)
	}
	m.logger.Info("run finished",
		"run", run.ID,
		"result", run.Result(),
		"score", score,
		"name", run.Name,
		"rank", rank,
	)

	m.dev.Display.Render(boardFrame(m.ledger.Board()))
	if err := m.waitClick(ctx, m.opts.Debounce); err != nil {
		return err
	}

	m.sess.returnToMenu()
	return nil
}

func (m *Machine) difficultyName() string {
	diffs := m.rounds.Difficulties()
	return diffs[core.Clamp(m.sess.Difficulty, 0, len(diffs)-1)].Name
}

// waitClick blocks until the button is pressed and released, pausing for
// debounce after each edge.
func (m *Machine) waitClick(ctx context.Context, debounce time.Duration) error {
	if err := m.waitButton(ctx, true); err != nil {
		return err
	}
	m.clock.Sleep(debounce)
	if err := m.waitButton(ctx, false); err != nil {
		return err
	}
	m.clock.Sleep(debounce)
	return nil
}

// waitButton polls until the button state equals pressed.
func (m *Machine) waitButton(ctx context.Context, pressed bool) error {
	for m.dev.Button.Pressed() != pressed {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.clock.Sleep(m.opts.Tick)
	}
	return nil
}

// sleep pauses for d in tick-sized steps so cancellation is noticed.
func (m *Machine) sleep(ctx context.Context, d time.Duration) error {
	deadline := m.clock.Now().Add(d)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		left := deadline.Sub(m.clock.Now())
		if left <= 0 {
			return nil
		}
		m.clock.Sleep(min(left, m.opts.Tick))
	}
}
