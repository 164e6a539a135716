package highscore

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

// Ledger is a Board persisted to a text file on every change.
//
// A missing, unreadable or record-less file is replaced by the default
// board, which is written back immediately. Ledger serializes access so
// several game sessions may share one file.
type Ledger struct {
	mu     sync.Mutex
	path   string
	board  Board
	logger *log.Logger
}

// NewMemory returns a ledger seeded with the default board that is never
// written anywhere.
func NewMemory() *Ledger {
	return &Ledger{board: DefaultBoard(), logger: log.New(io.Discard)}
}

// Open loads the board stored at path, healing missing or malformed files.
// A leading "~" in path is expanded to the home directory.
func Open(path string, logger *log.Logger) (*Ledger, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("highscore: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("highscore: cannot create directory %s: %w", dir, err)
	}

	l := &Ledger{path: path, logger: logger}
	if err := l.load(); err != nil {
		return nil, err
	}
	return l, nil
}

// load reads the file, reseeding it when nothing usable is stored.
func (l *Ledger) load() error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("cannot read high scores, reseeding", "path", l.path, "error", err)
		}
		return l.reseed()
	}

	board, valid, err := Parse(bytes.NewReader(data))
	if err != nil || valid == 0 {
		l.logger.Warn("malformed high score file, reseeding", "path", l.path, "error", err)
		return l.reseed()
	}

	l.board = board
	return nil
}

func (l *Ledger) reseed() error {
	l.board = DefaultBoard()
	return l.save()
}

// save writes the board through a temporary file and renames it into place.
func (l *Ledger) save() error {
	if l.path == "" {
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(l.path), ".highscore-*")
	if err != nil {
		return fmt.Errorf("highscore: cannot save board: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Format(tmp, l.board); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("highscore: cannot save board: %w", err)
	}
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		return fmt.Errorf("highscore: cannot save board: %w", err)
	}
	return nil
}

// Path returns the backing file, or "" for an in-memory ledger.
func (l *Ledger) Path() string {
	return l.path
}

// Board returns a copy of the current board.
func (l *Ledger) Board() Board {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.board
}

// RankOf reports where score would land on the current board.
func (l *Ledger) RankOf(score int) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.board.RankOf(score)
}

// Insert places e at rank and persists the board.
func (l *Ledger) Insert(rank int, e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.board = l.board.Insert(rank, e)
	return l.save()
}

// Submit ranks e against the current board and inserts it when eligible,
// in one step. It returns the rank taken, if any.
func (l *Ledger) Submit(e Entry) (rank int, ok bool, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rank, ok = l.board.RankOf(e.Score)
	if !ok {
		return rank, false, nil
	}
	l.board = l.board.Insert(rank, e)
	return rank, true, l.save()
}

// Reset restores and persists the default board.
func (l *Ledger) Reset() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reseed()
}
