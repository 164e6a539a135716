package highscore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenSeedsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "highscore.txt")

	l, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if l.Board() != DefaultBoard() {
		t.Errorf("Board() = %v, expected defaults", l.Board())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("default board was not persisted: %v", err)
	}
	if string(data) != "AAA,100\nBBB,50\nCCC,25\n" {
		t.Errorf("persisted board = %q", data)
	}
}

func TestOpenHealsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscore.txt")
	if err := os.WriteFile(path, []byte("no records here\n\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	l, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if l.Board() != DefaultBoard() {
		t.Errorf("Board() = %v, expected defaults", l.Board())
	}

	data, _ := os.ReadFile(path)
	if string(data) != "AAA,100\nBBB,50\nCCC,25\n" {
		t.Errorf("malformed file was not rewritten: %q", data)
	}
}

func TestOpenKeepsPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscore.txt")
	if err := os.WriteFile(path, []byte("JOE,70\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	l, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	expected := Board{{"AAA", 100}, {"JOE", 70}, {"BBB", 50}}
	if l.Board() != expected {
		t.Errorf("Board() = %v, expected %v", l.Board(), expected)
	}
}

func TestSaveThenLoadIsIdentical(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscore.txt")

	l, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := l.Insert(1, Entry{Name: "ZZZ", Score: 60}); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	if err := l.Insert(0, Entry{Name: "TOP", Score: 100}); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	saved := l.Board()

	reloaded, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if reloaded.Board() != saved {
		t.Errorf("reloaded board = %v, expected %v", reloaded.Board(), saved)
	}
}

func TestSubmit(t *testing.T) {
	l := NewMemory()

	if _, ok, err := l.Submit(Entry{Name: "LOW", Score: 25}); ok || err != nil {
		t.Errorf("Submit(25) = (ok=%v, err=%v), expected not eligible", ok, err)
	}

	rank, ok, err := l.Submit(Entry{Name: "ZZZ", Score: 60})
	if err != nil || !ok || rank != 1 {
		t.Fatalf("Submit(60) = (%d, %v, %v), expected (1, true, nil)", rank, ok, err)
	}
	expected := Board{{"AAA", 100}, {"ZZZ", 60}, {"BBB", 50}}
	if l.Board() != expected {
		t.Errorf("Board() = %v, expected %v", l.Board(), expected)
	}
}

func TestReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscore.txt")
	l, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	l.Insert(0, Entry{Name: "TOP", Score: 900})

	if err := l.Reset(); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	reloaded, _ := Open(path, nil)
	if reloaded.Board() != DefaultBoard() {
		t.Errorf("Board() after Reset = %v, expected defaults", reloaded.Board())
	}
}
