// Package highscore keeps the top-3 board of (initials, score) records and
// its plain-text persistence.
package highscore

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Size is the number of places on the board.
const Size = 3

// NameLength is the number of characters kept from a name.
const NameLength = 3

// DefaultName replaces empty initials.
const DefaultName = "AAA"

// Entry is one board record.
type Entry struct {
	Name  string
	Score int
}

// Board is the ordered top-3, highest score first. Among equal scores the
// entry inserted earlier stays ahead.
type Board [Size]Entry

// DefaultBoard returns the seed board used when nothing valid is stored.
func DefaultBoard() Board {
	return Board{
		{Name: "AAA", Score: 100},
		{Name: "BBB", Score: 50},
		{Name: "CCC", Score: 25},
	}
}

// RankOf returns the place a new score would take: the first index whose
// stored score is strictly lower. ok is false when the score does not beat
// the last place.
func (b Board) RankOf(score int) (rank int, ok bool) {
	for i, e := range b {
		if score > e.Score {
			return i, true
		}
	}
	return -1, false
}

// Insert places e at rank and drops the previous last place.
// An out-of-range rank leaves the board unchanged.
func (b Board) Insert(rank int, e Entry) Board {
	if rank < 0 || rank >= Size {
		return b
	}
	e.Name = NormalizeName(e.Name)
	if e.Score < 0 {
		e.Score = 0
	}

	var out Board
	copy(out[:rank], b[:rank])
	out[rank] = e
	copy(out[rank+1:], b[rank:Size-1])
	return out
}

// Lines returns the board as display lines: "1. AAA  100".
func (b Board) Lines() []string {
	lines := make([]string, Size)
	for i, e := range b {
		lines[i] = fmt.Sprintf("%d. %s  %d", i+1, e.Name, e.Score)
	}
	return lines
}

// NormalizeName trims name to at most NameLength characters, dropping the
// record separators of the storage format. Empty names become DefaultName.
func NormalizeName(name string) string {
	name = strings.Map(func(r rune) rune {
		if r == ',' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, strings.TrimSpace(name))

	runes := []rune(name)
	if len(runes) > NameLength {
		runes = runes[:NameLength]
	}
	if len(runes) == 0 {
		return DefaultName
	}
	return string(runes)
}

// Parse reads "name,score" records, one per line. Blank lines and lines
// without a comma are skipped; a score that is not an integer reads as 0.
// Missing places are filled from the default board. valid is the number of
// records taken from r.
func Parse(r io.Reader) (b Board, valid int, err error) {
	var records []Entry

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		name, score, found := strings.Cut(line, ",")
		if line == "" || !found {
			continue
		}

		n, convErr := strconv.Atoi(strings.TrimSpace(score))
		if convErr != nil || n < 0 {
			n = 0
		}
		records = append(records, Entry{Name: NormalizeName(name), Score: n})
	}
	if err := sc.Err(); err != nil {
		return DefaultBoard(), 0, fmt.Errorf("highscore: read board: %w", err)
	}

	valid = len(records)
	if valid > Size {
		records = records[:Size]
	}
	defaults := DefaultBoard()
	records = append(records, defaults[:]...)[:Size]

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Score > records[j].Score
	})
	copy(b[:], records)
	return b, valid, nil
}

// Format writes the board in its canonical form: exactly three lines.
func Format(w io.Writer, b Board) error {
	bw := bufio.NewWriter(w)
	for _, e := range b {
		score := e.Score
		if score < 0 {
			score = 0
		}
		if _, err := fmt.Fprintf(bw, "%s,%d\n", NormalizeName(e.Name), score); err != nil {
			return fmt.Errorf("highscore: write board: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("highscore: write board: %w", err)
	}
	return nil
}
