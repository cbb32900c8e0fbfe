package puzzle

import (
	"strings"
	"testing"

	"github.com/sudoku-arena/internal/domain"
)

// validSolution checks that an 81-char encoded board is a complete valid
// sudoku solution.
func validSolution(t *testing.T, encoded string) {
	t.Helper()
	if len(encoded) != 81 {
		t.Fatalf("solution length = %d, want 81", len(encoded))
	}

	var grid [9][9]int
	for i, ch := range encoded {
		if ch < '1' || ch > '9' {
			t.Fatalf("solution contains %q at %d", ch, i)
		}
		grid[i/9][i%9] = int(ch - '0')
	}

	for i := 0; i < 9; i++ {
		var row, col, box [10]bool
		for j := 0; j < 9; j++ {
			if row[grid[i][j]] {
				t.Fatalf("duplicate in row %d", i)
			}
			row[grid[i][j]] = true

			if col[grid[j][i]] {
				t.Fatalf("duplicate in column %d", i)
			}
			col[grid[j][i]] = true

			r := (i/3)*3 + j/3
			c := (i%3)*3 + j%3
			if box[grid[r][c]] {
				t.Fatalf("duplicate in box %d", i)
			}
			box[grid[r][c]] = true
		}
	}
}

func TestGenerateBlankCounts(t *testing.T) {
	g := NewShuffleGenerator(1)

	tests := []struct {
		difficulty domain.Difficulty
		want       int
	}{
		{domain.DifficultyEasy, 35},
		{domain.DifficultyMedium, 45},
		{domain.DifficultyHard, 55},
		{domain.Difficulty("unknown"), 35},
	}

	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			data := g.Generate(tt.difficulty)
			got := strings.Count(data.Puzzle, "0")
			if got != tt.want {
				t.Errorf("blank count = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGenerateSolutionIsValid(t *testing.T) {
	g := NewShuffleGenerator(42)
	for i := 0; i < 20; i++ {
		data := g.Generate(domain.DifficultyHard)
		validSolution(t, data.Solution)
	}
}

func TestGeneratePuzzleMatchesSolution(t *testing.T) {
	g := NewShuffleGenerator(7)
	data := g.Generate(domain.DifficultyMedium)

	if len(data.Puzzle) != 81 {
		t.Fatalf("puzzle length = %d, want 81", len(data.Puzzle))
	}
	for i := range data.Puzzle {
		if data.Puzzle[i] == '0' {
			continue
		}
		if data.Puzzle[i] != data.Solution[i] {
			t.Fatalf("puzzle cell %d = %c, solution has %c", i, data.Puzzle[i], data.Solution[i])
		}
	}
}

func TestGenerateDeterministicBySeed(t *testing.T) {
	a := NewShuffleGenerator(99).Generate(domain.DifficultyEasy)
	b := NewShuffleGenerator(99).Generate(domain.DifficultyEasy)
	if a != b {
		t.Error("same seed produced different puzzles")
	}

	c := NewShuffleGenerator(100).Generate(domain.DifficultyEasy)
	if a == c {
		t.Error("different seeds produced identical puzzles")
	}
}
