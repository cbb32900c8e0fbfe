package puzzle

import (
	"math/rand"
	"sync"

	"github.com/sudoku-arena/internal/domain"
)

// Generator produces a puzzle and its solution for a difficulty.
type Generator interface {
	Generate(difficulty domain.Difficulty) domain.PuzzleData
}

// blanks is the number of cells removed per difficulty
var blanks = map[domain.Difficulty]int{
	domain.DifficultyEasy:   35,
	domain.DifficultyMedium: 45,
	domain.DifficultyHard:   55,
}

const defaultBlanks = 35

// baseGrid is a valid solved board used as the permutation seed.
var baseGrid = [9][9]int{
	{5, 3, 4, 6, 7, 8, 9, 1, 2},
	{6, 7, 2, 1, 9, 5, 3, 4, 8},
	{1, 9, 8, 3, 4, 2, 5, 6, 7},
	{8, 5, 9, 7, 6, 1, 4, 2, 3},
	{4, 2, 6, 8, 5, 3, 7, 9, 1},
	{7, 1, 3, 9, 2, 4, 8, 5, 6},
	{9, 6, 1, 5, 3, 7, 2, 8, 4},
	{2, 8, 7, 4, 1, 9, 6, 3, 5},
	{3, 4, 5, 2, 8, 6, 1, 7, 9},
}

// ShuffleGenerator derives boards from the base grid by symbol
// permutation plus row/column shuffles within bands and stacks. Every
// such transform preserves validity, so the solution never needs to be
// re-solved.
type ShuffleGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewShuffleGenerator creates a generator seeded with seed.
func NewShuffleGenerator(seed int64) *ShuffleGenerator {
	return &ShuffleGenerator{rng: rand.New(rand.NewSource(seed))}
}

// Generate returns a fresh (puzzle, solution) pair.
func (g *ShuffleGenerator) Generate(difficulty domain.Difficulty) domain.PuzzleData {
	g.mu.Lock()
	defer g.mu.Unlock()

	grid := g.shuffledGrid()
	solution := encode(grid)

	remove, ok := blanks[difficulty]
	if !ok {
		remove = defaultBlanks
	}

	cells := g.rng.Perm(81)
	for _, cell := range cells[:remove] {
		grid[cell/9][cell%9] = 0
	}

	return domain.PuzzleData{
		Puzzle:   encode(grid),
		Solution: solution,
	}
}

func (g *ShuffleGenerator) shuffledGrid() [9][9]int {
	grid := baseGrid

	// Relabel digits 1-9
	perm := g.rng.Perm(9)
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			grid[r][c] = perm[grid[r][c]-1] + 1
		}
	}

	// Shuffle rows within each horizontal band
	for band := 0; band < 3; band++ {
		order := g.rng.Perm(3)
		var rows [3][9]int
		for i := 0; i < 3; i++ {
			rows[i] = grid[band*3+order[i]]
		}
		for i := 0; i < 3; i++ {
			grid[band*3+i] = rows[i]
		}
	}

	// Shuffle columns within each vertical stack
	for stack := 0; stack < 3; stack++ {
		order := g.rng.Perm(3)
		for r := 0; r < 9; r++ {
			var cols [3]int
			for i := 0; i < 3; i++ {
				cols[i] = grid[r][stack*3+order[i]]
			}
			for i := 0; i < 3; i++ {
				grid[r][stack*3+i] = cols[i]
			}
		}
	}

	return grid
}

func encode(grid [9][9]int) string {
	buf := make([]byte, 0, 81)
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			buf = append(buf, byte('0'+grid[r][c]))
		}
	}
	return string(buf)
}
