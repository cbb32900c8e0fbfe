package domain

// PuzzleData is a puzzle and its solution, snapshotted onto a contest so
// both participants play the same board. Boards are 81-character strings
// in row-major order with '0' for blank cells.
type PuzzleData struct {
	Puzzle   string `json:"puzzle"`
	Solution string `json:"solution"`
}
