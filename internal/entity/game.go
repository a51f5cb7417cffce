package entity

const BoardSize = 9

// Status of the current round.
type Status string

const (
	StatusOngoing Status = "ongoing"
	StatusWon     Status = "won"
	StatusDrawn   Status = "drawn"
)

// WinLines lists every line of three in the order they are checked:
// rows top to bottom, columns left to right, then the two diagonals.
var WinLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

func (that Status) IsTerminal() bool {
	return that == StatusWon || that == StatusDrawn
}

// Board is stored row-major: cell i sits at row i/3, column i%3.
type Board [BoardSize]Mark

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

func (that Board) Count() int {
	count := 0
	for _, cell := range that {
		if cell != MarkEmpty {
			count++
		}
	}

	return count
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == MarkEmpty {
			return false
		}
	}

	return true
}

// Row returns the three cells of row r (0..2).
func (that Board) Row(r int) [3]Mark {
	return [3]Mark{that[r*3], that[r*3+1], that[r*3+2]}
}

// Score keeps the cumulative results of a session.
type Score struct {
	X     int `json:"x"`
	O     int `json:"o"`
	Draws int `json:"draws"`
}

// Rounds returns the number of finished rounds.
func (that Score) Rounds() int {
	return that.X + that.O + that.Draws
}

// Game is a read-only snapshot of a session handed to the presentation layer.
type Game struct {
	Board  Board  `json:"board"`
	Turn   Mark   `json:"player_turn"`
	Status Status `json:"status"`
	Winner Mark   `json:"winner,omitempty"`
	Score  Score  `json:"score"`
}

func (that *Game) IsFinished() bool {
	return that.Status.IsTerminal()
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}
