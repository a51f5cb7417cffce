package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Session holds the state of one table: the current round and the scores
// accumulated over every round played on it.
//
// The zero value has no round to play: it rejects every move until
// Initialize is called. A Session is not safe for concurrent use.
type Session struct {
	board  entity.Board
	turn   entity.Mark
	status entity.Status
	winner entity.Mark

	score entity.Score
}

// NewSession returns an initialized session with zero scores and a fresh round.
func NewSession() *Session {
	session := &Session{}
	session.Initialize()

	return session
}

// Initialize clears the scores and starts a fresh round.
func (that *Session) Initialize() {
	that.score = entity.Score{}
	that.Reset()
}

// Reset starts a fresh round, X moves first. Scores are kept.
func (that *Session) Reset() {
	that.board = entity.Board{}
	that.turn = entity.MarkX
	that.status = entity.StatusOngoing
	that.winner = entity.MarkEmpty
}

// AttemptMove places the active player's mark on cell and reports whether
// the move was accepted. A rejected move leaves the session untouched.
func (that *Session) AttemptMove(cell int) bool {
	return that.MakeTurn(cell) == nil
}

// MakeTurn is AttemptMove with the reason for a rejection. Cells outside
// the board are rejected with apperror.ErrInvalidCell.
func (that *Session) MakeTurn(cell int) error {
	if err := that.validateMove(cell); err != nil {
		return err
	}

	that.board[cell] = that.turn
	that.updateGameStatus()

	if that.status == entity.StatusOngoing {
		that.turn = that.turn.Opponent()
	}

	return nil
}

// validateMove - checks if the move is valid.
func (that *Session) validateMove(cell int) error {
	if !entity.IsValidCell(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if !that.turn.IsPlayer() {
		return apperror.ErrNoRound
	}

	if that.status.IsTerminal() {
		return apperror.ErrGameFinished
	}

	if that.board[cell] != entity.MarkEmpty {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return nil
}

// updateGameStatus - checks the round status after a move and scores it once.
func (that *Session) updateGameStatus() {
	status, winner := Evaluate(that.board)

	switch status {
	case entity.StatusWon:
		that.status = entity.StatusWon
		that.winner = winner

		if winner == entity.MarkX {
			that.score.X++
		} else {
			that.score.O++
		}
	case entity.StatusDrawn:
		that.status = entity.StatusDrawn
		that.score.Draws++
	case entity.StatusOngoing:
	}
}

// Evaluate reports the status of board and, for a won board, the winning
// mark. Lines are checked in entity.WinLines order and the first complete
// line wins.
func Evaluate(board entity.Board) (entity.Status, entity.Mark) {
	for _, line := range entity.WinLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != entity.MarkEmpty && a == b && b == c {
			return entity.StatusWon, a
		}
	}

	if board.IsFull() {
		return entity.StatusDrawn, entity.MarkEmpty
	}

	return entity.StatusOngoing, entity.MarkEmpty
}

func (that *Session) Board() entity.Board {
	return that.board
}

// Turn returns the player to move. Once the round is over it keeps the
// player who made the last move.
func (that *Session) Turn() entity.Mark {
	return that.turn
}

func (that *Session) Status() entity.Status {
	return that.status
}

// Winner returns entity.MarkEmpty unless the round was won.
func (that *Session) Winner() entity.Mark {
	return that.winner
}

func (that *Session) Score() entity.Score {
	return that.score
}

// Moves returns the number of moves accepted in the current round.
func (that *Session) Moves() int {
	return that.board.Count()
}

func (that *Session) Snapshot() entity.Game {
	return entity.Game{
		Board:  that.board,
		Turn:   that.turn,
		Status: that.status,
		Winner: that.winner,
		Score:  that.score,
	}
}
