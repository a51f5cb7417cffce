package usecase

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// StartCursor is the cell the cursor sits on when a round starts.
const StartCursor = 4

type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// View is everything the presentation layer needs to draw a frame.
type View struct {
	SessionID string      `json:"session_id"`
	Game      entity.Game `json:"game"`
	Cursor    int         `json:"cursor"`
}

// GameManager drives a rules session on behalf of a single local table:
// it owns the cursor, turns input into moves and logs the outcome.
type GameManager struct {
	logger *slog.Logger

	id      string
	session *tictactoe.Session
	cursor  int
}

func NewGameManager(logger *slog.Logger) *GameManager {
	id := uuid.NewString()

	manager := &GameManager{
		logger: logger.With("session_id", id),

		id:      id,
		session: tictactoe.NewSession(),
		cursor:  StartCursor,
	}

	manager.logger.Info("session started")

	return manager
}

func (that *GameManager) SessionID() string {
	return that.id
}

func (that *GameManager) View() View {
	return View{
		SessionID: that.id,
		Game:      that.session.Snapshot(),
		Cursor:    that.cursor,
	}
}

// MoveCursor moves the cursor one cell in dir. The cursor stops at the
// board edges and is frozen once the round is over. It reports whether the
// cursor moved.
func (that *GameManager) MoveCursor(dir Direction) bool {
	if that.session.Status().IsTerminal() {
		return false
	}

	next := that.cursor

	switch dir {
	case DirectionUp:
		if next > 2 {
			next -= 3
		}
	case DirectionDown:
		if next < 6 {
			next += 3
		}
	case DirectionLeft:
		if next%3 > 0 {
			next--
		}
	case DirectionRight:
		if next%3 < 2 {
			next++
		}
	}

	if next == that.cursor {
		return false
	}

	that.cursor = next

	return true
}

// Confirm plays the cell under the cursor.
func (that *GameManager) Confirm() (entity.Game, error) {
	return that.Place(that.cursor)
}

// Place plays cell directly and moves the cursor there when accepted.
func (that *GameManager) Place(cell int) (entity.Game, error) {
	log := that.logger.With("method", "Place")

	mark := that.session.Turn()

	if err := that.session.MakeTurn(cell); err != nil {
		log.Debug("move rejected", "cell", cell, "mark", mark, "error", err)

		return that.session.Snapshot(), fmt.Errorf("failed make turn: %w", err)
	}

	that.cursor = cell
	game := that.session.Snapshot()

	log.Debug("move accepted", "cell", cell, "mark", mark)

	if game.IsFinished() {
		log.Info("round finished",
			"status", game.Status,
			"winner", game.Winner,
			"score_x", game.Score.X,
			"score_o", game.Score.O,
			"draws", game.Score.Draws,
		)
	}

	return game, nil
}

// Restart starts the next round once the current one is over.
func (that *GameManager) Restart() (entity.Game, error) {
	if !that.session.Status().IsTerminal() {
		return that.session.Snapshot(), apperror.ErrGameOngoing
	}

	that.session.Reset()
	that.cursor = StartCursor

	that.logger.Info("round started", "round", that.session.Score().Rounds()+1)

	return that.session.Snapshot(), nil
}

// NewMatch clears the scores and starts over, whatever the round status.
func (that *GameManager) NewMatch() entity.Game {
	that.session.Initialize()
	that.cursor = StartCursor

	that.logger.Info("scores cleared")

	return that.session.Snapshot()
}
