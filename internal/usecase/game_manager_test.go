package usecase

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameManager(t *testing.T) {
	_, st := suite.New(t)

	// When: a new manager is created
	manager := NewGameManager(st.Logger)

	// Then: it holds a fresh round with the cursor in the center
	view := manager.View()

	_, err := uuid.Parse(view.SessionID)
	require.NoError(t, err)
	assert.Equal(t, manager.SessionID(), view.SessionID)
	assert.Equal(t, StartCursor, view.Cursor)
	assert.Equal(t, entity.StatusOngoing, view.Game.Status)
	assert.Equal(t, entity.MarkX, view.Game.Turn)
	assert.Contains(t, st.Messages(), "session started")
}

func TestGameManager_MoveCursor(t *testing.T) {
	tests := []struct {
		name    string
		from    int
		dir     Direction
		want    int
		isMoved bool
	}{
		{name: "Up from center", from: 4, dir: DirectionUp, want: 1, isMoved: true},
		{name: "Down from center", from: 4, dir: DirectionDown, want: 7, isMoved: true},
		{name: "Left from center", from: 4, dir: DirectionLeft, want: 3, isMoved: true},
		{name: "Right from center", from: 4, dir: DirectionRight, want: 5, isMoved: true},
		{name: "Up on top row", from: 1, dir: DirectionUp, want: 1},
		{name: "Down on bottom row", from: 7, dir: DirectionDown, want: 7},
		{name: "Left on left column", from: 3, dir: DirectionLeft, want: 3},
		{name: "Right on right column", from: 5, dir: DirectionRight, want: 5},
		{name: "Right does not wrap to next row", from: 2, dir: DirectionRight, want: 2},
		{name: "Unknown direction", from: 4, dir: Direction("diagonal"), want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, st := suite.New(t)

			// Given: a manager with the cursor on tt.from
			manager := NewGameManager(st.Logger)
			manager.cursor = tt.from

			// When: the cursor is moved
			isMoved := manager.MoveCursor(tt.dir)

			// Then: it ends up on tt.want
			assert.Equal(t, tt.isMoved, isMoved)
			assert.Equal(t, tt.want, manager.View().Cursor)
		})
	}

	t.Run("Cursor is frozen once the round is over", func(t *testing.T) {
		_, st := suite.New(t)

		// Given: a round X has won
		manager := NewGameManager(st.Logger)
		for _, cell := range []int{0, 3, 1, 4, 2} {
			_, err := manager.Place(cell)
			require.NoError(t, err)
		}

		// When: the cursor is moved
		isMoved := manager.MoveCursor(DirectionDown)

		// Then: it stays on the last played cell
		assert.False(t, isMoved)
		assert.Equal(t, 2, manager.View().Cursor)
	})
}

func TestGameManager_Confirm(t *testing.T) {
	t.Run("Plays the cell under the cursor", func(t *testing.T) {
		_, st := suite.New(t)

		// Given: a manager with the cursor moved to the top left corner
		manager := NewGameManager(st.Logger)
		manager.MoveCursor(DirectionUp)
		manager.MoveCursor(DirectionLeft)

		// When: the move is confirmed
		game, err := manager.Confirm()

		// Then: X is placed on cell 0 and it is O's turn
		require.NoError(t, err)
		assert.Equal(t, entity.MarkX, game.Board[0])
		assert.Equal(t, entity.MarkO, game.Turn)
		assert.Equal(t, 0, manager.View().Cursor)
	})

	t.Run("Confirming an occupied cell is rejected", func(t *testing.T) {
		_, st := suite.New(t)

		// Given: X holds the center
		manager := NewGameManager(st.Logger)
		_, err := manager.Confirm()
		require.NoError(t, err)
		before := manager.View()

		// When: O confirms the same cell
		game, err := manager.Confirm()

		// Then: the move is rejected and nothing changed
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before.Game, game)
		assert.Equal(t, before, manager.View())
		assert.Contains(t, st.Messages(), "move rejected")
	})
}

func TestGameManager_Place(t *testing.T) {
	t.Run("Out of range cell", func(t *testing.T) {
		_, st := suite.New(t)

		// Given: a new manager
		manager := NewGameManager(st.Logger)

		// When: a cell outside the board is played
		_, err := manager.Place(9)

		// Then: ErrInvalidCell is returned and the cursor did not move
		require.ErrorIs(t, err, apperror.ErrInvalidCell)
		assert.Equal(t, StartCursor, manager.View().Cursor)
	})

	t.Run("Finished round is logged with the score", func(t *testing.T) {
		_, st := suite.New(t)

		// Given: a new manager
		manager := NewGameManager(st.Logger)

		// When: X completes the top row
		var game entity.Game
		for _, cell := range []int{0, 3, 1, 4, 2} {
			var err error
			game, err = manager.Place(cell)
			require.NoError(t, err)
		}

		// Then: the round is finished and logged once
		assert.True(t, game.IsFinished())
		assert.Equal(t, entity.Score{X: 1}, game.Score)

		var finished []map[string]any
		for _, record := range st.Records() {
			if record["msg"] == "round finished" {
				finished = append(finished, record)
			}
		}

		require.Len(t, finished, 1)
		assert.Equal(t, "X", finished[0]["winner"])
		assert.Equal(t, "won", finished[0]["status"])
		assert.Equal(t, manager.SessionID(), finished[0]["session_id"])
	})
}

func TestGameManager_Restart(t *testing.T) {
	t.Run("Restart during a round is rejected", func(t *testing.T) {
		_, st := suite.New(t)

		// Given: a round in progress
		manager := NewGameManager(st.Logger)
		_, err := manager.Place(0)
		require.NoError(t, err)

		// When: a restart is requested
		game, err := manager.Restart()

		// Then: ErrGameOngoing is returned and the board is kept
		require.ErrorIs(t, err, apperror.ErrGameOngoing)
		assert.Equal(t, entity.MarkX, game.Board[0])
	})

	t.Run("Restart after a round keeps the score", func(t *testing.T) {
		_, st := suite.New(t)

		// Given: a round X has won
		manager := NewGameManager(st.Logger)
		for _, cell := range []int{0, 3, 1, 4, 2} {
			_, err := manager.Place(cell)
			require.NoError(t, err)
		}

		// When: a restart is requested
		game, err := manager.Restart()

		// Then: the board is fresh, X starts, the cursor is centered and the score is kept
		require.NoError(t, err)
		assert.Equal(t, entity.Board{}, game.Board)
		assert.Equal(t, entity.MarkX, game.Turn)
		assert.Equal(t, entity.StatusOngoing, game.Status)
		assert.Equal(t, entity.Score{X: 1}, game.Score)
		assert.Equal(t, StartCursor, manager.View().Cursor)
	})
}

func TestGameManager_NewMatch(t *testing.T) {
	_, st := suite.New(t)

	// Given: a manager with a drawn round
	manager := NewGameManager(st.Logger)
	for _, cell := range []int{1, 0, 3, 2, 5, 4, 6, 7, 8} {
		_, err := manager.Place(cell)
		require.NoError(t, err)
	}
	require.Equal(t, entity.Score{Draws: 1}, manager.View().Game.Score)

	// When: a new match is started
	game := manager.NewMatch()

	// Then: scores and board are cleared
	assert.Equal(t, entity.Score{}, game.Score)
	assert.Equal(t, entity.Board{}, game.Board)
	assert.Equal(t, StartCursor, manager.View().Cursor)
}
