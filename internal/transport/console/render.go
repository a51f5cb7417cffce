package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

const separator = "+---+---+---+"

// Renderer draws frames as plain text.
type Renderer struct {
	symbols    config.Symbols
	hideCursor bool
}

func NewRenderer(conf config.Console) *Renderer {
	return &Renderer{
		symbols:    conf.Symbols,
		hideCursor: conf.HideCursor,
	}
}

// Render writes the scoreboard, the board and the status line of view.
func (that *Renderer) Render(writer io.Writer, view usecase.View) error {
	var builder strings.Builder

	game := view.Game

	builder.WriteString(Scoreboard(game.Score))
	builder.WriteString("\n\n")

	for row := 0; row < 3; row++ {
		builder.WriteString(separator)
		builder.WriteString("\n|")

		for col, mark := range game.Board.Row(row) {
			cell := row*3 + col
			symbol := that.symbol(mark)

			if !that.hideCursor && cell == view.Cursor {
				builder.WriteString("[" + symbol + "]|")
			} else {
				builder.WriteString(" " + symbol + " |")
			}
		}

		builder.WriteString("\n")
	}

	builder.WriteString(separator)
	builder.WriteString("\n\n")
	builder.WriteString(that.statusLine(game))
	builder.WriteString("\n")

	if _, err := io.WriteString(writer, builder.String()); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	return nil
}

// Scoreboard formats the session score the way the top of the screen shows it.
func Scoreboard(score entity.Score) string {
	return fmt.Sprintf("X: %d   O: %d   Draws: %d", score.X, score.O, score.Draws)
}

func (that *Renderer) statusLine(game entity.Game) string {
	switch game.Status {
	case entity.StatusWon:
		return fmt.Sprintf("Player %s wins! Type r to play again.", that.symbol(game.Winner))
	case entity.StatusDrawn:
		return "Draw! Type r to play again."
	case entity.StatusOngoing:
	}

	return fmt.Sprintf("Turn: %s", that.symbol(game.Turn))
}

func (that *Renderer) symbol(mark entity.Mark) string {
	switch mark {
	case entity.MarkX:
		return that.symbols.X
	case entity.MarkO:
		return that.symbols.O
	case entity.MarkEmpty:
	}

	return that.symbols.Empty
}
