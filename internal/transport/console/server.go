package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

const helpText = `Commands:
  w a s d / up down left right   move the cursor
  enter (empty line) / play      place a mark under the cursor
  1-9                            place a mark on a cell, row by row
  r / restart                    start the next round once this one is over
  new                            clear the scores and start over
  help                           show this text
  q / quit                       leave`

var errQuit = errors.New("quit requested")

type uGame interface {
	View() usecase.View
	MoveCursor(dir usecase.Direction) bool
	Confirm() (entity.Game, error)
	Place(cell int) (entity.Game, error)
	Restart() (entity.Game, error)
	NewMatch() entity.Game
}

type Server struct {
	logger   *slog.Logger
	uGame    uGame
	renderer *Renderer
	prompt   string

	handlers map[string]func(ctx context.Context, writer io.Writer) error
}

func New(logger *slog.Logger, conf config.Console, uGame uGame) *Server {
	server := &Server{
		logger:   logger,
		uGame:    uGame,
		renderer: NewRenderer(conf),
		prompt:   conf.Prompt,

		handlers: make(map[string]func(context.Context, io.Writer) error),
	}

	for _, name := range []string{"w", "k", "up"} {
		server.handlers[name] = server.handleCursor(usecase.DirectionUp)
	}
	for _, name := range []string{"s", "j", "down"} {
		server.handlers[name] = server.handleCursor(usecase.DirectionDown)
	}
	for _, name := range []string{"a", "h", "left"} {
		server.handlers[name] = server.handleCursor(usecase.DirectionLeft)
	}
	for _, name := range []string{"d", "l", "right"} {
		server.handlers[name] = server.handleCursor(usecase.DirectionRight)
	}

	server.handlers[""] = server.handleConfirm
	server.handlers["enter"] = server.handleConfirm
	server.handlers["play"] = server.handleConfirm
	server.handlers["r"] = server.handleRestart
	server.handlers["restart"] = server.handleRestart
	server.handlers["start"] = server.handleRestart
	server.handlers["new"] = server.handleNewMatch
	server.handlers["help"] = server.handleHelp
	server.handlers["?"] = server.handleHelp
	server.handlers["q"] = server.handleQuit
	server.handlers["quit"] = server.handleQuit
	server.handlers["exit"] = server.handleQuit

	return server
}

// Run - draws the board and processes commands from reader until the
// input ends, a quit command arrives or ctx is canceled.
func (that *Server) Run(ctx context.Context, reader io.Reader, writer io.Writer) error {
	log := that.logger.With("method", "Run")

	// Canceling on return releases the reader once it has a line to hand
	// over. A reader blocked inside Read is only released by the input
	// ending.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		defer log.Debug("input reader stopped")

		scanner := bufio.NewScanner(reader)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}

		readErr <- scanner.Err()
	}()

	if err := that.draw(writer); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			log.Info("context canceled, leaving console")
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}

				log.Info("input closed, leaving console")
				return nil
			}

			err := that.handleLine(ctx, line, writer)
			if errors.Is(err, errQuit) {
				log.Info("quit requested")
				return nil
			}

			if err != nil {
				return err
			}
		}
	}
}

// handleLine - dispatches one line of input and redraws the board.
func (that *Server) handleLine(ctx context.Context, line string, writer io.Writer) error {
	command := strings.ToLower(strings.TrimSpace(line))

	handler, ok := that.handlers[command]
	if !ok {
		handler = that.handleCell(command)
	}

	if err := handler(ctx, writer); err != nil {
		return err
	}

	return that.draw(writer)
}

func (that *Server) handleCursor(dir usecase.Direction) func(context.Context, io.Writer) error {
	return func(_ context.Context, _ io.Writer) error {
		that.uGame.MoveCursor(dir)
		return nil
	}
}

func (that *Server) handleConfirm(_ context.Context, writer io.Writer) error {
	_, err := that.uGame.Confirm()

	return that.reportMove(writer, err)
}

// handleCell - places a mark on a 1-based cell number, anything else is an unknown command.
func (that *Server) handleCell(command string) func(context.Context, io.Writer) error {
	return func(_ context.Context, writer io.Writer) error {
		number, err := strconv.Atoi(command)
		if err != nil {
			return that.writeLine(writer, fmt.Sprintf("unknown command %q, type help for the list", command))
		}

		cell := number - 1
		if !entity.IsValidCell(cell) {
			return that.writeLine(writer, "cells are numbered 1 to 9")
		}

		_, err = that.uGame.Place(cell)

		return that.reportMove(writer, err)
	}
}

func (that *Server) handleRestart(_ context.Context, writer io.Writer) error {
	if _, err := that.uGame.Restart(); err != nil {
		if errors.Is(err, apperror.ErrGameOngoing) {
			return that.writeLine(writer, "finish the round first, or type new to clear the scores")
		}

		return fmt.Errorf("failed to restart: %w", err)
	}

	return nil
}

func (that *Server) handleNewMatch(_ context.Context, _ io.Writer) error {
	that.uGame.NewMatch()
	return nil
}

func (that *Server) handleHelp(_ context.Context, writer io.Writer) error {
	return that.writeLine(writer, helpText)
}

func (that *Server) handleQuit(_ context.Context, writer io.Writer) error {
	if err := that.writeLine(writer, Scoreboard(that.uGame.View().Game.Score)); err != nil {
		return err
	}

	return errQuit
}

// reportMove - tells the player why a move was rejected.
func (that *Server) reportMove(writer io.Writer, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperror.ErrCellOccupied):
		return that.writeLine(writer, "that cell is taken")
	case errors.Is(err, apperror.ErrGameFinished):
		return that.writeLine(writer, "the round is over, type r to play again")
	case errors.Is(err, apperror.ErrInvalidCell):
		return that.writeLine(writer, "cells are numbered 1 to 9")
	default:
		return fmt.Errorf("failed to make a move: %w", err)
	}
}

func (that *Server) draw(writer io.Writer) error {
	if err := that.renderer.Render(writer, that.uGame.View()); err != nil {
		return err
	}

	if _, err := io.WriteString(writer, that.prompt+" "); err != nil {
		return fmt.Errorf("failed to write prompt: %w", err)
	}

	return nil
}

func (that *Server) writeLine(writer io.Writer, text string) error {
	if _, err := io.WriteString(writer, text+"\n"); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
