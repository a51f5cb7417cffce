package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/transport/console"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

// RunApp - runs the application on the process stdin and stdout.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	return Run(logger, conf, os.Stdin, os.Stdout)
}

// Run - plays on a single local table until the input ends or a signal arrives.
func Run(logger *slog.Logger, conf *config.Config, reader io.Reader, writer io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	gameManager := usecase.NewGameManager(logger)
	consoleServer := console.New(logger, conf.Console, gameManager)

	// run console
	consoleErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting console", "session_id", gameManager.SessionID())
		consoleErrCh <- consoleServer.Run(ctx, reader, writer)
	}()

	select {
	case err := <-consoleErrCh:
		if err != nil {
			return fmt.Errorf("console error: %w", err)
		}

		log.Info("Console closed, shutting down", "score", gameManager.View().Game.Score)
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
