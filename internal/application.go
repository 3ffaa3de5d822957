package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/glbessa/TicTacToeBackend/internal/config"
	"github.com/glbessa/TicTacToeBackend/internal/matchmaker"
	"github.com/glbessa/TicTacToeBackend/internal/session"
	"github.com/glbessa/TicTacToeBackend/internal/usecase"
	"github.com/glbessa/TicTacToeBackend/transport/websocket"
)

// RunApp - wires the registry, matchmaker and gameplay use case into the
// WebSocket gateway and runs it until a signal or a server error. All state
// lives in these components; nothing survives a restart.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	registry := session.NewRegistry()
	maker := matchmaker.New(logger)
	gamePlay := usecase.NewGamePlayUseCase(logger, maker, registry)

	wsServer := websocket.New(logger, gamePlay)

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "addr", conf.ListenAddr())
		if err := wsServer.Start(ctx, conf.ListenAddr()); err != nil {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
