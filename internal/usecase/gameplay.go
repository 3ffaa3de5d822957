package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/glbessa/TicTacToeBackend/internal/apperror"
	"github.com/glbessa/TicTacToeBackend/internal/entity"
)

type matchmakerDep interface {
	Join(player *entity.Player) *entity.Match
	Withdraw(player *entity.Player) bool
}

type registryDep interface {
	Register(connID string, player *entity.Player) error
	Lookup(connID string) (*entity.Player, error)
	Remove(connID string) *entity.Player
}

// GamePlayUseCase routes protocol events from one connection to the shared
// matchmaker and to the connection's match, and turns them into the events
// the transport layer must deliver.
type GamePlayUseCase struct {
	logger *slog.Logger

	matchmaker matchmakerDep
	registry   registryDep
}

func NewGamePlayUseCase(logger *slog.Logger, matchmaker matchmakerDep, registry registryDep) *GamePlayUseCase {
	return &GamePlayUseCase{
		logger: logger.With("component", "gameplay"),

		matchmaker: matchmaker,
		registry:   registry,
	}
}

// Join - creates a player for the connection and enters matchmaking. The
// returned events are empty while the player is parked waiting; once a second
// player arrives they carry the start/turn hello for both sides.
func (that *GamePlayUseCase) Join(_ context.Context, connID, nickname string) ([]entity.Event, error) {
	if nickname == "" {
		return nil, apperror.ErrEmptyNickname
	}

	player := entity.NewPlayer(connID, nickname)
	if err := that.registry.Register(connID, player); err != nil {
		return nil, fmt.Errorf("failed to register connection: %w", err)
	}

	match := that.matchmaker.Join(player)
	if match == nil {
		return nil, nil
	}

	return match.Start(), nil
}

// MakeTurn - resolves the connection to its player and submits the move to
// the player's match. A connection that never joined, or joined but is still
// waiting, is a protocol violation rather than a game-rule error.
func (that *GamePlayUseCase) MakeTurn(_ context.Context, connID string, cell int) ([]entity.Event, error) {
	player, err := that.registry.Lookup(connID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve connection: %w", err)
	}

	match := player.Match()
	if match == nil {
		return nil, fmt.Errorf("%w: player %s is not paired", apperror.ErrUnknownConnection, player.ID)
	}

	events, err := match.SubmitMove(player, cell)
	if err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	return events, nil
}

// Disconnect - tears down everything the connection was holding: its registry
// entry, the waiting slot if it was parked there, and its ongoing match,
// which the opponent wins by forfeit. Safe for connections that never joined.
func (that *GamePlayUseCase) Disconnect(_ context.Context, connID string) []entity.Event {
	log := that.logger.With("method", "Disconnect", "connID", connID)

	player := that.registry.Remove(connID)
	if player == nil {
		return nil
	}

	if that.matchmaker.Withdraw(player) {
		log.Info("waiting player disconnected")

		return nil
	}

	match := player.Match()
	if match == nil {
		return nil
	}

	events := match.Forfeit(player)
	if len(events) > 0 {
		log.Info("player abandoned ongoing match", "matchID", match.ID)
	}

	return events
}

// IsGameRuleError - reports whether err is a recoverable rule violation the
// client may retry, as opposed to a protocol violation.
func IsGameRuleError(err error) bool {
	return errors.Is(err, apperror.ErrNotYourTurn) ||
		errors.Is(err, apperror.ErrCellOccupied) ||
		errors.Is(err, apperror.ErrCellOutOfRange) ||
		errors.Is(err, apperror.ErrGameFinished)
}
