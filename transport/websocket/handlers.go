package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/glbessa/TicTacToeBackend/internal/apperror"
	"github.com/glbessa/TicTacToeBackend/internal/entity"
	"github.com/glbessa/TicTacToeBackend/internal/usecase"
)

func (that *Server) dispatch(ctx context.Context, conn *connection, message *Message) {
	switch message.Type {
	case actionJoin:
		that.handleJoin(ctx, conn, message)
	case actionMove:
		that.handleMove(ctx, conn, message)
	default:
		that.sendError(conn, fmt.Sprintf("Unknown message type: %s", message.Type))
	}
}

func (that *Server) handleJoin(ctx context.Context, conn *connection, message *Message) {
	log := that.logger.With("method", "handleJoin", "connID", conn.id)

	events, err := that.uGamePlay.Join(ctx, conn.id, message.Nickname)
	if err != nil {
		log.Warn("join rejected", "error", err)
		that.sendError(conn, errorText(err))

		return
	}

	if len(events) == 0 {
		log.Info("player waiting", "nickname", message.Nickname)

		return
	}

	that.deliver(events)
}

func (that *Server) handleMove(ctx context.Context, conn *connection, message *Message) {
	log := that.logger.With("method", "handleMove", "connID", conn.id)

	if message.Cell == nil {
		that.sendError(conn, "Invalid move")

		return
	}

	events, err := that.uGamePlay.MakeTurn(ctx, conn.id, *message.Cell)
	if err != nil {
		if usecase.IsGameRuleError(err) {
			log.Debug("move rejected", "error", err)
		} else {
			log.Warn("move from unresolved connection", "error", err)
		}

		that.sendError(conn, errorText(err))

		return
	}

	that.deliver(events)
}

// deliver - fans the events out to their recipients. An event addressed to a
// connection that is already gone is dropped; the match teardown runs through
// the disconnect path, not here.
func (that *Server) deliver(events []entity.Event) {
	for _, event := range events {
		conn := that.connByID(event.Player.ID)
		if conn == nil {
			that.logger.Info("dropping event for gone connection", "connID", event.Player.ID, "event", event.Type)
			continue
		}

		if err := conn.send(encodeEvent(event)); err != nil {
			that.logger.Error("failed to deliver event", "connID", conn.id, "event", event.Type, "error", err)
		}
	}
}

func (that *Server) sendError(conn *connection, text string) {
	if err := conn.send(ErrorResponse{Type: "error", Message: text}); err != nil {
		that.logger.Error("failed to send error response", "connID", conn.id, "error", err)
	}
}

func encodeEvent(event entity.Event) any {
	switch event.Type {
	case entity.EventStart:
		return StartResponse{Type: entity.EventStart, Symbol: event.Mark, OpponentNickname: event.Opponent}
	case entity.EventTurn:
		return TurnResponse{Type: entity.EventTurn, Value: event.Value}
	case entity.EventMove:
		return MoveResponse{Type: entity.EventMove, Cell: event.Cell, Symbol: event.Mark}
	case entity.EventGameover:
		return GameoverResponse{Type: entity.EventGameover, Result: event.Result}
	case entity.EventOpponentLeft:
		return OpponentLeftResponse{Type: entity.EventOpponentLeft}
	default:
		return ErrorResponse{Type: "error", Message: fmt.Sprintf("unsupported event: %s", event.Type)}
	}
}

// errorText - maps rule and protocol errors onto the client-facing message.
func errorText(err error) string {
	switch {
	case errors.Is(err, apperror.ErrNotYourTurn):
		return "Not your turn"
	case errors.Is(err, apperror.ErrCellOccupied), errors.Is(err, apperror.ErrCellOutOfRange):
		return "Invalid move"
	case errors.Is(err, apperror.ErrGameFinished):
		return "Game is already over"
	case errors.Is(err, apperror.ErrUnknownConnection):
		return "You are not in a game"
	case errors.Is(err, apperror.ErrAlreadyJoined):
		return "Already joined"
	case errors.Is(err, apperror.ErrEmptyNickname):
		return "Nickname is required"
	default:
		return "Internal error"
	}
}
