package session

import (
	"fmt"
	"sync"

	"github.com/glbessa/TicTacToeBackend/internal/apperror"
	"github.com/glbessa/TicTacToeBackend/internal/entity"
)

// Registry maps each live connection to its player so a move can be resolved
// without the client restating who it is. Pure bookkeeping, no game logic.
type Registry struct {
	mu      sync.RWMutex
	players map[string]*entity.Player
}

func NewRegistry() *Registry {
	return &Registry{
		players: make(map[string]*entity.Player),
	}
}

func (that *Registry) Register(connID string, player *entity.Player) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.players[connID]; ok {
		return fmt.Errorf("%w: connection %s", apperror.ErrAlreadyJoined, connID)
	}

	that.players[connID] = player

	return nil
}

func (that *Registry) Lookup(connID string) (*entity.Player, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	player, ok := that.players[connID]
	if !ok {
		return nil, fmt.Errorf("%w: connection %s", apperror.ErrUnknownConnection, connID)
	}

	return player, nil
}

// Remove - drops the entry and returns the removed player, nil if the
// connection never joined.
func (that *Registry) Remove(connID string) *entity.Player {
	that.mu.Lock()
	defer that.mu.Unlock()

	player := that.players[connID]
	delete(that.players, connID)

	return player
}
