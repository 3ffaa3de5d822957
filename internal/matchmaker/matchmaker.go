package matchmaker

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/glbessa/TicTacToeBackend/internal/entity"
)

// Matchmaker pairs joining players first-come-first-served. It holds at most
// one waiting player; a player is parked in the slot, paired into a match, or
// gone - never two of those at once.
type Matchmaker struct {
	logger *slog.Logger

	mu      sync.Mutex
	waiting *entity.Player
}

func New(logger *slog.Logger) *Matchmaker {
	return &Matchmaker{
		logger: logger.With("component", "matchmaker"),
	}
}

// Join - pairs player with the waiting one if the slot is occupied, otherwise
// parks player and returns nil. Joins are linearized on the matchmaker lock:
// two simultaneous joins never both observe an empty slot.
func (that *Matchmaker) Join(player *entity.Player) *entity.Match {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.waiting == nil {
		that.waiting = player
		that.logger.Info("player waiting for an opponent", "playerID", player.ID)

		return nil
	}

	opponent := that.waiting
	that.waiting = nil

	match := entity.NewMatch(uuid.NewString(), opponent, player)
	that.logger.Info("match created", "matchID", match.ID, "playerX", opponent.ID, "playerO", player.ID)

	return match
}

// Withdraw - vacates the waiting slot iff it holds exactly this player.
// Pairing runs under the same lock, so a false return means any pairing of
// this player, including its match back-reference, is already visible.
func (that *Matchmaker) Withdraw(player *entity.Player) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.waiting != player {
		return false
	}

	that.waiting = nil
	that.logger.Info("waiting player withdrawn", "playerID", player.ID)

	return true
}
