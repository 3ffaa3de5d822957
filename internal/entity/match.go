package entity

import (
	"sync"

	"github.com/glbessa/TicTacToeBackend/internal/apperror"
)

const (
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

// Match owns the board and the turn state for one pairing. The two
// participating connections run as independent goroutines, so every mutation
// goes through the match lock and submissions apply in a total order.
type Match struct {
	ID string

	mu      sync.Mutex
	board   Board
	players [2]*Player
	status  string
	result  string
}

// NewMatch - pairs two players into a started match. The player that was
// already waiting takes X and the opening turn; the new joiner takes O.
func NewMatch(id string, waiting, joined *Player) *Match {
	that := &Match{
		ID:      id,
		players: [2]*Player{waiting, joined},
		status:  StatusOngoing,
	}

	waiting.Mark = PlayerX
	waiting.turn = true
	joined.Mark = PlayerO
	joined.turn = false

	waiting.setMatch(that)
	joined.setMatch(that)

	return that
}

// Start - composes the pairing hello: a start event for each player carrying
// their own mark and the opponent's nickname, then a turn event for each
// player carrying their own flag.
func (that *Match) Start() []Event {
	that.mu.Lock()
	defer that.mu.Unlock()

	events := make([]Event, 0, 4)
	for _, player := range that.players {
		events = append(events, Event{
			Player:   player,
			Type:     EventStart,
			Mark:     player.Mark,
			Opponent: that.opponentOf(player).Nickname,
		})
	}

	for _, player := range that.players {
		events = append(events, Event{Player: player, Type: EventTurn, Value: player.turn})
	}

	return events
}

// SubmitMove - applies one move for player. On success the move is broadcast
// to both players, followed by either a gameover broadcast or a turn-flag
// toggle with a turn broadcast. Rule violations leave the match untouched.
func (that *Match) SubmitMove(player *Player, cell int) ([]Event, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.status == StatusFinished {
		return nil, apperror.ErrGameFinished
	}

	if !player.turn {
		return nil, apperror.ErrNotYourTurn
	}

	if err := that.board.MakeMove(cell, player.Mark); err != nil {
		return nil, err
	}

	events := make([]Event, 0, 4)
	for _, recipient := range that.players {
		events = append(events, Event{Player: recipient, Type: EventMove, Cell: cell, Mark: player.Mark})
	}

	result := that.board.Evaluate()
	if result == "" {
		player.turn = false
		that.opponentOf(player).turn = true

		for _, recipient := range that.players {
			events = append(events, Event{Player: recipient, Type: EventTurn, Value: recipient.turn})
		}

		return events, nil
	}

	that.finish(result)

	for _, recipient := range that.players {
		events = append(events, Event{Player: recipient, Type: EventGameover, Result: result})
	}

	return events, nil
}

// Forfeit - ends the match because leaving's connection is gone. The
// remaining player wins by default and is told the opponent left. No-op on a
// match that already finished.
func (that *Match) Forfeit(leaving *Player) []Event {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.status == StatusFinished {
		return nil
	}

	opponent := that.opponentOf(leaving)
	that.finish(opponent.Mark)

	return []Event{{Player: opponent, Type: EventOpponentLeft}}
}

func (that *Match) IsFinished() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.status == StatusFinished
}

func (that *Match) Result() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.result
}

// Board - returns a copy of the current board.
func (that *Match) Board() Board {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.board
}

// Opponent - returns the other side of the pairing.
func (that *Match) Opponent(player *Player) *Player {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.opponentOf(player)
}

// finish clears both turn flags so exactly-one-turn-holder only ever holds
// while the match is ongoing. Callers hold the match lock.
func (that *Match) finish(result string) {
	that.status = StatusFinished
	that.result = result

	for _, player := range that.players {
		player.turn = false
	}
}

func (that *Match) opponentOf(player *Player) *Player {
	if that.players[0] == player {
		return that.players[1]
	}

	return that.players[0]
}
