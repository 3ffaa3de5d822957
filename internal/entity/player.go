package entity

import "sync"

// Player is one side of a match, bound to a single live connection. The ID is
// the connection identity the transport layer registered the player under.
type Player struct {
	ID       string
	Nickname string
	Mark     string

	turn bool // guarded by the owning match's lock

	mu    sync.Mutex
	match *Match
}

func NewPlayer(id, nickname string) *Player {
	return &Player{
		ID:       id,
		Nickname: nickname,
	}
}

// Match - returns the match this player is paired into, or nil while the
// player is still waiting for an opponent.
func (that *Player) Match() *Match {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.match
}

func (that *Player) setMatch(match *Match) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.match = match
}
