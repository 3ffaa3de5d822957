package matchmaker

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glbessa/TicTacToeBackend/internal/entity"
)

func newTestMatchmaker() *Matchmaker {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestMatchmakerJoin(t *testing.T) {
	t.Run("Parks the first player in the waiting slot", func(t *testing.T) {
		maker := newTestMatchmaker()
		alice := entity.NewPlayer("conn-a", "alice")

		match := maker.Join(alice)

		assert.Nil(t, match)
		assert.Nil(t, alice.Match())
	})

	t.Run("Pairs the second player with the waiting one", func(t *testing.T) {
		// Given: alice is already waiting
		maker := newTestMatchmaker()
		alice := entity.NewPlayer("conn-a", "alice")
		bob := entity.NewPlayer("conn-b", "bob")
		require.Nil(t, maker.Join(alice))

		// When: bob joins
		match := maker.Join(bob)

		// Then: a match exists, alice kept her first-come priority as X
		require.NotNil(t, match)
		assert.Equal(t, entity.PlayerX, alice.Mark)
		assert.Equal(t, entity.PlayerO, bob.Mark)
		assert.Same(t, match, alice.Match())
		assert.Same(t, match, bob.Match())
	})

	t.Run("Empties the slot after pairing", func(t *testing.T) {
		maker := newTestMatchmaker()
		require.Nil(t, maker.Join(entity.NewPlayer("conn-a", "alice")))
		require.NotNil(t, maker.Join(entity.NewPlayer("conn-b", "bob")))

		// When: a third player joins after the pairing
		carol := entity.NewPlayer("conn-c", "carol")
		match := maker.Join(carol)

		// Then: carol waits, she is not pushed into the existing match
		assert.Nil(t, match)
		assert.Nil(t, carol.Match())
	})
}

func TestMatchmakerWithdraw(t *testing.T) {
	t.Run("Vacates the slot of a waiting player", func(t *testing.T) {
		maker := newTestMatchmaker()
		alice := entity.NewPlayer("conn-a", "alice")
		require.Nil(t, maker.Join(alice))

		withdrawn := maker.Withdraw(alice)

		require.True(t, withdrawn)

		// a later join waits instead of pairing with the gone player
		bob := entity.NewPlayer("conn-b", "bob")
		assert.Nil(t, maker.Join(bob))
	})

	t.Run("Reports false for a player that is not waiting", func(t *testing.T) {
		maker := newTestMatchmaker()
		alice := entity.NewPlayer("conn-a", "alice")
		bob := entity.NewPlayer("conn-b", "bob")
		require.Nil(t, maker.Join(alice))
		require.NotNil(t, maker.Join(bob))

		assert.False(t, maker.Withdraw(alice))
		assert.False(t, maker.Withdraw(bob))
		assert.False(t, maker.Withdraw(entity.NewPlayer("conn-c", "carol")))
	})
}

func TestMatchmakerConcurrentJoins(t *testing.T) {
	t.Run("Concurrent joins never double-park and pair everyone exactly once", func(t *testing.T) {
		maker := newTestMatchmaker()

		const total = 10
		players := make([]*entity.Player, total)
		for i := range players {
			players[i] = entity.NewPlayer(fmt.Sprintf("conn-%d", i), fmt.Sprintf("player-%d", i))
		}

		var wg sync.WaitGroup
		wg.Add(total)
		for _, player := range players {
			go func(p *entity.Player) {
				defer wg.Done()
				maker.Join(p)
			}(player)
		}
		wg.Wait()

		// Then: every player ended up in exactly one match, each match holds
		// two players that reference it back
		matches := make(map[string]int)
		for _, player := range players {
			match := player.Match()
			require.NotNil(t, match, "player %s was left unpaired", player.ID)
			matches[match.ID]++

			opponent := match.Opponent(player)
			require.NotNil(t, opponent)
			assert.Same(t, match, opponent.Match())
			assert.NotEqual(t, player.ID, opponent.ID)
		}

		assert.Len(t, matches, total/2)
		for id, count := range matches {
			assert.Equal(t, 2, count, "match %s", id)
		}
	})
}
