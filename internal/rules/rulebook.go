// Package rules implements the rule core for a randomized-start chess
// variant: game setup with a shuffled back rank, and enumeration of
// fully-legal moves over immutable game snapshots. Movement shapes, check
// detection, and end-of-game classification are consumed through interfaces.
package rules

import (
	"math/rand"

	"shufflechess-backend/internal/model"
)

// Movement yields every pseudo-legal command for the piece on a square,
// each independently executable against the given game.
type Movement interface {
	GetCommands(g model.Game, at model.Position, piece model.Piece) []model.Command
}

// Check reports whether a player's king is attacked in the given game.
type Check interface {
	Check(g model.Game, player model.Player) bool
}

// EndRule classifies a game snapshot.
type EndRule interface {
	GetStatus(g model.Game) model.Status
}

// Rand is the random-index source consumed by game setup. *rand.Rand
// satisfies it; tests substitute deterministic sources.
type Rand interface {
	Intn(n int) int
}

// globalRand delegates to the shared, lock-protected top-level source, so a
// RuleBook built without an explicit source stays safe under concurrent
// CreateGame calls.
type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }

// RuleBook is the single entry point for game creation, status queries and
// legal-move enumeration. It holds no per-game state and may be shared
// across any number of games.
type RuleBook struct {
	movement Movement
	check    Check
	endRule  EndRule
	rng      Rand
}

// NewRuleBook wires the collaborator engines. A nil rng selects the shared
// math/rand source.
func NewRuleBook(movement Movement, check Check, endRule EndRule, rng Rand) *RuleBook {
	if rng == nil {
		rng = globalRand{}
	}
	return &RuleBook{movement: movement, check: check, endRule: endRule, rng: rng}
}

// CreateGame builds a fresh game with randomized back ranks. White moves
// first.
func (rb *RuleBook) CreateGame() model.Game {
	return newGame(rb.rng)
}

// GetStatus delegates classification to the end-rule engine.
func (rb *RuleBook) GetStatus(g model.Game) model.Status {
	return rb.endRule.GetStatus(g)
}

// GetUpdates returns the games reachable by one fully-legal move of the
// piece on pos, paired with the commands that produce them. Order is not
// significant.
func (rb *RuleBook) GetUpdates(g model.Game, pos model.Position) []model.Update {
	return legalUpdates(g, pos, rb.movement, rb.check)
}
