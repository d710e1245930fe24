package engine

import "shufflechess-backend/internal/model"

// Arbiter classifies game snapshots: checkmate or stalemate when the active
// player has no fully-legal move, draw on insufficient material, otherwise
// check or ongoing.
type Arbiter struct {
	movement Movement
	checker  Checker
}

func NewArbiter() Arbiter {
	return Arbiter{}
}

func (a Arbiter) GetStatus(g model.Game) model.Status {
	inCheck := a.checker.Check(g, g.Active)
	if !a.hasLegalMove(g) {
		if inCheck {
			return model.StatusCheckmate
		}
		return model.StatusStalemate
	}
	if insufficientMaterial(g.Board) {
		return model.StatusDraw
	}
	if inCheck {
		return model.StatusCheck
	}
	return model.StatusOngoing
}

// hasLegalMove looks for any pseudo-legal command of the active player whose
// speculative application leaves the mover's king safe.
func (a Arbiter) hasLegalMove(g model.Game) bool {
	for _, sq := range g.Board.Squares() {
		if sq.Piece.Color != g.Active.Color {
			continue
		}
		for _, cmd := range a.movement.GetCommands(g, sq.Position, sq.Piece) {
			next, ok := cmd.Apply(g)
			if !ok {
				continue
			}
			if !a.checker.Check(next, g.Active) {
				return true
			}
		}
	}
	return false
}

// insufficientMaterial holds for king against king with at most one minor
// piece left on the board.
func insufficientMaterial(board model.Board) bool {
	if board.Len() > 3 {
		return false
	}
	for _, sq := range board.Squares() {
		switch sq.Piece.Type {
		case model.King, model.Bishop, model.Knight:
		default:
			return false
		}
	}
	return true
}
