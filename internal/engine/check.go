package engine

import "shufflechess-backend/internal/model"

// Checker detects attacked kings by scanning outward from the king's square.
type Checker struct{}

// Check reports whether player's king is attacked in g. A board without that
// king cannot be in check.
func (c Checker) Check(g model.Game, player model.Player) bool {
	kingPos, ok := g.Board.King(player.Color)
	if !ok {
		return false
	}
	return squareAttacked(g.Board, player.Color.Opponent(), kingPos)
}

func squareAttacked(board model.Board, attacker model.Color, pos model.Position) bool {
	if rayAttacked(board, attacker, pos, rookDirs, model.Rook) {
		return true
	}
	if rayAttacked(board, attacker, pos, bishopDirs, model.Bishop) {
		return true
	}
	for _, dir := range knightDirs {
		if pieceOn(board, pos.Add(dir), attacker, model.Knight) {
			return true
		}
	}
	for _, dir := range kingDirs {
		if pieceOn(board, pos.Add(dir), attacker, model.King) {
			return true
		}
	}
	// Pawns attack toward higher ranks for white, lower for black, so the
	// attacking pawn sits one rank behind pos in its own direction of play.
	pawnRank := pos.Y - 1
	if attacker == model.Black {
		pawnRank = pos.Y + 1
	}
	for _, dx := range []int{-1, 1} {
		if pieceOn(board, model.Position{X: pos.X + dx, Y: pawnRank}, attacker, model.Pawn) {
			return true
		}
	}
	return false
}

// rayAttacked walks each direction until a piece blocks it; queens attack
// along both ray families.
func rayAttacked(board model.Board, attacker model.Color, pos model.Position, dirs []model.Position, slider model.PieceType) bool {
	for _, dir := range dirs {
		target := pos.Add(dir)
		for target.InBounds() {
			if piece, ok := board.PieceAt(target); ok {
				if piece.Color == attacker && (piece.Type == slider || piece.Type == model.Queen) {
					return true
				}
				break
			}
			target = target.Add(dir)
		}
	}
	return false
}

func pieceOn(board model.Board, pos model.Position, color model.Color, t model.PieceType) bool {
	if !pos.InBounds() {
		return false
	}
	piece, ok := board.PieceAt(pos)
	return ok && piece.Color == color && piece.Type == t
}
