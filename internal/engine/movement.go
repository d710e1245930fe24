// Package engine provides the concrete movement, check and end-rule engines
// consumed by the rules package. Movement stays strictly pseudo-legal: it
// knows piece shapes, castling, en passant and promotion, and nothing about
// check.
package engine

import "shufflechess-backend/internal/model"

var (
	rookDirs   = []model.Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirs = []model.Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	queenDirs  = append(append([]model.Position{}, rookDirs...), bishopDirs...)
	knightDirs = []model.Position{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}
	kingDirs   = queenDirs
)

var promotionTypes = []model.PieceType{model.Queen, model.Rook, model.Bishop, model.Knight}

// Movement generates pseudo-legal move commands.
type Movement struct{}

func (m Movement) GetCommands(g model.Game, at model.Position, piece model.Piece) []model.Command {
	switch piece.Type {
	case model.Pawn:
		return pawnCommands(g, at, piece)
	case model.Knight:
		return leaperCommands(g, at, piece, knightDirs)
	case model.Bishop:
		return sliderCommands(g, at, piece, bishopDirs)
	case model.Rook:
		return sliderCommands(g, at, piece, rookDirs)
	case model.Queen:
		return sliderCommands(g, at, piece, queenDirs)
	case model.King:
		return append(leaperCommands(g, at, piece, kingDirs), castleCommands(g, at, piece)...)
	}
	return nil
}

func moveCommand(g model.Game, piece model.Piece, from, to model.Position) model.Command {
	mv := model.Move{Piece: piece, From: from, To: to}
	if occupant, ok := g.Board.PieceAt(to); ok {
		mv.Captured = &occupant
	}
	return model.MovePiece(mv)
}

func leaperCommands(g model.Game, at model.Position, piece model.Piece, dirs []model.Position) []model.Command {
	var cmds []model.Command
	for _, dir := range dirs {
		to := model.Position{X: at.X + dir.X, Y: at.Y + dir.Y}
		if !to.InBounds() {
			continue
		}
		if occupant, ok := g.Board.PieceAt(to); ok && occupant.Color == piece.Color {
			continue
		}
		cmds = append(cmds, moveCommand(g, piece, at, to))
	}
	return cmds
}

func sliderCommands(g model.Game, at model.Position, piece model.Piece, dirs []model.Position) []model.Command {
	var cmds []model.Command
	for _, dir := range dirs {
		to := model.Position{X: at.X + dir.X, Y: at.Y + dir.Y}
		for to.InBounds() {
			occupant, occupied := g.Board.PieceAt(to)
			if occupied && occupant.Color == piece.Color {
				break
			}
			cmds = append(cmds, moveCommand(g, piece, at, to))
			if occupied {
				break
			}
			to = model.Position{X: to.X + dir.X, Y: to.Y + dir.Y}
		}
	}
	return cmds
}

func pawnCommands(g model.Game, at model.Position, piece model.Piece) []model.Command {
	dir := 1
	promotionRank := 7
	if piece.Color == model.Black {
		dir = -1
		promotionRank = 0
	}

	var cmds []model.Command
	push := func(mv model.Move) {
		if mv.To.Y != promotionRank {
			cmds = append(cmds, model.MovePiece(mv))
			return
		}
		for _, t := range promotionTypes {
			promoted := mv
			promoted.Promotion = t
			cmds = append(cmds, model.MovePiece(promoted).Then(model.Promote(mv.To, t)))
		}
	}

	// Single and double advance, never onto an occupied square.
	forward := model.Position{X: at.X, Y: at.Y + dir}
	if forward.InBounds() {
		if _, occupied := g.Board.PieceAt(forward); !occupied {
			push(model.Move{Piece: piece, From: at, To: forward})
			double := model.Position{X: at.X, Y: at.Y + 2*dir}
			if !piece.HasMoved && double.InBounds() {
				if _, occupied := g.Board.PieceAt(double); !occupied {
					push(model.Move{Piece: piece, From: at, To: double})
				}
			}
		}
	}

	// Diagonal captures.
	for _, dx := range []int{-1, 1} {
		to := model.Position{X: at.X + dx, Y: at.Y + dir}
		if !to.InBounds() {
			continue
		}
		if occupant, ok := g.Board.PieceAt(to); ok && occupant.Color != piece.Color {
			mv := model.Move{Piece: piece, From: at, To: to, Captured: &occupant}
			push(mv)
		}
	}

	// En passant: the last update must have been an enemy pawn advancing two
	// ranks to the file next to ours.
	if g.Last != nil {
		if last := g.Last.Move(); last != nil &&
			last.Piece.Type == model.Pawn && last.Piece.Color != piece.Color &&
			abs(last.To.Y-last.From.Y) == 2 && last.To.Y == at.Y && abs(last.To.X-at.X) == 1 {
			captured, _ := g.Board.PieceAt(last.To)
			mv := model.Move{
				Piece:    piece,
				From:     at,
				To:       model.Position{X: last.To.X, Y: at.Y + dir},
				Captured: &captured,
			}
			cmds = append(cmds, model.MovePiece(mv).Then(model.RemoveAt(last.To)))
		}
	}

	return cmds
}

// castleCommands generalizes castling to shuffled back ranks: an unmoved
// king and an unmoved rook on the same rank with every square strictly
// between them empty let the king step two files toward the rook while the
// rook lands on the square the king crossed. Rooks closer than three files
// would collide with the king's two-file step and are skipped.
func castleCommands(g model.Game, at model.Position, king model.Piece) []model.Command {
	if king.HasMoved {
		return nil
	}
	var cmds []model.Command
	for file := 0; file < 8; file++ {
		rookPos := model.Position{X: file, Y: at.Y}
		rook, ok := g.Board.PieceAt(rookPos)
		if !ok || rook.Type != model.Rook || rook.Color != king.Color || rook.HasMoved {
			continue
		}
		gap := rookPos.X - at.X
		if abs(gap) < 3 {
			continue
		}
		step := 1
		if gap < 0 {
			step = -1
		}
		clear := true
		for x := at.X + step; x != rookPos.X; x += step {
			if _, occupied := g.Board.PieceAt(model.Position{X: x, Y: at.Y}); occupied {
				clear = false
				break
			}
		}
		if !clear {
			continue
		}
		crossed := model.Position{X: at.X + step, Y: at.Y}
		kingMv := model.Move{
			Piece:          king,
			From:           at,
			To:             model.Position{X: at.X + 2*step, Y: at.Y},
			CastleRookMove: &model.CastleRookMove{From: rookPos, To: crossed},
		}
		rookMv := model.Move{Piece: rook, From: rookPos, To: crossed}
		cmds = append(cmds, model.MovePiece(kingMv).Then(model.MovePiece(rookMv)))
	}
	return cmds
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
