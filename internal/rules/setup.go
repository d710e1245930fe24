package rules

import "shufflechess-backend/internal/model"

// backRankOrder fixes the draw order only; each draw takes a uniformly
// random file from the remaining pool, so the arrangement is a random
// permutation of the piece multiset across the eight files.
var backRankOrder = [8]model.PieceType{
	model.Rook, model.Knight, model.Bishop, model.Queen,
	model.King, model.Bishop, model.Knight, model.Rook,
}

func newGame(rng Rand) model.Game {
	board := model.NewBoard()
	board = placeSide(board, rng, model.White, 0, 1)
	board = placeSide(board, rng, model.Black, 7, 6)
	return model.Game{
		Board:   board,
		Active:  model.Player{Color: model.White},
		Passive: model.Player{Color: model.Black},
	}
}

// placeSide deals one color's back rank by sampling files without
// replacement, then fills the adjacent rank with pawns.
func placeSide(board model.Board, rng Rand, color model.Color, backRank, pawnRank int) model.Board {
	files := []int{0, 1, 2, 3, 4, 5, 6, 7}
	for _, pieceType := range backRankOrder {
		if len(files) == 0 {
			panic("rules: back-rank file pool exhausted")
		}
		i := rng.Intn(len(files))
		file := files[i]
		files = append(files[:i], files[i+1:]...)
		board = board.Place(model.Position{X: file, Y: backRank}, model.Piece{Type: pieceType, Color: color})
	}
	for file := 0; file < 8; file++ {
		board = board.Place(model.Position{X: file, Y: pawnRank}, model.Piece{Type: model.Pawn, Color: color})
	}
	return board
}
