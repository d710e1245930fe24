package engine

import (
	"testing"

	"shufflechess-backend/internal/model"
)

func TestCheckDetection(t *testing.T) {
	whiteKing := model.Piece{Type: model.King, Color: model.White}
	kingAt := model.Position{X: 4, Y: 0}

	tests := []struct {
		name    string
		squares map[model.Position]model.Piece
		want    bool
	}{
		{
			name: "rook on the file",
			squares: map[model.Position]model.Piece{
				{X: 4, Y: 7}: {Type: model.Rook, Color: model.Black},
			},
			want: true,
		},
		{
			name: "rook blocked by own pawn",
			squares: map[model.Position]model.Piece{
				{X: 4, Y: 7}: {Type: model.Rook, Color: model.Black},
				{X: 4, Y: 3}: {Type: model.Pawn, Color: model.White},
			},
			want: false,
		},
		{
			name: "queen on the diagonal",
			squares: map[model.Position]model.Piece{
				{X: 7, Y: 3}: {Type: model.Queen, Color: model.Black},
			},
			want: true,
		},
		{
			name: "bishop does not attack along ranks",
			squares: map[model.Position]model.Piece{
				{X: 0, Y: 0}: {Type: model.Bishop, Color: model.Black},
			},
			want: false,
		},
		{
			name: "knight",
			squares: map[model.Position]model.Piece{
				{X: 3, Y: 2}: {Type: model.Knight, Color: model.Black},
			},
			want: true,
		},
		{
			name: "black pawn attacks downward",
			squares: map[model.Position]model.Piece{
				{X: 3, Y: 1}: {Type: model.Pawn, Color: model.Black},
			},
			want: true,
		},
		{
			name: "black pawn never attacks from below",
			squares: map[model.Position]model.Piece{
				{X: 4, Y: 1}: {Type: model.Pawn, Color: model.Black},
			},
			want: false,
		},
		{
			name: "adjacent enemy king",
			squares: map[model.Position]model.Piece{
				{X: 5, Y: 1}: {Type: model.King, Color: model.Black},
			},
			want: true,
		},
		{
			name:    "no attackers",
			squares: map[model.Position]model.Piece{},
			want:    false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			squares := map[model.Position]model.Piece{kingAt: whiteKing}
			for pos, pc := range tt.squares {
				squares[pos] = pc
			}
			g := gameWith(model.White, squares)
			if got := (Checker{}).Check(g, g.Active); got != tt.want {
				t.Fatalf("check = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWhitePawnAttacksUpward(t *testing.T) {
	g := gameWith(model.Black, map[model.Position]model.Piece{
		{X: 4, Y: 4}: {Type: model.King, Color: model.Black},
		{X: 3, Y: 3}: {Type: model.Pawn, Color: model.White},
	})
	if !(Checker{}).Check(g, g.Active) {
		t.Fatal("white pawn attack not detected")
	}
}

func TestCheckWithoutKing(t *testing.T) {
	g := gameWith(model.White, map[model.Position]model.Piece{
		{X: 0, Y: 0}: {Type: model.Rook, Color: model.Black},
	})
	if (Checker{}).Check(g, g.Active) {
		t.Fatal("kingless side reported in check")
	}
}
