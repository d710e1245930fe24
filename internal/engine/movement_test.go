package engine

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"shufflechess-backend/internal/model"
)

func gameWith(active model.Color, squares map[model.Position]model.Piece) model.Game {
	board := model.NewBoard()
	for pos, pc := range squares {
		board = board.Place(pos, pc)
	}
	return model.Game{
		Board:   board,
		Active:  model.Player{Color: active},
		Passive: model.Player{Color: active.Opponent()},
	}
}

func destinations(cmds []model.Command) []model.Position {
	out := make([]model.Position, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, c.Move().To)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func TestKnightMoves(t *testing.T) {
	knight := model.Piece{Type: model.Knight, Color: model.White}
	tests := []struct {
		name string
		at   model.Position
		want int
	}{
		{name: "center", at: model.Position{X: 4, Y: 4}, want: 8},
		{name: "corner", at: model.Position{X: 0, Y: 0}, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gameWith(model.White, map[model.Position]model.Piece{tt.at: knight})
			cmds := Movement{}.GetCommands(g, tt.at, knight)
			if len(cmds) != tt.want {
				t.Fatalf("knight at %+v has %d moves, want %d", tt.at, len(cmds), tt.want)
			}
		})
	}
}

func TestSliderBlocking(t *testing.T) {
	rook := model.Piece{Type: model.Rook, Color: model.White}
	at := model.Position{X: 0, Y: 0}
	g := gameWith(model.White, map[model.Position]model.Piece{
		at:           rook,
		{X: 0, Y: 3}: {Type: model.Pawn, Color: model.White},
		{X: 3, Y: 0}: {Type: model.Pawn, Color: model.Black},
	})

	want := []model.Position{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}}
	sort.Slice(want, func(i, j int) bool { return want[i].Less(want[j]) })
	got := destinations(Movement{}.GetCommands(g, at, rook))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rook destinations (-want +got):\n%s", diff)
	}
}

func TestPawnAdvances(t *testing.T) {
	pawn := model.Piece{Type: model.Pawn, Color: model.White}
	movedPawn := pawn
	movedPawn.HasMoved = true

	tests := []struct {
		name   string
		piece  model.Piece
		extra  map[model.Position]model.Piece
		want   int
	}{
		{name: "unmoved", piece: pawn, want: 2},
		{name: "already moved", piece: movedPawn, want: 1},
		{
			name:  "blocked",
			piece: pawn,
			extra: map[model.Position]model.Piece{{X: 3, Y: 2}: {Type: model.Knight, Color: model.Black}},
			want:  0,
		},
		{
			name:  "double square blocked",
			piece: pawn,
			extra: map[model.Position]model.Piece{{X: 3, Y: 3}: {Type: model.Knight, Color: model.Black}},
			want:  1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := model.Position{X: 3, Y: 1}
			squares := map[model.Position]model.Piece{at: tt.piece}
			for pos, pc := range tt.extra {
				squares[pos] = pc
			}
			g := gameWith(model.White, squares)
			cmds := Movement{}.GetCommands(g, at, tt.piece)
			if len(cmds) != tt.want {
				t.Fatalf("pawn has %d moves, want %d", len(cmds), tt.want)
			}
		})
	}
}

func TestPawnCaptures(t *testing.T) {
	pawn := model.Piece{Type: model.Pawn, Color: model.White, HasMoved: true}
	at := model.Position{X: 3, Y: 3}
	g := gameWith(model.White, map[model.Position]model.Piece{
		at:           pawn,
		{X: 2, Y: 4}: {Type: model.Knight, Color: model.Black},
		{X: 4, Y: 4}: {Type: model.Bishop, Color: model.White}, // friendly, not capturable
		{X: 3, Y: 4}: {Type: model.Pawn, Color: model.Black},   // blocks the push
	})

	got := destinations(Movement{}.GetCommands(g, at, pawn))
	want := []model.Position{{X: 2, Y: 4}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("pawn destinations (-want +got):\n%s", diff)
	}
}

func TestPawnPromotionFanOut(t *testing.T) {
	pawn := model.Piece{Type: model.Pawn, Color: model.White, HasMoved: true}
	at := model.Position{X: 0, Y: 6}
	g := gameWith(model.White, map[model.Position]model.Piece{at: pawn})

	cmds := Movement{}.GetCommands(g, at, pawn)
	if len(cmds) != 4 {
		t.Fatalf("promoting pawn has %d commands, want one per promotion type", len(cmds))
	}
	seen := map[model.PieceType]bool{}
	for _, cmd := range cmds {
		next, ok := cmd.Apply(g)
		if !ok {
			t.Fatalf("promotion command did not apply")
		}
		pc, _ := next.Board.PieceAt(model.Position{X: 0, Y: 7})
		if pc.Type == model.Pawn {
			t.Fatal("pawn reached back rank unpromoted")
		}
		if cmd.Move().Promotion != pc.Type {
			t.Fatalf("move promises %s, board holds %s", cmd.Move().Promotion, pc.Type)
		}
		seen[pc.Type] = true
	}
	if len(seen) != 4 {
		t.Fatalf("promotion types seen: %v", seen)
	}
}

func TestPawnEnPassant(t *testing.T) {
	whitePawn := model.Piece{Type: model.Pawn, Color: model.White, HasMoved: true}
	blackPawn := model.Piece{Type: model.Pawn, Color: model.Black, HasMoved: true}
	at := model.Position{X: 4, Y: 4}
	g := gameWith(model.White, map[model.Position]model.Piece{
		at:           whitePawn,
		{X: 3, Y: 4}: blackPawn,
	})
	// The black pawn just advanced two ranks past us.
	lastMove := model.Move{
		Piece: model.Piece{Type: model.Pawn, Color: model.Black},
		From:  model.Position{X: 3, Y: 6},
		To:    model.Position{X: 3, Y: 4},
	}
	g.Last = &model.Update{Cmd: model.MovePiece(lastMove)}

	cmds := Movement{}.GetCommands(g, at, whitePawn)
	var enPassant *model.Command
	for i, cmd := range cmds {
		if cmd.Move().To == (model.Position{X: 3, Y: 5}) {
			enPassant = &cmds[i]
		}
	}
	if enPassant == nil {
		t.Fatalf("no en passant capture among %v", destinations(cmds))
	}

	next, ok := enPassant.Apply(g)
	if !ok {
		t.Fatal("en passant did not apply")
	}
	if _, occupied := next.Board.PieceAt(model.Position{X: 3, Y: 4}); occupied {
		t.Fatal("captured pawn still on board")
	}
	if pc, _ := next.Board.PieceAt(model.Position{X: 3, Y: 5}); pc.Type != model.Pawn || pc.Color != model.White {
		t.Fatalf("capture square holds %+v", pc)
	}
}

func TestPawnEnPassantRequiresFreshDoublePush(t *testing.T) {
	whitePawn := model.Piece{Type: model.Pawn, Color: model.White, HasMoved: true}
	at := model.Position{X: 4, Y: 4}
	g := gameWith(model.White, map[model.Position]model.Piece{
		at:           whitePawn,
		{X: 3, Y: 4}: {Type: model.Pawn, Color: model.Black, HasMoved: true},
	})
	// Last move was a single step, so no en passant.
	lastMove := model.Move{
		Piece: model.Piece{Type: model.Pawn, Color: model.Black, HasMoved: true},
		From:  model.Position{X: 3, Y: 5},
		To:    model.Position{X: 3, Y: 4},
	}
	g.Last = &model.Update{Cmd: model.MovePiece(lastMove)}

	for _, cmd := range (Movement{}).GetCommands(g, at, whitePawn) {
		if cmd.Move().To == (model.Position{X: 3, Y: 5}) && cmd.Move().Captured != nil {
			t.Fatal("en passant offered without a fresh double push")
		}
	}
}

func TestCastling(t *testing.T) {
	king := model.Piece{Type: model.King, Color: model.White}
	rook := model.Piece{Type: model.Rook, Color: model.White}
	movedRook := model.Piece{Type: model.Rook, Color: model.White, HasMoved: true}

	tests := []struct {
		name    string
		squares map[model.Position]model.Piece
		kingAt  model.Position
		want    []model.Position // castle destinations for the king
	}{
		{
			name: "both wings clear",
			squares: map[model.Position]model.Piece{
				{X: 4, Y: 0}: king,
				{X: 0, Y: 0}: rook,
				{X: 7, Y: 0}: rook,
			},
			kingAt: model.Position{X: 4, Y: 0},
			want:   []model.Position{{X: 2, Y: 0}, {X: 6, Y: 0}},
		},
		{
			name: "blocked lane",
			squares: map[model.Position]model.Piece{
				{X: 4, Y: 0}: king,
				{X: 0, Y: 0}: rook,
				{X: 2, Y: 0}: {Type: model.Bishop, Color: model.White},
			},
			kingAt: model.Position{X: 4, Y: 0},
			want:   nil,
		},
		{
			name: "rook already moved",
			squares: map[model.Position]model.Piece{
				{X: 4, Y: 0}: king,
				{X: 7, Y: 0}: movedRook,
			},
			kingAt: model.Position{X: 4, Y: 0},
			want:   nil,
		},
		{
			name: "rook too close for the two-file step",
			squares: map[model.Position]model.Piece{
				{X: 4, Y: 0}: king,
				{X: 6, Y: 0}: rook,
			},
			kingAt: model.Position{X: 4, Y: 0},
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gameWith(model.White, tt.squares)
			var got []model.Position
			for _, cmd := range (Movement{}).GetCommands(g, tt.kingAt, king) {
				if cmd.Move().CastleRookMove != nil {
					got = append(got, cmd.Move().To)
				}
			}
			sort.Slice(got, func(i, j int) bool { return got[i].Less(got[j]) })
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("castle destinations (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCastlingMovesBothPieces(t *testing.T) {
	king := model.Piece{Type: model.King, Color: model.White}
	rook := model.Piece{Type: model.Rook, Color: model.White}
	g := gameWith(model.White, map[model.Position]model.Piece{
		{X: 4, Y: 0}: king,
		{X: 0, Y: 0}: rook,
	})

	var castle *model.Command
	cmds := Movement{}.GetCommands(g, model.Position{X: 4, Y: 0}, king)
	for i, cmd := range cmds {
		if cmd.Move().CastleRookMove != nil {
			castle = &cmds[i]
		}
	}
	if castle == nil {
		t.Fatal("no castle command generated")
	}

	next, ok := castle.Apply(g)
	if !ok {
		t.Fatal("castle did not apply")
	}
	if pc, _ := next.Board.PieceAt(model.Position{X: 2, Y: 0}); pc.Type != model.King {
		t.Fatalf("king square holds %+v", pc)
	}
	if pc, _ := next.Board.PieceAt(model.Position{X: 3, Y: 0}); pc.Type != model.Rook {
		t.Fatalf("rook square holds %+v", pc)
	}
	if _, occupied := next.Board.PieceAt(model.Position{X: 0, Y: 0}); occupied {
		t.Fatal("rook origin still occupied")
	}
}
