package model

import "sort"

// Board is an immutable mapping from square to piece, at most one piece per
// square. Place and Remove return a fresh Board and never touch the receiver,
// so snapshots can be shared and explored speculatively without defensive
// copies.
type Board struct {
	squares map[Position]Piece
}

type Square struct {
	Position Position `json:"position"`
	Piece    Piece    `json:"piece"`
}

func NewBoard() Board {
	return Board{squares: map[Position]Piece{}}
}

func (b Board) PieceAt(p Position) (Piece, bool) {
	pc, ok := b.squares[p]
	return pc, ok
}

// Place returns a new Board with pc on p, replacing any occupant.
// Out-of-range positions are dropped rather than stored.
func (b Board) Place(p Position, pc Piece) Board {
	if !p.InBounds() {
		return b
	}
	next := b.clone()
	next[p] = pc
	return Board{squares: next}
}

// Remove returns a new Board with p vacated.
func (b Board) Remove(p Position) Board {
	next := b.clone()
	delete(next, p)
	return Board{squares: next}
}

func (b Board) Len() int {
	return len(b.squares)
}

// Squares lists the occupied squares ordered by rank, then file.
func (b Board) Squares() []Square {
	out := make([]Square, 0, len(b.squares))
	for p, pc := range b.squares {
		out = append(out, Square{Position: p, Piece: pc})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Position.Less(out[j].Position)
	})
	return out
}

// King locates the king of the given color.
func (b Board) King(c Color) (Position, bool) {
	for p, pc := range b.squares {
		if pc.Type == King && pc.Color == c {
			return p, true
		}
	}
	return Position{}, false
}

func (b Board) clone() map[Position]Piece {
	next := make(map[Position]Piece, len(b.squares)+1)
	for p, pc := range b.squares {
		next[p] = pc
	}
	return next
}
