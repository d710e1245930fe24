package model

import "fmt"

// CastleRookMove is the rook leg of a castling move, kept on the Move so
// clients can animate it alongside the king.
type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Move describes the displacement a command performs: which piece left which
// square for which square, what it captured, and any promotion or castling
// side effect.
type Move struct {
	Piece          Piece           `json:"piece"`
	From           Position        `json:"from"`
	To             Position        `json:"to"`
	Captured       *Piece          `json:"captured"`
	Promotion      PieceType       `json:"promotion,omitempty"`
	CastleRookMove *CastleRookMove `json:"castleRookMove,omitempty"`
}

// Notation renders the move in algebraic form.
func (m Move) Notation() string {
	if m.CastleRookMove != nil {
		if m.CastleRookMove.From.X < m.From.X {
			return "O-O-O"
		}
		return "O-O"
	}
	capture := ""
	if m.Captured != nil {
		capture = "x"
	}
	fileSpecifier := ""
	if m.Piece.Type == Pawn && m.From.X != m.To.X {
		fileSpecifier = m.From.fileNotation()
	}
	suffix := ""
	if m.Promotion != "" {
		suffix = "=" + m.Promotion.getPieceNotation()
	}
	return fmt.Sprintf("%s%s%s%s%s", m.Piece.Type.getPieceNotation(), fileSpecifier, capture, m.To.squareNotation(), suffix)
}

// Command is an opaque state transition over game snapshots. Applying it
// yields a new snapshot, or reports false when the transition does not fit
// the given state (a stale precondition, not an error).
type Command struct {
	move  *Move
	apply func(Game) (Game, bool)
}

// Apply runs the transition against g. The zero Command is the identity.
func (c Command) Apply(g Game) (Game, bool) {
	if c.apply == nil {
		return g, true
	}
	return c.apply(g)
}

// Move reports the displacement this command (or the head of this command
// chain) performs, nil for pure bookkeeping transitions.
func (c Command) Move() *Move {
	return c.move
}

// Then sequences two commands, short-circuiting when the first does not
// apply. The composite keeps the first non-nil move descriptor.
func (c Command) Then(next Command) Command {
	mv := c.move
	if mv == nil {
		mv = next.move
	}
	return Command{move: mv, apply: func(g Game) (Game, bool) {
		mid, ok := c.Apply(g)
		if !ok {
			return Game{}, false
		}
		return next.Apply(mid)
	}}
}

// MovePiece lifts a Move into a Command. It refuses to apply when the board
// no longer matches the move's preconditions: the moving piece must still sit
// on its origin square and the destination must not hold a friendly piece.
func MovePiece(mv Move) Command {
	m := mv
	return Command{move: &m, apply: func(g Game) (Game, bool) {
		pc, ok := g.Board.PieceAt(mv.From)
		if !ok || pc != mv.Piece {
			return Game{}, false
		}
		if occupant, ok := g.Board.PieceAt(mv.To); ok && occupant.Color == pc.Color {
			return Game{}, false
		}
		pc.HasMoved = true
		g.Board = g.Board.Remove(mv.From).Place(mv.To, pc)
		return g, true
	}}
}

// RemoveAt vacates a square; it does not apply to an empty one.
func RemoveAt(p Position) Command {
	return Command{apply: func(g Game) (Game, bool) {
		if _, ok := g.Board.PieceAt(p); !ok {
			return Game{}, false
		}
		g.Board = g.Board.Remove(p)
		return g, true
	}}
}

// Promote replaces the type of the piece on p.
func Promote(p Position, t PieceType) Command {
	return Command{apply: func(g Game) (Game, bool) {
		pc, ok := g.Board.PieceAt(p)
		if !ok {
			return Game{}, false
		}
		pc.Type = t
		g.Board = g.Board.Place(p, pc)
		return g, true
	}}
}

// EndTurn hands the move to the other player.
var EndTurn = Command{apply: func(g Game) (Game, bool) {
	g.Active, g.Passive = g.Passive, g.Active
	return g, true
}}

// Record attaches u as the resulting game's last update.
func Record(u *Update) Command {
	return Command{apply: func(g Game) (Game, bool) {
		g.Last = u
		return g, true
	}}
}

// Update pairs a game reached by one legal move with the command chain that
// produced it from its predecessor.
type Update struct {
	Game Game
	Cmd  Command
}

// Move reports the displacement the update's command chain performed.
func (u Update) Move() *Move {
	return u.Cmd.Move()
}
