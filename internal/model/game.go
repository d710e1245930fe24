package model

// Player tags a side. Castling and double-push bookkeeping lives on the
// pieces themselves (HasMoved), not here.
type Player struct {
	Color Color `json:"color"`
}

// Game is an immutable snapshot of a game in progress. Active is the player
// to move; every completed turn swaps Active and Passive. Last carries the
// update that produced this snapshot, for rules that need move-history
// context such as en passant eligibility.
type Game struct {
	Board   Board
	Active  Player
	Passive Player
	Last    *Update
}

// Status classifies a game snapshot.
type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCheck     Status = "check"
	StatusCheckmate Status = "checkmate"
	StatusStalemate Status = "stalemate"
	StatusDraw      Status = "draw"
)
