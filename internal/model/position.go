package model

import "fmt"

// Position identifies a square by file (X, 0-7 = a-h) and rank (Y, 0-7 = 1-8).
// White's pieces start on ranks 0-1, black's on ranks 6-7.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < 8 && p.Y >= 0 && p.Y < 8
}

// Less orders positions by rank, then file.
func (p Position) Less(o Position) bool {
	if p.Y != o.Y {
		return p.Y < o.Y
	}
	return p.X < o.X
}

// Add offsets p by o; the result may be out of bounds.
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Position) squareNotation() string {
	return fmt.Sprintf("%c%d", p.X+'a', p.Y+1)
}

func (p Position) fileNotation() string {
	return fmt.Sprintf("%c", p.X+'a')
}
