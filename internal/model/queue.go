package model

import (
	"fmt"
	"sync"
	"time"
)

type QueuedPlayer struct {
	ID       string
	JoinedAt time.Time
}

// Queue holds players waiting to be matched, oldest first.
type Queue struct {
	players []QueuedPlayer
	mu      sync.Mutex
}

func NewQueue() *Queue {
	return &Queue{players: []QueuedPlayer{}}
}

func (q *Queue) AddPlayer(playerID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, p := range q.players {
		if p.ID == playerID {
			return fmt.Errorf("player already in queue")
		}
	}

	q.players = append(q.players, QueuedPlayer{ID: playerID, JoinedAt: time.Now()})
	return nil
}

// GetNextPair pops the two players who have been waiting longest.
// Callers must check Size first.
func (q *Queue) GetNextPair() (string, string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	player1 := q.players[0].ID
	player2 := q.players[1].ID
	q.players = q.players[2:]

	return player1, player2
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.players)
}
