package service

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"shufflechess-backend/internal/model"
	"shufflechess-backend/internal/rules"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// GameManager tracks live matches and pairs queued players. Rule questions
// are answered by the shared RuleBook, which keeps no per-game state.
type GameManager struct {
	rules            *rules.RuleBook
	games            map[string]*Match
	queue            *model.Queue
	matchingChannels map[string]chan string
	mu               sync.RWMutex
}

func NewGameManager(rb *rules.RuleBook) *GameManager {
	gm := &GameManager{
		rules:            rb,
		games:            make(map[string]*Match),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
	}

	go gm.processMatchmaking()

	return gm
}

func (gm *GameManager) processMatchmaking() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		gm.mu.Lock()
		for gm.queue.Size() >= 2 {
			player1, player2 := gm.queue.GetNextPair()

			gameID := uuid.New().String()
			match := NewMatch(gameID, gm.rules)

			p1Color, err := match.AddPlayer(player1)
			if err != nil {
				log.Printf("seat player %s: %v", player1, err)
				continue
			}
			p2Color, err := match.AddPlayer(player2)
			if err != nil {
				log.Printf("seat player %s: %v", player2, err)
				continue
			}
			gm.games[gameID] = match

			gm.notifyMatched(player1, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
			gm.notifyMatched(player2, model.MatchFoundEvent{GameID: gameID, Color: p2Color})
		}
		gm.mu.Unlock()
	}
}

// notifyMatched sends the event to the player's matchmaking channel, if one
// is registered, and retires the channel. Callers hold gm.mu.
func (gm *GameManager) notifyMatched(playerID string, event model.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("marshal match event: %v", err)
		return
	}
	select {
	case ch <- string(payload):
	default:
		log.Printf("drop match event for player %s", playerID)
	}
	delete(gm.matchingChannels, playerID)
	close(ch)
}

func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, ok := gm.matchingChannels[playerID]; ok {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
}

func (gm *GameManager) UnregisterMatchmakingChannel(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	// The channel's creator closes it.
	delete(gm.matchingChannels, playerID)
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return errors.New("game already exists")
	}

	gm.games[gameID] = NewMatch(gameID, gm.rules)
	return nil
}

func (gm *GameManager) getMatch(gameID string) (*Match, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	match, exists := gm.games[gameID]
	if !exists {
		return nil, errors.New("game not found")
	}
	return match, nil
}

func (gm *GameManager) AddPlayerToGame(gameID, playerID string) (model.Color, error) {
	match, err := gm.getMatch(gameID)
	if err != nil {
		return "", err
	}
	return match.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	return gm.queue.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (MatchState, error) {
	match, err := gm.getMatch(gameID)
	if err != nil {
		return MatchState{}, err
	}
	return match.State(), nil
}

func (gm *GameManager) GetLegalDestinations(gameID string, pos model.Position) ([]model.Position, error) {
	match, err := gm.getMatch(gameID)
	if err != nil {
		return nil, err
	}
	return match.LegalDestinations(pos), nil
}

func (gm *GameManager) MakeMove(gameID, playerID string, req MoveRequest) error {
	match, err := gm.getMatch(gameID)
	if err != nil {
		return err
	}
	return match.MakeMove(playerID, req)
}

func (gm *GameManager) RegisterConnection(gameID, playerID string, conn *websocket.Conn) error {
	match, err := gm.getMatch(gameID)
	if err != nil {
		return err
	}
	return match.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID, playerID string) {
	match, err := gm.getMatch(gameID)
	if err != nil {
		return
	}
	match.UnregisterConnection(playerID)
}
