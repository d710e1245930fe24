package service

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"shufflechess-backend/internal/model"
	"shufflechess-backend/internal/rules"
	"shufflechess-backend/internal/ws"

	"github.com/gofiber/websocket/v2"
)

const initialClockTime = 600 * time.Second

// MoveRequest is a client's wish to move the piece on From to To.
type MoveRequest struct {
	From      model.Position  `json:"from"`
	To        model.Position  `json:"to"`
	Promotion model.PieceType `json:"promotion,omitempty"`
}

// MatchState is the serializable view broadcast to clients.
type MatchState struct {
	Squares  []model.Square `json:"squares"`
	ToMove   model.Color    `json:"toMove"`
	Status   model.Status   `json:"status"`
	LastMove *model.Move    `json:"lastMove"`
	History  []string       `json:"history"`
	Players  struct {
		White model.ClientPlayer `json:"white"`
		Black model.ClientPlayer `json:"black"`
	} `json:"players"`
}

type matchConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
}

// Match owns the authoritative snapshot of one live game plus its observers.
// All rule questions go through the shared RuleBook; the match only decides
// whose request is honored and adopts the resulting snapshot wholesale.
type Match struct {
	ID          string
	mu          sync.Mutex
	rules       *rules.RuleBook
	game        model.Game
	status      model.Status
	history     []string
	seats       map[model.Color]string // playerID by color
	clocks      map[model.Color]*model.Clock
	connections *matchConnections
}

func NewMatch(id string, rb *rules.RuleBook) *Match {
	return &Match{
		ID:     id,
		rules:  rb,
		game:   rb.CreateGame(),
		status: model.StatusOngoing,
		seats:  map[model.Color]string{},
		clocks: map[model.Color]*model.Clock{
			model.White: model.NewClock(initialClockTime),
			model.Black: model.NewClock(initialClockTime),
		},
		connections: &matchConnections{connections: map[string]*websocket.Conn{}},
	}
}

func (m *Match) AddPlayer(playerID string) (model.Color, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.seats[model.White] == "" {
		m.seats[model.White] = playerID
		return model.White, nil
	}
	if m.seats[model.Black] == "" {
		m.seats[model.Black] = playerID
		return model.Black, nil
	}
	return "", errors.New("game is full")
}

func (m *Match) IsPlayerInGame(playerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isPlayerInGame(playerID)
}

func (m *Match) isPlayerInGame(playerID string) bool {
	return playerID != "" && (m.seats[model.White] == playerID || m.seats[model.Black] == playerID)
}

func (m *Match) CanSpectate() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seats[model.White] == "" || m.seats[model.Black] == ""
}

// MakeMove resolves the request against the legal updates for the origin
// square and, when one matches, replaces the match snapshot with the
// update's game.
func (m *Match) MakeMove(playerID string, req MoveRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	mover := m.game.Active.Color
	if m.seats[mover] != playerID {
		return errors.New("not your turn")
	}
	if m.status == model.StatusCheckmate || m.status == model.StatusStalemate || m.status == model.StatusDraw {
		return errors.New("game is over")
	}

	var chosen *model.Update
	for _, u := range m.rules.GetUpdates(m.game, req.From) {
		mv := u.Move()
		if mv != nil && mv.To == req.To && mv.Promotion == req.Promotion {
			chosen = &u
			break
		}
	}
	if chosen == nil {
		return errors.New("illegal move")
	}

	m.clocks[mover].Stop()
	m.game = chosen.Game
	m.status = m.rules.GetStatus(m.game)
	m.history = append(m.history, chosen.Move().Notation())
	if m.status == model.StatusOngoing || m.status == model.StatusCheck {
		m.clocks[m.game.Active.Color].Start()
	}

	go m.broadcastState()
	return nil
}

// LegalDestinations lists the squares the piece on pos may legally move to.
func (m *Match) LegalDestinations(pos model.Position) []model.Position {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := map[model.Position]bool{}
	targets := []model.Position{}
	for _, u := range m.rules.GetUpdates(m.game, pos) {
		if mv := u.Move(); mv != nil && !seen[mv.To] {
			seen[mv.To] = true
			targets = append(targets, mv.To)
		}
	}
	return targets
}

func (m *Match) State() MatchState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state()
}

func (m *Match) state() MatchState {
	st := MatchState{
		Squares: m.game.Board.Squares(),
		ToMove:  m.game.Active.Color,
		Status:  m.status,
		History: append([]string{}, m.history...),
	}
	if m.game.Last != nil {
		st.LastMove = m.game.Last.Move()
	}
	st.Players.White = model.ClientPlayer{
		ID:       m.seats[model.White],
		Color:    model.White,
		TimeLeft: int(m.clocks[model.White].TimeLeft().Milliseconds() / 100),
	}
	st.Players.Black = model.ClientPlayer{
		ID:       m.seats[model.Black],
		Color:    model.Black,
		TimeLeft: int(m.clocks[model.Black].TimeLeft().Milliseconds() / 100),
	}
	return st
}

func (m *Match) RegisterConnection(playerID string, conn *websocket.Conn) error {
	m.mu.Lock()
	authorized := m.isPlayerInGame(playerID) || m.seats[model.White] == "" || m.seats[model.Black] == ""
	m.mu.Unlock()

	if !authorized {
		return errors.New("not authorized to join this game")
	}

	m.connections.mu.Lock()
	if _, exists := m.connections.connections[playerID]; exists {
		// Keep the healthy connection, reject the newcomer.
		m.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "connection already exists"),
		)
		conn.Close()
		return nil
	}
	m.connections.connections[playerID] = conn
	m.connections.mu.Unlock()

	go m.broadcastState()
	return nil
}

func (m *Match) UnregisterConnection(playerID string) {
	m.connections.mu.Lock()
	defer m.connections.mu.Unlock()
	delete(m.connections.connections, playerID)
}

func (m *Match) broadcastState() {
	m.mu.Lock()
	state := m.state()
	m.mu.Unlock()

	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("marshal match state: %v", err)
		return
	}

	m.connections.mu.RLock()
	active := make(map[string]*websocket.Conn, len(m.connections.connections))
	for playerID, conn := range m.connections.connections {
		active[playerID] = conn
	}
	m.connections.mu.RUnlock()

	for playerID, conn := range active {
		err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		})
		if err != nil {
			log.Printf("send state to player %s: %v", playerID, err)
			m.connections.mu.Lock()
			delete(m.connections.connections, playerID)
			m.connections.mu.Unlock()
		}
	}
}
