package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"shufflechess-backend/internal/service"
	"shufflechess-backend/internal/ws"

	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{gameService: gameService}
}

// HandleConnection runs the message loop for one game connection.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("register connection: %v", err)
		c.Close()
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("read error: %v", err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("parse error: %v", err)
			continue
		}

		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			wsc.sendError(c, err.Error())
		}
	}

	wsc.gameService.UnregisterConnection(gameID, playerID)
}

// HandleMatchmaking parks the connection until the manager pairs the player,
// then forwards the match event and closes.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID := c.Locals("playerID").(string)

	ch := make(chan string, 1)
	wsc.gameService.RegisterMatchmakingChannel(playerID, ch)
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID)

	event, ok := <-ch
	if !ok {
		c.Close()
		return
	}
	c.WriteJSON(ws.Message{
		Type:    ws.MessageTypeMatchFound,
		Payload: json.RawMessage(event),
	})
	c.Close()
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var req service.MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		return wsc.gameService.HandleMove(gameID, playerID, req)
	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(c *websocket.Conn, errorMsg string) {
	payload, err := json.Marshal(errorPayload{Error: errorMsg})
	if err != nil {
		return
	}
	c.WriteJSON(ws.Message{
		Type:    ws.MessageTypeError,
		Payload: json.RawMessage(payload),
	})
}

type errorPayload struct {
	Error string `json:"error"`
}
