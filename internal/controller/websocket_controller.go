package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/benbeisheim/movereferee-backend/internal/model"
	"github.com/benbeisheim/movereferee-backend/internal/service"
	"github.com/benbeisheim/movereferee-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Locals("wsGameID").(string)
	playerID := c.Locals("wsProposerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("Failed to register connection: %v", err)
		c.Close()
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("read error: %v", err)
			break
		}

		if messageType == websocket.TextMessage {
			var msg ws.Message
			if err := json.Unmarshal(message, &msg); err != nil {
				log.Printf("parse error: %v", err)
				wsc.sendError(gameID, c, err)
				continue
			}

			if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
				log.Printf("handle error: %v", err)
				wsc.sendError(gameID, c, err)
			}
		}
	}

	wsc.gameService.UnregisterConnection(gameID, playerID, c)
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		// accepted moves reach every connection through the game broadcast
		_, err := wsc.gameService.HandleMove(gameID, playerID, move)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(gameID string, c *websocket.Conn, err error) {
	payload := ws.ErrorPayload{Error: err.Error()}
	var reason model.IllegalReason
	if errors.As(err, &reason) {
		payload.Reason = reason.String()
	}

	msg, merr := ws.NewMessage(ws.MessageTypeError, payload)
	if merr != nil {
		log.Printf("failed to marshal error: %v", merr)
		return
	}
	if werr := wsc.gameService.Send(gameID, c, msg); werr != nil {
		log.Printf("failed to send error: %v", werr)
	}
}
