package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/benbeisheim/movereferee-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

var (
	ErrGameFull    = errors.New("game is full")
	ErrNotInGame   = errors.New("player not in game")
	ErrNotYourTurn = errors.New("not your turn")
)

// The connections for a specific game
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
	writeMu     sync.Mutex // one writer per conn at a time
}

// Game holds the authoritative position of one refereed game. Every
// check-apply-derive sequence runs under mu.
type Game struct {
	ID          string
	mu          sync.Mutex
	position    Position
	history     []Ply
	players     Players
	connections *GameConnections
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

type GameState struct {
	FEN         string      `json:"fen"`
	ToMove      PlayerColor `json:"toMove"`
	EnPassant   *Square     `json:"enPassantTarget"`
	MoveHistory []Ply       `json:"moveHistory"`
	LastMove    *SimpleMove `json:"lastMove"`
	Players     Players     `json:"players"`
}

func NewGame(id string, start Position) *Game {
	return &Game{
		ID:          id,
		position:    start,
		history:     make([]Ply, 0),
		connections: NewGameConnections(),
	}
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// AddPlayer seats playerID as white, then black. Rejoining returns the existing seat.
func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if color, ok := g.seatOf(playerID); ok {
		return color, nil
	}
	if g.players.White.ID == "" {
		g.players.White = ClientPlayer{ID: playerID, Color: PlayerColorWhite}
		return PlayerColorWhite, nil
	}
	if g.players.Black.ID == "" {
		g.players.Black = ClientPlayer{ID: playerID, Color: PlayerColorBlack}
		return PlayerColorBlack, nil
	}
	return "", ErrGameFull
}

func (g *Game) seatOf(playerID string) (PlayerColor, bool) {
	if playerID == "" {
		return "", false
	}
	if g.players.White.ID == playerID {
		return PlayerColorWhite, true
	}
	if g.players.Black.ID == playerID {
		return PlayerColorBlack, true
	}
	return "", false
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state()
}

func (g *Game) state() GameState {
	history := make([]Ply, len(g.history))
	copy(history, g.history)
	state := GameState{
		FEN:         Encode(g.position),
		ToMove:      g.position.ToMove,
		EnPassant:   g.position.EnPassant,
		MoveHistory: history,
		Players:     g.players,
	}
	if n := len(history); n > 0 {
		state.LastMove = &SimpleMove{From: history[n-1].From, To: history[n-1].To}
	}
	return state
}

// Position returns a copy of the current position.
func (g *Game) Position() Position {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.position
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.seatOf(playerID)
	return ok
}

func (g *Game) canSpectate() bool {
	return g.players.White.ID == "" || g.players.Black.ID == ""
}

// MakeMove checks the proposed token for the seated player, applies it and
// re-derives the en passant target. Illegal moves leave the game untouched.
func (g *Game) MakeMove(playerID string, move WSMove) (Ply, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, ok := g.seatOf(playerID)
	if !ok {
		return Ply{}, ErrNotInGame
	}
	if color != g.position.ToMove {
		return Ply{}, ErrNotYourTurn
	}

	m, err := ParseMove(move.Move)
	if err != nil {
		return Ply{}, err
	}
	next, res, err := Apply(g.position, m)
	if err != nil {
		return Ply{}, fmt.Errorf("move %q: %w", move.Move, err)
	}

	ply := makePly(g.position, res, next)
	g.position = next
	g.history = append(g.history, ply)
	log.Printf("game %s: %s played %s, fen %s", g.ID, color, ply.Notation, ply.FEN)

	go g.broadcastState(g.state())

	return ply, nil
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	connID := fmt.Sprintf("%p", conn)

	g.mu.Lock()
	_, seated := g.seatOf(playerID)
	isAuthorized := seated || g.canSpectate()
	state := g.state()
	g.mu.Unlock()

	if !isAuthorized {
		return errors.New("not authorized to join this game")
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// keep the existing connection, reject the duplicate
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}

	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Printf("game %s: registered connection %s for player %s", g.ID, connID, playerID)

	go g.broadcastState(state)
	return nil
}

// UnregisterConnection drops conn for playerID if it is still the registered one.
func (g *Game) UnregisterConnection(playerID string, conn *websocket.Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		log.Printf("game %s: unregistering connection %p for player %s", g.ID, conn, playerID)
		delete(g.connections.connections, playerID)
	}
}

func (g *Game) broadcastState(state GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("game %s: failed to marshal state: %v", g.ID, err)
		return
	}

	// snapshot under the read lock, write without it
	g.connections.mu.RLock()
	activeConnections := make(map[string]*websocket.Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		activeConnections[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range activeConnections {
		if err := g.Send(conn, ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			log.Printf("game %s: failed to send state to player %s: %v", g.ID, playerID, err)
			g.UnregisterConnection(playerID, conn)
		}
	}
}

// Send writes msg to conn, serialized with the game's broadcasts.
func (g *Game) Send(conn *websocket.Conn, msg ws.Message) error {
	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()

	return conn.WriteJSON(msg)
}
