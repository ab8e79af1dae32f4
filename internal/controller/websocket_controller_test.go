package controller

import (
	"encoding/json"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/benbeisheim/movereferee-backend/internal/model"
	"github.com/benbeisheim/movereferee-backend/internal/service"
	"github.com/benbeisheim/movereferee-backend/internal/ws"
	fastws "github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// startSocketServer serves the game socket on a loopback port and returns its base URL.
func startSocketServer(t *testing.T, gs *service.GameService) string {
	t.Helper()
	app := fiber.New(fiber.Config{Immutable: true, DisableStartupMessage: true})
	RegisterWebSocketRoutes(app, NewWebSocketController(gs), websocket.Config{})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go app.Listener(ln)
	t.Cleanup(func() { app.Shutdown() })

	return "ws://" + ln.Addr().String()
}

func dial(t *testing.T, base, gameID, proposer string) *fastws.Conn {
	t.Helper()
	conn, _, err := fastws.DefaultDialer.Dial(base+"/ws/game/"+gameID+"?proposerId="+proposer, nil)
	if err != nil {
		t.Fatalf("dial as %s: %v", proposer, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads messages until match accepts one. Broadcasts run concurrently,
// so stale states may arrive before the one a test waits for.
func readUntil(t *testing.T, conn *fastws.Conn, match func(ws.Message) bool) ws.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		var msg ws.Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if match(msg) {
			return msg
		}
	}
}

func stateWithFEN(fen string) func(ws.Message) bool {
	return func(msg ws.Message) bool {
		if msg.Type != ws.MessageTypeGameState {
			return false
		}
		var state model.GameState
		return json.Unmarshal(msg.Payload, &state) == nil && state.FEN == fen
	}
}

func isError(msg ws.Message) bool {
	return msg.Type == ws.MessageTypeError
}

func sendMove(t *testing.T, conn *fastws.Conn, token string) {
	t.Helper()
	msg, err := ws.NewMessage(ws.MessageTypeMove, model.WSMove{Move: token})
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatal(err)
	}
}

func TestWebSocketGame(t *testing.T) {
	gs := service.NewGameService(service.NewGameManager())
	gameID, _, err := gs.CreateGame("")
	if err != nil {
		t.Fatal(err)
	}
	gs.JoinGame(gameID, "alice")
	gs.JoinGame(gameID, "bob")

	base := startSocketServer(t, gs)
	alice := dial(t, base, gameID, "alice")
	readUntil(t, alice, stateWithFEN(model.StartingFEN))
	bob := dial(t, base, gameID, "bob")
	readUntil(t, bob, stateWithFEN(model.StartingFEN))

	// a move on one connection reaches the other through the broadcast
	sendMove(t, alice, "e4")
	afterE4 := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1"
	readUntil(t, bob, stateWithFEN(afterE4))
	readUntil(t, alice, stateWithFEN(afterE4))

	// the c8 and f8 bishops are both hemmed in by their own pawns
	sendMove(t, bob, "Bb4")
	msg := readUntil(t, bob, isError)
	var payload ws.ErrorPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Reason != "unreachable" {
		t.Fatalf("error payload %+v", payload)
	}

	sendMove(t, alice, "d4")
	msg = readUntil(t, alice, isError)
	payload = ws.ErrorPayload{}
	json.Unmarshal(msg.Payload, &payload)
	if payload.Reason != "" || payload.Error != model.ErrNotYourTurn.Error() {
		t.Fatalf("error payload %+v", payload)
	}

	if err := alice.WriteJSON(ws.Message{Type: "resign"}); err != nil {
		t.Fatal(err)
	}
	msg = readUntil(t, alice, isError)
	payload = ws.ErrorPayload{}
	json.Unmarshal(msg.Payload, &payload)
	if !strings.Contains(payload.Error, "unknown message type") {
		t.Fatalf("error payload %+v", payload)
	}
}

func TestWebSocketDuplicateConnection(t *testing.T) {
	gs := service.NewGameService(service.NewGameManager())
	gameID, _, err := gs.CreateGame("")
	if err != nil {
		t.Fatal(err)
	}
	gs.JoinGame(gameID, "alice")
	gs.JoinGame(gameID, "bob")

	base := startSocketServer(t, gs)
	alice := dial(t, base, gameID, "alice")
	readUntil(t, alice, stateWithFEN(model.StartingFEN))

	second := dial(t, base, gameID, "alice")
	second.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg ws.Message
	if err := second.ReadJSON(&msg); !fastws.IsCloseError(err, fastws.CloseNormalClosure) {
		t.Fatalf("duplicate connection: got %v", err)
	}

	// the first connection stays registered
	bob := dial(t, base, gameID, "bob")
	readUntil(t, bob, stateWithFEN(model.StartingFEN))
	sendMove(t, alice, "Nf3")
	readUntil(t, alice, stateWithFEN("rnbqkbnr/pppppppp/8/8/8/5N2/PPPPPPPP/RNBQKB1R b KQkq - 1 1"))
}

func TestWebSocketUnknownGame(t *testing.T) {
	gs := service.NewGameService(service.NewGameManager())
	base := startSocketServer(t, gs)

	conn := dial(t, base, "missing", "alice")
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg ws.Message
	if err := conn.ReadJSON(&msg); err == nil {
		t.Fatalf("expected the server to close the connection, got %+v", msg)
	}
}
