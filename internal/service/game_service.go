package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/benbeisheim/movereferee-backend/internal/model"
	"github.com/benbeisheim/movereferee-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// CheckRequest asks whether move is legal in the position fen.
type CheckRequest struct {
	FEN  string `json:"fen"`
	Move string `json:"move"`
}

type CheckResult struct {
	Legal    bool          `json:"legal"`
	Origin   *model.Square `json:"origin,omitempty"`
	Notation string        `json:"notation,omitempty"`
	// FEN is the position after the move, en passant target re-derived.
	FEN    string `json:"fen,omitempty"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`
}

// CreateGame registers a game starting from fen, or the standard start when fen is empty.
func (gs *GameService) CreateGame(fen string) (string, model.Position, error) {
	start := model.NewStartingPosition()
	if fen != "" {
		pos, err := model.Decode(fen)
		if err != nil {
			return "", model.Position{}, err
		}
		start = pos
	}

	gameID := uuid.New().String()
	if err := gs.gameManager.CreateGame(gameID, start); err != nil {
		return "", model.Position{}, fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, start, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.PlayerColor, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.WSMove) (model.Ply, error) {
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

// Check validates a move against a standalone position. Illegal moves are reported
// in the result; malformed input is an error.
func (gs *GameService) Check(req CheckRequest) (CheckResult, error) {
	pos, err := model.Decode(req.FEN)
	if err != nil {
		return CheckResult{}, err
	}
	m, err := model.ParseMove(req.Move)
	if err != nil {
		return CheckResult{}, err
	}

	next, res, err := model.Apply(pos, m)
	var reason model.IllegalReason
	if errors.As(err, &reason) {
		return CheckResult{Legal: false, Reason: reason.String()}, nil
	}
	if err != nil {
		return CheckResult{}, err
	}

	origin := res.From
	return CheckResult{
		Legal:    true,
		Origin:   &origin,
		Notation: model.FormatMove(pos, res),
		FEN:      model.Encode(next),
	}, nil
}

// CheckBatch runs independent checks concurrently. Results keep request order;
// per-request failures land in CheckResult.Error.
func (gs *GameService) CheckBatch(ctx context.Context, reqs []CheckRequest) ([]CheckResult, error) {
	results := make([]CheckResult, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, req := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := gs.Check(req)
			if err != nil {
				result = CheckResult{Error: err.Error()}
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

func (gs *GameService) Send(gameID string, conn *websocket.Conn, msg ws.Message) error {
	return gs.gameManager.Send(gameID, conn, msg)
}
