package controller

import (
	"errors"

	"github.com/benbeisheim/movereferee-backend/internal/model"
	"github.com/benbeisheim/movereferee-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	FEN string `json:"fen"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	gameID, start, err := gc.gameService.CreateGame(req.FEN)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
		"fen":     model.Encode(start),
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("proposerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(gameState)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("proposerID").(string)

	var move model.WSMove
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	ply, err := gc.gameService.HandleMove(gameID, playerID, move)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(ply)
}

func (gc *GameController) Check(c *fiber.Ctx) error {
	var req service.CheckRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	result, err := gc.gameService.Check(req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(result)
}

func (gc *GameController) CheckBatch(c *fiber.Ctx) error {
	var reqs []service.CheckRequest
	if err := c.BodyParser(&reqs); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	results, err := gc.gameService.CheckBatch(c.UserContext(), reqs)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(results)
}

// errorResponse maps domain errors to HTTP statuses.
func errorResponse(c *fiber.Ctx, err error) error {
	body := fiber.Map{"error": err.Error()}

	var reason model.IllegalReason
	switch {
	case errors.As(err, &reason):
		body["reason"] = reason.String()
		return c.Status(fiber.StatusUnprocessableEntity).JSON(body)
	case errors.Is(err, service.ErrGameNotFound):
		return c.Status(fiber.StatusNotFound).JSON(body)
	case errors.Is(err, model.ErrNotInGame), errors.Is(err, model.ErrNotYourTurn):
		return c.Status(fiber.StatusForbidden).JSON(body)
	case errors.Is(err, model.ErrGameFull):
		return c.Status(fiber.StatusConflict).JSON(body)
	case errors.Is(err, model.ErrMalformedState), errors.Is(err, model.ErrMalformedMove),
		errors.Is(err, model.ErrCastlingUnsupported):
		return c.Status(fiber.StatusBadRequest).JSON(body)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}
