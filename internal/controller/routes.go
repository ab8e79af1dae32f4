package controller

import (
	"github.com/benbeisheim/movereferee-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the REST API under /api.
func RegisterRoutes(app *fiber.App, gameController *GameController) {
	api := app.Group("/api")

	// stateless checks need no proposer
	api.Post("/check", gameController.Check)
	api.Post("/check/batch", gameController.CheckBatch)

	gameRoutes := api.Group("/game", middleware.EnsureProposerID())
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)
}

// RegisterWebSocketRoutes mounts the live game socket at /ws/game/:gameId.
func RegisterWebSocketRoutes(app *fiber.App, wsController *WebSocketController, cfg websocket.Config) {
	app.Use("/ws/*", middleware.EnsureProposerID())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, cfg))
}
