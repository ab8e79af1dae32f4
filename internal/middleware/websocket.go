package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade ensures that requests to WebSocket endpoints are valid WebSocket connection attempts
// carrying a game ID and a proposer ID. Whether the game exists is checked when the connection registers.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		gameID := c.Params("gameId")
		if gameID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}

		// set by EnsureProposerID
		proposerID, ok := c.Locals("proposerID").(string)
		if !ok || proposerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "proposer ID is required",
			})
		}

		// the connection context differs from the upgrade context, so copy the ids over
		c.Locals("wsGameID", utils.CopyString(gameID))
		c.Locals("wsProposerID", proposerID)

		return c.Next()
	}
}
