package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// EnsureProposerID identifies the move proposer from the X-Proposer-ID header or
// the proposerId query parameter and stores it in the "proposerID" local.
func EnsureProposerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("proposerID") != nil {
			return c.Next()
		}

		proposerID := c.Get("X-Proposer-ID")
		if proposerID == "" {
			proposerID = c.Query("proposerId")
		}

		if proposerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Proposer ID is required. Please ensure client is properly initialized.",
			})
		}

		// the id outlives the request when it is stored as a seat
		c.Locals("proposerID", utils.CopyString(proposerID))
		return c.Next()
	}
}
