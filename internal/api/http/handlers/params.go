package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/support-kit/helpdesk-service/pkg/util"
)

// parseID extracts a positive numeric id from the route. Zero, negative and
// non-numeric values are rejected before any service call.
func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequest("a valid numeric id is required", nil)
	}
	return id, nil
}
