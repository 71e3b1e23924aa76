// chat.go
//
// Conversational routes over the query orchestrator.

package handlers

import (
	"github.com/docuchat/docuchat/internal/services"
	"github.com/docuchat/docuchat/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// ChatHandler handles chat routes
type ChatHandler struct {
	Service *services.RAGService
}

// ChatRequest is the body of POST /api/chat
type ChatRequest struct {
	CollectionID string `json:"collection_id"`
	Message      string `json:"message"`
	TopK         int    `json:"top_k"`
}

// Chat handles POST /api/chat
// @Summary Chat with a collection
// @Description Answer a message using the collection's retrieval index
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body ChatRequest true "Chat message"
// @Success 200 {object} services.ChatResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "chat")
	}

	result, err := h.Service.Chat(c.UserContext(), req.CollectionID, req.Message, req.TopK)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}

// ChatHealth handles GET /api/chat/health
// @Summary Chat service liveness
// @Tags Chat
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /chat/health [get]
func (h *ChatHandler) ChatHealth(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.Map{
		"status":  "healthy",
		"service": "chat",
	}, fiber.StatusOK)
}

// CollectionStatus handles GET /api/chat/collections/:id/status
// @Summary Collection chat readiness
// @Description Report whether a collection is indexed and ready for chat
// @Tags Chat
// @Produce json
// @Param id path string true "Collection ID"
// @Success 200 {object} services.CollectionStatus
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /chat/collections/{id}/status [get]
func (h *ChatHandler) CollectionStatus(c *fiber.Ctx) error {
	status, err := h.Service.Status(c.Params("id"))
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, status, fiber.StatusOK)
}
