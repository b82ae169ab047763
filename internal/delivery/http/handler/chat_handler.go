package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/swipehire/backend/internal/usecase/chat"
)

type ChatHandler struct {
	chatUseCase *chat.ChatUseCase
}

func NewChatHandler(chatUseCase *chat.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type sendMessageRequest struct {
	Body string `json:"body" binding:"required,max=4000"`
}

// Send posts a message into a match conversation
// @Summary Send message
// @Description Employers can write only after unlocking the match
// @Tags chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param match_id path int true "Match ID"
// @Param request body sendMessageRequest true "Message"
// @Success 201 {object} domain.Message
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /matches/{match_id}/messages [post]
func (h *ChatHandler) Send(c *gin.Context) {
	viewer, ok := requireAccount(c)
	if !ok {
		return
	}

	matchID, err := strconv.Atoi(c.Param("match_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid match id"})
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	message, err := h.chatUseCase.Send(c.Request.Context(), viewer, matchID, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// History lists a match conversation
// @Summary Message history
// @Tags chat
// @Security BearerAuth
// @Produce json
// @Param match_id path int true "Match ID"
// @Param limit query int false "Max messages (default 50)"
// @Param offset query int false "Offset"
// @Success 200 {array} domain.Message
// @Failure 403 {object} ErrorResponse
// @Router /matches/{match_id}/messages [get]
func (h *ChatHandler) History(c *gin.Context) {
	viewer, ok := requireAccount(c)
	if !ok {
		return
	}

	matchID, err := strconv.Atoi(c.Param("match_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid match id"})
		return
	}

	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	messages, err := h.chatUseCase.History(c.Request.Context(), viewer, matchID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}
