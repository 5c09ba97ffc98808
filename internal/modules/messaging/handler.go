package messaging

import (
	"log"
	"net/http"
	"strconv"

	"kbtassist/internal/middleware"
	"kbtassist/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// origin checking is handled by the CORS layer in front of us
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/messages", h.SendMessage)
	rg.GET("/messages/unread", h.UnreadCount)
	rg.GET("/messages/:id", h.ListConversation)
	rg.POST("/messages/read", h.MarkRead)
	rg.GET("/ws", h.Connect)
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	m, err := h.service.SendMessage(c.Request.Context(), middleware.PrincipalFromContext(c), req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid message")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Recipient not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to send message")
		}
		return
	}
	response.Success(c, http.StatusCreated, m)
}

func (h *Handler) ListConversation(c *gin.Context) {
	otherID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || otherID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user id")
		return
	}

	messages, err := h.service.ListConversation(c.Request.Context(), middleware.PrincipalFromContext(c), otherID)
	if err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid conversation")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load conversation")
		return
	}
	response.Success(c, http.StatusOK, messages)
}

func (h *Handler) MarkRead(c *gin.Context) {
	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	count, err := h.service.MarkRead(c.Request.Context(), middleware.PrincipalFromContext(c), req.SenderID)
	if err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid sender")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to mark messages read")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"marked_read": count})
}

func (h *Handler) UnreadCount(c *gin.Context) {
	count, err := h.service.UnreadCount(c.Request.Context(), middleware.PrincipalFromContext(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to count unread messages")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unread": count})
}

// Connect upgrades the request to a websocket and parks the connection in
// the hub until the peer goes away.
func (h *Handler) Connect(c *gin.Context) {
	p := middleware.PrincipalFromContext(c)
	if p.UserID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing identity")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed user_id=%d err=%v", p.UserID, err)
		return
	}

	h.hub.Register(p.UserID, conn)
	defer h.hub.Unregister(p.UserID)

	// drain control frames; clients only receive over this socket
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
