package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"chatboard/internal/model"
	"chatboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler serves the two-user conversation page
type ChatHandler struct {
	chat    service.ChatService
	appName string
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chat service.ChatService, appName string) *ChatHandler {
	return &ChatHandler{chat: chat, appName: appName}
}

// Chat renders the conversation with the peer named in the path. A
// POST first appends the submitted message, then falls through to
// render the updated conversation.
func (h *ChatHandler) Chat(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		redirectWithError(c, "/login", "You are not logged in")
		return
	}

	partnerID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		redirectWithError(c, "/", "User not found")
		return
	}

	partner, err := h.chat.Partner(c.Request.Context(), partnerID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			redirectWithError(c, "/", "User not found")
			return
		}
		log.Printf("Error loading chat partner %d: %v", partnerID, err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	var sendErr string
	if c.Request.Method == http.MethodPost {
		var req model.SendMessageRequest
		if err := c.ShouldBind(&req); err != nil {
			sendErr = "Message must not be empty"
		} else if _, err := h.chat.Send(c.Request.Context(), userID, partnerID, req.Text); err != nil {
			switch {
			case errors.Is(err, service.ErrMessageEmpty):
				sendErr = "Message must not be empty"
			case errors.Is(err, service.ErrMessageTooLong):
				sendErr = "Message is too long"
			default:
				log.Printf("Error sending message from %d to %d: %v", userID, partnerID, err)
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
		}
	}

	messages, err := h.chat.Conversation(c.Request.Context(), userID, partnerID)
	if err != nil {
		log.Printf("Error loading conversation between %d and %d: %v", userID, partnerID, err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "chat.html", gin.H{
		"AppName":       h.appName,
		"Partner":       partner,
		"Messages":      messages,
		"CurrentUserID": userID,
		"Error":         sendErr,
	})
}

// RegisterChatRoutes registers the chat routes
func (h *ChatHandler) RegisterChatRoutes(r *gin.Engine, sessionMW gin.HandlerFunc) {
	r.GET("/chat/:user_id", sessionMW, h.Chat)
	r.POST("/chat/:user_id", sessionMW, h.Chat)
}
