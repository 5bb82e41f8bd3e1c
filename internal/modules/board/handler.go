package board

import (
	"errors"
	"net/http"
	"strconv"

	"intraportal/internal/middleware"
	"intraportal/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // Allow all origins (configure in prod)
}

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

// RegisterRoutes registers bulletin board routes under the protected
// group. Base path is /api/v1/board
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	boardGroup := rg.Group("/board")
	{
		boardGroup.GET("/posts", h.ListPosts)
		boardGroup.POST("/posts", h.CreatePost)
		boardGroup.DELETE("/posts/:id", h.DeletePost)
		boardGroup.POST("/posts/:id/comments", h.CreateComment)
		boardGroup.POST("/posts/:id/reactions", h.ToggleReaction)
		boardGroup.GET("/feed", h.Feed)
	}
}

func (h *Handler) ListPosts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	posts, err := h.service.ListPosts(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"posts": posts})
}

func (h *Handler) CreatePost(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), principal, req)
	if err != nil {
		writeBoardError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"post": post})
}

func (h *Handler) DeletePost(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid post ID")
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), principal, id); err != nil {
		writeBoardError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) CreateComment(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid post ID")
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	comment, err := h.service.CreateComment(c.Request.Context(), principal, postID, req)
	if err != nil {
		writeBoardError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"comment": comment})
}

func (h *Handler) ToggleReaction(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid post ID")
		return
	}

	var req ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	added, err := h.service.ToggleReaction(c.Request.Context(), principal, postID, req)
	if err != nil {
		writeBoardError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reacted": added})
}

// Feed upgrades the request to a WebSocket and streams board events to
// the client until it disconnects.
func (h *Handler) Feed(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.hub.Register(principal.UserID, conn)

	// Drain client frames so pings and close frames are processed; the
	// feed itself is server-to-client only.
	go func() {
		defer h.hub.Unregister(principal.UserID)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func writeBoardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "BOARD_ERROR", err.Error())
	}
}
