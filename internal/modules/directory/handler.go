package directory

import (
	"errors"
	"net/http"
	"strconv"

	"intraportal/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers directory routes under the protected group.
// Base path is /api/v1/directory
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	dirGroup := rg.Group("/directory")
	{
		dirGroup.GET("/users", h.Search)
		dirGroup.GET("/users/:id", h.Get)
	}
}

func (h *Handler) Search(c *gin.Context) {
	entries, err := h.service.Search(c.Request.Context(), c.Query("q"), c.Query("sector"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"users": entries})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	entry, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": entry})
}
