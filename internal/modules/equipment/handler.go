package equipment

import (
	"errors"
	"net/http"
	"strconv"

	"intraportal/internal/domain"
	"intraportal/internal/middleware"
	"intraportal/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers equipment routes under the protected group.
// Base path is /api/v1/equipment
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	equipGroup := rg.Group("/equipment")
	{
		equipGroup.POST("/requests", h.Submit)
		equipGroup.GET("/requests", h.ListMine)
		equipGroup.DELETE("/requests/:id", h.Cancel)

		admin := equipGroup.Group("", middleware.RequireRole(string(domain.RoleAdmin)))
		{
			admin.GET("/requests/open", h.ListOpen)
			admin.POST("/requests/:id/decision", h.Decide)
		}
	}
}

func (h *Handler) Submit(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	request, err := h.service.Submit(c.Request.Context(), principal, req)
	if err != nil {
		writeEquipmentError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"request": request})
}

func (h *Handler) ListMine(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	requests, err := h.service.ListMine(c.Request.Context(), principal.UserID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requests": requests})
}

func (h *Handler) ListOpen(c *gin.Context) {
	requests, err := h.service.ListOpen(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requests": requests})
}

func (h *Handler) Cancel(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid request ID")
		return
	}

	if err := h.service.Cancel(c.Request.Context(), principal, id); err != nil {
		writeEquipmentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

func (h *Handler) Decide(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid request ID")
		return
	}

	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	request, err := h.service.Decide(c.Request.Context(), principal, id, req.Approve)
	if err != nil {
		writeEquipmentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"request": request})
}

func writeEquipmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrDecided):
		response.Error(c, http.StatusConflict, "ALREADY_DECIDED", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "EQUIPMENT_ERROR", err.Error())
	}
}
