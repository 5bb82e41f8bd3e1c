package menu

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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

// RegisterRoutes registers cafeteria routes under the protected group.
// Base path is /api/v1/menu
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	menuGroup := rg.Group("/menu")
	{
		menuGroup.GET("/week", h.WeeklyMenu)
		menuGroup.POST("/exchanges", h.RecordExchange)
		menuGroup.GET("/exchanges", h.MonthHistory)
	}
}

func (h *Handler) WeeklyMenu(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"menu": h.service.WeeklyMenu()})
}

func (h *Handler) RecordExchange(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	var req RecordExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	exchange, err := h.service.RecordExchange(c.Request.Context(), principal, req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "MENU_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"exchange": exchange})
}

// MonthHistory defaults to the current month when year/month are omitted.
func (h *Handler) MonthHistory(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	now := time.Now()
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	monthNum, _ := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))

	exchanges, err := h.service.MonthHistory(c.Request.Context(), principal.UserID, year, time.Month(monthNum))
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exchanges": exchanges})
}
