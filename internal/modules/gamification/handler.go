package gamification

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/gamification/me", h.Me)
	rg.GET("/gamification/rank", h.Rank)
	rg.GET("/gamification/leaderboard", h.Leaderboard)
	rg.GET("/gamification/stats", h.Stats)
	rg.POST("/gamification/visit", h.PageVisit)
}

func (h *Handler) Me(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	agg, err := h.service.Profile(c.Request.Context(), p.UserID)
	if err != nil {
		if errors.Is(err, ErrUnknownUser) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "No activity profile yet")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load profile")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"profile": agg})
}

func (h *Handler) Rank(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	rank, err := h.service.Rank(c.Request.Context(), p.UserID)
	if err != nil {
		if errors.Is(err, ErrUnknownUser) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "No activity profile yet")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute rank")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rank": rank})
}

func (h *Handler) Leaderboard(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 || v > 100 {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be between 1 and 100")
			return
		}
		limit = v
	}

	top, err := h.service.TopUsers(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load leaderboard")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"leaderboard": top})
}

func (h *Handler) Stats(c *gin.Context) {
	total, err := h.service.TotalActivityCount(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load stats")
		return
	}

	byCategory := make(map[string]int64)
	for _, cat := range []domain.ActivityCategory{
		domain.ActivityPageVisit,
		domain.ActivityProteinSwap,
		domain.ActivityReservation,
		domain.ActivityReception,
		domain.ActivityPostCreation,
		domain.ActivityComment,
		domain.ActivityReaction,
		domain.ActivityEquipmentReq,
	} {
		cnt, err := h.service.CountByCategory(c.Request.Context(), cat)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load stats")
			return
		}
		byCategory[string(cat)] = cnt
	}

	response.Success(c, http.StatusOK, gin.H{
		"total_activities": total,
		"by_category":      byCategory,
	})
}

// PageVisit awards the once-per-session visit point. The engine applies no
// deduplication; the client is responsible for calling this at most once
// per login session.
func (h *Handler) PageVisit(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	if err := h.service.RecordActivity(c.Request.Context(), p.UserID, domain.ActivityPageVisit, "Visited the portal", ""); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record visit")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recorded": true})
}
