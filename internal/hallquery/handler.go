package hallquery

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mbokatech/hall-management-backend/internal/apperror"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 🔍 Public Hall Search - GET /halls
// Query params: city, premium, capacity_min, capacity_max, q, event_type,
// date (YYYY-MM-DD), price_min, price_max, sort, page, limit
func (h *Handler) ListPublicHalls(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := PublicListFilter{
		City:      c.Query("city"),
		Keyword:   c.Query("q"),
		EventType: c.Query("event_type"),
		Sort:      c.DefaultQuery("sort", SortFeatured),
		Page:      page,
		Limit:     limit,
	}

	if premiumStr := c.Query("premium"); premiumStr != "" {
		premium := premiumStr == "true"
		filter.IsPremium = &premium
	}
	if v := c.Query("capacity_min"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.CapacityMin = &n
		}
	}
	if v := c.Query("capacity_max"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.CapacityMax = &n
		}
	}
	if v := c.Query("price_min"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.PriceMin = &f
		}
	}
	if v := c.Query("price_max"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.PriceMax = &f
		}
	}
	if v := c.Query("date"); v != "" {
		date, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
			return
		}
		filter.Date = &date
	}

	result, err := h.Service.GetPublicHallList(filter)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ===========================
// 📄 Public Hall Detail - GET /halls/:slug
func (h *Handler) GetPublicHallDetail(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slug"})
		return
	}

	detail, err := h.Service.GetPublicHallDetail(c.Request.Context(), slug)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}
