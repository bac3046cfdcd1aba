package hostapp

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mbokatech/hall-management-backend/internal/apperror"
	"github.com/mbokatech/hall-management-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 📨 Submit Application - POST /host-applications (public)
func (h *Handler) CreateApplication(c *gin.Context) {
	var req CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	app, err := h.Service.CreateApplication(c.Request.Context(), &req, ip)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

// ===========================
// 📄 List Applications - GET /host-applications?status=&email=&page=&limit=
func (h *Handler) ListApplications(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := ListFilter{
		Status: c.Query("status"),
		Email:  c.Query("email"),
		Page:   page,
		Limit:  limit,
	}

	result, err := h.Service.ListApplications(filter)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ===========================
// 🔍 Get Application - GET /host-applications/:id
func (h *Handler) GetApplication(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application ID"})
		return
	}

	app, err := h.Service.GetApplication(uint(id))
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

// ===========================
// 🛂 Update Status - PATCH /host-applications/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application ID"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	reviewerID := middleware.GetUserIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	app, err := h.Service.UpdateStatus(c.Request.Context(), uint(id), &req, reviewerID, ip)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}
