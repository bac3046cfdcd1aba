package hall

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
// 🏛 Create Hall - POST /halls
func (h *Handler) CreateHall(c *gin.Context) {
	var req CreateHallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	actorID := middleware.GetUserIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	hall, err := h.Service.CreateHall(c.Request.Context(), &req, actorID, ip)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, hall)
}

// ===========================
// 🛠 Update Hall - PATCH /halls/:id
func (h *Handler) UpdateHall(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hall ID"})
		return
	}

	var req UpdateHallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	actorID := middleware.GetUserIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	hall, err := h.Service.UpdateHall(c.Request.Context(), uint(id), &req, actorID, ip)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, hall)
}

// ===========================
// 🔍 Get Hall - GET /halls/:id
func (h *Handler) GetHallByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hall ID"})
		return
	}

	hall, err := h.Service.GetHallByID(uint(id))
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, hall)
}

// ===========================
// 📄 List Halls - GET /halls?status=&city=&premium=&gerant_id=&page=&limit=
func (h *Handler) ListHalls(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := ListFilter{
		Status: c.Query("status"),
		City:   c.Query("city"),
		Page:   page,
		Limit:  limit,
	}
	if premiumStr := c.Query("premium"); premiumStr != "" {
		premium := premiumStr == "true"
		filter.IsPremium = &premium
	}
	if gerantID := c.Query("gerant_id"); gerantID != "" {
		filter.GerantID = &gerantID
	}

	result, err := h.Service.ListHalls(filter)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ===========================
// 👥 List Roles - GET /halls/:id/roles
func (h *Handler) ListRoles(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hall ID"})
		return
	}

	roles, err := h.Service.ListRoles(uint(id))
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": roles})
}

// ===========================
// 👥 Assign Role - POST /halls/:id/roles
func (h *Handler) AssignRole(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hall ID"})
		return
	}

	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	actorID := middleware.GetUserIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	if err := h.Service.AssignRole(c.Request.Context(), uint(id), &req, actorID, ip); err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "role assigned"})
}

// ===========================
// 👥 Remove Role - DELETE /halls/:id/roles/:userID/:role
func (h *Handler) RemoveRole(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hall ID"})
		return
	}

	userID := c.Param("userID")
	roleName := c.Param("role")

	actorID := middleware.GetUserIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	if err := h.Service.RemoveRole(c.Request.Context(), uint(id), userID, roleName, actorID, ip); err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "role removed"})
}
