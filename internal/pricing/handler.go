package pricing

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

func hallIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hall ID"})
		return 0, false
	}
	return uint(id), true
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// ===========================
// 📦 Create Product - POST /halls/:id/products
func (h *Handler) CreateProduct(c *gin.Context) {
	hallID, ok := hallIDParam(c)
	if !ok {
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	actorID := middleware.GetUserIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	product, err := h.Service.CreateProduct(c.Request.Context(), hallID, &req, actorID, ip)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// ===========================
// 🛠 Update Product - PATCH /halls/:id/products/:productId
func (h *Handler) UpdateProduct(c *gin.Context) {
	hallID, ok := hallIDParam(c)
	if !ok {
		return
	}
	productID, ok := uintParam(c, "productId")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	actorID := middleware.GetUserIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	product, err := h.Service.UpdateProduct(c.Request.Context(), hallID, productID, &req, actorID, ip)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// ===========================
// 📄 List Products - GET /halls/:id/products
func (h *Handler) ListProducts(c *gin.Context) {
	hallID, ok := hallIDParam(c)
	if !ok {
		return
	}

	products, err := h.Service.ListProducts(hallID)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": products})
}

// ===========================
// 🗑 Delete Product - DELETE /halls/:id/products/:productId
func (h *Handler) DeleteProduct(c *gin.Context) {
	hallID, ok := hallIDParam(c)
	if !ok {
		return
	}
	productID, ok := uintParam(c, "productId")
	if !ok {
		return
	}

	actorID := middleware.GetUserIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	if err := h.Service.DeleteProduct(c.Request.Context(), hallID, productID, actorID, ip); err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

// ===========================
// 💰 Create Rate - POST /halls/:id/products/:productId/rates
func (h *Handler) CreateRate(c *gin.Context) {
	hallID, ok := hallIDParam(c)
	if !ok {
		return
	}
	productID, ok := uintParam(c, "productId")
	if !ok {
		return
	}

	var req CreateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	actorID := middleware.GetUserIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	rate, err := h.Service.CreateRate(c.Request.Context(), hallID, productID, &req, actorID, ip)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, rate)
}

// ===========================
// 🛠 Update Rate - PATCH /halls/:id/products/:productId/rates/:rateId
func (h *Handler) UpdateRate(c *gin.Context) {
	hallID, ok := hallIDParam(c)
	if !ok {
		return
	}
	productID, ok := uintParam(c, "productId")
	if !ok {
		return
	}
	rateID, ok := uintParam(c, "rateId")
	if !ok {
		return
	}

	var req UpdateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	actorID := middleware.GetUserIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	rate, err := h.Service.UpdateRate(c.Request.Context(), hallID, productID, rateID, &req, actorID, ip)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, rate)
}

// ===========================
// 📄 List Rates - GET /halls/:id/products/:productId/rates
func (h *Handler) ListRates(c *gin.Context) {
	hallID, ok := hallIDParam(c)
	if !ok {
		return
	}
	productID, ok := uintParam(c, "productId")
	if !ok {
		return
	}

	rates, err := h.Service.ListRates(hallID, productID)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rates})
}

// ===========================
// 🗑 Delete Rate - DELETE /halls/:id/products/:productId/rates/:rateId
func (h *Handler) DeleteRate(c *gin.Context) {
	hallID, ok := hallIDParam(c)
	if !ok {
		return
	}
	productID, ok := uintParam(c, "productId")
	if !ok {
		return
	}
	rateID, ok := uintParam(c, "rateId")
	if !ok {
		return
	}

	actorID := middleware.GetUserIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	if err := h.Service.DeleteRate(c.Request.Context(), hallID, productID, rateID, actorID, ip); err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "rate deleted"})
}

// ===========================
// ➕ Create Addon - POST /halls/:id/addons
func (h *Handler) CreateAddon(c *gin.Context) {
	hallID, ok := hallIDParam(c)
	if !ok {
		return
	}

	var req CreateAddonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	actorID := middleware.GetUserIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	addon, err := h.Service.CreateAddon(c.Request.Context(), hallID, &req, actorID, ip)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, addon)
}

// ===========================
// 🛠 Update Addon - PATCH /halls/:id/addons/:addonId
func (h *Handler) UpdateAddon(c *gin.Context) {
	hallID, ok := hallIDParam(c)
	if !ok {
		return
	}
	addonID, ok := uintParam(c, "addonId")
	if !ok {
		return
	}

	var req UpdateAddonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	actorID := middleware.GetUserIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	addon, err := h.Service.UpdateAddon(c.Request.Context(), hallID, addonID, &req, actorID, ip)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, addon)
}

// ===========================
// 📄 List Addons - GET /halls/:id/addons
func (h *Handler) ListAddons(c *gin.Context) {
	hallID, ok := hallIDParam(c)
	if !ok {
		return
	}

	addons, err := h.Service.ListAddons(hallID)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": addons})
}

// ===========================
// 🗑 Delete Addon - DELETE /halls/:id/addons/:addonId
func (h *Handler) DeleteAddon(c *gin.Context) {
	hallID, ok := hallIDParam(c)
	if !ok {
		return
	}
	addonID, ok := uintParam(c, "addonId")
	if !ok {
		return
	}

	actorID := middleware.GetUserIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	if err := h.Service.DeleteAddon(c.Request.Context(), hallID, addonID, actorID, ip); err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "addon deleted"})
}

// ===========================
// 📅 Create Blocked Date - POST /halls/:id/blocked-dates
func (h *Handler) CreateBlockedDate(c *gin.Context) {
	hallID, ok := hallIDParam(c)
	if !ok {
		return
	}

	var req CreateBlockedDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	actorID := middleware.GetUserIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	block, err := h.Service.CreateBlockedDate(c.Request.Context(), hallID, &req, actorID, ip)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, block)
}

// ===========================
// 📄 List Blocked Dates - GET /halls/:id/blocked-dates
func (h *Handler) ListBlockedDates(c *gin.Context) {
	hallID, ok := hallIDParam(c)
	if !ok {
		return
	}

	blocks, err := h.Service.ListBlockedDates(hallID)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": blocks})
}

// ===========================
// 🗑 Delete Blocked Date - DELETE /halls/:id/blocked-dates/:blockId
func (h *Handler) DeleteBlockedDate(c *gin.Context) {
	hallID, ok := hallIDParam(c)
	if !ok {
		return
	}
	blockID, ok := uintParam(c, "blockId")
	if !ok {
		return
	}

	actorID := middleware.GetUserIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	if err := h.Service.DeleteBlockedDate(c.Request.Context(), hallID, blockID, actorID, ip); err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "blocked date deleted"})
}
