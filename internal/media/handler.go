package media

import (
	"net/http"
	"strconv"
	"strings"

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

// ===========================
// 📷 Create Media - POST /halls/:id/media
func (h *Handler) CreateMedia(c *gin.Context) {
	hallID, ok := hallIDParam(c)
	if !ok {
		return
	}

	var req CreateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	actorID := middleware.GetUserIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	m, err := h.Service.CreateMedia(c.Request.Context(), hallID, &req, actorID, ip)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

// ===========================
// ⬆️ Upload Media - POST /halls/:id/media/upload (multipart)
func (h *Handler) UploadMedia(c *gin.Context) {
	hallID, ok := hallIDParam(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	mediaType := strings.ToUpper(c.DefaultPostForm("media_type", MediaTypeImage))
	sortOrder, _ := strconv.Atoi(c.DefaultPostForm("sort_order", "0"))

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read file"})
		return
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	actorID := middleware.GetUserIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	m, err := h.Service.UploadAndCreate(c.Request.Context(), hallID, fileHeader.Filename, contentType, src, mediaType, sortOrder, actorID, ip)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

// ===========================
// 🏷 Tag Media - POST /halls/:id/media/:mediaId/tags
func (h *Handler) TagMedia(c *gin.Context) {
	hallID, ok := hallIDParam(c)
	if !ok {
		return
	}
	mediaID, err := strconv.Atoi(c.Param("mediaId"))
	if err != nil || mediaID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media ID"})
		return
	}

	var req TagMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	actorID := middleware.GetUserIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	tag, err := h.Service.TagMediaByName(c.Request.Context(), hallID, uint(mediaID), &req, actorID, ip)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, tag)
}

// ===========================
// 📄 List Media - GET /halls/:id/media?tag=&media_type=
func (h *Handler) ListMedia(c *gin.Context) {
	hallID, ok := hallIDParam(c)
	if !ok {
		return
	}

	filter := ListMediaFilter{
		TagName:   c.Query("tag"),
		MediaType: strings.ToUpper(c.Query("media_type")),
	}

	items, err := h.Service.ListMediaForHall(hallID, filter)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

// ===========================
// 🗑 Delete Media - DELETE /halls/:id/media/:mediaId
func (h *Handler) DeleteMedia(c *gin.Context) {
	hallID, ok := hallIDParam(c)
	if !ok {
		return
	}
	mediaID, err := strconv.Atoi(c.Param("mediaId"))
	if err != nil || mediaID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media ID"})
		return
	}

	actorID := middleware.GetUserIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	if err := h.Service.DeleteMedia(c.Request.Context(), hallID, uint(mediaID), actorID, ip); err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "media deleted"})
}
