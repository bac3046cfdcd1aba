package reports

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mbokatech/hall-management-backend/internal/apperror"
	"github.com/mbokatech/hall-management-backend/middleware"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

func dateQuery(c *gin.Context, name string) (*time.Time, bool) {
	v := c.Query(name)
	if v == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " format. Use YYYY-MM-DD"})
		return nil, false
	}
	return &t, true
}

// ===========================
// 📊 Halls Report - GET /reports/halls?status=&city=&start_date=&end_date=&format=
func (h *Handler) GetHallsReport(c *gin.Context) {
	req := HallsReportRequest{
		Status: c.Query("status"),
		City:   c.Query("city"),
	}

	var ok bool
	if req.StartDate, ok = dateQuery(c, "start_date"); !ok {
		return
	}
	if req.EndDate, ok = dateQuery(c, "end_date"); !ok {
		return
	}

	format := c.Query("format")
	if format == "" {
		rows, err := h.Service.GetHallsReport(req)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": rows})
		return
	}

	userID := middleware.GetUserIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	data, filename, contentType, err := h.Service.ExportHallsReport(c.Request.Context(), req, format, userID, ip)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}

// ===========================
// 📊 Applications Report - GET /reports/host-applications?status=&start_date=&end_date=&format=
func (h *Handler) GetApplicationsReport(c *gin.Context) {
	req := ApplicationsReportRequest{
		Status: c.Query("status"),
	}

	var ok bool
	if req.StartDate, ok = dateQuery(c, "start_date"); !ok {
		return
	}
	if req.EndDate, ok = dateQuery(c, "end_date"); !ok {
		return
	}

	format := c.Query("format")
	if format == "" {
		rows, err := h.Service.GetApplicationsReport(req)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": rows})
		return
	}

	userID := middleware.GetUserIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	data, filename, contentType, err := h.Service.ExportApplicationsReport(c.Request.Context(), req, format, userID, ip)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}
