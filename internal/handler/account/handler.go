package account

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitacare/hospital-api/internal/handler"
	"github.com/vitacare/hospital-api/internal/middleware"
	"github.com/vitacare/hospital-api/internal/service/account"
)

// Uploaded report images are capped to keep the proxy path bounded.
const maxReportSize = 10 << 20 // 10 MiB

type Handler struct {
	service *account.Service
	// assistantKey is handed to authenticated clients for the in-app
	// AI assistant.
	assistantKey string
}

func NewHandler(service *account.Service, assistantKey string) *Handler {
	return &Handler{service: service, assistantKey: assistantKey}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/user-details", h.UserDetails)
	r.POST("/upload-report", h.UploadReport)
	r.GET("/assistant-key", h.AssistantKey)
}

func (h *Handler) AssistantKey(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"key": h.assistantKey}))
}

func (h *Handler) UserDetails(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	profile, err := h.service.Profile(c.Request.Context(), callerID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"user": profile}))
}

func (h *Handler) UploadReport(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("no file uploaded"))
		return
	}
	if fileHeader.Size > maxReportSize {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("file too large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("failed to read file"))
		return
	}
	defer file.Close()

	blob, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("failed to read file"))
		return
	}

	url, err := h.service.UploadReport(c.Request.Context(), callerID, blob, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{"patient_report": url}))
}
