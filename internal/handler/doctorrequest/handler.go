package doctorrequest

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitacare/hospital-api/internal/handler"
	"github.com/vitacare/hospital-api/internal/middleware"
	"github.com/vitacare/hospital-api/internal/model"
	"github.com/vitacare/hospital-api/internal/service/approval"
)

const maxPhotoSize = 5 << 20 // 5 MiB

type Handler struct {
	service *approval.Service
}

func NewHandler(service *approval.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/doctor-request", h.Submit)
}

// Submit files a doctor application for the caller. Multipart form: the
// profile fields plus a profilePhoto image part.
func (h *Handler) Submit(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	fields := model.DoctorRequestFields{
		Specialization: c.PostForm("specialization"),
		Degree:         c.PostForm("degree"),
		Address:        c.PostForm("address"),
		Description:    c.PostForm("description"),
	}
	if fields.Specialization == "" || fields.Degree == "" || fields.Address == "" || fields.Description == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("all fields are required"))
		return
	}

	fileHeader, err := c.FormFile("profilePhoto")
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("profile photo is required"))
		return
	}
	if fileHeader.Size > maxPhotoSize {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("file too large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("failed to read file"))
		return
	}
	defer file.Close()

	photo, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("failed to read file"))
		return
	}

	request, err := h.service.Submit(c.Request.Context(), callerID, &fields, photo, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, &handler.Response{
		Status:  "success",
		Message: "doctor application submitted successfully",
		Data:    gin.H{"request": request},
	})
}
