package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vitacare/hospital-api/internal/handler"
	"github.com/vitacare/hospital-api/internal/model"
	"github.com/vitacare/hospital-api/internal/service/account"
	"github.com/vitacare/hospital-api/internal/service/approval"
	"github.com/vitacare/hospital-api/internal/service/message"
)

// Handler serves the admin dashboard operations.
type Handler struct {
	approvalSvc *approval.Service
	messageSvc  *message.Service
	accountSvc  *account.Service
}

func NewHandler(approvalSvc *approval.Service, messageSvc *message.Service, accountSvc *account.Service) *Handler {
	return &Handler{
		approvalSvc: approvalSvc,
		messageSvc:  messageSvc,
		accountSvc:  accountSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard-details", h.DashboardDetails)
	r.GET("/fetch-messages", h.FetchMessages)
	r.GET("/fetch-doctors-requests", h.FetchDoctorRequests)
	r.PUT("/update-doctor-request/:id", h.UpdateDoctorRequest)
}

func (h *Handler) DashboardDetails(c *gin.Context) {
	counts, err := h.accountSvc.DashboardCounts(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(counts))
}

func (h *Handler) FetchMessages(c *gin.Context) {
	messages, err := h.messageSvc.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(messages))
}

func (h *Handler) FetchDoctorRequests(c *gin.Context) {
	requests, err := h.approvalSvc.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(requests))
}

func (h *Handler) UpdateDoctorRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid request ID"))
		return
	}

	var req model.ResolveDoctorRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	resolved, err := h.approvalSvc.Resolve(c.Request.Context(), id, req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	// The resolution may have promoted or demoted a doctor.
	h.accountSvc.InvalidateDoctorCache()

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"request": resolved}))
}
