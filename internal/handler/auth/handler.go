package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitacare/hospital-api/internal/handler"
	"github.com/vitacare/hospital-api/internal/middleware"
	"github.com/vitacare/hospital-api/internal/model"
	"github.com/vitacare/hospital-api/internal/service/auth"
)

type Handler struct {
	service      *auth.Service
	cookieSecure bool
}

func NewHandler(service *auth.Service, cookieSecure bool) *Handler {
	return &Handler{service: service, cookieSecure: cookieSecure}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/sign-up", h.SignUp)
	r.POST("/login", h.Login)
	r.POST("/admin-login", h.AdminLogin)
}

func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.GET("/logout", h.Logout)
	r.PUT("/reset-password", h.ResetPassword)
}

// Protected exposes the session-bound endpoints as their own route surface
// so they can be mounted behind authentication.
func (h *Handler) Protected() ProtectedRoutes {
	return ProtectedRoutes{h: h}
}

type ProtectedRoutes struct {
	h *Handler
}

func (p ProtectedRoutes) RegisterRoutes(r *gin.RouterGroup) {
	p.h.RegisterProtectedRoutes(r)
}

func (h *Handler) SignUp(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if _, err := h.service.Register(c.Request.Context(), &req); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, &handler.Response{
		Status:  "success",
		Message: "user registered successfully",
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	session, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	h.setSessionCookie(c, session.Token, int(session.TTL.Seconds()))
	c.JSON(http.StatusOK, handler.NewSuccessResponse(session.Account))
}

func (h *Handler) AdminLogin(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	session, err := h.service.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	h.setSessionCookie(c, session.Token, int(session.TTL.Seconds()))
	c.JSON(http.StatusOK, handler.NewSuccessResponse(session.Account))
}

func (h *Handler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, &handler.Response{
		Status:  "success",
		Message: "logged out successfully",
	})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	var req model.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), callerID, req.CurrentPassword, req.NewPassword); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, &handler.Response{
		Status:  "success",
		Message: "password reset successful",
	})
}

func (h *Handler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", h.cookieSecure, true)
}
