package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitacare/hospital-api/internal/model"
	authService "github.com/vitacare/hospital-api/internal/service/auth"
	"github.com/vitacare/hospital-api/pkg/auth"
	"github.com/vitacare/hospital-api/pkg/security"
)

func testRouter(t *testing.T) (*gin.Engine, auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtSvc := auth.NewJWTService("test-secret")
	svc := authService.NewService(nil, jwtSvc, security.NewBcryptHasher(4))
	m := NewAuthMiddleware(svc)

	r := gin.New()
	protected := r.Group("/", m.Authenticate())
	protected.GET("/me", func(c *gin.Context) {
		id, _ := CallerID(c)
		role, _ := CallerRole(c)
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "role": string(role)})
	})
	admin := protected.Group("/", m.RequireRole(model.RoleAdmin))
	admin.GET("/admin", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, jwtSvc
}

func doRequest(r *gin.Engine, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticateMissingCookie(t *testing.T) {
	r, _ := testRouter(t)
	w := doRequest(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateBadToken(t *testing.T) {
	r, _ := testRouter(t)
	w := doRequest(r, "/me", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateValidToken(t *testing.T) {
	r, jwtSvc := testRouter(t)
	userID := uuid.New()
	token, err := jwtSvc.Sign(userID, string(model.RolePatient), time.Hour)
	require.NoError(t, err)

	w := doRequest(r, "/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), "patient")
}

func TestRequireRole(t *testing.T) {
	r, jwtSvc := testRouter(t)

	patientToken, err := jwtSvc.Sign(uuid.New(), string(model.RolePatient), time.Hour)
	require.NoError(t, err)
	w := doRequest(r, "/admin", patientToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken, err := jwtSvc.Sign(uuid.New(), string(model.RoleAdmin), time.Hour)
	require.NoError(t, err)
	w = doRequest(r, "/admin", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
