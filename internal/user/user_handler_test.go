package user_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/domain"
	"go-hrms/internal/middleware"
	"go-hrms/internal/user"
	usererrors "go-hrms/internal/user/errors"
	userMock "go-hrms/internal/user/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupRouter(svc user.Service, caller *domain.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if caller != nil {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.KeyPrincipal, *caller)
			c.Next()
		})
	}
	h := user.NewHandler(svc)
	r.GET("/users", h.GetAll)
	r.PATCH("/users/:id/status", h.UpdateStatus)
	r.PUT("/users/me/password", h.ChangePassword)
	r.PUT("/users/:id/password", h.ResetPassword)
	return r
}

func TestUserHandler_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := userMock.NewMockService(ctrl)
	svc.EXPECT().GetAll(gomock.Any(), user.ListParams{Page: 1, Limit: 100, Role: "HR", Search: "ann"}).
		Return(user.ListResult{Items: []user.UserResponse{{ID: "u-1"}}, Total: 1}, nil)

	w := httptest.NewRecorder()
	setupRouter(svc, nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users?limit=1000&role=HR&q=ann", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalPages":1`)
}

func TestUserHandler_UpdateStatus(t *testing.T) {
	admin := domain.Principal{IdentityID: uuid.New(), Role: domain.RoleAdmin}
	id := uuid.NewString()

	t.Run("is_active is required", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := userMock.NewMockService(ctrl)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/users/"+id+"/status", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(svc, &admin).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("self change is forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := userMock.NewMockService(ctrl)
		svc.EXPECT().SetStatus(gomock.Any(), admin, id, false).Return(usererrors.ErrCannotModifySelf)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/users/"+id+"/status", strings.NewReader(`{"is_active":false}`))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(svc, &admin).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestUserHandler_ChangePassword(t *testing.T) {
	t.Run("no principal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := userMock.NewMockService(ctrl)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/users/me/password",
			strings.NewReader(`{"current_password":"old-secret","new_password":"new-secret"}`))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(svc, nil).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("new password must differ", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := userMock.NewMockService(ctrl)
		caller := domain.Principal{IdentityID: uuid.New(), Role: domain.RoleEmployee}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/users/me/password",
			strings.NewReader(`{"current_password":"same-pass","new_password":"same-pass"}`))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(svc, &caller).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("new password over 72 bytes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := userMock.NewMockService(ctrl)
		caller := domain.Principal{IdentityID: uuid.New(), Role: domain.RoleEmployee}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/users/me/password",
			strings.NewReader(`{"current_password":"old-secret","new_password":"`+strings.Repeat("a", 80)+`"}`))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(svc, &caller).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})
}

func TestUserHandler_ResetPassword(t *testing.T) {
	admin := domain.Principal{IdentityID: uuid.New(), Role: domain.RoleAdmin}

	t.Run("new password over 72 bytes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := userMock.NewMockService(ctrl)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/users/"+uuid.NewString()+"/password",
			strings.NewReader(`{"new_password":"`+strings.Repeat("a", 80)+`"}`))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(svc, &admin).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})
}
